package seriescheck

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidItem is returned for identifiers that are not of the form Q<digits>.
	ErrInvalidItem = errors.New("not a Wikidata item identifier")
	// ErrNotSeries is returned when the item is not a television series.
	ErrNotSeries = errors.New("item is not a television series")
)

// NotSeriesError carries the item that failed the television series check.
type NotSeriesError struct {
	Item string
}

func (e *NotSeriesError) Error() string {
	return fmt.Sprintf("%s did not seem to be a television series (an 'instance of' (P31) Q5398426 "+
		"or something which is a 'subclass of' (P279) Q5398426)", e.Item)
}

func (e *NotSeriesError) Unwrap() error { return ErrNotSeries }
