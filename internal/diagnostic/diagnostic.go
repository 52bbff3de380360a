// Package diagnostic defines the (passed, message) pairs every check emits.
//
// Messages are plain text with bare Wikidata identifiers embedded; turning
// those into links is left to whatever presents the report.
package diagnostic

import "fmt"

// Item is one report entry. The position of an item within a report is part
// of its meaning, so callers append, never sort.
type Item struct {
	Passed  bool   `json:"passed"`
	Message string `json:"message"`
}

// Pass builds a passing item.
func Pass(format string, args ...any) Item {
	return Item{Passed: true, Message: fmt.Sprintf(format, args...)}
}

// Fail builds a failing item.
func Fail(format string, args ...any) Item {
	return Item{Passed: false, Message: fmt.Sprintf(format, args...)}
}

// Failures counts the failing items.
func Failures(items []Item) int {
	n := 0
	for _, item := range items {
		if !item.Passed {
			n++
		}
	}
	return n
}
