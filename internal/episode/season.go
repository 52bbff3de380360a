package episode

import "strconv"

// SeasonKey identifies the season an episode belongs to. Episodes of a series
// modelled without seasons share the key {nil, 1, nil}.
type SeasonKey struct {
	Item   *string
	Number *int
	Label  *string
}

// KeyOf returns the season key of e.
func KeyOf(e *Episode) SeasonKey {
	return SeasonKey{Item: e.SeasonItem, Number: e.SeasonNumber, Label: e.SeasonLabel}
}

// Equal compares keys by value.
func (k SeasonKey) Equal(other SeasonKey) bool {
	return equalPtr(k.Item, other.Item) && equalPtr(k.Number, other.Number) && equalPtr(k.Label, other.Label)
}

// String is the season item for display, or a placeholder for flat series.
func (k SeasonKey) String() string {
	if k.Item != nil {
		return *k.Item
	}
	if k.Number != nil {
		return "(implicit season " + strconv.Itoa(*k.Number) + ")"
	}
	return "(implicit season)"
}

func equalPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// SeasonGroup is a run of consecutive episodes sharing a season key.
type SeasonGroup struct {
	Key      SeasonKey
	Episodes []*Episode
}

// GroupSeasons partitions ordered episodes into contiguous season runs.
// Episodes of one season are expected to be adjacent already; a season that
// reappears later in the sequence starts a new group.
func GroupSeasons(episodes []*Episode) []SeasonGroup {
	var groups []SeasonGroup
	for _, ep := range episodes {
		key := KeyOf(ep)
		if n := len(groups); n > 0 && groups[n-1].Key.Equal(key) {
			groups[n-1].Episodes = append(groups[n-1].Episodes, ep)
			continue
		}
		groups = append(groups, SeasonGroup{Key: key, Episodes: []*Episode{ep}})
	}
	return groups
}
