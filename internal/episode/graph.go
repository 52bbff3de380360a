package episode

import "episodecheck/internal/diagnostic"

// noLink marks an unset arena link.
const noLink = -1

// Graph is the working set of episodes for one series. Links are arena
// indices into episodes, so an Episode never owns its neighbours and a cycle
// in the data is just a cycle of integers.
type Graph struct {
	episodes []*Episode
	index    map[string]int
	prev     []int
	next     []int
	dropped  int
}

// Dedupe keeps the first row seen for each identifier and drops later ones.
// The episode queries return one row per combination of multi-valued
// optional properties, so duplicates are normal; the first row is the
// canonical one because the queries order rows by season and episode number.
func Dedupe(episodes []*Episode) ([]*Episode, int) {
	seen := make(map[string]struct{}, len(episodes))
	out := make([]*Episode, 0, len(episodes))
	for _, ep := range episodes {
		if ep == nil {
			continue
		}
		if _, ok := seen[ep.Item]; ok {
			continue
		}
		seen[ep.Item] = struct{}{}
		out = append(out, ep)
	}
	return out, len(episodes) - len(out)
}

// NewGraph indexes episodes and resolves their previous/next identifiers.
// References to items outside the set are reported and left unlinked.
func NewGraph(episodes []*Episode) (*Graph, []diagnostic.Item) {
	unique, dropped := Dedupe(episodes)
	g := &Graph{
		episodes: unique,
		index:    make(map[string]int, len(unique)),
		prev:     make([]int, len(unique)),
		next:     make([]int, len(unique)),
		dropped:  dropped,
	}
	for i, ep := range unique {
		g.index[ep.Item] = i
	}

	var problems []diagnostic.Item
	for i, ep := range unique {
		g.prev[i] = noLink
		g.next[i] = noLink
		if ep.PreviousItem != nil {
			if j, ok := g.index[*ep.PreviousItem]; ok {
				g.prev[i] = j
			} else {
				problems = append(problems, diagnostic.Fail("%s follows %s, but %s was not found by the query",
					ep.Item, *ep.PreviousItem, *ep.PreviousItem))
			}
		}
		if ep.NextItem != nil {
			if j, ok := g.index[*ep.NextItem]; ok {
				g.next[i] = j
			} else {
				problems = append(problems, diagnostic.Fail("%s followed by %s but %s was not found by the query",
					ep.Item, *ep.NextItem, *ep.NextItem))
			}
		}
	}
	return g, problems
}

// Len returns the number of distinct episodes.
func (g *Graph) Len() int { return len(g.episodes) }

// Dropped returns how many duplicate rows NewGraph discarded.
func (g *Graph) Dropped() int { return g.dropped }

// Episodes returns the episodes in the order they were received.
func (g *Graph) Episodes() []*Episode {
	out := make([]*Episode, len(g.episodes))
	copy(out, g.episodes)
	return out
}

// Lookup finds an episode by identifier.
func (g *Graph) Lookup(item string) (*Episode, bool) {
	i, ok := g.index[item]
	if !ok {
		return nil, false
	}
	return g.episodes[i], true
}

// Previous returns the resolved predecessor of e, or nil.
func (g *Graph) Previous(e *Episode) *Episode {
	return g.at(g.link(g.prev, e))
}

// Next returns the resolved successor of e, or nil.
func (g *Graph) Next(e *Episode) *Episode {
	return g.at(g.link(g.next, e))
}

func (g *Graph) link(links []int, e *Episode) int {
	if e == nil {
		return noLink
	}
	i, ok := g.index[e.Item]
	if !ok {
		return noLink
	}
	return links[i]
}

func (g *Graph) at(i int) *Episode {
	if i == noLink {
		return nil
	}
	return g.episodes[i]
}

func (g *Graph) labelAt(i int) string {
	if i == noLink {
		return "nothing"
	}
	return g.episodes[i].LabelWithItem()
}
