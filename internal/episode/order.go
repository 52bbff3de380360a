package episode

import (
	"strings"

	"episodecheck/internal/diagnostic"
)

// Ordering is the outcome of validating a graph's chain.
type Ordering struct {
	// Episodes is the chain order when Ordered is true and the received
	// order otherwise.
	Episodes []*Episode
	Ordered  bool
	Problems []diagnostic.Item
}

// Order checks that the previous/next links form exactly one simple chain and
// walks it from its head. Every check runs even after an earlier one fails.
// The walk only happens when there is a single head, no unlinked episode and
// no contradicting link; otherwise the received order is returned untouched.
func Order(g *Graph) (Ordering, error) {
	var (
		heads, tails []int
		unlinked     int
		linkProblems []diagnostic.Item
	)

	for i, ep := range g.episodes {
		if ep.PreviousItem == nil && ep.NextItem == nil {
			linkProblems = append(linkProblems, diagnostic.Fail("Episode %s has no previous or next episode", ep.LabelWithItem()))
			unlinked++
		}
		p, n := g.prev[i], g.next[i]
		if p != noLink && g.next[p] != i {
			linkProblems = append(linkProblems, diagnostic.Fail("%s follows %s, but %s followed by %s",
				ep.LabelWithItem(), g.labelAt(p), g.labelAt(p), g.labelAt(g.next[p])))
		}
		if n != noLink {
			switch back := g.prev[n]; {
			case back == noLink:
				linkProblems = append(linkProblems, diagnostic.Fail("%s followed by %s, but %s follows nothing",
					ep.LabelWithItem(), g.labelAt(n), g.labelAt(n)))
			case back != i:
				linkProblems = append(linkProblems, diagnostic.Fail("%s followed by %s, but %s follows %s",
					ep.LabelWithItem(), g.labelAt(n), g.labelAt(n), g.labelAt(back)))
			}
		}
		if n != noLink && p == noLink {
			heads = append(heads, i)
		}
		if p != noLink && n == noLink {
			tails = append(tails, i)
		}
	}
	contradictions := len(linkProblems) - unlinked

	var problems []diagnostic.Item
	switch len(heads) {
	case 0:
		problems = append(problems, diagnostic.Fail("There was no first episode found (in the sense that it has no 'follows' but does have a 'followed by')"))
	case 1:
	default:
		problems = append(problems, diagnostic.Fail("More than one episode had a 'followed by' but no 'follows': %s", g.joinLabels(heads)))
	}
	switch len(tails) {
	case 0:
		problems = append(problems, diagnostic.Fail("There was no last episode found (in the sense that it has no 'followed by' but does have a 'follows')"))
	case 1:
	default:
		problems = append(problems, diagnostic.Fail("More than one episode had a 'follows' but no 'followed by': %s", g.joinLabels(tails)))
	}
	problems = append(problems, linkProblems...)

	result := Ordering{Episodes: g.Episodes(), Problems: problems}
	if len(heads) != 1 || unlinked > 0 || contradictions > 0 {
		return result, nil
	}

	chain, err := g.walk(heads[0])
	if err != nil {
		return Ordering{}, err
	}
	if len(chain) != len(g.episodes) {
		// A separate consistent cycle, or episodes whose only links point
		// outside the set, never show up on the walk from the head.
		reached := make(map[string]struct{}, len(chain))
		for _, ep := range chain {
			reached[ep.Item] = struct{}{}
		}
		head := g.episodes[heads[0]].LabelWithItem()
		for _, ep := range g.episodes {
			if _, ok := reached[ep.Item]; !ok {
				result.Problems = append(result.Problems, diagnostic.Fail("Episode %s could not be reached by following 'followed by' from the first episode %s",
					ep.LabelWithItem(), head))
			}
		}
		return result, nil
	}

	result.Episodes = chain
	result.Ordered = true
	return result, nil
}

func (g *Graph) walk(head int) ([]*Episode, error) {
	visited := make([]bool, len(g.episodes))
	chain := make([]*Episode, 0, len(g.episodes))
	for cur := head; cur != noLink; cur = g.next[cur] {
		if visited[cur] || len(chain) > len(g.episodes) {
			return nil, &LoopError{
				Head:    g.episodes[head].Item,
				Revisit: g.episodes[cur].Item,
				Steps:   len(chain),
			}
		}
		visited[cur] = true
		chain = append(chain, g.episodes[cur])
	}
	return chain, nil
}

func (g *Graph) joinLabels(indices []int) string {
	labels := make([]string, 0, len(indices))
	for _, i := range indices {
		labels = append(labels, g.episodes[i].LabelWithItem())
	}
	return strings.Join(labels, ", ")
}
