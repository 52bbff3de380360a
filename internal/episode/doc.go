// Package episode turns SPARQL result rows into Episode values and checks the
// previous/next chain they form.
//
// The pipeline is Bind (row → Episode), NewGraph (resolve 'follows' and
// 'followed by' identifiers into arena links), Order (validate that the links
// form one simple chain and, if so, walk it) and GroupSeasons (split the
// ordered episodes into contiguous seasons). Every data-quality problem found
// along the way becomes a diagnostic.Item; only malformed rows and the chain
// walk loop guard produce errors.
//
// A Graph is built per validation run and is read-only once constructed, so
// separate runs never share mutable state.
package episode
