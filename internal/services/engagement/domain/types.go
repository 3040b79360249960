// Package domain defines the per-viewer engagement overlay types
package domain

// LikeSet is the subset of a page's post ids the viewer has liked
type LikeSet map[int64]struct{}

// NewLikeSet builds a set from ids
func NewLikeSet(ids ...int64) LikeSet {
	s := make(LikeSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports membership; safe on a nil set
func (s LikeSet) Has(id int64) bool {
	_, ok := s[id]
	return ok
}
