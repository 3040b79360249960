package domain

import (
	"context"

	"socialfeed/internal/core/viewer"
)

// ResolverPort answers which of postIDs the viewer has liked in a single lookup.
// Anonymous viewers and empty id sets resolve to an empty set without touching the store
type ResolverPort interface {
	Resolve(ctx context.Context, v viewer.Viewer, postIDs []int64) (LikeSet, error)
}
