// Package repo provides postgres access for like membership
package repo

import (
	"context"

	"socialfeed/internal/modkit/repokit"
	"socialfeed/internal/platform/store"
)

// Repo defines the repository contract for likes
type Repo interface {
	// LikedAmong returns the ids in postIDs that userID has a like mark on
	LikedAmong(ctx context.Context, userID int64, postIDs []int64) ([]int64, error)
}

type (
	// PG implements the Repo interface using Postgres
	PG struct{}

	queries struct{ q repokit.Queryer }
)

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind binds a Postgres queryer to the Repo implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

const likedAmongSQL = `
select post_id
from likes
where user_id = $1
and post_id = any($2)
`

func (r *queries) LikedAmong(ctx context.Context, userID int64, postIDs []int64) ([]int64, error) {
	return store.Many(ctx, r.q, scanID, likedAmongSQL, userID, postIDs)
}

func scanID(row repokit.Row) (int64, error) {
	var id int64
	err := row.Scan(&id)
	return id, err
}
