// Package service resolves the engagement overlay for a page of posts
package service

import (
	"context"

	"socialfeed/internal/core/viewer"
	"socialfeed/internal/modkit/repokit"
	perr "socialfeed/internal/platform/errors"
	"socialfeed/internal/services/engagement/domain"
	"socialfeed/internal/services/engagement/repo"
)

// Resolver implements domain.ResolverPort over a bound repo
type Resolver struct {
	Repo repo.Repo
}

// New creates a Resolver; r must be non nil
func New(r repo.Repo) *Resolver {
	if r == nil {
		panic("engagement.Resolver requires a non nil Repo")
	}
	return &Resolver{Repo: r}
}

// Binder returns a factory that binds a Resolver to whatever Queryer the caller
// is reading through, so the lookup shares the caller's snapshot
func Binder(rb repokit.Binder[repo.Repo]) repokit.Binder[domain.ResolverPort] {
	if rb == nil {
		panic("engagement.Binder requires a non nil Repo binder")
	}
	return repokit.BindFunc[domain.ResolverPort](func(q repokit.Queryer) domain.ResolverPort {
		return New(repokit.MustBind(rb, q))
	})
}

// Resolve implements domain.ResolverPort
func (s *Resolver) Resolve(ctx context.Context, v viewer.Viewer, postIDs []int64) (domain.LikeSet, error) {
	uid, ok := v.ID()
	if !ok || len(postIDs) == 0 {
		return domain.LikeSet{}, nil
	}
	liked, err := s.Repo.LikedAmong(ctx, uid, postIDs)
	if err != nil {
		return nil, perr.FromPostgres(err, "resolve likes")
	}
	return domain.NewLikeSet(liked...), nil
}
