// Package service assembles feed pages from the ordered post query and the like overlay
package service

import (
	"context"
	"time"

	"socialfeed/internal/core/cursor"
	"socialfeed/internal/modkit/repokit"
	perr "socialfeed/internal/platform/errors"
	"socialfeed/internal/services/api/feed/domain"
	"socialfeed/internal/services/api/feed/repo"
	engdomain "socialfeed/internal/services/engagement/domain"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Service is the public interface of the feed service
type Service interface {
	domain.ServicePort
}

// Svc implements Service
type Svc struct {
	DB    repokit.TxRunner
	Posts repokit.Binder[repo.Repo]
	Likes repokit.Binder[engdomain.ResolverPort]
	Codec cursor.Codec
}

// New creates a new feed service; db, posts and likes must be non nil
func New(db repokit.TxRunner, posts repokit.Binder[repo.Repo], likes repokit.Binder[engdomain.ResolverPort], codec cursor.Codec) *Svc {
	if db == nil {
		panic("feed.Service requires a non nil TxRunner")
	}
	if posts == nil {
		panic("feed.Service requires a non nil Repo binder")
	}
	if likes == nil {
		panic("feed.Service requires a non nil likes binder")
	}
	return &Svc{DB: db, Posts: posts, Likes: likes, Codec: codec}
}

var tracer = otel.Tracer("socialfeed/feed")

// Home implements domain.ServicePort
func (s *Svc) Home(ctx context.Context, v domain.Viewer, q domain.FeedQuery) (domain.Page, error) {
	return s.serve(ctx, domain.KindHome, v, q)
}

// Explore implements domain.ServicePort
func (s *Svc) Explore(ctx context.Context, v domain.Viewer, q domain.FeedQuery) (domain.Page, error) {
	return s.serve(ctx, domain.KindExplore, v, q)
}

func (s *Svc) serve(ctx context.Context, kind domain.Kind, v domain.Viewer, q domain.FeedQuery) (domain.Page, error) {
	start := time.Now()
	ctx, span := tracer.Start(ctx, "feed."+string(kind))
	defer span.End()
	span.SetAttributes(
		attribute.String("feed.kind", string(kind)),
		attribute.Int("feed.limit", q.Limit),
		attribute.Bool("feed.cursor", q.Cursor != ""),
		attribute.Bool("feed.anonymous", v.IsAnonymous()),
	)

	page, err := s.page(ctx, kind, v, q)

	pageDuration.WithLabelValues(string(kind)).Observe(time.Since(start).Seconds())
	if err != nil {
		pagesServed.WithLabelValues(string(kind), outcome(err)).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return domain.Page{}, perr.WithOp(err, "feed."+string(kind))
	}
	pagesServed.WithLabelValues(string(kind), "ok").Inc()
	pagePosts.WithLabelValues(string(kind)).Observe(float64(len(page.Posts)))
	span.SetAttributes(attribute.Int("feed.posts", len(page.Posts)), attribute.Bool("feed.has_more", page.HasMore))
	return page, nil
}

// page checks the viewer, validates, then reads posts and likes from one snapshot.
// Either both reads succeed and a full page is built or the request fails
func (s *Svc) page(ctx context.Context, kind domain.Kind, v domain.Viewer, q domain.FeedQuery) (domain.Page, error) {
	pq := domain.PageQuery{Kind: kind}
	if kind == domain.KindHome {
		uid, ok := v.ID()
		if !ok {
			return domain.Page{}, perr.Unauthorizedf("authentication required")
		}
		pq.ViewerID = uid
	}

	if q.Limit < 1 || q.Limit > domain.MaxLimit {
		return domain.Page{}, domain.InvalidLimit()
	}
	after, err := s.Codec.Validate(q.Cursor)
	if err != nil {
		return domain.Page{}, err
	}
	pq.After, pq.Fetch = after, q.Limit+1

	var out domain.Page
	err = s.DB.ReadTx(ctx, func(tx repokit.Queryer) error {
		rows, err := repokit.MustBind(s.Posts, tx).Page(ctx, pq)
		if err != nil {
			return perr.FromPostgres(err, "fetch feed page")
		}

		visible, hasMore := trim(rows, q.Limit)
		liked, err := repokit.MustBind(s.Likes, tx).Resolve(ctx, v, ids(visible))
		if err != nil {
			return err
		}
		out = s.assemble(visible, liked, hasMore)
		return nil
	})
	if err != nil {
		if _, ok := perr.As(err); !ok {
			err = perr.FromPostgres(err, "feed snapshot")
		}
		return domain.Page{}, err
	}
	return out, nil
}

// trim drops the over-fetched row; its existence alone decides hasMore
func trim(rows []domain.Post, limit int) ([]domain.Post, bool) {
	if len(rows) > limit {
		return rows[:limit], true
	}
	return rows, false
}

func ids(posts []domain.Post) []int64 {
	out := make([]int64, len(posts))
	for i, p := range posts {
		out[i] = p.ID
	}
	return out
}

// assemble keeps query order
func (s *Svc) assemble(visible []domain.Post, liked engdomain.LikeSet, hasMore bool) domain.Page {
	page := domain.EmptyPage()
	page.Posts = make([]domain.FeedPost, 0, len(visible))
	for _, p := range visible {
		page.Posts = append(page.Posts, domain.FeedPost{Post: p, IsLikedByCurrentUser: liked.Has(p.ID)})
	}
	if hasMore && len(visible) > 0 {
		last := visible[len(visible)-1]
		next := s.Codec.Encode(last.ID, last.CreatedAt)
		page.NextCursor = &next
		page.HasMore = true
	}
	return page
}
