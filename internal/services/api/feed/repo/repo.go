// Package repo provides the ordered post query behind both feeds
package repo

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"socialfeed/internal/modkit/repokit"
	"socialfeed/internal/platform/store"
	"socialfeed/internal/services/api/feed/domain"
)

// Repo defines the repository contract for feed pages
type Repo interface {
	// Page returns up to q.Fetch posts ordered created_at desc, id desc,
	// strictly after q.After when it is set
	Page(ctx context.Context, q domain.PageQuery) ([]domain.Post, error)
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

const pageSelect = `
select p.id, p.author_id, p.content, p.created_at, p.updated_at,
	u.id, u.username, d.display_name,
	(select count(*) from likes l where l.post_id = p.id) as likes_count
from posts p
join users u on u.id = p.author_id
left join user_details d on d.user_id = p.author_id`

// ErrNoViewer is returned for a home page query without a viewer id
var ErrNoViewer = errors.New("feed repo: home page needs a viewer id")

func (r *queries) Page(ctx context.Context, q domain.PageQuery) ([]domain.Post, error) {
	sql, args, err := buildPage(q)
	if err != nil {
		return nil, err
	}
	return store.Many(ctx, r.q, scanPost, sql, args...)
}

// buildPage renders the page statement. Home and explore share ordering and boundary
func buildPage(q domain.PageQuery) (string, []any, error) {
	if q.Fetch < 1 {
		return "", nil, fmt.Errorf("feed repo: fetch must be positive, got %d", q.Fetch)
	}

	var (
		sb    strings.Builder
		args  []any
		conds []string
	)
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	switch q.Kind {
	case domain.KindHome:
		if q.ViewerID <= 0 {
			return "", nil, ErrNoViewer
		}
		conds = append(conds, "p.author_id in (select f.following_id from follows f where f.follower_id = "+arg(q.ViewerID)+")")
	case domain.KindExplore:
	default:
		return "", nil, fmt.Errorf("feed repo: unknown feed kind %q", q.Kind)
	}

	if q.After != nil {
		ct := arg(q.After.CreatedAt)
		id := arg(q.After.ID)
		conds = append(conds, "(p.created_at, p.id) < ("+ct+", "+id+")")
	}

	sb.WriteString(pageSelect)
	for i, c := range conds {
		if i == 0 {
			sb.WriteString("\nwhere ")
		} else {
			sb.WriteString("\nand ")
		}
		sb.WriteString(c)
	}
	sb.WriteString("\norder by p.created_at desc, p.id desc\nlimit ")
	sb.WriteString(arg(q.Fetch))
	return sb.String(), args, nil
}

func scanPost(row repokit.Row) (domain.Post, error) {
	var p domain.Post
	err := row.Scan(
		&p.ID, &p.AuthorID, &p.Content, &p.CreatedAt, &p.UpdatedAt,
		&p.Author.ID, &p.Author.Username, &p.Author.DisplayName,
		&p.LikesCount,
	)
	return p, err
}
