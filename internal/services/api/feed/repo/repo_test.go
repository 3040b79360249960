package repo

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"socialfeed/internal/core/cursor"
	"socialfeed/internal/platform/store/storetest"
	"socialfeed/internal/platform/testkit"
	"socialfeed/internal/services/api/feed/domain"
)

func TestBuildPage_Explore(t *testing.T) {
	t.Parallel()

	sql, args, err := buildPage(domain.PageQuery{Kind: domain.KindExplore, Fetch: 11})
	if err != nil {
		t.Fatalf("buildPage: %v", err)
	}
	if strings.Contains(sql, "follows") || strings.Contains(sql, "\nwhere") {
		t.Fatalf("explore must not filter: %s", sql)
	}
	testkit.MustContain(t, sql, "order by p.created_at desc, p.id desc\nlimit $1")
	if len(args) != 1 || args[0] != 11 {
		t.Fatalf("args = %v", args)
	}
}

func TestBuildPage_HomeAfterCursor(t *testing.T) {
	t.Parallel()

	ts := time.Date(2024, 5, 1, 12, 0, 0, 123000, time.UTC)
	sql, args, err := buildPage(domain.PageQuery{
		Kind:     domain.KindHome,
		ViewerID: 7,
		After:    &cursor.Cursor{ID: 42, CreatedAt: ts},
		Fetch:    3,
	})
	if err != nil {
		t.Fatalf("buildPage: %v", err)
	}
	testkit.MustContain(t, sql, "where p.author_id in (select f.following_id from follows f where f.follower_id = $1)")
	testkit.MustContain(t, sql, "and (p.created_at, p.id) < ($2, $3)")
	testkit.MustContain(t, sql, "limit $4")
	if len(args) != 4 || args[0] != int64(7) || !args[1].(time.Time).Equal(ts) || args[2] != int64(42) || args[3] != 3 {
		t.Fatalf("args = %v", args)
	}
}

func TestBuildPage_ExploreAfterCursor(t *testing.T) {
	t.Parallel()

	sql, args, err := buildPage(domain.PageQuery{
		Kind:  domain.KindExplore,
		After: &cursor.Cursor{ID: 9, CreatedAt: time.Unix(100, 0)},
		Fetch: 2,
	})
	if err != nil {
		t.Fatalf("buildPage: %v", err)
	}
	testkit.MustContain(t, sql, "where (p.created_at, p.id) < ($1, $2)")
	if len(args) != 3 {
		t.Fatalf("args = %v", args)
	}
}

func TestBuildPage_Rejects(t *testing.T) {
	t.Parallel()

	if _, _, err := buildPage(domain.PageQuery{Kind: domain.KindHome, Fetch: 2}); !errors.Is(err, ErrNoViewer) {
		t.Fatalf("home without viewer: %v", err)
	}
	if _, _, err := buildPage(domain.PageQuery{Kind: domain.KindExplore}); err == nil {
		t.Fatal("zero fetch accepted")
	}
	if _, _, err := buildPage(domain.PageQuery{Kind: "trending", Fetch: 2}); err == nil {
		t.Fatal("unknown kind accepted")
	}
}

func TestPage_ScansRows(t *testing.T) {
	t.Parallel()

	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	name := "Ada L."
	q := &storetest.Queryer{Handler: func(context.Context, string, []any) storetest.Result {
		return storetest.Result{Rows: [][]any{
			{int64(2), int64(7), "second", created, created, int64(7), "ada", &name, int64(3)},
			{int64(1), int64(8), "first", created, created, int64(8), "bob", nil, int64(0)},
		}}
	}}

	posts, err := NewPG().Bind(q).Page(context.Background(), domain.PageQuery{Kind: domain.KindExplore, Fetch: 5})
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("posts = %+v", posts)
	}
	p := posts[0]
	if p.ID != 2 || p.AuthorID != 7 || p.Content != "second" || !p.CreatedAt.Equal(created) ||
		p.Author.Username != "ada" || p.Author.DisplayName == nil || *p.Author.DisplayName != "Ada L." || p.LikesCount != 3 {
		t.Fatalf("first row scanned as %+v", p)
	}
	if posts[1].Author.DisplayName != nil {
		t.Fatalf("null display name scanned as %v", *posts[1].Author.DisplayName)
	}
}

func TestPage_EmptyIsNotNil(t *testing.T) {
	t.Parallel()

	q := &storetest.Queryer{}
	posts, err := NewPG().Bind(q).Page(context.Background(), domain.PageQuery{Kind: domain.KindExplore, Fetch: 5})
	if err != nil || posts == nil || len(posts) != 0 {
		t.Fatalf("Page = %v, %v", posts, err)
	}
}

func TestPage_BuildErrorSkipsStore(t *testing.T) {
	t.Parallel()

	q := &storetest.Queryer{}
	if _, err := NewPG().Bind(q).Page(context.Background(), domain.PageQuery{Kind: domain.KindHome, Fetch: 5}); err == nil {
		t.Fatal("want error")
	}
	if len(q.Calls()) != 0 {
		t.Fatal("statement issued for an invalid page query")
	}
}
