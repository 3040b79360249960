package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"socialfeed/internal/core/cursor"
	"socialfeed/internal/platform/store/storetest"
	"socialfeed/internal/services/api/feed/repo"
	engrepo "socialfeed/internal/services/engagement/repo"
	engsvc "socialfeed/internal/services/engagement/service"
)

// world answers the two feed statements from in-memory tables, the way postgres would
type world struct {
	mu      sync.Mutex
	posts   []worldPost
	follows map[int64][]int64
	likes   map[[2]int64]bool

	pageErr  error
	likesErr error
}

type worldPost struct {
	id, author int64
	at         time.Time
}

func newWorld() *world {
	return &world{follows: map[int64][]int64{}, likes: map[[2]int64]bool{}}
}

func at(sec int64) time.Time { return time.Unix(sec, 0).UTC() }

func (w *world) post(id, author, sec int64) *world {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.posts = append(w.posts, worldPost{id: id, author: author, at: at(sec)})
	return w
}

func (w *world) follow(follower int64, following ...int64) *world {
	w.follows[follower] = append(w.follows[follower], following...)
	return w
}

func (w *world) like(user int64, posts ...int64) *world {
	for _, p := range posts {
		w.likes[[2]int64{user, p}] = true
	}
	return w
}

func (w *world) handler(ctx context.Context, sql string, args []any) storetest.Result {
	w.mu.Lock()
	defer w.mu.Unlock()
	switch {
	case strings.Contains(sql, "from posts p"):
		if w.pageErr != nil {
			return storetest.Result{Err: w.pageErr}
		}
		return storetest.Result{Rows: w.page(sql, args)}
	case strings.Contains(sql, "from likes"):
		if w.likesErr != nil {
			return storetest.Result{Err: w.likesErr}
		}
		return storetest.Result{Rows: w.liked(args[0].(int64), args[1].([]int64))}
	}
	return storetest.Result{Err: fmt.Errorf("world: unexpected statement %q", sql)}
}

func (w *world) page(sql string, args []any) [][]any {
	i := 0
	var authors map[int64]bool
	if strings.Contains(sql, "follows") {
		authors = map[int64]bool{}
		for _, a := range w.follows[args[0].(int64)] {
			authors[a] = true
		}
		i++
	}
	var after *cursor.Cursor
	if strings.Contains(sql, "(p.created_at, p.id) <") {
		after = &cursor.Cursor{CreatedAt: args[i].(time.Time), ID: args[i+1].(int64)}
		i += 2
	}
	fetch := args[i].(int)

	var cand []worldPost
	for _, p := range w.posts {
		if authors != nil && !authors[p.author] {
			continue
		}
		if after != nil && !before(p, *after) {
			continue
		}
		cand = append(cand, p)
	}
	sort.Slice(cand, func(a, b int) bool {
		if !cand[a].at.Equal(cand[b].at) {
			return cand[a].at.After(cand[b].at)
		}
		return cand[a].id > cand[b].id
	})
	if len(cand) > fetch {
		cand = cand[:fetch]
	}

	rows := make([][]any, 0, len(cand))
	for _, p := range cand {
		var n int64
		for k := range w.likes {
			if k[1] == p.id {
				n++
			}
		}
		rows = append(rows, []any{
			p.id, p.author, fmt.Sprintf("post %d", p.id), p.at, p.at,
			p.author, fmt.Sprintf("user%d", p.author), nil, n,
		})
	}
	return rows
}

// before reports whether p sorts strictly after the boundary in the descending order
func before(p worldPost, c cursor.Cursor) bool {
	return p.at.Before(c.CreatedAt) || (p.at.Equal(c.CreatedAt) && p.id < c.ID)
}

func (w *world) liked(user int64, ids []int64) [][]any {
	var rows [][]any
	for _, id := range ids {
		if w.likes[[2]int64{user, id}] {
			rows = append(rows, []any{id})
		}
	}
	return rows
}

func newSvc(w *world) (*Svc, *storetest.Runner) {
	r := &storetest.Runner{Queryer: storetest.Queryer{Handler: w.handler}}
	return New(r, repo.NewPG(), engsvc.Binder(engrepo.NewPG()), cursor.Codec{}), r
}
