package repo

import (
	"context"
	"strings"
	"testing"

	"socialfeed/internal/platform/store/storetest"
)

func TestLikedAmong_QueryShape(t *testing.T) {
	t.Parallel()

	q := &storetest.Queryer{Handler: func(context.Context, string, []any) storetest.Result {
		return storetest.Result{Rows: [][]any{{int64(5)}}}
	}}
	ids, err := NewPG().Bind(q).LikedAmong(context.Background(), 9, []int64{5, 6})
	if err != nil {
		t.Fatalf("LikedAmong: %v", err)
	}
	if len(ids) != 1 || ids[0] != 5 {
		t.Fatalf("ids = %v", ids)
	}

	c := q.Calls()[0]
	if !strings.Contains(c.SQL, "post_id = any($2)") || !strings.Contains(c.SQL, "user_id = $1") {
		t.Fatalf("unexpected sql %q", c.SQL)
	}
	if got, ok := c.Args[1].([]int64); !ok || len(got) != 2 {
		t.Fatalf("ids should be passed as one array arg, got %#v", c.Args[1])
	}
}
