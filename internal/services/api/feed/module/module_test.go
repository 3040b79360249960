package module

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"socialfeed/internal/core/viewer"
	"socialfeed/internal/modkit"
	"socialfeed/internal/modkit/httpkit"
	"socialfeed/internal/modkit/module"
	"socialfeed/internal/modkit/repokit"
	phttp "socialfeed/internal/platform/net/http"
	"socialfeed/internal/platform/store/storetest"
	"socialfeed/internal/platform/testkit"
	"socialfeed/internal/services/api/feed/domain"
	engdomain "socialfeed/internal/services/engagement/domain"
	engmodule "socialfeed/internal/services/engagement/module"

	"github.com/go-chi/chi/v5"
)

func onePost(context.Context, string, []any) storetest.Result {
	ts := time.Unix(100, 0).UTC()
	return storetest.Result{Rows: [][]any{{int64(1), int64(2), "hi", ts, ts, int64(2), "ada", nil, int64(0)}}}
}

func newFeed(t *testing.T) (*Module, *storetest.Runner) {
	t.Helper()
	r := &storetest.Runner{Queryer: storetest.Queryer{Handler: onePost}}
	deps := modkit.Deps{PG: r}
	likes := module.MustPortsOf[repokit.Binder[engdomain.ResolverPort]](engmodule.New(deps))
	return New(deps, modkit.WithPorts(likes)), r
}

func TestNew_RequiresLikesPort(t *testing.T) {
	t.Parallel()
	testkit.MustPanic(t, func() { New(modkit.Deps{PG: &storetest.Runner{}}) })
}

func TestModule_Metadata(t *testing.T) {
	t.Parallel()
	m, _ := newFeed(t)
	if m.Name() != "feed" || m.Prefix() != "/feed" {
		t.Fatalf("metadata = %q %q", m.Name(), m.Prefix())
	}
}

func TestModule_PortServesExplore(t *testing.T) {
	t.Parallel()
	m, r := newFeed(t)

	svc := module.MustPortsOf[domain.ServicePort](m)
	page, err := svc.Explore(context.Background(), viewer.Anonymous(), domain.FeedQuery{Limit: 5})
	if err != nil || len(page.Posts) != 1 || page.HasMore {
		t.Fatalf("Explore = %+v, %v", page, err)
	}
	if r.ReadTxCount() != 1 {
		t.Fatalf("snapshots = %d", r.ReadTxCount())
	}
}

func TestModule_MountsUnderPrefix(t *testing.T) {
	t.Parallel()
	m, _ := newFeed(t)

	mux := chi.NewMux()
	m.MountRoutes(phttp.AdaptChi(mux))

	for path, want := range map[string]int{
		"/feed/explore": http.StatusOK,
		"/feed/home":    http.StatusUnauthorized,
	} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != want {
			t.Fatalf("%s: status %d, want %d", path, rec.Code, want)
		}
	}
}

func TestModule_ExtraRegisterAndMiddleware(t *testing.T) {
	t.Parallel()
	r := &storetest.Runner{}
	deps := modkit.Deps{PG: r}
	likes := module.MustPortsOf[repokit.Binder[engdomain.ResolverPort]](engmodule.New(deps))
	tag := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("X-Feed", "1")
			next.ServeHTTP(w, req)
		})
	}
	m := New(deps,
		modkit.WithPorts(likes),
		modkit.WithPrefix("/v2feed"),
		modkit.WithMiddlewares(tag),
		modkit.WithRegister(func(rr httpkit.Router) {
			rr.Get("/ping", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusTeapot) })
		}),
	)

	mux := chi.NewMux()
	m.MountRoutes(phttp.AdaptChi(mux))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v2feed/ping", nil))
	if rec.Code != http.StatusTeapot || rec.Header().Get("X-Feed") != "1" {
		t.Fatalf("status %d headers %v", rec.Code, rec.Header())
	}
}
