package httpkit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	phttp "socialfeed/internal/platform/net/http"
	"socialfeed/internal/platform/testkit"

	"github.com/go-chi/chi/v5"
)

func TestMountAPIV1_PrefixAndMiddleware(t *testing.T) {
	t.Parallel()

	mux := chi.NewMux()
	r := phttp.AdaptChi(mux)

	tagged := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Scope", "v1")
			next.ServeHTTP(w, r)
		})
	}
	MountAPIV1(r, []func(http.Handler) http.Handler{tagged}, func(api Router) {
		MountUnder(api, "/feed", nil, func(fr Router) {
			Get(fr, "/ping", func(*http.Request) (any, error) { return map[string]string{"pong": "1"}, nil })
		})
	})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/feed/ping", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Header().Get("X-Scope") != "v1" {
		t.Fatalf("scope middleware not applied")
	}
	testkit.MustContain(t, rec.Body.String(), `"pong":"1"`)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/feed/ping", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unversioned path should 404, got %d", rec.Code)
	}
}

func TestCall(t *testing.T) {
	t.Parallel()

	run := func(h Handler) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		return rec
	}

	if rec := run(Call(func(*http.Request) (any, error) { return NoContent(), nil })); rec.Code != http.StatusNoContent {
		t.Fatalf("Response passthrough: %d", rec.Code)
	}
	if rec := run(Call(func(*http.Request) (any, error) { return nil, errNope })); rec.Code != http.StatusInternalServerError {
		t.Fatalf("error path: %d", rec.Code)
	}
}
