package module

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"socialfeed/internal/modkit"
	phttp "socialfeed/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

func TestModule_MountsMeta(t *testing.T) {
	t.Parallel()

	m := New(modkit.Deps{})
	if m.Name() != "meta" || m.Prefix() != "/meta" || m.Ports() != nil {
		t.Fatalf("metadata = %q %q %v", m.Name(), m.Prefix(), m.Ports())
	}

	mux := chi.NewMux()
	m.MountRoutes(phttp.AdaptChi(mux))
	for _, path := range []string{"/meta/health", "/meta/ready", "/meta/version"} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: status %d", path, rec.Code)
		}
	}
}
