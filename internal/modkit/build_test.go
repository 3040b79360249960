package modkit

import (
	"net/http"
	"reflect"
	"testing"

	"socialfeed/internal/modkit/httpkit"
)

func TestBuild_Defaults(t *testing.T) {
	t.Parallel()

	b := Build()
	if b.Name != "" || b.Prefix != "" || b.Ports != nil || len(b.Mw) != 0 {
		t.Fatalf("unexpected defaults: %+v", b)
	}

	var r httpkit.Router
	defer func() {
		if v := recover(); v != nil {
			t.Fatalf("default Register panicked: %v", v)
		}
	}()
	b.Register(r)
}

func TestBuild_WithOptionsAndCopySemantics(t *testing.T) {
	t.Parallel()

	fnPtr := func(f func(http.Handler) http.Handler) uintptr {
		return reflect.ValueOf(f).Pointer()
	}

	mwA := func(next http.Handler) http.Handler { return next }
	mwB := func(next http.Handler) http.Handler { return next }
	mid := []func(http.Handler) http.Handler{mwA, mwB}

	type ports struct{ X int }
	regCalled := 0

	b := Build(
		WithName("feed"),
		WithPrefix("/feed"),
		WithName("feed2"),
		WithMiddlewares(mid...),
		WithPorts(ports{X: 7}),
		WithRegister(func(httpkit.Router) { regCalled++ }),
	)

	if b.Name != "feed2" {
		t.Fatalf("later option should win, Name = %q", b.Name)
	}
	if b.Prefix != "/feed" {
		t.Fatalf("Prefix = %q", b.Prefix)
	}
	if got, ok := b.Ports.(ports); !ok || got.X != 7 {
		t.Fatalf("Ports mismatch")
	}

	mid[0] = func(next http.Handler) http.Handler { return next }
	if len(b.Mw) != 2 || fnPtr(b.Mw[0]) != fnPtr(mwA) || fnPtr(b.Mw[1]) != fnPtr(mwB) {
		t.Fatalf("Built.Mw should be an ordered copy")
	}

	b.Register(nil)
	if regCalled != 1 {
		t.Fatalf("Register called %d times", regCalled)
	}
}
