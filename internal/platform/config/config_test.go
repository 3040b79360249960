package config

import (
	"testing"
	"time"

	kit "socialfeed/internal/platform/testkit"
)

func TestPrefixAndKey(t *testing.T) {
	api := New().Prefix("CORE_API_")
	if got := api.key("PORT"); got != "CORE_API_PORT" {
		t.Fatalf("key() = %q, want CORE_API_PORT", got)
	}
	if got := api.Prefix("JWT_").key("SECRET"); got != "CORE_API_JWT_SECRET" {
		t.Fatalf("nested key() = %q", got)
	}
}

func TestMustString(t *testing.T) {
	c := New().Prefix("CFGT_")
	t.Setenv("CFGT_DBURL", "  postgres://x ")
	if got := c.MustString("DBURL"); got != "postgres://x" {
		t.Fatalf("MustString = %q", got)
	}
	kit.MustPanic(t, func() { _ = c.MustString("MISSING") })
}

func TestMustSecret(t *testing.T) {
	c := New().Prefix("CFGT_")
	t.Setenv("CFGT_JWT_SECRET", "0123456789abcdef0123456789abcdef")
	if got := c.MustSecret("JWT_SECRET", 32); len(got) != 32 {
		t.Fatalf("MustSecret len = %d", len(got))
	}
	t.Setenv("CFGT_SHORT", "abc")
	kit.MustPanic(t, func() { _ = c.MustSecret("SHORT", 32) })
	kit.MustPanic(t, func() { _ = c.MustSecret("UNSET", 1) })
}

func TestMayValues(t *testing.T) {
	c := New().Prefix("CFGT_")

	if got := c.MayString("PORT", ":4000"); got != ":4000" {
		t.Fatalf("MayString default = %q", got)
	}

	t.Setenv("CFGT_MAX", "12")
	if got := c.MayInt("MAX", 4); got != 12 {
		t.Fatalf("MayInt = %d", got)
	}
	t.Setenv("CFGT_MAX", "lots")
	if got := c.MayInt("MAX", 4); got != 4 {
		t.Fatalf("MayInt invalid should default, got %d", got)
	}

	t.Setenv("CFGT_ON", "true")
	if !c.MayBool("ON", false) {
		t.Fatalf("MayBool expected true")
	}
	t.Setenv("CFGT_ON", "perhaps")
	if c.MayBool("ON", false) {
		t.Fatalf("MayBool invalid should default")
	}

	t.Setenv("CFGT_TIMEOUT", "250ms")
	if got := c.MayDuration("TIMEOUT", time.Second); got != 250*time.Millisecond {
		t.Fatalf("MayDuration = %v", got)
	}
	t.Setenv("CFGT_TIMEOUT", "soon")
	if got := c.MayDuration("TIMEOUT", time.Second); got != time.Second {
		t.Fatalf("MayDuration invalid should default, got %v", got)
	}
}

func TestMayCSV(t *testing.T) {
	c := New().Prefix("CFGT_")
	def := []string{"*"}

	t.Setenv("CFGT_ORIGINS", " https://a.example , ,https://b.example ")
	got := c.MayCSV("ORIGINS", def)
	if len(got) != 2 || got[0] != "https://a.example" || got[1] != "https://b.example" {
		t.Fatalf("MayCSV = %#v", got)
	}

	t.Setenv("CFGT_ORIGINS", " , ")
	if got := c.MayCSV("ORIGINS", def); len(got) != 1 || got[0] != "*" {
		t.Fatalf("MayCSV blanks should default, got %#v", got)
	}
}

func TestMayBytes(t *testing.T) {
	c := New().Prefix("CFGT_")
	if c.MayBytes("CURSOR_SECRET") != nil {
		t.Fatalf("unset secret should be nil")
	}
	t.Setenv("CFGT_CURSOR_SECRET", "k")
	if string(c.MayBytes("CURSOR_SECRET")) != "k" {
		t.Fatalf("MayBytes mismatch")
	}
}
