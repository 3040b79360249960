package cursor

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"

	perr "socialfeed/internal/platform/errors"
)

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	ny, _ := time.LoadLocation("America/New_York")
	cases := []struct {
		id int64
		ts time.Time
	}{
		{1, time.Unix(0, 1).UTC()},
		{42, time.Date(2024, 3, 9, 12, 30, 0, 0, time.UTC)},
		{9_007_199_254_740_993, time.Date(2025, 1, 2, 3, 4, 5, 123456000, time.UTC)},
		{7, time.Date(2023, 11, 5, 1, 59, 59, 999999999, ny)},
	}
	for _, codec := range []Codec{{}, New([]byte("s3cret"))} {
		for _, c := range cases {
			tok := codec.Encode(c.id, c.ts)
			got, err := codec.Decode(tok)
			if err != nil {
				t.Fatalf("signed=%v decode(%q): %v", codec.Signed(), tok, err)
			}
			if got.ID != c.id || !got.CreatedAt.Equal(c.ts) {
				t.Fatalf("round trip (%d, %v) -> (%d, %v)", c.id, c.ts, got.ID, got.CreatedAt)
			}
			if tok != codec.Encode(c.id, c.ts) {
				t.Fatalf("encode is not deterministic")
			}
		}
	}
}

func TestEncode_OpaqueURLSafe(t *testing.T) {
	t.Parallel()

	tok := Encode(5, time.Now())
	if strings.ContainsAny(tok, "+/=?&") {
		t.Fatalf("token not query-safe: %q", tok)
	}
	if strings.Contains(tok, "createdAt") {
		t.Fatalf("token should not be plain text: %q", tok)
	}
}

func enc(s string) string { return base64.RawURLEncoding.EncodeToString([]byte(s)) }

func TestDecode_Malformed(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"garbage":        "not a cursor!",
		"std base64":     base64.StdEncoding.EncodeToString([]byte(`{"id":1,"createdAt":"2024-01-01T00:00:00Z"}`)),
		"not json":       enc("hello"),
		"array":          enc(`[1,"2024-01-01T00:00:00Z"]`),
		"missing id":     enc(`{"createdAt":"2024-01-01T00:00:00Z"}`),
		"zero id":        enc(`{"id":0,"createdAt":"2024-01-01T00:00:00Z"}`),
		"negative id":    enc(`{"id":-3,"createdAt":"2024-01-01T00:00:00Z"}`),
		"fractional id":  enc(`{"id":1.5,"createdAt":"2024-01-01T00:00:00Z"}`),
		"string id":      enc(`{"id":"1","createdAt":"2024-01-01T00:00:00Z"}`),
		"missing time":   enc(`{"id":1}`),
		"bad time":       enc(`{"id":1,"createdAt":"yesterday"}`),
		"zero time":      enc(`{"id":1,"createdAt":"0001-01-01T00:00:00Z"}`),
		"extra field":    enc(`{"id":1,"createdAt":"2024-01-01T00:00:00Z","page":2}`),
		"trailing value": enc(`{"id":1,"createdAt":"2024-01-01T00:00:00Z"}{}`),
		"page number":    enc(`2`),
		"upper keys":     enc(`{"ID":5,"CREATEDAT":"2024-01-01T00:00:00Z"}`),
		"offset time":    enc(`{"id":5,"createdAt":"2024-01-01T00:00:00+05:00"}`),
		"duplicate id":   enc(`{"id":5,"id":6,"createdAt":"2024-01-01T00:00:00Z"}`),
		"reordered keys": enc(`{"createdAt":"2024-01-01T00:00:00Z","id":5}`),
		"padded nanos":   enc(`{"id":5,"createdAt":"2024-01-01T00:00:00.500000000Z"}`),
		"spaced json":    enc(`{"id": 5, "createdAt": "2024-01-01T00:00:00Z"}`),
	}
	for name, tok := range cases {
		if _, err := Decode(tok); !errors.Is(err, ErrMalformed) {
			t.Fatalf("%s: want ErrMalformed, got %v", name, err)
		}
	}
}

func TestDecode_Signed(t *testing.T) {
	t.Parallel()

	signed := New([]byte("k1"))
	ts := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	tok := signed.Encode(10, ts)

	payload, _, _ := strings.Cut(tok, ".")
	forged := Encode(9, ts)

	cases := map[string]string{
		"unsigned token":  payload,
		"other key":       New([]byte("k2")).Encode(10, ts),
		"swapped payload": forged + tok[len(payload):],
		"bad tag b64":     payload + ".!!",
	}
	for name, bad := range cases {
		if _, err := signed.Decode(bad); !errors.Is(err, ErrMalformed) {
			t.Fatalf("%s: want ErrMalformed, got %v", name, err)
		}
	}

	if _, err := Decode(tok); !errors.Is(err, ErrMalformed) {
		t.Fatalf("unsigned codec should reject signed token, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	cur, err := Validate("")
	if cur != nil || err != nil {
		t.Fatalf("empty token = (%v, %v), want (nil, nil)", cur, err)
	}

	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cur, err = Validate(Encode(3, ts))
	if err != nil || cur == nil || cur.ID != 3 || !cur.CreatedAt.Equal(ts) {
		t.Fatalf("valid token = (%+v, %v)", cur, err)
	}

	_, err = Validate("%%%")
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("want ErrMalformed in chain, got %v", err)
	}
	e, ok := perr.As(err)
	if !ok || e.Code() != perr.ErrorCodeValidation || e.Field() != "cursor" {
		t.Fatalf("want validation error on cursor, got %#v", err)
	}
	if perr.HTTPStatus(err) != 400 {
		t.Fatalf("status = %d", perr.HTTPStatus(err))
	}
}
