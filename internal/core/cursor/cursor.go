// Package cursor encodes feed positions into opaque page tokens.
//
// A token names a place in the feed order (created_at desc, id desc), never an
// offset, so pages stay stable while posts are inserted or deleted upstream.
// The position is carried in the clear; a Codec with a secret appends a
// truncated HMAC so clients cannot forge positions, but nothing is encrypted.
package cursor

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	perr "socialfeed/internal/platform/errors"
)

// ErrMalformed is returned (wrapped) for any token Decode cannot accept
var ErrMalformed = errors.New("malformed cursor")

// tagLen is the number of HMAC bytes kept on signed tokens
const tagLen = 16

// Cursor is the last visible post of a page
type Cursor struct {
	ID        int64
	CreatedAt time.Time
}

// wire is the payload layout; field names are part of the token format
type wire struct {
	ID        *int64  `json:"id"`
	CreatedAt *string `json:"createdAt"`
}

var b64 = base64.RawURLEncoding

// Codec turns cursors into tokens and back. The zero value is an unsigned codec
type Codec struct {
	secret []byte
}

// New returns a Codec; an empty secret disables the integrity tag
func New(secret []byte) Codec {
	if len(secret) == 0 {
		return Codec{}
	}
	return Codec{secret: append([]byte(nil), secret...)}
}

// Signed reports whether tokens carry an integrity tag
func (c Codec) Signed() bool { return len(c.secret) > 0 }

// Encode serializes a position. Equal inputs always give the same token
func (c Codec) Encode(id int64, createdAt time.Time) string {
	payload := canonical(id, createdAt)
	if !c.Signed() {
		return payload
	}
	return payload + "." + b64.EncodeToString(c.tag(payload))
}

// Decode parses a token produced by Encode. Every failure wraps ErrMalformed
func (c Codec) Decode(token string) (Cursor, error) {
	payload := token
	if c.Signed() {
		p, sig, ok := strings.Cut(token, ".")
		if !ok {
			return Cursor{}, malformed("missing integrity tag")
		}
		got, err := b64.DecodeString(sig)
		if err != nil || !hmac.Equal(got, c.tag(p)) {
			return Cursor{}, malformed("integrity tag mismatch")
		}
		payload = p
	}

	raw, err := b64.DecodeString(payload)
	if err != nil {
		return Cursor{}, malformed("not base64url")
	}

	var w wire
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&w); err != nil {
		return Cursor{}, malformed("bad payload")
	}
	if dec.More() {
		return Cursor{}, malformed("trailing data")
	}
	if w.ID == nil || *w.ID <= 0 {
		return Cursor{}, malformed("id must be a positive integer")
	}
	if w.CreatedAt == nil {
		return Cursor{}, malformed("missing createdAt")
	}
	ts, err := time.Parse(time.RFC3339Nano, *w.CreatedAt)
	if err != nil || ts.IsZero() {
		return Cursor{}, malformed("createdAt is not a timestamp")
	}
	// only the exact bytes Encode emits are accepted
	if canonical(*w.ID, ts) != payload {
		return Cursor{}, malformed("not in canonical form")
	}
	return Cursor{ID: *w.ID, CreatedAt: ts.UTC()}, nil
}

func canonical(id int64, createdAt time.Time) string {
	ts := createdAt.UTC().Format(time.RFC3339Nano)
	raw, _ := json.Marshal(wire{ID: &id, CreatedAt: &ts})
	return b64.EncodeToString(raw)
}

// Validate is the request-boundary check. An empty token means the first page
// and yields (nil, nil); a bad token becomes a validation error on "cursor"
// that still matches ErrMalformed
func (c Codec) Validate(token string) (*Cursor, error) {
	if token == "" {
		return nil, nil
	}
	cur, err := c.Decode(token)
	if err != nil {
		return nil, perr.WithField(perr.Wrap(err, perr.ErrorCodeValidation, "malformed cursor"), "cursor")
	}
	return &cur, nil
}

func (c Codec) tag(payload string) []byte {
	m := hmac.New(sha256.New, c.secret)
	m.Write([]byte(payload))
	return m.Sum(nil)[:tagLen]
}

func malformed(reason string) error {
	return fmt.Errorf("%w: %s", ErrMalformed, reason)
}

var std Codec

// Encode uses the unsigned default codec
func Encode(id int64, createdAt time.Time) string { return std.Encode(id, createdAt) }

// Decode uses the unsigned default codec
func Decode(token string) (Cursor, error) { return std.Decode(token) }

// Validate uses the unsigned default codec
func Validate(token string) (*Cursor, error) { return std.Validate(token) }
