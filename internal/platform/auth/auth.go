// Package auth verifies HS256 bearer tokens issued by the account service.
// Issuing tokens is not this service's job
package auth

import (
	"errors"
	"math"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoSubject is returned when a valid token names no user
var ErrNoSubject = errors.New("token names no user")

// Options configures a Verifier
type Options struct {
	// Secret is the shared HS256 key; required
	Secret []byte
	// Issuer, when set, must match the iss claim
	Issuer string
	// Leeway tolerates clock skew on exp, nbf and iat
	Leeway time.Duration
}

// Verifier checks signatures and expiry, then extracts the user id
type Verifier struct {
	secret []byte
	parser *jwt.Parser
}

// NewVerifier builds a Verifier. An empty secret is a configuration error
func NewVerifier(o Options) (*Verifier, error) {
	if len(o.Secret) == 0 {
		return nil, errors.New("auth: empty secret")
	}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(o.Leeway),
		jwt.WithIssuedAt(),
	}
	if o.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(o.Issuer))
	}
	return &Verifier{
		secret: append([]byte(nil), o.Secret...),
		parser: jwt.NewParser(opts...),
	}, nil
}

// Verify returns the user id carried by token. The userId claim wins; sub is the fallback
func (v *Verifier) Verify(token string) (string, error) {
	claims := jwt.MapClaims{}
	if _, err := v.parser.ParseWithClaims(token, claims, v.key); err != nil {
		return "", err
	}
	if uid, ok := userID(claims["userId"]); ok {
		return uid, nil
	}
	if uid, ok := userID(claims["sub"]); ok {
		return uid, nil
	}
	return "", ErrNoSubject
}

// TokenFunc adapts Verify to the shape httpkit.NewPortFunc expects
func (v *Verifier) TokenFunc() func(string) (string, error) { return v.Verify }

func (v *Verifier) key(*jwt.Token) (any, error) { return v.secret, nil }

// userID accepts positive integers encoded as JSON numbers or decimal strings
func userID(c any) (string, bool) {
	switch x := c.(type) {
	case float64:
		if x <= 0 || x != math.Trunc(x) || x > math.MaxInt64 {
			return "", false
		}
		return strconv.FormatInt(int64(x), 10), true
	case string:
		n, err := strconv.ParseInt(x, 10, 64)
		if err != nil || n <= 0 {
			return "", false
		}
		return strconv.FormatInt(n, 10), true
	}
	return "", false
}
