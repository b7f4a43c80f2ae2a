// Package auth supplies bearer tokens for requests to the video search
// backend. Session management itself lives outside this client; callers only
// need something that can produce the current short-lived token on demand.
package auth

import (
	"context"
	"os"
	"strings"
)

// TokenSource yields the current bearer token. An empty token with a nil
// error means the caller should proceed unauthenticated.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// TokenSourceFunc adapts a function into a TokenSource.
type TokenSourceFunc func(ctx context.Context) (string, error)

func (f TokenSourceFunc) Token(ctx context.Context) (string, error) { return f(ctx) }

// Static returns a TokenSource that always yields the given token.
func Static(token string) TokenSource {
	return TokenSourceFunc(func(context.Context) (string, error) {
		return token, nil
	})
}

// None returns a TokenSource for unauthenticated use.
func None() TokenSource { return Static("") }

// FromEnv reads the token from the named environment variable on every call,
// so a token refreshed by an external process is picked up without a restart.
func FromEnv(key string) TokenSource {
	return TokenSourceFunc(func(context.Context) (string, error) {
		return strings.TrimSpace(os.Getenv(key)), nil
	})
}
