package middleware

import (
	"context"
	"net/http"

	"github.com/agonglab/ssgs-web/internal/session"
)

// context keys are unexported to avoid collisions
type ctxKey string

const (
	ctxKeySession ctxKey = "session"
	ctxKeyIsHTMX  ctxKey = "is_htmx"
)

// WithHTMX marks request as HTMX
func WithHTMX(ctx context.Context, is bool) context.Context {
	return context.WithValue(ctx, ctxKeyIsHTMX, is)
}

// IsHTMX returns whether this is an htmx request
func IsHTMX(ctx context.Context) bool {
	v, _ := ctx.Value(ctxKeyIsHTMX).(bool)
	return v
}

func withSession(ctx context.Context, s *session.Session) context.Context {
	return context.WithValue(ctx, ctxKeySession, s)
}

// GetSession returns the session attached by the Session middleware. Handlers
// behind the middleware always get a non-nil session.
func GetSession(r *http.Request) *session.Session {
	if v := r.Context().Value(ctxKeySession); v != nil {
		if s, ok := v.(*session.Session); ok {
			return s
		}
	}
	return nil
}

// CurrentUser returns the logged-in profile, or nil when anonymous.
func CurrentUser(r *http.Request) *session.User {
	s := GetSession(r)
	if s == nil {
		return nil
	}
	return s.User()
}
