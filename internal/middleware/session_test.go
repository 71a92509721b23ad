package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/agonglab/ssgs-web/internal/session"
)

func TestSession_ExpiredCookieCleared(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	mgr, err := session.NewManager(session.Config{
		CookieName:  "test_session",
		HashKey:     []byte("12345678901234567890123456789012"),
		IdleTimeout: 10 * time.Minute,
		Lifetime:    2 * time.Hour,
		Now:         func() time.Time { return now },
	})
	if err != nil {
		t.Fatalf("NewManager error: %v", err)
	}

	sess := mgr.New()
	rec := httptest.NewRecorder()
	if err := mgr.Save(rec, sess); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	var stored *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "test_session" {
			stored = c
		}
	}
	if stored == nil {
		t.Fatalf("expected session cookie to be set")
	}

	now = now.Add(20 * time.Minute)

	var gotID string
	h := Session(mgr, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = GetSession(r).ID()
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(stored)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if gotID == "" || gotID == sess.ID() {
		t.Fatalf("expected a fresh session behind an expired cookie, got %q", gotID)
	}
	cleared := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == "test_session" && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatalf("expected the stale session cookie to be cleared")
	}
}
