package middleware

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/agonglab/ssgs-web/internal/session"
)

// Session loads (or initializes) the cookie session and stores it in request
// context. Changes made by handlers are written back just before the response
// commits; an expired session has its cookies cleared immediately, and corrupt
// cookies are replaced with a fresh anonymous session so the client heals on
// its next request.
func Session(mgr *session.Manager, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := mgr.Load(r)
			if err != nil {
				if errors.Is(err, session.ErrExpired) {
					mgr.Destroy(w)
				} else {
					log.Warn("session load", zap.Error(err))
				}
				sess = mgr.New()
			}

			ctx := withSession(r.Context(), sess)

			rw := NewResponseRecorder(w)
			rw.SetBeforeWrite(func(w http.ResponseWriter) {
				if sess.Dirty() {
					if err := mgr.Save(w, sess); err != nil {
						log.Error("session save", zap.Error(err))
					}
				}
			})
			next.ServeHTTP(rw, r.WithContext(ctx))

			// Nothing written (e.g. HEAD): persist the cookie now.
			if !rw.Wrote() && sess.Dirty() {
				if err := mgr.Save(w, sess); err != nil {
					log.Error("session save", zap.Error(err))
				}
			}
		})
	}
}
