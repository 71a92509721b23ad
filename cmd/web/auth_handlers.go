package main

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	mw "github.com/agonglab/ssgs-web/internal/middleware"
)

// LoginHandler renders the login page. A logged-in visitor is revalidated
// against the backend and sent straight to the wizard.
func LoginHandler(w http.ResponseWriter, r *http.Request) {
	sess := mw.GetSession(r)
	if sess.LoggedIn() {
		if fresh, err := authSvc.Validate(r.Context(), sess.User()); err == nil {
			sess.SetUser(fresh)
			http.Redirect(w, r, "/idea-input", http.StatusSeeOther)
			return
		}
		// Stale login: drop it and show the form again.
		flow.Drop(sess.ID())
		sess.SetUser(nil)
	}
	renderLoginPage(w, r, "")
}

// GoogleLoginHandler exchanges the Google ID token for a backend login.
func GoogleLoginHandler(w http.ResponseWriter, r *http.Request) {
	credential := strings.TrimSpace(r.PostFormValue("credential"))
	if credential == "" {
		renderLoginPage(w, r, "구글 인증 정보가 없습니다. 다시 시도해주세요.")
		return
	}
	user, err := authSvc.Login(r.Context(), credential)
	if err != nil {
		logger.Warn("google login failed", zap.Error(err))
		renderLoginPage(w, r, "구글 로그인에 실패했습니다. 다시 시도해주세요.")
		return
	}
	mw.GetSession(r).SetUser(user)
	http.Redirect(w, r, "/idea-input", http.StatusSeeOther)
}

// DemoLoginHandler starts a local demo session without touching the backend.
func DemoLoginHandler(w http.ResponseWriter, r *http.Request) {
	mw.GetSession(r).SetUser(authSvc.DemoLogin())
	http.Redirect(w, r, "/idea-input", http.StatusSeeOther)
}

// LogoutHandler ends the session. The backend call is best effort; local
// state is cleared regardless.
func LogoutHandler(w http.ResponseWriter, r *http.Request) {
	sess := mw.GetSession(r)
	if sess.LoggedIn() {
		authSvc.Logout(r.Context())
	}
	flow.Drop(sess.ID())
	sess.Destroy()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func renderLoginPage(w http.ResponseWriter, r *http.Request, errMsg string) {
	vm := basePage(r, "로그인", 0)
	vm.Login = buildLoginView(cfg.GoogleClientID, errMsg)
	renderPage(w, r, "login", vm)
}
