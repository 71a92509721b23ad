package main

import (
	"net/http"

	mw "github.com/agonglab/ssgs-web/internal/middleware"
)

// HomeHandler renders the landing page.
func HomeHandler(w http.ResponseWriter, r *http.Request) {
	vm := basePage(r, "AI 창업 아이디어 검증", 0)
	vm.Home = buildHomeView(mw.CurrentUser(r) != nil)
	renderPage(w, r, "home", vm)
}
