package main

import (
	"net/http"

	mw "github.com/agonglab/ssgs-web/internal/middleware"
	"github.com/agonglab/ssgs-web/internal/wizard"
)

// SNSTestHandler runs the simulated SNS test. The first visit starts the
// upload and shows progress; once the run settles the results render.
func SNSTestHandler(w http.ResponseWriter, r *http.Request) {
	sess := mw.GetSession(r)
	b := flow.Bundle(sess.ID())
	if b.Idea == nil {
		http.Redirect(w, r, "/idea-input", http.StatusSeeOther)
		return
	}
	if b.AIContent == nil {
		http.Redirect(w, r, "/ai-content-loading", http.StatusSeeOther)
		return
	}

	if b.Upload == nil {
		if err := flow.StartUpload(sess.ID()); err != nil {
			http.Redirect(w, r, "/ai-content-loading", http.StatusSeeOther)
			return
		}
		vm := basePage(r, "SNS 테스트 중", 4)
		vm.Loading = &LoadingView{
			Heading:   "SNS 게시물을 업로드하고 있습니다",
			Sub:       "게시물을 올리고 댓글 반응을 수집하는 중입니다.",
			StatusURL: "/sns-test-results/status",
		}
		renderPage(w, r, "loading", vm)
		return
	}

	vm := basePage(r, "SNS 테스트 결과", 4)
	vm.SNS = buildSNSView(b.AIContent, b.Upload)
	renderPage(w, r, "sns_test_results", vm)
}

// SNSStatusFrag answers the HTMX progress poll while the upload runs.
func SNSStatusFrag(w http.ResponseWriter, r *http.Request) {
	sess := mw.GetSession(r)
	p := flow.Progress(sess.ID(), wizard.StepUpload)
	runStatusFrag(w, r, p, "/sns-test-results", "")
}
