package main

import (
	"net/http"
	"strings"

	mw "github.com/agonglab/ssgs-web/internal/middleware"
	"github.com/agonglab/ssgs-web/internal/wizard"
)

// AIContentLoadingHandler shows the generation progress page, starting the
// run if needed.
func AIContentLoadingHandler(w http.ResponseWriter, r *http.Request) {
	sess := mw.GetSession(r)
	b := flow.Bundle(sess.ID())
	if b.Idea == nil {
		http.Redirect(w, r, "/idea-input", http.StatusSeeOther)
		return
	}
	if b.Analysis == nil {
		http.Redirect(w, r, "/analysis-loading", http.StatusSeeOther)
		return
	}
	if b.AIContent != nil {
		http.Redirect(w, r, "/ai-content-results", http.StatusSeeOther)
		return
	}
	if err := flow.StartAIContent(sess.ID()); err != nil {
		http.Redirect(w, r, "/analysis-loading", http.StatusSeeOther)
		return
	}

	vm := basePage(r, "AI 콘텐츠 생성 중", 3)
	vm.Loading = &LoadingView{
		Heading:   "AI가 홍보 콘텐츠를 만들고 있습니다",
		Sub:       "아이디어에 맞춘 홍보문구와 이미지를 생성하는 중입니다.",
		StatusURL: "/ai-content-loading/status",
		RetryURL:  "/ai-content-loading/retry",
	}
	renderPage(w, r, "loading", vm)
}

// AIContentStatusFrag answers the HTMX progress poll.
func AIContentStatusFrag(w http.ResponseWriter, r *http.Request) {
	sess := mw.GetSession(r)
	p := flow.Progress(sess.ID(), wizard.StepAIContent)
	runStatusFrag(w, r, p, "/ai-content-results", "/ai-content-loading/retry")
}

// AIContentRetryHandler regenerates the content, typically after a degraded
// placeholder result.
func AIContentRetryHandler(w http.ResponseWriter, r *http.Request) {
	sess := mw.GetSession(r)
	if err := flow.Retry(sess.ID(), wizard.StepAIContent); err != nil {
		hxRedirect(w, r, "/analysis-loading")
		return
	}
	hxRedirect(w, r, "/ai-content-loading")
}

// AIContentResultsHandler renders the generated promotion for review and
// editing.
func AIContentResultsHandler(w http.ResponseWriter, r *http.Request) {
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

	vm := basePage(r, "AI 콘텐츠", 3)
	vm.Content = buildContentView(b.AIContent)
	renderPage(w, r, "ai_content_results", vm)
}

// PromotionEditHandler saves the user's edited promotion text back into the
// wizard context before the SNS test uses it.
func PromotionEditHandler(w http.ResponseWriter, r *http.Request) {
	sess := mw.GetSession(r)
	b := flow.Bundle(sess.ID())
	if b.AIContent == nil {
		hxRedirect(w, r, "/ai-content-loading")
		return
	}
	text := strings.TrimSpace(r.PostFormValue("promotion"))
	if text == "" {
		vm := buildContentView(b.AIContent)
		vm.EditError = "홍보문구를 입력해주세요"
		renderTemplate(w, r, "frag_promotion_editor", vm)
		return
	}
	flow.EditPromotion(sess.ID(), text)

	b = flow.Bundle(sess.ID())
	renderTemplate(w, r, "frag_promotion_editor", buildContentView(b.AIContent))
}
