package main

import (
	"net/http"

	mw "github.com/agonglab/ssgs-web/internal/middleware"
	"github.com/agonglab/ssgs-web/internal/wizard"
)

// AnalysisLoadingHandler shows the analysis progress page, starting the run
// if needed. Reloading the page never launches a second run.
func AnalysisLoadingHandler(w http.ResponseWriter, r *http.Request) {
	sess := mw.GetSession(r)
	b := flow.Bundle(sess.ID())
	if b.Idea == nil {
		http.Redirect(w, r, "/idea-input", http.StatusSeeOther)
		return
	}
	if b.Analysis != nil {
		http.Redirect(w, r, "/analysis-results", http.StatusSeeOther)
		return
	}
	if err := flow.StartAnalysis(sess.ID()); err != nil {
		http.Redirect(w, r, "/idea-input", http.StatusSeeOther)
		return
	}

	vm := basePage(r, "상권 분석 중", 2)
	vm.Loading = &LoadingView{
		Heading:   "상권을 분석하고 있습니다",
		Sub:       "유동인구, 매출, 경쟁 점포 데이터를 수집하는 중입니다.",
		StatusURL: "/analysis-loading/status",
		RetryURL:  "/analysis-loading/retry",
	}
	renderPage(w, r, "loading", vm)
}

// AnalysisStatusFrag answers the HTMX progress poll.
func AnalysisStatusFrag(w http.ResponseWriter, r *http.Request) {
	sess := mw.GetSession(r)
	p := flow.Progress(sess.ID(), wizard.StepAnalysis)
	runStatusFrag(w, r, p, "/analysis-results", "/analysis-loading/retry")
}

// AnalysisRetryHandler re-runs the analysis after a failure.
func AnalysisRetryHandler(w http.ResponseWriter, r *http.Request) {
	sess := mw.GetSession(r)
	if err := flow.Retry(sess.ID(), wizard.StepAnalysis); err != nil {
		hxRedirect(w, r, "/idea-input")
		return
	}
	hxRedirect(w, r, "/analysis-loading")
}

// AnalysisResultsHandler renders the analysis result page. Direct entry
// without the upstream data lands on the producing step.
func AnalysisResultsHandler(w http.ResponseWriter, r *http.Request) {
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

	vm := basePage(r, "상권 분석 결과", 2)
	vm.Analysis = buildAnalysisView(*b.Idea, b.Analysis)
	renderPage(w, r, "analysis_results", vm)
}
