package main

import (
	"errors"
	"net/http"

	mw "github.com/agonglab/ssgs-web/internal/middleware"
	"github.com/agonglab/ssgs-web/internal/wizard"
)

// FinalReportHandler assembles and renders the final report. Missing
// upstream data redirects to whichever step still has to run.
func FinalReportHandler(w http.ResponseWriter, r *http.Request) {
	sess := mw.GetSession(r)
	rep, err := reports.Build(flow.Bundle(sess.ID()))
	if err != nil {
		switch {
		case errors.Is(err, wizard.ErrMissingIdea):
			http.Redirect(w, r, "/idea-input", http.StatusSeeOther)
		case errors.Is(err, wizard.ErrMissingAnalysis):
			http.Redirect(w, r, "/analysis-loading", http.StatusSeeOther)
		default:
			http.Redirect(w, r, "/sns-test-results", http.StatusSeeOther)
		}
		return
	}

	vm := basePage(r, "최종 리포트", 5)
	vm.Report = buildReportView(rep)
	renderPage(w, r, "final_report", vm)
}
