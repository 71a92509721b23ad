package main

import (
	"net/http"

	"github.com/agonglab/ssgs-web/internal/wizard"
)

// LoadingView backs the three loading pages. StatusURL is polled via HTMX
// until the run settles.
type LoadingView struct {
	Heading   string
	Sub       string
	StatusURL string
	RetryURL  string
}

// StatusView backs the polled status fragment.
type StatusView struct {
	Percent  int
	Phase    string
	Failed   bool
	Err      string
	RetryURL string
	Degraded bool
}

// runStatusFrag answers one poll: a redirect header once the run is done,
// the progress fragment otherwise.
func runStatusFrag(w http.ResponseWriter, r *http.Request, p wizard.Progress, doneURL, retryURL string) {
	if p.Status == wizard.StatusDone {
		w.Header().Set("HX-Redirect", doneURL)
		w.WriteHeader(http.StatusOK)
		return
	}
	v := StatusView{
		Percent:  p.Percent,
		Phase:    p.Phase,
		Failed:   p.Status == wizard.StatusFailed,
		Err:      p.Err,
		RetryURL: retryURL,
		Degraded: p.Degraded,
	}
	renderTemplate(w, r, "frag_run_status", v)
}
