package main

import (
	"net/http"

	mw "github.com/agonglab/ssgs-web/internal/middleware"
	"github.com/agonglab/ssgs-web/internal/session"
)

// stepLabels drive the wizard progress bar shown on every step page.
var stepLabels = []string{"아이디어 입력", "상권 분석", "AI 콘텐츠", "SNS 테스트", "최종 리포트"}

// StepInfo is one entry of the progress bar.
type StepInfo struct {
	Index int
	Label string
	State string // "done", "current" or "upcoming"
}

// PageData is the view model every page template receives. Exactly one of the
// page-specific sections is set per render.
type PageData struct {
	Title     string
	Page      string
	Path      string
	User      *session.User
	CSRFToken string
	Steps     []StepInfo
	Offline   bool

	Home     *HomeView
	Login    *LoginView
	Idea     *IdeaView
	Loading  *LoadingView
	Analysis *AnalysisView
	Content  *ContentView
	SNS      *SNSView
	Report   *ReportView
}

// basePage fills the fields shared by all pages. step is 1-based; 0 hides the
// progress bar.
func basePage(r *http.Request, title string, step int) PageData {
	vm := PageData{
		Title:   title + " | 빙하기에서 살아남기",
		Path:    r.URL.Path,
		User:    mw.CurrentUser(r),
		Offline: backend.Offline(),
	}
	if sess := mw.GetSession(r); sess != nil {
		vm.CSRFToken = sess.CSRFToken()
	}
	if step > 0 {
		for i, label := range stepLabels {
			s := StepInfo{Index: i + 1, Label: label, State: "upcoming"}
			switch {
			case i+1 < step:
				s.State = "done"
			case i+1 == step:
				s.State = "current"
			}
			vm.Steps = append(vm.Steps, s)
		}
	}
	return vm
}
