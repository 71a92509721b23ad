package main

import (
	"net/http"
	"strings"

	mw "github.com/agonglab/ssgs-web/internal/middleware"
	"github.com/agonglab/ssgs-web/internal/session"
	"github.com/agonglab/ssgs-web/internal/wizard"
)

// IdeaInputHandler renders the idea form, pre-filled when the session already
// holds a submitted idea.
func IdeaInputHandler(w http.ResponseWriter, r *http.Request) {
	sess := mw.GetSession(r)
	form := ideaForm{}
	if b := flow.Bundle(sess.ID()); b.Idea != nil {
		form = formFromIdea(*b.Idea)
	}
	renderIdeaPage(w, r, form, nil)
}

// IdeaSubmitHandler validates the form, stores the idea and kicks off the
// analysis run.
func IdeaSubmitHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}
	form := ideaFormFromPost(r.PostForm)
	idea, errs := form.validate(regions)
	if len(errs) > 0 {
		renderIdeaPage(w, r, form, errs)
		return
	}

	sess := mw.GetSession(r)
	if user := sess.User(); user != nil && user.MaxUsage > 0 {
		if user.UsageCount >= user.MaxUsage {
			errs = map[string]string{"form": "이번 달 분석 횟수를 모두 사용했습니다."}
			renderIdeaPage(w, r, form, errs)
			return
		}
		count := user.UsageCount + 1
		sess.Apply(session.Patch{UsageCount: &count})
	}

	flow.SetIdea(sess.ID(), idea)
	if err := flow.StartAnalysis(sess.ID()); err != nil {
		http.Error(w, "unable to start analysis", http.StatusInternalServerError)
		return
	}
	hxRedirect(w, r, "/analysis-loading")
}

// IdeaDongOptionsFrag serves the dong <select> options for the chosen gu.
func IdeaDongOptionsFrag(w http.ResponseWriter, r *http.Request) {
	gu := strings.TrimSpace(r.URL.Query().Get("gu"))
	renderTemplate(w, r, "frag_idea_dong_options", buildDongOptions(regions, gu))
}

// IdeaZoneOptionsFrag serves the zone <select> options for the chosen dong.
func IdeaZoneOptionsFrag(w http.ResponseWriter, r *http.Request) {
	gu := strings.TrimSpace(r.URL.Query().Get("gu"))
	dong := strings.TrimSpace(r.URL.Query().Get("dong"))
	renderTemplate(w, r, "frag_idea_zone_options", buildZoneOptions(regions, gu, dong))
}

func renderIdeaPage(w http.ResponseWriter, r *http.Request, form ideaForm, errs map[string]string) {
	vm := basePage(r, "아이디어 입력", 1)
	vm.Idea = buildIdeaView(regions, form, errs)
	renderPage(w, r, "idea_input", vm)
}

func formFromIdea(i wizard.Idea) ideaForm {
	return ideaForm{
		CategoryCode: i.CategoryCode,
		Gu:           i.Gu,
		Dong:         i.Dong,
		ZoneCode:     i.ZoneCode,
		Menu:         i.Menu,
		Concept:      i.Concept,
		Keywords:     i.Keywords,
	}
}
