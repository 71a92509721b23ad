package main

import (
	"html/template"

	"github.com/agonglab/ssgs-web/internal/report"
	"github.com/agonglab/ssgs-web/internal/wizard"
)

// ContentView backs the AI content result page and the promotion editor
// fragment.
type ContentView struct {
	Promotion     string
	PromotionHTML template.HTML
	Images        []string
	SaveResult    string
	Degraded      bool
	EditError     string
	NextURL       string
	RetryURL      string
}

func buildContentView(c *wizard.AIContent) *ContentView {
	v := &ContentView{
		Promotion:  c.Promotion,
		Images:     c.Images,
		SaveResult: c.SaveResult,
		Degraded:   c.Degraded,
		NextURL:    "/sns-test-results",
		RetryURL:   "/ai-content-loading/retry",
	}
	if rendered, err := report.RenderPromotion(c.Promotion); err == nil {
		v.PromotionHTML = rendered
	} else {
		v.PromotionHTML = template.HTML(template.HTMLEscapeString(c.Promotion))
	}
	return v
}
