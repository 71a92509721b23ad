package main

import (
	"github.com/agonglab/ssgs-web/internal/report"
)

// ReportView backs the final report page.
type ReportView struct {
	ID             string
	GeneratedAt    string
	Title          string
	OverallScore   int
	ScoreTone      string // "good", "fair" or "poor"
	Recommendation string
	Summary        string
	Cards          []report.Card
	Risks          []report.Risk
	Projections    []report.Projection
	Phases         []report.Phase
	RestartURL     string
}

func buildReportView(rep *report.Report) *ReportView {
	tone := "poor"
	switch {
	case rep.OverallScore >= 80:
		tone = "good"
	case rep.OverallScore >= 60:
		tone = "fair"
	}
	return &ReportView{
		ID:             rep.ID,
		GeneratedAt:    rep.GeneratedAt.Local().Format("2006년 1월 2일 15:04"),
		Title:          rep.Title,
		OverallScore:   rep.OverallScore,
		ScoreTone:      tone,
		Recommendation: rep.Recommendation,
		Summary:        rep.Summary,
		Cards:          rep.Cards,
		Risks:          rep.Risks,
		Projections:    rep.Projections,
		Phases:         rep.Phases,
		RestartURL:     "/idea-input",
	}
}

// cardTone maps a tier onto the badge tone classes used by the templates.
func cardTone(t report.Tier) string {
	switch t {
	case report.TierHigh:
		return "good"
	case report.TierMedium:
		return "fair"
	default:
		return "poor"
	}
}
