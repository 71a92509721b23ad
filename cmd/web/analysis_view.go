package main

import (
	"github.com/agonglab/ssgs-web/internal/format"
	"github.com/agonglab/ssgs-web/internal/report"
	"github.com/agonglab/ssgs-web/internal/wizard"
)

// Fact is one labelled sentence from the backend reports.
type Fact struct {
	Label string
	Text  string
}

// AnalysisView backs the analysis result page.
type AnalysisView struct {
	Zone     string
	District string
	Category string
	Menu     string

	FinalScore float64
	FinalTier  report.Tier
	Rows       []report.ScoreRow

	DistrictFacts []Fact
	CategoryFacts []Fact

	Sales         report.SalesFacts
	StoreCount    int
	HasStoreCount bool
	FranchisePct  float64
	HasFranchise  bool

	Summary *SummaryView
	NextURL string
}

// SummaryView shows the optional zone population summary.
type SummaryView struct {
	Zone      string
	Residents string
	Workers   string
	Floating  string
	Graphs    []string
}

func buildAnalysisView(idea wizard.Idea, a *wizard.Analysis) *AnalysisView {
	v := &AnalysisView{
		Zone:       idea.Zone,
		District:   idea.District(),
		Category:   idea.Category,
		Menu:       idea.Menu,
		FinalScore: a.Score.Final(),
		FinalTier:  report.Classify("최종점수", a.Score.Final()),
		Rows:       report.ScoreRows(a.Score.Metrics),
		DistrictFacts: []Fact{
			{Label: "주거인구", Text: a.Region.GenderResidence},
			{Label: "직장인구", Text: a.Region.GenderWorker},
			{Label: "유동인구 시간대", Text: a.Region.FloatingTime},
			{Label: "유동인구 연령대", Text: a.Region.FloatingAge},
			{Label: "상권 평균 매출", Text: a.Region.AreaAverage},
			{Label: "상권 요약", Text: a.Region.Summary},
		},
		CategoryFacts: []Fact{
			{Label: "고객 성별", Text: a.District.SalesGender},
			{Label: "매출 시간대", Text: a.District.SalesTime},
			{Label: "소비 연령대", Text: a.District.SalesAge},
			{Label: "월 평균 매출", Text: a.District.SalesMonthly},
			{Label: "개업", Text: a.District.StoreOpen},
			{Label: "폐업", Text: a.District.StoreClose},
		},
		Sales:   report.ParseSales(a.District.SalesMonthly),
		NextURL: "/ai-content-loading",
	}
	v.StoreCount, v.HasStoreCount = report.ParseCount(a.District.StoreCount)
	v.FranchisePct, v.HasFranchise = report.ParsePercent(a.District.StoreFranchise)

	if a.Summary != nil {
		s := &SummaryView{
			Zone:      a.Summary.ZoneName,
			Residents: format.Comma(int64(a.Summary.Residents)),
			Workers:   format.Comma(int64(a.Summary.Workers)),
			Floating:  format.Comma(int64(a.Summary.Floating)),
		}
		for _, g := range []string{a.Summary.ResidentsGraph, a.Summary.WorkersGraph, a.Summary.FloatingGraph} {
			if g != "" {
				s.Graphs = append(s.Graphs, g)
			}
		}
		v.Summary = s
	}
	return v
}
