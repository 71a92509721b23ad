package main

import (
	"fmt"

	"github.com/agonglab/ssgs-web/internal/format"
	"github.com/agonglab/ssgs-web/internal/report"
	"github.com/agonglab/ssgs-web/internal/wizard"
)

// CommentView is one analyzed comment.
type CommentView struct {
	Text       string
	Positive   bool
	Label      string
	Confidence string
}

// SNSView backs the SNS test result page.
type SNSView struct {
	PostID     string
	UploadedAt string
	Caption    string
	Image      string

	HasSentiment  bool
	CommentCount  int
	AnalyzedCount int
	PositiveRatio string
	Comments      []CommentView

	NextURL string
}

func buildSNSView(c *wizard.AIContent, u *wizard.Upload) *SNSView {
	v := &SNSView{
		PostID:     u.PostID,
		UploadedAt: u.UploadedAt.Local().Format("2006-01-02 15:04"),
		Caption:    c.Promotion,
		NextURL:    "/final-report",
	}
	if rendered, err := report.RenderPromotion(c.Promotion); err == nil {
		v.Caption = report.PlainText(rendered)
	}
	if len(c.Images) > 0 {
		v.Image = c.Images[0]
	}
	if u.Sentiment != nil {
		v.HasSentiment = true
		v.CommentCount = u.Sentiment.Count
		v.AnalyzedCount = u.Sentiment.ValidResults
		v.PositiveRatio = format.Percent(u.Sentiment.PositiveRatio)
		for _, res := range u.Sentiment.Results {
			v.Comments = append(v.Comments, CommentView{
				Text:       res.Text,
				Positive:   res.Positive(),
				Label:      res.Label,
				Confidence: fmt.Sprintf("%.0f%%", res.Confidence*100),
			})
		}
	}
	return v
}
