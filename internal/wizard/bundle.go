package wizard

import (
	"strings"
	"time"

	"github.com/agonglab/ssgs-web/internal/market"
)

// Step identifies one async stage of the flow.
type Step string

const (
	StepAnalysis  Step = "analysis"
	StepAIContent Step = "ai-content"
	StepUpload    Step = "sns-upload"
)

// Status is the lifecycle of a run.
type Status string

const (
	StatusWaiting Status = "waiting"
	StatusRunning Status = "running"
	StatusDone    Status = "done"
	StatusFailed  Status = "failed"
)

// Idea is the validated form input that seeds every later step.
type Idea struct {
	Category     string `json:"category"`
	CategoryCode string `json:"categoryCode"`
	Gu           string `json:"gu"`
	Dong         string `json:"dong"`
	Zone         string `json:"zone"`
	ZoneCode     string `json:"zoneCode"`
	Menu         string `json:"menu"`
	Concept      string `json:"concept"`
	Keywords     string `json:"keywords"`
}

// District renders the backend's district parameter ("구 동").
func (i Idea) District() string {
	return strings.TrimSpace(i.Gu + " " + i.Dong)
}

// GenerateRequest maps the idea onto the generator payload. city is the
// fixed top-level region ("서울특별시").
func (i Idea) GenerateRequest(city string) market.GenerateRequest {
	return market.GenerateRequest{
		Category: i.Category,
		Region:   city,
		District: i.District(),
		Menu:     i.Menu,
		Concept:  i.Concept,
		Keyword:  i.Keywords,
	}
}

// Analysis is the combined result of the three analysis calls, plus the
// optional zone summary.
type Analysis struct {
	Region      market.DistrictReport `json:"region"`
	District    market.CategoryReport `json:"district"`
	Score       market.ScoreReport    `json:"score"`
	Summary     *market.AreaSummary   `json:"summary,omitempty"`
	CompletedAt time.Time             `json:"completedAt"`
}

// AIContent is the generated promotion. Degraded marks placeholder content
// produced after a generation failure; the UI surfaces it.
type AIContent struct {
	Promotion   string    `json:"promotion"`
	Images      []string  `json:"images"`
	SaveResult  string    `json:"saveResult,omitempty"`
	PromotionID string    `json:"promotionId,omitempty"`
	Degraded    bool      `json:"degraded"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// Upload is the simulated SNS test outcome.
type Upload struct {
	PostID     string                  `json:"postId"`
	UploadedAt time.Time               `json:"uploadedAt"`
	Sentiment  *market.SentimentReport `json:"sentiment,omitempty"`
}

// Bundle is the explicit wizard context. Each section is produced by exactly
// one step; a nil section means the producing step has not completed yet.
type Bundle struct {
	Idea      *Idea
	Analysis  *Analysis
	AIContent *AIContent
	Upload    *Upload
}

// Progress is the externally visible state of one run.
type Progress struct {
	Status   Status
	Percent  int
	Phase    string
	Err      string
	Degraded bool
}
