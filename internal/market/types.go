package market

import (
	"encoding/json"
	"strconv"
	"strings"
)

// App-level success codes. The backend pairs every payload with one of these;
// an HTTP 200 carrying any other code is treated as a failure.
const (
	CodeTextGenerated  = "AN200"
	CodeImageGenerated = "AN201"
	CodePromotionSaved = "AN202"
	CodeDistrictReport = "AN203"
	CodeCategoryReport = "AN204"
	CodeAreaSummary    = "AN205"
	CodeScoreReport    = "AN206"
	CodeSentiment      = "AN207"
)

// envelope is the wire format shared by every analysis endpoint.
type envelope struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// GenerateRequest carries the validated idea fields sent to both generators.
type GenerateRequest struct {
	Category string `json:"category"`
	Region   string `json:"region"`
	District string `json:"district"`
	Menu     string `json:"menu"`
	Concept  string `json:"concept"`
	Keyword  string `json:"keyword"`
}

// DistrictReport describes the commercial zone itself (AN203). Fields hold
// pre-rendered Korean sentences; numeric facts are extracted downstream.
type DistrictReport struct {
	GenderResidence string `json:"genderResidence"`
	GenderWorker    string `json:"genderWorker"`
	FloatingTime    string `json:"floatingTime"`
	FloatingAge     string `json:"floatingAge"`
	AreaAverage     string `json:"areaAverage"`
	Summary         string `json:"summary"`
}

// CategoryReport describes the zone crossed with the chosen business
// category (AN204).
type CategoryReport struct {
	SalesGender    string `json:"salesGender"`
	SalesTime      string `json:"salesTime"`
	SalesAge       string `json:"salesAge"`
	SalesMonthly   string `json:"salesMonthly"`
	StoreCount     string `json:"storeCount"`
	StoreOpen      string `json:"storeOpen"`
	StoreClose     string `json:"storeClose"`
	StoreFranchise string `json:"storeFranchise"`
}

// ScoreReport holds the scored metrics (AN206). The backend mixes JSON
// numbers and numeric strings, so values cross into float64 here, with 0 for
// anything unparseable.
type ScoreReport struct {
	Metrics map[string]float64
}

// MetricFinalScore is the aggregate metric name within a ScoreReport.
const MetricFinalScore = "최종점수"

func (s *ScoreReport) UnmarshalJSON(b []byte) error {
	var raw map[string]flexNumber
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	s.Metrics = make(map[string]float64, len(raw))
	for k, v := range raw {
		s.Metrics[k] = float64(v)
	}
	return nil
}

func (s ScoreReport) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Metrics)
}

// Final returns the aggregate score, 0 when absent.
func (s ScoreReport) Final() float64 { return s.Metrics[MetricFinalScore] }

// Metric returns a named metric value, 0 when absent.
func (s ScoreReport) Metric(name string) float64 { return s.Metrics[name] }

// AreaSummary aggregates population figures for the zone (AN205).
type AreaSummary struct {
	ZoneName       string     `json:"상권명"`
	Residents      flexNumber `json:"총_상주인구"`
	Workers        flexNumber `json:"총_직장인구"`
	Floating       flexNumber `json:"총_유동인구"`
	ResidentsGraph string     `json:"상주인구_그래프"`
	FloatingGraph  string     `json:"유동인구_그래프"`
	WorkersGraph   string     `json:"직장인구_그래프"`
}

// SentimentReport is the comment classification result (AN207).
type SentimentReport struct {
	Count         int               `json:"count"`
	ValidResults  int               `json:"valid_results"`
	PositiveRatio float64           `json:"positive_ratio"`
	Results       []SentimentResult `json:"results"`
}

// SentimentResult labels one comment.
type SentimentResult struct {
	Text       string  `json:"text"`
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// Positive reports whether the comment was classified as positive.
func (r SentimentResult) Positive() bool { return r.Label == "긍정" }

// GoogleUser carries the claims forwarded with the login exchange.
type GoogleUser struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
	Sub     string `json:"sub"`
}

// Account is the backend's view of the logged-in user.
type Account struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Picture    string `json:"picture"`
	Provider   string `json:"provider"`
	Plan       string `json:"plan"`
	UsageCount int    `json:"usageCount"`
	MaxUsage   int    `json:"maxUsage"`
	CreatedAt  string `json:"createdAt"`
}

// flexNumber accepts a JSON number, a numeric string, or null. Anything else
// collapses to 0 rather than failing the whole payload.
type flexNumber float64

func (f *flexNumber) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	if s[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			*f = 0
			return nil
		}
		s = strings.TrimSpace(str)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = flexNumber(v)
	return nil
}
