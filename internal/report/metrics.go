package report

import (
	"regexp"
	"strconv"
	"strings"
)

// Tier buckets a metric value for badge display.
type Tier string

const (
	TierHigh   Tier = "높음"
	TierMedium Tier = "보통"
	TierLow    Tier = "낮음"
)

// Breakpoints define the high/medium cutoffs for one metric.
type Breakpoints struct {
	High   float64
	Medium float64
}

var defaultBreakpoints = Breakpoints{High: 30, Medium: 20}

// Per-metric cutoffs. Metrics without an entry use the default.
var metricBreakpoints = map[string]Breakpoints{
	"유동인구":     {High: 30, Medium: 15},
	"동종업종_점포수": {High: 70, Medium: 40},
	"최종점수":     {High: 30, Medium: 20},
}

// Classify buckets a metric value using its per-metric cutoffs.
func Classify(metric string, value float64) Tier {
	bp, ok := metricBreakpoints[metric]
	if !ok {
		bp = defaultBreakpoints
	}
	switch {
	case value >= bp.High:
		return TierHigh
	case value >= bp.Medium:
		return TierMedium
	default:
		return TierLow
	}
}

var (
	amountRe   = regexp.MustCompile(`(\d+(?:,\d+)*)만원`)
	increaseRe = regexp.MustCompile(`▲\s*(\d+(?:,\d+)*)만원`)
	decreaseRe = regexp.MustCompile(`▼\s*(\d+(?:,\d+)*)만원`)
	countRe    = regexp.MustCompile(`(\d+)개`)
	percentRe  = regexp.MustCompile(`(\d+\.?\d*)%`)
)

// SalesFacts are the figures extracted from a pre-rendered sales sentence
// such as "최근 분기 점포당 월 평균 매출: 3056만원\n - 전분기 대비: ▼ 1965만원".
type SalesFacts struct {
	Amount   int64 // 만원
	Delta    int64 // 만원, vs previous quarter
	DeltaUp  bool
	HasDelta bool
}

// ParseSales extracts the leading amount and the first quarter-over-quarter
// delta from a sales sentence. Missing pieces stay zero.
func ParseSales(text string) SalesFacts {
	var f SalesFacts
	if m := amountRe.FindStringSubmatch(text); m != nil {
		f.Amount = parseGrouped(m[1])
	}
	if m := increaseRe.FindStringSubmatch(text); m != nil {
		f.Delta = parseGrouped(m[1])
		f.DeltaUp = true
		f.HasDelta = true
	} else if m := decreaseRe.FindStringSubmatch(text); m != nil {
		f.Delta = parseGrouped(m[1])
		f.HasDelta = true
	}
	return f
}

// ParseCount extracts the first "N개" figure.
func ParseCount(text string) (int, bool) {
	m := countRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParsePercent extracts the first "N%" figure.
func ParsePercent(text string) (float64, bool) {
	m := percentRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseGrouped(s string) int64 {
	n, err := strconv.ParseInt(strings.ReplaceAll(s, ",", ""), 10, 64)
	if err != nil {
		return 0
	}
	return n
}
