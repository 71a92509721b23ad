package report

import (
	"fmt"
	"math"
	"sort"
	"sync/atomic"
	"time"

	"github.com/agonglab/ssgs-web/internal/format"
	"github.com/agonglab/ssgs-web/internal/wizard"
)

// Recommendation bands over the overall score.
const (
	recommendThreshold   = 80
	conditionalThreshold = 60
)

// ScoreRow is one scored metric with its display tier. The aggregate metric
// is excluded; it is shown separately.
type ScoreRow struct {
	Name  string
	Value float64
	Tier  Tier
}

// Card is one scored dimension of the final report.
type Card struct {
	Title   string
	Score   int
	Tier    Tier
	Details []string
}

// Risk is one identified risk factor.
type Risk struct {
	Name  string
	Level Tier
	Note  string
}

// Projection is one row of the financial outlook table.
type Projection struct {
	Period  string
	Revenue string
	Profit  string
}

// Phase is one block of the action plan.
type Phase struct {
	Name   string
	Period string
	Tasks  []string
}

// Report is the assembled final report.
type Report struct {
	ID             string
	GeneratedAt    time.Time
	Title          string
	OverallScore   int
	Recommendation string
	Summary        string
	Cards          []Card
	Risks          []Risk
	Projections    []Projection
	Phases         []Phase
}

// Recommended reports whether the overall score clears the top band.
func (r Report) Recommended() bool { return r.OverallScore >= recommendThreshold }

// Builder assembles final reports and hands out sequential report IDs.
type Builder struct {
	seq atomic.Uint64
	now func() time.Time
}

func NewBuilder() *Builder {
	return &Builder{now: time.Now}
}

// Build assembles the final report from a completed wizard bundle. Every
// section must be present; a missing one surfaces as the matching wizard
// sentinel so handlers can redirect to the producing step.
func (bl *Builder) Build(b wizard.Bundle) (*Report, error) {
	switch {
	case b.Idea == nil:
		return nil, wizard.ErrMissingIdea
	case b.Analysis == nil:
		return nil, wizard.ErrMissingAnalysis
	case b.AIContent == nil, b.Upload == nil:
		return nil, wizard.ErrMissingContent
	}

	idea := *b.Idea
	now := bl.now()

	market := marketCard(b.Analysis)
	content := contentCard(b.AIContent)
	sns := snsCard(b.Upload)
	fit := fitCard(b.Analysis, market.Score, sns.Score)

	overall := int(math.Round(
		0.35*float64(market.Score) +
			0.20*float64(content.Score) +
			0.25*float64(sns.Score) +
			0.20*float64(fit.Score)))

	rec := "신중 검토"
	switch {
	case overall >= recommendThreshold:
		rec = "창업 추천"
	case overall >= conditionalThreshold:
		rec = "조건부 추천"
	}

	return &Report{
		ID:             fmt.Sprintf("SA-%s-%03d", now.Format("2006-0102"), bl.seq.Add(1)%1000),
		GeneratedAt:    now,
		Title:          fmt.Sprintf("%s %s %s 창업 분석 리포트", idea.Gu, idea.Dong, idea.Menu),
		OverallScore:   overall,
		Recommendation: rec,
		Summary: fmt.Sprintf("%s %s 상권의 %s 창업 아이디어를 상권 데이터, AI 콘텐츠 반응, SNS 테스트 결과로 종합 평가했습니다. "+
			"종합 점수는 100점 만점에 %d점입니다.", idea.District(), idea.Zone, idea.Menu, overall),
		Cards:       []Card{market, content, sns, fit},
		Risks:       risks(b.Analysis),
		Projections: projections(b.Analysis),
		Phases:      actionPlan(),
	}, nil
}

// scoreOrder pins the well-known metrics to the top of the score table;
// anything the backend adds later sorts after them by name.
var scoreOrder = []string{"유동인구", "동종업종_점포수", "동종업종_평균매출", "상권_평균매출", "일방문자수"}

// ScoreRows orders the per-metric scores for display, excluding the
// aggregate.
func ScoreRows(s map[string]float64) []ScoreRow {
	rank := make(map[string]int, len(scoreOrder))
	for i, name := range scoreOrder {
		rank[name] = i
	}
	rows := make([]ScoreRow, 0, len(s))
	for name, v := range s {
		if name == "최종점수" {
			continue
		}
		rows = append(rows, ScoreRow{Name: name, Value: v, Tier: Classify(name, v)})
	}
	sort.Slice(rows, func(i, j int) bool {
		ri, iok := rank[rows[i].Name]
		rj, jok := rank[rows[j].Name]
		switch {
		case iok && jok:
			return ri < rj
		case iok:
			return true
		case jok:
			return false
		default:
			return rows[i].Name < rows[j].Name
		}
	})
	return rows
}

func tierScore(t Tier) int {
	switch t {
	case TierHigh:
		return 90
	case TierMedium:
		return 72
	default:
		return 50
	}
}

func tierFromScore(score int) Tier {
	switch {
	case score >= recommendThreshold:
		return TierHigh
	case score >= conditionalThreshold:
		return TierMedium
	default:
		return TierLow
	}
}

func marketCard(a *wizard.Analysis) Card {
	finalTier := Classify("최종점수", a.Score.Final())
	floatTier := Classify("유동인구", a.Score.Metric("유동인구"))
	storeTier := Classify("동종업종_점포수", a.Score.Metric("동종업종_점포수"))
	score := (tierScore(finalTier)*2 + tierScore(floatTier) + tierScore(storeTier)) / 4

	details := []string{
		fmt.Sprintf("상권 종합 점수 %.1f점 (%s)", a.Score.Final(), finalTier),
		fmt.Sprintf("유동인구 지수 %.1f점 (%s)", a.Score.Metric("유동인구"), floatTier),
	}
	if a.Summary != nil {
		details = append(details, fmt.Sprintf("%s 상권 일 유동인구 %s명, 상주인구 %s명",
			a.Summary.ZoneName, format.Comma(int64(a.Summary.Floating)), format.Comma(int64(a.Summary.Residents))))
	}
	if facts := ParseSales(a.District.SalesMonthly); facts.Amount > 0 {
		d := fmt.Sprintf("점포당 월 평균 매출 %s", format.Won(facts.Amount))
		if facts.HasDelta {
			dir := "감소"
			if facts.DeltaUp {
				dir = "증가"
			}
			d += fmt.Sprintf(" (전분기 대비 %s %s)", format.Won(facts.Delta), dir)
		}
		details = append(details, d)
	}
	return Card{Title: "상권 분석", Score: score, Tier: finalTier, Details: details}
}

func contentCard(c *wizard.AIContent) Card {
	if c.Degraded {
		return Card{
			Title: "AI 콘텐츠",
			Score: 55,
			Tier:  TierLow,
			Details: []string{
				"AI 생성에 실패하여 예시 콘텐츠로 대체되었습니다",
				"실제 반응 예측에는 재생성이 필요합니다",
			},
		}
	}
	return Card{
		Title: "AI 콘텐츠",
		Score: 88,
		Tier:  TierHigh,
		Details: []string{
			fmt.Sprintf("홍보문구 1건, 홍보 이미지 %d장 생성", len(c.Images)),
			fmt.Sprintf("문구 길이 %d자, 해시태그 포함", len([]rune(c.Promotion))),
		},
	}
}

func snsCard(u *wizard.Upload) Card {
	if u.Sentiment == nil {
		return Card{
			Title:   "SNS 반응",
			Score:   70,
			Tier:    TierMedium,
			Details: []string{"반응 분석 데이터를 수집하지 못했습니다", "게시물 업로드는 완료되었습니다"},
		}
	}
	s := u.Sentiment
	score := int(math.Round(s.PositiveRatio))
	return Card{
		Title: "SNS 반응",
		Score: score,
		Tier:  tierFromScore(score),
		Details: []string{
			fmt.Sprintf("댓글 %d건 중 %d건 분석", s.Count, s.ValidResults),
			fmt.Sprintf("긍정 반응 비율 %.1f%%", s.PositiveRatio),
		},
	}
}

func fitCard(a *wizard.Analysis, marketScore, snsScore int) Card {
	score := (marketScore + snsScore) / 2
	details := []string{
		fmt.Sprintf("상권 점수와 SNS 반응을 결합한 적합도 %d점", score),
	}
	if n, ok := ParseCount(a.District.StoreCount); ok {
		details = append(details, fmt.Sprintf("동종업종 점포 수 %d개", n))
	}
	if p, ok := ParsePercent(a.District.StoreFranchise); ok {
		details = append(details, fmt.Sprintf("프랜차이즈 비율 %.1f%%", p))
	}
	return Card{Title: "시장 적합성", Score: score, Tier: tierFromScore(score), Details: details}
}

// invert flips a strength tier into a risk level: a strong metric means the
// matching risk is low.
func invert(t Tier) Tier {
	switch t {
	case TierHigh:
		return TierLow
	case TierLow:
		return TierHigh
	default:
		return TierMedium
	}
}

func risks(a *wizard.Analysis) []Risk {
	out := []Risk{
		{
			Name:  "경쟁 강도",
			Level: invert(Classify("동종업종_점포수", a.Score.Metric("동종업종_점포수"))),
			Note:  "동종업종 점포 점수 기준",
		},
	}

	saturation := TierLow
	if n, ok := ParseCount(a.District.StoreCount); ok {
		switch {
		case n >= 50:
			saturation = TierHigh
		case n >= 20:
			saturation = TierMedium
		}
	}
	out = append(out, Risk{Name: "시장 포화도", Level: saturation, Note: "상권 내 동종업종 점포 수 기준"})

	sales := Risk{Name: "매출 변동성", Level: TierLow, Note: "전분기 대비 매출 추이 기준"}
	if facts := ParseSales(a.District.SalesMonthly); facts.HasDelta && !facts.DeltaUp {
		sales.Level = TierMedium
		if facts.Amount > 0 && facts.Delta*2 >= facts.Amount {
			sales.Level = TierHigh
		}
	}
	out = append(out, sales)
	return out
}

// projections derives a simple outlook from the extracted per-store monthly
// sales. A conservative 60% ramp-up applies to the first month and margins
// widen as the store stabilizes.
func projections(a *wizard.Analysis) []Projection {
	base := ParseSales(a.District.SalesMonthly).Amount
	if base <= 0 {
		base = ParseSales(a.Region.AreaAverage).Amount
	}
	if base <= 0 {
		base = 1200
	}
	rows := []struct {
		period string
		months int64
		ramp   float64
		margin float64
	}{
		{"1개월", 1, 0.6, 0.20},
		{"6개월", 6, 0.9, 0.25},
		{"12개월", 12, 1.0, 0.30},
		{"24개월", 24, 1.1, 0.35},
	}
	out := make([]Projection, 0, len(rows))
	for _, r := range rows {
		revenue := int64(math.Round(float64(base*r.months) * r.ramp))
		profit := int64(math.Round(float64(revenue) * r.margin))
		out = append(out, Projection{
			Period:  r.period,
			Revenue: format.Won(revenue),
			Profit:  format.Won(profit),
		})
	}
	return out
}

func actionPlan() []Phase {
	return []Phase{
		{
			Name:   "사업 준비",
			Period: "1-2개월",
			Tasks:  []string{"사업자 등록 및 인허가", "점포 계약 및 인테리어", "메뉴 최종 확정", "초기 자금 집행 계획"},
		},
		{
			Name:   "오픈 준비",
			Period: "3개월",
			Tasks:  []string{"직원 채용 및 교육", "SNS 채널 개설 및 사전 홍보", "오픈 이벤트 기획", "시범 운영"},
		},
		{
			Name:   "안정화",
			Period: "4-6개월",
			Tasks:  []string{"고객 피드백 반영", "단골 고객 프로그램 운영", "원가 구조 점검"},
		},
		{
			Name:   "성장",
			Period: "7-12개월",
			Tasks:  []string{"배달 채널 확장", "신메뉴 개발", "2호점 검토"},
		},
	}
}
