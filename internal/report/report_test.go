package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agonglab/ssgs-web/internal/market"
	"github.com/agonglab/ssgs-web/internal/wizard"
)

func TestClassify_PerMetricBreakpoints(t *testing.T) {
	assert.Equal(t, TierMedium, Classify("최종점수", 29.7))
	assert.Equal(t, TierHigh, Classify("최종점수", 30))
	assert.Equal(t, TierLow, Classify("최종점수", 19.9))

	// 유동인구 has a lower medium cutoff.
	assert.Equal(t, TierMedium, Classify("유동인구", 19))
	assert.Equal(t, TierLow, Classify("유동인구", 14.9))

	// 점포수 runs on a stretched scale.
	assert.Equal(t, TierMedium, Classify("동종업종_점포수", 61.4))
	assert.Equal(t, TierHigh, Classify("동종업종_점포수", 70))

	// Unknown metrics fall back to the default cutoffs.
	assert.Equal(t, TierHigh, Classify("일방문자수", 45))
}

func TestParseSales(t *testing.T) {
	f := ParseSales("최근 분기 점포당 월 평균 매출: 3056만원\n   - 전분기 대비: ▼ 1965만원")
	assert.Equal(t, int64(3056), f.Amount)
	assert.Equal(t, int64(1965), f.Delta)
	assert.False(t, f.DeltaUp)
	assert.True(t, f.HasDelta)

	f = ParseSales("최근 분기 점포당 월 평균 매출: 1,234만원\n   - 전분기 대비: ▲ 567만원")
	assert.Equal(t, int64(1234), f.Amount)
	assert.Equal(t, int64(567), f.Delta)
	assert.True(t, f.DeltaUp)

	f = ParseSales("데이터 없음")
	assert.Zero(t, f.Amount)
	assert.False(t, f.HasDelta)
}

func TestParseCountAndPercent(t *testing.T) {
	n, ok := ParseCount("최근 분기 점포 수: 10개")
	require.True(t, ok)
	assert.Equal(t, 10, n)

	p, ok := ParsePercent("프랜차이즈 비율: 0.0%")
	require.True(t, ok)
	assert.Zero(t, p)

	_, ok = ParseCount("집계 전")
	assert.False(t, ok)
}

func TestScoreRows_OrderAndExclusion(t *testing.T) {
	rows := ScoreRows(map[string]float64{
		"최종점수":     29.7,
		"일방문자수":    17.3,
		"유동인구":     19,
		"동종업종_점포수": 61.4,
	})
	require.Len(t, rows, 3)
	assert.Equal(t, "유동인구", rows[0].Name)
	assert.Equal(t, "동종업종_점포수", rows[1].Name)
	assert.Equal(t, "일방문자수", rows[2].Name)
	assert.Equal(t, TierMedium, rows[0].Tier)
}

func TestRenderPromotion_SanitizesMarkup(t *testing.T) {
	out, err := RenderPromotion("**오픈 이벤트!** <script>alert(1)</script> #강남맛집")
	require.NoError(t, err)
	assert.Contains(t, string(out), "<strong>오픈 이벤트!</strong>")
	assert.NotContains(t, string(out), "<script>")
}

func TestPlainText_StripsMarkup(t *testing.T) {
	out, err := RenderPromotion("**오픈 이벤트!**\n\n#강남맛집 #김치찌개")
	require.NoError(t, err)
	assert.Equal(t, "오픈 이벤트! #강남맛집 #김치찌개", PlainText(out))
}

func testBundle() wizard.Bundle {
	return wizard.Bundle{
		Idea: &wizard.Idea{
			Category: "한식", CategoryCode: "CS100001",
			Gu: "강남구", Dong: "역삼동", Zone: "강남역", ZoneCode: "3120001",
			Menu: "김치찌개", Concept: "전통 한국식", Keywords: "가성비",
		},
		Analysis: &wizard.Analysis{
			Region: market.DistrictReport{
				AreaAverage: "최근 분기 전체 평균 점포당 월 매출: 2408만원\n   - 전분기 대비: ▼ 1091만원",
			},
			District: market.CategoryReport{
				SalesMonthly:   "최근 분기 점포당 월 평균 매출: 3056만원\n   - 전분기 대비: ▼ 1965만원",
				StoreCount:     "최근 분기 점포 수: 10개",
				StoreFranchise: "프랜차이즈 비율: 0.0%",
			},
			Score: market.ScoreReport{Metrics: map[string]float64{
				"최종점수": 29.7, "유동인구": 19, "동종업종_점포수": 61.4,
			}},
		},
		AIContent: &wizard.AIContent{Promotion: "김치찌개 오픈! #맛집", Images: []string{"a", "b", "c"}},
		Upload: &wizard.Upload{
			PostID: "p_1",
			Sentiment: &market.SentimentReport{
				Count: 6, ValidResults: 6, PositiveRatio: 75,
			},
		},
	}
}

func TestBuild_AssemblesReport(t *testing.T) {
	bl := NewBuilder()
	bl.now = func() time.Time { return time.Date(2025, 7, 30, 12, 0, 0, 0, time.UTC) }

	rep, err := bl.Build(testBundle())
	require.NoError(t, err)

	assert.Equal(t, "SA-2025-0730-001", rep.ID)
	assert.Contains(t, rep.Title, "김치찌개")
	require.Len(t, rep.Cards, 4)
	assert.Equal(t, "상권 분석", rep.Cards[0].Title)
	assert.Equal(t, 88, rep.Cards[1].Score)
	assert.Equal(t, 75, rep.Cards[2].Score)

	// Medium-tier market data with 75% positive SNS lands in the middle band.
	assert.GreaterOrEqual(t, rep.OverallScore, conditionalThreshold)
	assert.Less(t, rep.OverallScore, recommendThreshold)
	assert.Equal(t, "조건부 추천", rep.Recommendation)
	assert.False(t, rep.Recommended())

	require.Len(t, rep.Risks, 3)
	// Sales dropped by more than half the base amount.
	assert.Equal(t, "매출 변동성", rep.Risks[2].Name)
	assert.Equal(t, TierHigh, rep.Risks[2].Level)

	require.Len(t, rep.Projections, 4)
	assert.Equal(t, "1개월", rep.Projections[0].Period)
	assert.Equal(t, "1,834만원", rep.Projections[0].Revenue)
	assert.NotEmpty(t, rep.Phases)
}

func TestBuild_SequentialIDs(t *testing.T) {
	bl := NewBuilder()
	bl.now = func() time.Time { return time.Date(2025, 7, 30, 12, 0, 0, 0, time.UTC) }

	first, err := bl.Build(testBundle())
	require.NoError(t, err)
	second, err := bl.Build(testBundle())
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(first.ID, "-001"))
	assert.True(t, strings.HasSuffix(second.ID, "-002"))
}

func TestBuild_RequiresCompleteBundle(t *testing.T) {
	bl := NewBuilder()

	b := testBundle()
	b.Upload = nil
	_, err := bl.Build(b)
	assert.ErrorIs(t, err, wizard.ErrMissingContent)

	b = testBundle()
	b.Analysis = nil
	_, err = bl.Build(b)
	assert.ErrorIs(t, err, wizard.ErrMissingAnalysis)

	_, err = bl.Build(wizard.Bundle{})
	assert.ErrorIs(t, err, wizard.ErrMissingIdea)
}
