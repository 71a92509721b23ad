package market

// Recorded backend responses served when no backend URL is configured. The
// values mirror one real analysis run against district 3110009 / category
// CS100001, so local development exercises realistic payload shapes.

const fixtureText = "🔥 강남 역삼동에 새로운 김치찌개 맛집이 오픈합니다! 전통 한국식 요리로 가성비 최고의 맛을 선사해드립니다. " +
	"바쁜 직장인들을 위한 빠른 서비스와 깔끔한 인테리어로 편안한 식사 시간을 보장합니다. 지금 방문하시면 특별 할인 혜택까지! " +
	"#강남맛집 #김치찌개 #전통한식 #가성비맛집 #역삼동맛집 #직장인맛집 #한식당 #오픈이벤트"

const fixtureSaveResult = "홍보물을 성공적으로 저장하였습니다."

var fixtureImages = []string{
	"https://ssgs-bucket.s3.amazonaws.com/ssgs/fb1a3e08-e103-4d7b-aa27-0c3d93f2c1f7.jpg",
	"https://ssgs-bucket.s3.amazonaws.com/ssgs/e16e30ee-e175-4b08-a5fe-9d140f6bc87c.jpg",
	"https://ssgs-bucket.s3.amazonaws.com/ssgs/17321ecb-3b1a-4d52-8e66-84df9258b271.jpg",
}

var fixtureDistrict = DistrictReport{
	GenderResidence: "여성, 60대 이상(13.6%) 주거인구가 가장 많아요.",
	GenderWorker:    "남성, 30대(16.1%) 직장인구가 가장 많아요.",
	FloatingTime:    "00~06시 유동인구가 가장 많습니다. (29.8%)",
	FloatingAge:     "60대 이상(27.4%) 유동인구가 가장 많아요.",
	AreaAverage:     "최근 분기 전체 평균 점포당 월 매출: 2408만원\n   - 전분기 대비: ▼ 1091만원\n   - 전년 동분기 대비: ▼ 326만원",
	Summary:         "주거와 업무가 섞인 상권으로, 심야 시간대 유동인구 비중이 높습니다.",
}

var fixtureCategory = CategoryReport{
	SalesGender:    "선택상권은 남성(53.4%) 고객 비중이 높은 상권입니다.",
	SalesTime:      "11~14시 매출이 가장 많습니다. (36.5%)",
	SalesAge:       "선택상권은 50대(27.9%) 소비자 매출 비중이 가장 높습니다.",
	SalesMonthly:   "최근 분기 점포당 월 평균 매출: 3056만원\n   - 전분기 대비: ▼ 1965만원\n   - 전년 동분기 대비: ▼ 677만원",
	StoreCount:     "최근 분기 점포 수: 10개\n   - 전분기 대비: ▼ 0개\n   - 전년 동분기 대비: ▼ 0개",
	StoreOpen:      "최근 분기 개업수: 0개\n   - 전분기 대비: ▼ 0개\n   - 전년 동분기 대비: ▼ 0개",
	StoreClose:     "최근 분기 폐업수: 0개\n   - 전분기 대비: ▼ 0개\n   - 전년 동분기 대비: ▼ 0개",
	StoreFranchise: "프랜차이즈 비율: 0.0%",
}

func fixtureScore() ScoreReport {
	return ScoreReport{Metrics: map[string]float64{
		"유동인구":      19,
		"동종업종_점포수":  61.4,
		"동종업종_평균매출": 26.8,
		"상권_평균매출":   23.4,
		"일방문자수":     17.3,
		MetricFinalScore: 29.7,
	}}
}

var fixtureSummary = AreaSummary{
	ZoneName:       "자하문터널",
	Residents:      1540,
	Workers:        347,
	Floating:       165102,
	ResidentsGraph: "/static/img/pop_trend_3110009.png",
	FloatingGraph:  "/static/img/flow_trend_3110009.png",
	WorkersGraph:   "/static/img/wrk_trend_3110009.png",
}

var fixtureAccount = Account{
	ID:         "offline-user",
	Email:      "founder@example.com",
	Name:       "체험 사용자",
	Provider:   "google",
	Plan:       "FREE",
	UsageCount: 0,
	MaxUsage:   3,
}

// fixtureSentiment labels the incoming comments with a fixed alternating
// pattern so the ratio stays deterministic in tests and demos.
func fixtureSentiment(messages []string) SentimentReport {
	labels := []struct {
		label      string
		confidence float64
	}{
		{"긍정", 0.9823},
		{"긍정", 0.9456},
		{"부정", 0.8234},
		{"긍정", 0.9678},
	}
	rep := SentimentReport{Count: len(messages)}
	positive := 0
	for i, msg := range messages {
		l := labels[i%len(labels)]
		rep.Results = append(rep.Results, SentimentResult{Text: msg, Label: l.label, Confidence: l.confidence})
		if l.label == "긍정" {
			positive++
		}
	}
	rep.ValidResults = len(rep.Results)
	if rep.ValidResults > 0 {
		rep.PositiveRatio = float64(positive) / float64(rep.ValidResults) * 100
	}
	return rep
}
