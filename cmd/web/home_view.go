package main

// HomeView backs the landing page.
type HomeView struct {
	LoggedIn bool
	CTAHref  string
	CTALabel string
	Features []HomeFeature
}

type HomeFeature struct {
	Icon  string
	Title string
	Body  string
}

func buildHomeView(loggedIn bool) *HomeView {
	v := &HomeView{
		LoggedIn: loggedIn,
		CTAHref:  "/login",
		CTALabel: "무료로 시작하기",
		Features: []HomeFeature{
			{Icon: "chart-bar", Title: "상권 데이터 분석", Body: "서울시 상권 데이터를 기반으로 유동인구, 매출, 경쟁 점포를 분석합니다."},
			{Icon: "sparkles", Title: "AI 홍보 콘텐츠", Body: "아이디어에 맞춘 홍보문구와 이미지를 AI가 생성합니다."},
			{Icon: "megaphone", Title: "SNS 반응 테스트", Body: "생성된 콘텐츠를 게시하고 댓글 반응을 감성 분석합니다."},
			{Icon: "document-check", Title: "종합 리포트", Body: "창업 추천 여부와 실행 계획을 담은 최종 리포트를 제공합니다."},
		},
	}
	if loggedIn {
		v.CTAHref = "/idea-input"
		v.CTALabel = "아이디어 검증 시작하기"
	}
	return v
}
