package main

// LoginView backs the login page.
type LoginView struct {
	Error          string
	GoogleClientID string
	GoogleEnabled  bool
	DemoLabel      string
	PlanNote       string
}

func buildLoginView(clientID, errMsg string) *LoginView {
	return &LoginView{
		Error:          errMsg,
		GoogleClientID: clientID,
		GoogleEnabled:  clientID != "",
		DemoLabel:      "데모 계정으로 체험하기",
		PlanNote:       "무료 플랜은 월 3회까지 분석할 수 있습니다.",
	}
}
