package main

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/agonglab/ssgs-web/internal/auth"
	"github.com/agonglab/ssgs-web/internal/catalog"
	"github.com/agonglab/ssgs-web/internal/config"
	"github.com/agonglab/ssgs-web/internal/market"
	"github.com/agonglab/ssgs-web/internal/report"
	"github.com/agonglab/ssgs-web/internal/session"
	"github.com/agonglab/ssgs-web/internal/wizard"
)

// newTestRouter wires the package globals the way main() does, against the
// offline backend, and returns the full router.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	devMode = true
	templatesDir = "../../templates"
	publicDir = "../../public"
	if _, err := parseTemplates(); err != nil {
		t.Fatalf("parseTemplates failed: %v", err)
	}

	cfg = config.Config{Env: "dev"}
	logger = zap.NewNop()

	var err error
	sessions, err = session.NewManager(session.Config{
		HashKey: []byte("0123456789abcdef0123456789abcdef"),
	})
	if err != nil {
		t.Fatalf("session manager: %v", err)
	}
	regions, err = catalog.Load("../../data")
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	backend = market.NewClient("")
	flow = wizard.NewController(wizard.NewStore(), backend, seoulCity, logger)
	authSvc = auth.NewService(backend, logger)
	reports = report.NewBuilder()

	return newRouter()
}

// client carries cookies between requests and attaches the CSRF header on
// unsafe methods, like a browser running the pages would.
type client struct {
	t   *testing.T
	srv http.Handler
	jar map[string]*http.Cookie
}

func newClient(t *testing.T, srv http.Handler) *client {
	return &client{t: t, srv: srv, jar: make(map[string]*http.Cookie)}
}

func (c *client) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	c.t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, ck := range c.jar {
		req.AddCookie(ck)
	}
	if method != http.MethodGet && method != http.MethodHead {
		if ck, ok := c.jar["csrf_token"]; ok {
			req.Header.Set("X-CSRF-Token", ck.Value)
		}
	}
	rec := httptest.NewRecorder()
	c.srv.ServeHTTP(rec, req)
	for _, ck := range rec.Result().Cookies() {
		if ck.MaxAge < 0 {
			delete(c.jar, ck.Name)
			continue
		}
		c.jar[ck.Name] = ck
	}
	return rec
}

func (c *client) get(path string) *httptest.ResponseRecorder {
	return c.do(http.MethodGet, path, nil)
}

// pollStatus polls an HTMX status endpoint until it answers with a redirect.
func (c *client) pollStatus(path string) string {
	c.t.Helper()
	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		rec := c.do(http.MethodGet, path, nil)
		if rec.Code != http.StatusOK {
			c.t.Fatalf("status poll %s: got %d", path, rec.Code)
		}
		if loc := rec.Header().Get("HX-Redirect"); loc != "" {
			return loc
		}
		if strings.Contains(rec.Body.String(), "다시 시도") {
			c.t.Fatalf("run failed while polling %s: %s", path, rec.Body.String())
		}
		time.Sleep(10 * time.Millisecond)
	}
	c.t.Fatalf("run did not finish polling %s", path)
	return ""
}

func (c *client) demoLogin() {
	c.t.Helper()
	// The login page issues the CSRF cookie the demo form needs.
	if rec := c.get("/login"); rec.Code != http.StatusOK {
		c.t.Fatalf("GET /login: got %d", rec.Code)
	}
	rec := c.do(http.MethodPost, "/login/demo", url.Values{})
	if rec.Code != http.StatusSeeOther {
		c.t.Fatalf("demo login: got %d", rec.Code)
	}
	// Login rotates the session and its CSRF token; fetch a page so the jar
	// holds the fresh token before the next POST.
	if rec := c.get("/idea-input"); rec.Code != http.StatusOK {
		c.t.Fatalf("GET /idea-input after login: got %d", rec.Code)
	}
}

func validIdeaForm() url.Values {
	return url.Values{
		"category_code": {"CS100001"},
		"gu":            {"강남구"},
		"dong":          {"역삼동"},
		"zone_code":     {"3120001"},
		"menu":          {"김치찌개"},
		"concept":       {"전통 한국식"},
		"keywords":      {"가성비"},
	}
}

func TestHealthzOK(t *testing.T) {
	srv := newTestRouter(t)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "ok" {
		t.Fatalf("expected body 'ok', got %q", got)
	}
}

func TestHomePageRenders(t *testing.T) {
	c := newClient(t, newTestRouter(t))
	rec := c.get("/")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "빙하기에서 살아남기") {
		t.Fatalf("expected brand in body")
	}
}

func TestPlaceholderImagesServed(t *testing.T) {
	c := newClient(t, newTestRouter(t))
	for _, path := range []string{
		"/assets/img/placeholder_post_1.svg",
		"/assets/img/placeholder_post_2.svg",
		"/assets/img/placeholder_post_3.svg",
	} {
		rec := c.get(path)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, rec.Code)
		}
	}
}

func TestIdeaInputRequiresLogin(t *testing.T) {
	c := newClient(t, newTestRouter(t))
	rec := c.get("/idea-input")
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %q", loc)
	}
}

func TestDemoLoginSetsMarkerCookie(t *testing.T) {
	c := newClient(t, newTestRouter(t))
	c.demoLogin()
	if _, ok := c.jar["Authorization"]; !ok {
		t.Fatalf("expected Authorization marker cookie after login")
	}
	rec := c.get("/idea-input")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 after login, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "데모 사용자") {
		t.Fatalf("expected user name in header")
	}
}

func TestMissingMarkerCookieDropsLogin(t *testing.T) {
	c := newClient(t, newTestRouter(t))
	c.demoLogin()

	// The session cookie alone must not restore the login.
	delete(c.jar, "Authorization")
	rec := c.get("/idea-input")
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 without marker cookie, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %q", loc)
	}
}

func TestIdeaSubmitValidation(t *testing.T) {
	c := newClient(t, newTestRouter(t))
	c.demoLogin()

	form := validIdeaForm()
	form.Set("menu", "")
	form.Set("gu", "")
	rec := c.do(http.MethodPost, "/idea-input", form)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected form re-render, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "메뉴를 입력해주세요") {
		t.Fatalf("expected menu error in body")
	}
	if !strings.Contains(body, "구를 선택해주세요") {
		t.Fatalf("expected gu error in body")
	}
}

func TestIdeaSubmitRejectsStaleZone(t *testing.T) {
	c := newClient(t, newTestRouter(t))
	c.demoLogin()

	form := validIdeaForm()
	form.Set("dong", "논현동") // zone 3120001 belongs to 역삼동
	rec := c.do(http.MethodPost, "/idea-input", form)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected form re-render, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "상권을 선택해주세요") {
		t.Fatalf("expected zone error in body")
	}
}

func TestIdeaSubmitWithoutCSRFFails(t *testing.T) {
	c := newClient(t, newTestRouter(t))
	c.demoLogin()

	req := httptest.NewRequest(http.MethodPost, "/idea-input", strings.NewReader(validIdeaForm().Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, ck := range c.jar {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	c.srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 without CSRF token, got %d", rec.Code)
	}
}

func TestDongOptionsFragment(t *testing.T) {
	c := newClient(t, newTestRouter(t))
	c.demoLogin()
	rec := c.get("/idea-input/dongs?gu=" + url.QueryEscape("강남구"))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "역삼동") {
		t.Fatalf("expected 역삼동 option, got %s", rec.Body.String())
	}
}

func TestFullWizardFlow(t *testing.T) {
	c := newClient(t, newTestRouter(t))
	c.demoLogin()

	rec := c.do(http.MethodPost, "/idea-input", validIdeaForm())
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("idea submit: expected 303, got %d; body=%s", rec.Code, rec.Body.String())
	}
	if loc := rec.Header().Get("Location"); loc != "/analysis-loading" {
		t.Fatalf("expected redirect to /analysis-loading, got %q", loc)
	}

	if loc := c.pollStatus("/analysis-loading/status"); loc != "/analysis-results" {
		t.Fatalf("expected analysis redirect, got %q", loc)
	}
	rec = c.get("/analysis-results")
	if rec.Code != http.StatusOK {
		t.Fatalf("analysis results: got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "29.7") {
		t.Fatalf("expected final score in analysis results")
	}

	rec = c.get("/ai-content-loading")
	if rec.Code != http.StatusOK {
		t.Fatalf("ai content loading: got %d", rec.Code)
	}
	if loc := c.pollStatus("/ai-content-loading/status"); loc != "/ai-content-results" {
		t.Fatalf("expected content redirect, got %q", loc)
	}
	rec = c.get("/ai-content-results")
	if !strings.Contains(rec.Body.String(), "홍보문구") {
		t.Fatalf("expected promotion section, got status %d", rec.Code)
	}

	rec = c.do(http.MethodPost, "/ai-content-results/promotion", url.Values{"promotion": {"수정된 홍보문구 #테스트"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("promotion edit: got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "수정된 홍보문구") {
		t.Fatalf("expected edited text in editor fragment")
	}

	rec = c.get("/sns-test-results")
	if rec.Code != http.StatusOK {
		t.Fatalf("sns test start: got %d", rec.Code)
	}
	if loc := c.pollStatus("/sns-test-results/status"); loc != "/sns-test-results" {
		t.Fatalf("expected sns redirect, got %q", loc)
	}
	rec = c.get("/sns-test-results")
	if !strings.Contains(rec.Body.String(), "긍정 반응") {
		t.Fatalf("expected sentiment summary, got status %d", rec.Code)
	}
	// The edited caption flows into the post.
	if !strings.Contains(rec.Body.String(), "수정된 홍보문구") {
		t.Fatalf("expected edited caption on the post")
	}

	rec = c.get("/final-report")
	if rec.Code != http.StatusOK {
		t.Fatalf("final report: got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "SA-") {
		t.Fatalf("expected report ID in body")
	}
	if !strings.Contains(body, "실행 계획") {
		t.Fatalf("expected action plan section")
	}
}

func TestDirectEntryRedirectsToProducingStep(t *testing.T) {
	c := newClient(t, newTestRouter(t))
	c.demoLogin()

	for path, want := range map[string]string{
		"/analysis-results":   "/idea-input",
		"/ai-content-results": "/idea-input",
		"/sns-test-results":   "/idea-input",
		"/final-report":       "/idea-input",
	} {
		rec := c.get(path)
		if rec.Code != http.StatusSeeOther {
			t.Fatalf("%s: expected 303, got %d", path, rec.Code)
		}
		if loc := rec.Header().Get("Location"); loc != want {
			t.Fatalf("%s: expected redirect to %s, got %q", path, want, loc)
		}
	}
}

func TestLogoutClearsSession(t *testing.T) {
	c := newClient(t, newTestRouter(t))
	c.demoLogin()

	rec := c.do(http.MethodPost, "/logout", url.Values{})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("logout: expected 303, got %d", rec.Code)
	}
	if _, ok := c.jar["Authorization"]; ok {
		t.Fatalf("expected marker cookie cleared on logout")
	}
	rec = c.get("/idea-input")
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected login redirect after logout, got %d", rec.Code)
	}
}
