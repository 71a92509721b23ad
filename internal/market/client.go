package market

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// defaultTimeout covers the slowest calls (AI generation).
const defaultTimeout = 60 * time.Second

// APIError reports an envelope whose app code did not match the expected
// success code. Callers treat it exactly like a transport failure.
type APIError struct {
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("market: unexpected code %s", e.Code)
	}
	return fmt.Sprintf("market: %s (%s)", e.Message, e.Code)
}

// Client issues analysis, generation, and auth calls against the backend.
// When baseURL is empty the client serves recorded fixtures instead, which
// keeps local development and tests independent of the real service.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient constructs a backend client with the shared 60s timeout.
func NewClient(baseURL string) *Client {
	return NewClientTimeout(baseURL, defaultTimeout)
}

// NewClientTimeout constructs a backend client with an explicit timeout.
func NewClientTimeout(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Offline reports whether the client serves fixtures instead of real calls.
func (c *Client) Offline() bool { return c == nil || c.baseURL == "" }

// GenerateText produces a promotional copy for the idea (AN200).
func (c *Client) GenerateText(ctx context.Context, req GenerateRequest) (string, error) {
	if c.Offline() {
		return fixtureText, nil
	}
	var out struct {
		TextResponse string `json:"textResponse"`
	}
	if err := c.post(ctx, "/api/generate/text", req, CodeTextGenerated, &out); err != nil {
		return "", err
	}
	return out.TextResponse, nil
}

// GenerateImages produces promotional image URLs for the idea (AN201).
func (c *Client) GenerateImages(ctx context.Context, req GenerateRequest) ([]string, error) {
	if c.Offline() {
		return append([]string(nil), fixtureImages...), nil
	}
	var out struct {
		Images []string `json:"images"`
	}
	if err := c.post(ctx, "/api/generate/image", req, CodeImageGenerated, &out); err != nil {
		return nil, err
	}
	return out.Images, nil
}

// SavePromotion stores the generated copy and images (AN202). The backend
// answers with a plain result string.
func (c *Client) SavePromotion(ctx context.Context, promotion string, images []string) (string, error) {
	if c.Offline() {
		return fixtureSaveResult, nil
	}
	body := map[string]any{
		"promotion": promotion,
		"images":    images,
	}
	var out string
	if err := c.post(ctx, "/api/promotion", body, CodePromotionSaved, &out); err != nil {
		return "", err
	}
	return out, nil
}

// DistrictAnalysis fetches the zone-level report (AN203).
func (c *Client) DistrictAnalysis(ctx context.Context, districtCode string) (DistrictReport, error) {
	if c.Offline() {
		return fixtureDistrict, nil
	}
	var out DistrictReport
	q := url.Values{"districtCode": {districtCode}}
	if err := c.get(ctx, "/api/data/district", q, CodeDistrictReport, &out); err != nil {
		return DistrictReport{}, err
	}
	return out, nil
}

// DistrictCategoryAnalysis fetches the zone crossed with the business
// category (AN204). Same path as DistrictAnalysis; the extra query parameter
// switches the backend into category mode.
func (c *Client) DistrictCategoryAnalysis(ctx context.Context, districtCode, categoryCode string) (CategoryReport, error) {
	if c.Offline() {
		return fixtureCategory, nil
	}
	var out CategoryReport
	q := url.Values{"districtCode": {districtCode}, "categoryCode": {categoryCode}}
	if err := c.get(ctx, "/api/data/district", q, CodeCategoryReport, &out); err != nil {
		return CategoryReport{}, err
	}
	return out, nil
}

// ScoreAnalysis fetches the scored metrics (AN206).
func (c *Client) ScoreAnalysis(ctx context.Context, districtCode, categoryCode string) (ScoreReport, error) {
	if c.Offline() {
		return fixtureScore(), nil
	}
	var out ScoreReport
	q := url.Values{"districtCode": {districtCode}, "categoryCode": {categoryCode}}
	if err := c.get(ctx, "/api/data/score", q, CodeScoreReport, &out); err != nil {
		return ScoreReport{}, err
	}
	return out, nil
}

// ZoneSummary fetches aggregate population figures for the zone (AN205).
func (c *Client) ZoneSummary(ctx context.Context, districtCode string) (AreaSummary, error) {
	if c.Offline() {
		return fixtureSummary, nil
	}
	var out AreaSummary
	q := url.Values{"districtCode": {districtCode}}
	if err := c.get(ctx, "/api/area/summary", q, CodeAreaSummary, &out); err != nil {
		return AreaSummary{}, err
	}
	return out, nil
}

// AnalyzeSentiment classifies a batch of comments (AN207).
func (c *Client) AnalyzeSentiment(ctx context.Context, messages []string) (SentimentReport, error) {
	if c.Offline() {
		return fixtureSentiment(messages), nil
	}
	body := map[string]any{"messages": messages}
	var out SentimentReport
	if err := c.post(ctx, "/api/sentiment/predict", body, CodeSentiment, &out); err != nil {
		return SentimentReport{}, err
	}
	return out, nil
}

// UploadPost publishes a saved promotion to the connected SNS account. This
// endpoint answers with a bare HTTP status, no envelope.
func (c *Client) UploadPost(ctx context.Context, promotionID string) error {
	if c.Offline() {
		return nil
	}
	body := map[string]any{"promotion_id": promotionID}
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	endpoint, err := url.JoinPath(c.baseURL, "api", "instagram", "posts", "upload")
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("market: upload status %d: %s", resp.StatusCode, drainError(resp.Body))
	}
	return nil
}

// Login exchanges a Google ID credential for a backend session (2xx = ok).
func (c *Client) Login(ctx context.Context, credential string, user GoogleUser) error {
	if c.Offline() {
		return nil
	}
	body := map[string]any{
		"credential": credential,
		"googleUser": user,
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	endpoint, err := url.JoinPath(c.baseURL, "oauth2", "authorization", "google")
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("market: login status %d: %s", resp.StatusCode, drainError(resp.Body))
	}
	return nil
}

// Me fetches the backend's view of the current user (2xx = ok).
func (c *Client) Me(ctx context.Context) (Account, error) {
	if c.Offline() {
		return fixtureAccount, nil
	}
	endpoint, err := url.JoinPath(c.baseURL, "api", "auth", "me")
	if err != nil {
		return Account{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Account{}, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return Account{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Account{}, fmt.Errorf("market: me status %d: %s", resp.StatusCode, drainError(resp.Body))
	}
	var acc Account
	if err := json.NewDecoder(resp.Body).Decode(&acc); err != nil {
		return Account{}, err
	}
	return acc, nil
}

// Logout ends the backend session. Failures are the caller's to swallow.
func (c *Client) Logout(ctx context.Context) error {
	if c.Offline() {
		return nil
	}
	endpoint, err := url.JoinPath(c.baseURL, "api", "auth", "logout")
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("market: logout status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, wantCode string, out any) error {
	endpoint, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return err
	}
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	return c.do(req, wantCode, out)
}

func (c *Client) post(ctx context.Context, path string, body any, wantCode string, out any) error {
	endpoint, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return c.do(req, wantCode, out)
}

func (c *Client) do(req *http.Request, wantCode string, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("market: %s status %d: %s", req.URL.Path, resp.StatusCode, drainError(resp.Body))
	}
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("market: decode %s: %w", req.URL.Path, err)
	}
	if env.Code != wantCode {
		return &APIError{Code: env.Code, Message: env.Message}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("market: decode %s data: %w", req.URL.Path, err)
	}
	return nil
}

func drainError(r io.Reader) string {
	if r == nil {
		return ""
	}
	b, _ := io.ReadAll(io.LimitReader(r, 256))
	return strings.TrimSpace(string(b))
}
