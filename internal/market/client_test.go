package market

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreAnalysis_CoercesMixedValues(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/data/score", r.URL.Path)
		assert.Equal(t, "3110009", r.URL.Query().Get("districtCode"))
		assert.Equal(t, "CS100001", r.URL.Query().Get("categoryCode"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"code": "AN206",
			"message": "분석 점수를 성공적으로 응답하였습니다",
			"data": {
				"유동인구": 19,
				"동종업종_점포수": "61.4",
				"일방문자수": null,
				"상권_평균매출": "N/A",
				"최종점수": "29.7"
			}
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	score, err := c.ScoreAnalysis(context.Background(), "3110009", "CS100001")
	require.NoError(t, err)

	assert.Equal(t, 19.0, score.Metric("유동인구"))
	assert.Equal(t, 61.4, score.Metric("동종업종_점포수"))
	assert.Equal(t, 0.0, score.Metric("일방문자수"))
	assert.Equal(t, 0.0, score.Metric("상권_평균매출"))
	assert.Equal(t, 29.7, score.Final())
}

func TestGenerateText_AppCodeMismatchFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		// HTTP 200 with a non-success app code must still fail.
		_, _ = w.Write([]byte(`{"code":"AN500","message":"생성에 실패했습니다","data":null}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.GenerateText(context.Background(), GenerateRequest{Category: "한식"})
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "AN500", apiErr.Code)
}

func TestDistrictAnalysis_HTTPErrorFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.DistrictAnalysis(context.Background(), "3110009")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestSavePromotion_ReturnsResultString(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/promotion", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code":"AN202","message":"ok","data":"홍보물을 성공적으로 저장하였습니다."}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	res, err := c.SavePromotion(context.Background(), "홍보문구", []string{"https://img/1.jpg"})
	require.NoError(t, err)
	assert.Equal(t, "홍보물을 성공적으로 저장하였습니다.", res)
}

func TestUploadPost_ChecksHTTPStatusOnly(t *testing.T) {
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, 256)
		n, _ := r.Body.Read(buf)
		gotBody = string(buf[:n])
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	require.NoError(t, c.UploadPost(context.Background(), "p_1724800000000"))
	assert.Contains(t, gotBody, "promotion_id")
}

func TestOfflineClientServesFixtures(t *testing.T) {
	c := NewClient("")

	text, err := c.GenerateText(context.Background(), GenerateRequest{})
	require.NoError(t, err)
	assert.NotEmpty(t, text)

	images, err := c.GenerateImages(context.Background(), GenerateRequest{})
	require.NoError(t, err)
	assert.Len(t, images, 3)

	score, err := c.ScoreAnalysis(context.Background(), "3110009", "CS100001")
	require.NoError(t, err)
	assert.Equal(t, 29.7, score.Final())

	sent, err := c.AnalyzeSentiment(context.Background(), []string{"와 맛있겠다", "좀 비싸요", "가보고 싶어요"})
	require.NoError(t, err)
	assert.Equal(t, 3, sent.Count)
	assert.NotZero(t, sent.PositiveRatio)
}
