package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/agonglab/ssgs-web/internal/market"
)

func testCredential(t *testing.T, sub, email, name string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":     sub,
		"email":   email,
		"name":    name,
		"picture": "https://lh3.googleusercontent.com/a/photo",
	})
	signed, err := token.SignedString([]byte("test-key"))
	require.NoError(t, err)
	return signed
}

func TestDecodeCredential(t *testing.T) {
	cred := testCredential(t, "108234", "founder@example.com", "김창업")
	gu, err := DecodeCredential(cred)
	require.NoError(t, err)
	assert.Equal(t, "108234", gu.Sub)
	assert.Equal(t, "founder@example.com", gu.Email)
	assert.Equal(t, "김창업", gu.Name)
	assert.NotEmpty(t, gu.Picture)
}

func TestDecodeCredential_Garbage(t *testing.T) {
	_, err := DecodeCredential("not-a-jwt")
	assert.ErrorIs(t, err, ErrBadCredential)
	_, err = DecodeCredential("")
	assert.ErrorIs(t, err, ErrBadCredential)
}

func TestLogin_ExchangesWithBackend(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	svc := NewService(market.NewClient(srv.URL), zap.NewNop())
	user, err := svc.Login(context.Background(), testCredential(t, "108234", "founder@example.com", "김창업"))
	require.NoError(t, err)

	assert.Equal(t, "/oauth2/authorization/google", gotPath)
	assert.Equal(t, "108234", user.ID)
	assert.Equal(t, "google", user.Provider)
	assert.Equal(t, "FREE", user.Plan)
	assert.Equal(t, 0, user.UsageCount)
	assert.Equal(t, 3, user.MaxUsage)
	assert.False(t, user.CreatedAt.IsZero())
}

func TestLogin_BackendRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer srv.Close()

	svc := NewService(market.NewClient(srv.URL), zap.NewNop())
	_, err := svc.Login(context.Background(), testCredential(t, "108234", "a@b.c", "x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestValidate_OverwritesFromBackend(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/me", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"108234","email":"founder@example.com","name":"김창업","plan":"PRO","usageCount":2,"maxUsage":10}`))
	}))
	defer srv.Close()

	svc := NewService(market.NewClient(srv.URL), zap.NewNop())
	u, err := svc.Validate(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "PRO", u.Plan)
	assert.Equal(t, 2, u.UsageCount)
	assert.Equal(t, 10, u.MaxUsage)
}

func TestLogout_SwallowsBackendFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer srv.Close()

	svc := NewService(market.NewClient(srv.URL), zap.NewNop())
	// Must not panic or surface an error to the caller.
	svc.Logout(context.Background())
}

func TestDemoLogin(t *testing.T) {
	svc := NewService(market.NewClient(""), zap.NewNop())
	u := svc.DemoLogin()
	assert.Equal(t, "demo_user", u.ID)
	assert.Equal(t, "FREE", u.Plan)
	assert.Equal(t, 3, u.MaxUsage)
}
