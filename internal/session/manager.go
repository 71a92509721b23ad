package session

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
)

const (
	defaultCookieName  = "ssgs_session"
	defaultCookiePath  = "/"
	defaultLifetime    = 30 * 24 * time.Hour
	defaultIdleTimeout = 7 * 24 * time.Hour

	// markerCookieName mirrors the signed session as a plain presence marker so
	// frontend scripts can tell whether a login exists without decoding anything.
	markerCookieName = "Authorization"
)

// ErrExpired indicates the stored session is no longer valid due to idle or absolute expiry.
var ErrExpired = errors.New("session expired")

// ErrInvalidConfig indicates the manager was initialised with missing or invalid options.
var ErrInvalidConfig = errors.New("session: invalid config")

// User captures the authenticated profile persisted in the session cookie.
type User struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Picture    string    `json:"picture,omitempty"`
	Provider   string    `json:"provider"`
	Plan       string    `json:"plan"`
	UsageCount int       `json:"usageCount"`
	MaxUsage   int       `json:"maxUsage"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Patch holds optional field updates merged into the stored user. Nil fields
// leave the current value untouched.
type Patch struct {
	Name       *string
	Picture    *string
	Plan       *string
	UsageCount *int
}

// Data is the full persisted session payload.
type Data struct {
	ID         string    `json:"id"`
	CreatedAt  time.Time `json:"createdAt"`
	LastActive time.Time `json:"lastActive"`
	ExpiresAt  time.Time `json:"expiresAt,omitempty"`
	CSRFToken  string    `json:"csrfToken,omitempty"`
	User       *User     `json:"user,omitempty"`
}

// Session holds mutable state for the current request lifecycle.
type Session struct {
	data      Data
	dirty     bool
	destroyed bool
	cfg       *Config
}

// Config controls cookie encoding and lifecycle limits for the session manager.
type Config struct {
	CookieName   string
	HashKey      []byte
	BlockKey     []byte
	CookiePath   string
	CookieDomain string
	CookieSecure bool

	IdleTimeout time.Duration
	Lifetime    time.Duration
	Now         func() time.Time
}

// Manager decodes and persists session state via signed (and optionally encrypted) cookies.
type Manager struct {
	cfg   Config
	codec *securecookie.SecureCookie
	now   func() time.Time
}

// NewManager constructs a Manager using the provided configuration.
func NewManager(cfg Config) (*Manager, error) {
	if len(cfg.HashKey) == 0 {
		return nil, fmt.Errorf("%w: hash key is required", ErrInvalidConfig)
	}
	if cfg.CookieName == "" {
		cfg.CookieName = defaultCookieName
	}
	if cfg.CookiePath == "" {
		cfg.CookiePath = defaultCookiePath
	}
	if cfg.Lifetime <= 0 {
		cfg.Lifetime = defaultLifetime
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = defaultIdleTimeout
	}
	nowFn := cfg.Now
	if nowFn == nil {
		nowFn = time.Now
	}

	codec := securecookie.New(cfg.HashKey, cfg.BlockKey)
	codec.SetSerializer(securecookie.JSONEncoder{})

	return &Manager{cfg: cfg, codec: codec, now: nowFn}, nil
}

// Load retrieves the session from the incoming request or creates a new
// anonymous one. A cookie that fails to decode yields a fresh session rather
// than an error, so corrupt state heals itself on the next response. Restoring
// a login requires the Authorization marker alongside the session cookie;
// without it the request proceeds anonymous.
func (m *Manager) Load(r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(m.cfg.CookieName)
	if err != nil {
		return m.newSession(m.now()), nil
	}

	var stored Data
	if err := m.codec.Decode(m.cfg.CookieName, cookie.Value, &stored); err != nil {
		return m.newSession(m.now()), nil
	}

	sess := m.sessionFromData(stored)
	if m.isExpired(sess, m.now()) {
		return nil, ErrExpired
	}
	if sess.data.User != nil && !hasLoginMarker(r) {
		return m.newSession(m.now()), nil
	}
	return sess, nil
}

func hasLoginMarker(r *http.Request) bool {
	c, err := r.Cookie(markerCookieName)
	return err == nil && c.Value == "Bearer"
}

// Save writes the session back to the response. Destroyed sessions clear both
// the session cookie and the login marker.
func (m *Manager) Save(w http.ResponseWriter, sess *Session) error {
	if sess == nil {
		return errors.New("session: nil session")
	}
	if sess.Destroyed() {
		m.Destroy(w)
		return nil
	}

	sess.Touch(m.now())
	encoded, err := m.codec.Encode(m.cfg.CookieName, sess.data)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	cookie := &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    encoded,
		Path:     m.cfg.CookiePath,
		Domain:   m.cfg.CookieDomain,
		Secure:   m.cfg.CookieSecure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if !sess.data.ExpiresAt.IsZero() {
		expiry := sess.data.ExpiresAt.UTC()
		cookie.Expires = expiry
		remaining := expiry.Sub(m.now())
		if remaining <= 0 {
			cookie.MaxAge = -1
		} else {
			cookie.MaxAge = int(remaining.Round(time.Second).Seconds())
		}
	}
	http.SetCookie(w, cookie)

	if sess.data.User != nil {
		http.SetCookie(w, &http.Cookie{
			Name:     markerCookieName,
			Value:    "Bearer",
			Path:     m.cfg.CookiePath,
			Domain:   m.cfg.CookieDomain,
			Secure:   m.cfg.CookieSecure,
			SameSite: http.SameSiteLaxMode,
			Expires:  cookie.Expires,
			MaxAge:   cookie.MaxAge,
		})
	} else {
		http.SetCookie(w, m.expiredCookie(markerCookieName, false))
	}
	return nil
}

// Destroy invalidates the session cookies immediately.
func (m *Manager) Destroy(w http.ResponseWriter) {
	http.SetCookie(w, m.expiredCookie(m.cfg.CookieName, true))
	http.SetCookie(w, m.expiredCookie(markerCookieName, false))
}

// New returns a fresh anonymous session using the manager configuration.
func (m *Manager) New() *Session {
	return m.newSession(m.now())
}

func (m *Manager) newSession(now time.Time) *Session {
	data := Data{
		ID:         mustGenerateToken(32),
		CreatedAt:  now.UTC(),
		LastActive: now.UTC(),
	}
	data.ExpiresAt = m.cfg.computeExpiry(now)
	return &Session{data: data, dirty: true, cfg: &m.cfg}
}

func (m *Manager) sessionFromData(d Data) *Session {
	if d.ID == "" {
		d.ID = mustGenerateToken(32)
		d.CreatedAt = m.now().UTC()
		d.LastActive = d.CreatedAt
		d.ExpiresAt = m.cfg.computeExpiry(d.CreatedAt)
	}
	return &Session{data: d, cfg: &m.cfg}
}

func (m *Manager) isExpired(sess *Session, now time.Time) bool {
	if sess == nil {
		return true
	}
	now = now.UTC()
	if !sess.data.ExpiresAt.IsZero() && now.After(sess.data.ExpiresAt.UTC()) {
		return true
	}
	if m.cfg.IdleTimeout > 0 {
		last := sess.data.LastActive
		if last.IsZero() {
			last = sess.data.CreatedAt
		}
		if !last.IsZero() && now.Sub(last) > m.cfg.IdleTimeout {
			return true
		}
	}
	return false
}

func (m *Manager) expiredCookie(name string, httpOnly bool) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     m.cfg.CookiePath,
		Domain:   m.cfg.CookieDomain,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		Secure:   m.cfg.CookieSecure,
		HttpOnly: httpOnly,
		SameSite: http.SameSiteLaxMode,
	}
}

// ID returns the stable session identifier. Wizard state is keyed on it.
func (s *Session) ID() string { return s.data.ID }

// User returns the persisted profile, or nil for anonymous sessions.
func (s *Session) User() *User {
	if s.data.User == nil {
		return nil
	}
	copied := *s.data.User
	return &copied
}

// LoggedIn reports whether the session carries an authenticated profile.
func (s *Session) LoggedIn() bool { return s.data.User != nil }

// SetUser replaces the session profile. A fresh session ID is issued when a
// profile is set on a previously anonymous session, to prevent fixation.
func (s *Session) SetUser(user *User) {
	wasAnonymous := s.data.User == nil
	if user == nil {
		if s.data.User == nil {
			return
		}
		s.data.User = nil
		s.dirty = true
		return
	}
	copied := *user
	s.data.User = &copied
	if wasAnonymous {
		s.data.ID = mustGenerateToken(32)
		s.data.CSRFToken = ""
	}
	s.dirty = true
}

// Apply merges non-nil patch fields into the stored profile. Anonymous
// sessions ignore the patch.
func (s *Session) Apply(p Patch) {
	u := s.data.User
	if u == nil {
		return
	}
	changed := false
	if p.Name != nil && u.Name != *p.Name {
		u.Name = *p.Name
		changed = true
	}
	if p.Picture != nil && u.Picture != *p.Picture {
		u.Picture = *p.Picture
		changed = true
	}
	if p.Plan != nil && u.Plan != *p.Plan {
		u.Plan = *p.Plan
		changed = true
	}
	if p.UsageCount != nil && u.UsageCount != *p.UsageCount {
		u.UsageCount = *p.UsageCount
		changed = true
	}
	if changed {
		s.dirty = true
	}
}

// EnsureCSRFToken returns the existing CSRF token or generates one on demand.
func (s *Session) EnsureCSRFToken() (string, error) {
	if s.data.CSRFToken != "" {
		return s.data.CSRFToken, nil
	}
	token, err := generateToken(32)
	if err != nil {
		return "", err
	}
	s.data.CSRFToken = token
	s.dirty = true
	return token, nil
}

// CSRFToken returns the stored CSRF token value.
func (s *Session) CSRFToken() string { return s.data.CSRFToken }

// Destroy marks the session for deletion at the end of the request.
func (s *Session) Destroy() {
	s.destroyed = true
	s.dirty = true
}

// Destroyed exposes the destroy marker.
func (s *Session) Destroyed() bool { return s.destroyed }

// Touch updates the last active timestamp.
func (s *Session) Touch(now time.Time) {
	now = now.UTC()
	if now.After(s.data.LastActive) {
		s.data.LastActive = now
		s.dirty = true
	}
}

// Dirty indicates whether the session contents changed during this request.
func (s *Session) Dirty() bool { return s.dirty }

func (cfg *Config) computeExpiry(from time.Time) time.Time {
	if cfg == nil || cfg.Lifetime <= 0 {
		return time.Time{}
	}
	return from.UTC().Add(cfg.Lifetime).UTC()
}

func mustGenerateToken(length int) string {
	token, err := generateToken(length)
	if err != nil {
		panic(err)
	}
	return token
}

func generateToken(length int) (string, error) {
	if length <= 0 {
		length = 32
	}
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}
