package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/umakantv/go-utils/cache"
)

// SessionCookieName carries the signed session token
const SessionCookieName = "kalma_session"

// revokedKeyPrefix marks logged-out token ids in the cache until they expire
const revokedKeyPrefix = "revoked_session:"

var ErrBadToken = errors.New("invalid session token")

// Claims identify the logged-in user by normalized email
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Sessions issues and verifies the signed session cookie.
// No session data lives on the server; the cache only remembers revoked ids.
type Sessions struct {
	secret  []byte
	ttl     time.Duration
	secure  bool
	revoked cache.Cache
	now     func() time.Time
}

// NewSessions creates the cookie manager. revoked may be nil, in which case
// logout only clears the browser cookie.
func NewSessions(secret string, ttl time.Duration, secure bool, revoked cache.Cache) *Sessions {
	return &Sessions{
		secret:  []byte(secret),
		ttl:     ttl,
		secure:  secure,
		revoked: revoked,
		now:     time.Now,
	}
}

// MakeToken signs a session token for email
func (s *Sessions) MakeToken(email string) (string, error) {
	now := s.now()
	c := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.secret)
}

// ParseToken verifies signature and expiry
func (s *Sessions) ParseToken(raw string) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (any, error) {
		// block alg confusion
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrBadToken
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	c, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid || c.Email == "" {
		return nil, ErrBadToken
	}
	return c, nil
}

// Issue sets the session cookie for email
func (s *Sessions) Issue(w http.ResponseWriter, email string) error {
	tok, err := s.MakeToken(email)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    tok,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.ttl.Seconds()),
	})
	return nil
}

// Identity returns the email of a valid, unrevoked session on r
func (s *Sessions) Identity(r *http.Request) (string, bool) {
	claims, err := s.fromRequest(r)
	if err != nil {
		return "", false
	}
	if s.isRevoked(claims.ID) {
		return "", false
	}
	return claims.Email, true
}

// Clear revokes the current token, if any, and expires the cookie
func (s *Sessions) Clear(w http.ResponseWriter, r *http.Request) {
	if claims, err := s.fromRequest(r); err == nil && s.revoked != nil && claims.ExpiresAt != nil {
		if ttl := claims.ExpiresAt.Time.Sub(s.now()); ttl > 0 {
			s.revoked.Set(revokedKeyPrefix+claims.ID, true, ttl)
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

func (s *Sessions) fromRequest(r *http.Request) (*Claims, error) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil, ErrBadToken
	}
	return s.ParseToken(cookie.Value)
}

func (s *Sessions) isRevoked(id string) bool {
	if s.revoked == nil || id == "" {
		return false
	}
	return s.revoked.Exists(revokedKeyPrefix + id)
}
