package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/umakantv/go-utils/cache"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("p1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "p1" || !strings.HasPrefix(hash, "$2") {
		t.Fatalf("expected bcrypt hash, got %q", hash)
	}
	if !CheckPassword(hash, "p1") {
		t.Fatal("expected matching password")
	}
	if CheckPassword(hash, "p2") {
		t.Fatal("expected mismatch for wrong password")
	}
	if CheckPassword("not-a-hash", "p1") {
		t.Fatal("malformed hash must not match")
	}

	other, err := HashPassword("p1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if other == hash {
		t.Fatal("expected salted hashes to differ")
	}
}

func TestSessionRoundTrip(t *testing.T) {
	s := NewSessions("secret", time.Hour, false, nil)

	rec := httptest.NewRecorder()
	if err := s.Issue(rec, "ann@x.com"); err != nil {
		t.Fatalf("issue: %v", err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != SessionCookieName || !cookies[0].HttpOnly {
		t.Fatalf("unexpected cookies: %+v", cookies)
	}

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(cookies[0])
	email, ok := s.Identity(req)
	if !ok || email != "ann@x.com" {
		t.Fatalf("Identity() = %q, %v", email, ok)
	}
}

func TestSessionRejectsTampering(t *testing.T) {
	s := NewSessions("secret", time.Hour, false, nil)
	tok, err := s.MakeToken("ann@x.com")
	if err != nil {
		t.Fatalf("make token: %v", err)
	}

	other := NewSessions("another-secret", time.Hour, false, nil)
	if _, err := other.ParseToken(tok); err == nil {
		t.Fatal("token signed with another secret must be rejected")
	}
	if _, err := s.ParseToken(tok + "x"); err == nil {
		t.Fatal("modified token must be rejected")
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "garbage"})
	if _, ok := s.Identity(req); ok {
		t.Fatal("garbage cookie must not yield an identity")
	}
	if _, ok := s.Identity(httptest.NewRequest(http.MethodGet, "/", nil)); ok {
		t.Fatal("missing cookie must not yield an identity")
	}
}

func TestSessionExpiry(t *testing.T) {
	s := NewSessions("secret", time.Hour, false, nil)
	issued := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return issued }
	tok, err := s.MakeToken("ann@x.com")
	if err != nil {
		t.Fatalf("make token: %v", err)
	}

	s.now = func() time.Time { return issued.Add(30 * time.Minute) }
	if _, err := s.ParseToken(tok); err != nil {
		t.Fatalf("token should still be valid: %v", err)
	}

	s.now = func() time.Time { return issued.Add(2 * time.Hour) }
	if _, err := s.ParseToken(tok); err == nil {
		t.Fatal("expired token must be rejected")
	}
}

func TestClearExpiresCookie(t *testing.T) {
	s := NewSessions("secret", time.Hour, true, nil)
	tok, err := s.MakeToken("ann@x.com")
	if err != nil {
		t.Fatalf("make token: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: tok})

	rec := httptest.NewRecorder()
	s.Clear(rec, req)
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge >= 0 || cookies[0].Value != "" || !cookies[0].Secure {
		t.Fatalf("expected expired secure cookie, got %+v", cookies)
	}
}

func TestClearRevokesToken(t *testing.T) {
	revoked, err := cache.New(cache.Config{Type: "memory"})
	if err != nil {
		t.Fatalf("cache: %v", err)
	}
	defer revoked.Close()
	s := NewSessions("secret", time.Hour, false, revoked)

	withCookie := func(tok string) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: tok})
		return req
	}

	tok, err := s.MakeToken("ann@x.com")
	if err != nil {
		t.Fatalf("make token: %v", err)
	}
	other, err := s.MakeToken("ann@x.com")
	if err != nil {
		t.Fatalf("make token: %v", err)
	}
	if _, ok := s.Identity(withCookie(tok)); !ok {
		t.Fatal("fresh token should be valid")
	}

	s.Clear(httptest.NewRecorder(), withCookie(tok))

	if _, ok := s.Identity(withCookie(tok)); ok {
		t.Fatal("a replayed cookie must not survive logout")
	}
	// revocation is per token, other sessions stay logged in
	if email, ok := s.Identity(withCookie(other)); !ok || email != "ann@x.com" {
		t.Fatalf("other session = %q, %v", email, ok)
	}
}
