package handlers

import (
	"encoding/base64"
	"net/http"
)

const flashCookieName = "kalma_flash"

// setFlash queues a one-time message for the next rendered page
func setFlash(w http.ResponseWriter, msg string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    base64.RawURLEncoding.EncodeToString([]byte(msg)),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   60,
	})
}

// popFlash reads and clears the pending message
func popFlash(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil || cookie.Value == "" {
		return ""
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
	msg, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return ""
	}
	return string(msg)
}

// redirectWithFlash is the form handlers' answer to both success and failure
func redirectWithFlash(w http.ResponseWriter, r *http.Request, msg, target string) {
	if msg != "" {
		setFlash(w, msg)
	}
	http.Redirect(w, r, target, http.StatusFound)
}
