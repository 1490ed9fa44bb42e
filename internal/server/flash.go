package server

import (
	"encoding/base64"
	"net/http"
	"strings"
)

const flashCookieName = "flash"

// setFlash stores one-shot notices for the next page render. The value
// is base64-encoded so notices survive cookie value restrictions.
func setFlash(w http.ResponseWriter, notices ...string) {
	if len(notices) == 0 {
		return
	}
	encoded := base64.RawURLEncoding.EncodeToString([]byte(strings.Join(notices, "\n")))
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    encoded,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlashes returns pending notices and clears the flash cookie.
func popFlashes(w http.ResponseWriter, r *http.Request) []string {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	decoded, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}
	return strings.Split(string(decoded), "\n")
}
