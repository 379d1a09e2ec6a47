package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"strings"
	"time"
)

// SessionCookie writes and reads the signed session id cookie.
// The value has the form "<session id>.<base64url hmac-sha256>".
type SessionCookie struct {
	Name     string
	Secret   []byte
	MaxAge   time.Duration
	Secure   bool
	SameSite http.SameSite
}

// Write sets the session cookie for sessionID
func (c SessionCookie) Write(w http.ResponseWriter, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    sessionID + "." + c.sign(sessionID),
		Path:     "/",
		MaxAge:   int(c.MaxAge.Seconds()),
		Expires:  time.Now().Add(c.MaxAge),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: c.SameSite,
	})
}

// Clear expires the session cookie
func (c SessionCookie) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: c.SameSite,
	})
}

// Read returns the session id carried by the request, if its signature is valid
func (c SessionCookie) Read(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(c.Name)
	if err != nil || cookie.Value == "" {
		return "", false
	}

	dot := strings.LastIndexByte(cookie.Value, '.')
	if dot <= 0 {
		return "", false
	}
	sessionID, sig := cookie.Value[:dot], cookie.Value[dot+1:]
	if !hmac.Equal([]byte(sig), []byte(c.sign(sessionID))) {
		return "", false
	}
	return sessionID, true
}

func (c SessionCookie) sign(value string) string {
	mac := hmac.New(sha256.New, c.Secret)
	mac.Write([]byte(value))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
