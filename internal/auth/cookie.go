package auth

import (
	"net/http"
	"time"
)

// CookieName is the session cookie carrying the signed token.
const CookieName = "jwt"

// Cookies writes and clears the session cookie.
type Cookies struct {
	Secure bool
	TTL    time.Duration
}

func (c Cookies) Set(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(c.TTL / time.Second),
		Expires:  time.Now().Add(c.TTL),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   c.Secure,
	})
}

// Clear instructs the client to discard its session cookie.
func (c Cookies) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   c.Secure,
	})
}

// TokenFrom reads the session token from the request cookie.
func TokenFrom(r *http.Request) string {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return c.Value
}
