// Package session defines the session cookie contract shared by the auth
// handlers: name, lifetime and security attributes.
package session

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CookieName is the name of the session token cookie.
const CookieName = "session_token"

// MaxAge is the cookie lifetime in seconds (7 days). Because tokens are
// self-encoding and the server keeps no session record, this is the only
// expiry the session has.
const MaxAge = 7 * 24 * 60 * 60

// Set writes the session cookie on the response. The cookie is HttpOnly with
// SameSite=Lax on Path=/; secure should be true on production/TLS origins.
//
// The cookie is written with http.SetCookie rather than gin's SetCookie:
// gin URL-escapes the value, which would turn the token's ":" delimiter
// into "%3A" on the wire. The token must reach the client verbatim.
func Set(c *gin.Context, tok string, secure bool) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     CookieName,
		Value:    tok,
		Path:     "/",
		MaxAge:   MaxAge,
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear expires the session cookie immediately.
func Clear(c *gin.Context, secure bool) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// FromRequest returns the session token submitted with the request,
// or ok=false when the cookie is absent or empty. The raw cookie value is
// used as-is; no unescaping is applied to the token.
func FromRequest(c *gin.Context) (string, bool) {
	cookie, err := c.Request.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}
