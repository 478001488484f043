package theme

import (
	"net/http"
	"time"
)

const (
	// CookieName stores the persisted preference.
	CookieName = "theme"
	// PrefersColorSchemeHeader is the client hint carrying the OS preference.
	PrefersColorSchemeHeader = "Sec-CH-Prefers-Color-Scheme"

	cookieMaxAge = 365 * 24 * time.Hour
)

// FromRequest initialises a context from the theme cookie and the
// prefers-color-scheme client hint.
func FromRequest(r *http.Request) *Context {
	var persisted string
	if c, err := r.Cookie(CookieName); err == nil {
		persisted = c.Value
	}
	return Init(persisted, r.Header.Get(PrefersColorSchemeHeader) == string(Dark))
}

// SetCookie persists mode on the response.
func SetCookie(w http.ResponseWriter, mode Mode) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    string(mode),
		Path:     "/",
		MaxAge:   int(cookieMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
