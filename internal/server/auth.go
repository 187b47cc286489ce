package server

import (
	"errors"
	"net/http"
	"strings"
)

var errNoSession = errors.New("no valid session")

const sessionCookieName = "session"

// sessionToken reads the session cookie, then a Bearer token, then the
// token query parameter used by EventSource clients.
func sessionToken(r *http.Request) string {
	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	if token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); found {
		return strings.TrimSpace(token)
	}
	return r.URL.Query().Get("token")
}

func userFromRequest(r *http.Request, store Store) (User, error) {
	token := sessionToken(r)
	if token == "" {
		return User{}, errNoSession
	}
	return store.UserFromSession(r.Context(), token)
}
