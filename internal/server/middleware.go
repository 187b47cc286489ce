package server

import (
	"context"
	"net/http"
)

type ctxKey int

const ctxKeyUser ctxKey = iota

func userAuthMiddleware(store Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, err := userFromRequest(r, store)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "not authenticated")
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyUser, u)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func userFrom(r *http.Request) User {
	return r.Context().Value(ctxKeyUser).(User)
}
