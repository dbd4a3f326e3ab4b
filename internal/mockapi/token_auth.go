package mockapi

import (
	"context"
	"net/http"
	"strings"
)

type principalContextKey struct{}

// TokenAuthFilter authenticates requests bearing an access token.
type TokenAuthFilter struct {
	store     *Store
	endpoints *BaseEndpoints
}

// Decorate wraps handle so that it only runs for requests bearing a valid,
// unexpired access token. The identifier of the authenticated User is made
// available to handle via principalID.
func (t *TokenAuthFilter) Decorate(handle http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		headerValue := r.Header.Get("Authorization")
		if headerValue == "" {
			t.endpoints.WriteError(
				w,
				r,
				&ErrAuthentication{
					Code:   "MISSING_ACCESS_TOKEN",
					Reason: `"Authorization" header is missing.`,
				},
			)
			return
		}
		headerValueParts := strings.SplitN(headerValue, " ", 2)
		if len(headerValueParts) != 2 || headerValueParts[0] != "Bearer" {
			t.endpoints.WriteError(
				w,
				r,
				&ErrAuthentication{
					Code:   "INVALID_ACCESS_TOKEN",
					Reason: `"Authorization" header is malformed.`,
				},
			)
			return
		}
		userID, err := t.store.Authenticate(headerValueParts[1])
		if err != nil {
			t.endpoints.WriteError(w, r, err)
			return
		}
		ctx := context.WithValue(r.Context(), principalContextKey{}, userID)
		handle(w, r.WithContext(ctx))
	}
}

// principalID returns the identifier of the authenticated User, or zero if
// the request was not authenticated.
func principalID(ctx context.Context) int64 {
	id, _ := ctx.Value(principalContextKey{}).(int64)
	return id
}

// bearerToken returns the access token presented with the request, if any.
func bearerToken(r *http.Request) string {
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}
