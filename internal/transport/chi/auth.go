package chi

import (
	"context"
	"net/http"
	"strings"

	"github.com/kailas-cloud/promptsearch/internal/transport/api"
)

// exemptPaths are routes that bypass authentication (health, metrics).
var exemptPaths = map[string]struct{}{
	api.HealthPath:  {},
	api.MetricsPath: {},
}

type requesterKey struct{}

// ContextWithRequester stores the authenticated user id in the context.
func ContextWithRequester(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, requesterKey{}, userID)
}

// RequesterFromContext returns the authenticated user id, or "" for anonymous callers.
func RequesterFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requesterKey{}).(string)
	return id
}

// IdentityMiddleware resolves the caller from a Bearer token.
// tokens maps a token to the user id it authenticates. A request without an
// Authorization header proceeds anonymously; a malformed or unknown token is rejected.
func IdentityMiddleware(tokens map[string]string) func(http.Handler) http.Handler {
	valid := make(map[string]string, len(tokens))
	for token, user := range tokens {
		if token != "" && user != "" {
			valid[token] = user
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := exemptPaths[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			auth := r.Header.Get("Authorization")
			if auth == "" {
				next.ServeHTTP(w, r)
				return
			}

			const bearerPrefix = "Bearer "
			if !strings.HasPrefix(auth, bearerPrefix) {
				writeError(w, http.StatusUnauthorized,
					api.ErrorResponseCodeUnauthorized, "authorization header must use Bearer scheme")
				return
			}

			user, ok := valid[strings.TrimSpace(auth[len(bearerPrefix):])]
			if !ok {
				writeError(w, http.StatusUnauthorized, api.ErrorResponseCodeUnauthorized, "invalid token")
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithRequester(r.Context(), user)))
		})
	}
}
