package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"beacon/internal/auth"
	"beacon/internal/httputil"
)

// Preview upgrades requests carrying a valid editor token to draft-preview
// requests. Requests without an Authorization header pass through untouched
// as public reads; a present but invalid token is rejected outright so an
// editor with an expired token sees the failure instead of a silent 404.
// A nil verifier disables previewing entirely.
func Preview(verifier auth.PreviewVerifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || verifier == nil {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				httputil.RespondError(w, http.StatusUnauthorized, "malformed Authorization header")
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				httputil.RespondError(w, http.StatusUnauthorized, err.Error())
				return
			}

			logger.Debug("preview request authorized",
				"subject", claims.Subject,
				"path", r.URL.Path,
				"request_id", httputil.GetRequestID(r),
			)

			next.ServeHTTP(w, httputil.WithPreview(r))
		})
	}
}
