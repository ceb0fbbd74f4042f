package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/treejer/ranger/backend/internal/domain"
)

// NewBearerAuth returns a middleware that requires an HS256-signed JWT in the
// Authorization header. Missing, malformed, badly signed and expired tokens
// are rejected with 401. The token's subject is stored on the request context
// as the agent id (see domain.AgentFromContext).
func NewBearerAuth(secret []byte) func(http.Handler) http.Handler {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	keyFunc := func(*jwt.Token) (any, error) { return secret, nil }

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				unauthorized(w, "missing Authorization header")
				return
			}
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || raw == "" {
				unauthorized(w, "Authorization header must be a bearer token")
				return
			}

			var claims jwt.RegisteredClaims
			token, err := parser.ParseWithClaims(raw, &claims, keyFunc)
			if err != nil || !token.Valid {
				unauthorized(w, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(domain.WithAgent(r.Context(), claims.Subject)))
		})
	}
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="ranger"`)
	writeError(w, http.StatusUnauthorized, "unauthorized", message)
}
