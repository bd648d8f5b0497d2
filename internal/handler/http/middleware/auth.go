package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/northwick-labs/attendance-pipeline-go/internal/handler/http/response"
	"github.com/northwick-labs/attendance-pipeline-go/internal/pkg/token"
)

// ServiceTokenRequired guards the mutating endpoints. The request must carry
// a verified bearer token (jwtauth.Verifier runs first) whose type claim
// marks it as a service token.
func ServiceTokenRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			jwtToken, _, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if jwtToken == nil {
				response.Unauthorized(w, "Missing service token")
				return
			}

			claims, err := jwtToken.AsMap(r.Context())
			if err != nil {
				response.Unauthorized(w, "Invalid service token")
				return
			}
			tokenType, ok := claims["type"].(string)
			if !ok || tokenType != token.TypeService {
				response.Forbidden(w, "A service token is required")
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}
