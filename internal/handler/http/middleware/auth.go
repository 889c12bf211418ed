package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/workpulse/attendance-gateway/internal/handler/http/response"
	appJWT "github.com/workpulse/attendance-gateway/internal/pkg/jwt"
)

// AuthRequired verifies the inbound access token and stashes the employee
// identity plus the raw bearer credential on the context. The raw credential
// is forwarded verbatim on upstream store calls.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.Unauthorized(w, "Missing bearer token")
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.Unauthorized(w, "Invalid bearer token")
				return
			}

			tokenType, ok := claims["type"].(string)
			if !ok || tokenType != "access" {
				response.Unauthorized(w, "Invalid bearer token")
				return
			}

			employeeID, ok := claims["employee_id"].(string)
			if !ok || employeeID == "" {
				response.Unauthorized(w, "Token carries no employee identity")
				return
			}

			ctx := appJWT.WithEmployeeID(r.Context(), employeeID)
			ctx = appJWT.WithCredential(ctx, jwtauth.TokenFromHeader(r))

			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(hfn)
	}
}
