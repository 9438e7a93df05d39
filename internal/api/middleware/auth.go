package middleware

import (
	"context"
	"net/http"
	"strings"

	"cmcs_backend/internal/common"
	"cmcs_backend/internal/common/security"

	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const (
	UserIDCtxKey    contextKey = "userID"
	UserRolesCtxKey contextKey = "userRoles"
)

func Authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context()) // Extracts token from Authorization header

		if err != nil {
			if strings.Contains(err.Error(), "token not found") || token == nil {
				common.RespondWithError(w, http.StatusUnauthorized, "Authorization token required")
			} else {
				common.RespondWithError(w, http.StatusUnauthorized, "Invalid token: "+err.Error())
			}
			return
		}

		if token == nil {
			common.RespondWithError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		userID, err := security.GetUserIDFromClaims(claims)
		if err != nil {
			common.RespondWithError(w, http.StatusUnauthorized, "Invalid token claims: "+err.Error())
			return
		}
		userRoles, err := security.GetUserRolesFromClaims(claims)
		if err != nil {
			common.RespondWithError(w, http.StatusUnauthorized, "Invalid token claims: "+err.Error())
			return
		}

		ctx := context.WithValue(r.Context(), UserIDCtxKey, userID)
		ctx = context.WithValue(ctx, UserRolesCtxKey, userRoles)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAnyRole gates a route on the caller holding at least one of the
// given roles. All role checks happen here at the boundary; the services
// trust their callers.
func RequireAnyRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userRoles, ok := GetUserRolesFromContext(r.Context())
			if !ok || !hasAny(userRoles, roles) {
				common.RespondWithError(w, http.StatusForbidden, "Insufficient role for this operation")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func hasAny(held, wanted []string) bool {
	for _, h := range held {
		for _, w := range wanted {
			if h == w {
				return true
			}
		}
	}
	return false
}

// Helper to get user ID from context
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(string)
	return userID, ok
}

// Helper to get user roles from context
func GetUserRolesFromContext(ctx context.Context) ([]string, bool) {
	userRoles, ok := ctx.Value(UserRolesCtxKey).([]string)
	return userRoles, ok
}

// HasRole reports whether the caller in ctx holds the given role.
func HasRole(ctx context.Context, role string) bool {
	roles, ok := GetUserRolesFromContext(ctx)
	return ok && hasAny(roles, []string{role})
}
