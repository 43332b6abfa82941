package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

type contextKey string

const (
	claimsKey  contextKey = "auth_claims"
	subjectKey contextKey = "auth_subject"
)

// ClaimsFromContext extracts JWT claims from request context.
func ClaimsFromContext(ctx context.Context) *Claims {
	claims, _ := ctx.Value(claimsKey).(*Claims)
	return claims
}

// SubjectFromContext extracts the subject ID string from request context.
func SubjectFromContext(ctx context.Context) string {
	sub, _ := ctx.Value(subjectKey).(string)
	return sub
}

// CoachIDFromContext parses the subject as the acting coach's UUID.
func CoachIDFromContext(ctx context.Context) (uuid.UUID, error) {
	sub := SubjectFromContext(ctx)
	if sub == "" {
		return uuid.Nil, fmt.Errorf("no subject in context")
	}
	return uuid.Parse(sub)
}

// PermittedTeams returns the team IDs the caller may read. Directors see
// every team and return (nil, true); coaches return their claim list. An
// empty list means "no data", never an error.
func PermittedTeams(ctx context.Context) (teams []uuid.UUID, all bool) {
	claims := ClaimsFromContext(ctx)
	if claims == nil {
		return nil, false
	}
	if claims.Realm == RealmDirector {
		return nil, true
	}
	for _, raw := range claims.Teams {
		if id, err := uuid.Parse(raw); err == nil {
			teams = append(teams, id)
		}
	}
	return teams, false
}

// CanAccessTeam reports whether the caller may read the given team.
func CanAccessTeam(ctx context.Context, teamID uuid.UUID) bool {
	teams, all := PermittedTeams(ctx)
	if all {
		return true
	}
	for _, id := range teams {
		if id == teamID {
			return true
		}
	}
	return false
}

// Authenticate returns middleware that validates tokens from either
// realm and stores the claims in context.
func Authenticate(jwtMgr *JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := extractAndValidate(r, jwtMgr)
			if err != nil {
				http.Error(w, `{"code":"UNAUTHORIZED","message":"`+err.Error()+`"}`, http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			ctx = context.WithValue(ctx, subjectKey, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractAndValidate(r *http.Request, jwtMgr *JWTManager) (*Claims, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, fmt.Errorf("missing Authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return nil, fmt.Errorf("invalid Authorization format")
	}

	return jwtMgr.ValidateToken(parts[1])
}
