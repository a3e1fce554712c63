// internal/app/system/auth/auth.go
package auth

import (
	"context"
	"net/http"
	"strings"
)

/*─────────────────────────────────────────────────────────────────────────────*
 | Current-User helper                                                         |
 *─────────────────────────────────────────────────────────────────────────────*/

// SessionUser is what we decode from the bearer token and inject into
// r.Context().
type SessionUser struct {
	ID    string
	Name  string
	Email string
	Role  string
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the user & "found?" flag.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok
}

func withUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

// WithTestUser injects a user directly into the request context. Test use only.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}

/*─────────────────────────────────────────────────────────────────────────────*
 | Middleware                                                                  |
 *─────────────────────────────────────────────────────────────────────────────*/

// LoadSessionUser injects the user into context when the request carries a
// valid bearer token. Requests without one pass through anonymous; gating
// is RequireSignedIn / RequireRole's job.
func (m *TokenManager) LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if token, found := strings.CutPrefix(header, "Bearer "); found {
			if claims, err := m.Verify(strings.TrimSpace(token)); err == nil {
				r = withUser(r, &SessionUser{
					ID:    claims.Subject,
					Name:  claims.FullName,
					Email: claims.Email,
					Role:  claims.Role,
				})
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSignedIn ensures there is a user in context (set by LoadSessionUser).
// API callers get a plain 401; there is no login page to redirect to.
func RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole ensures the current user has one of the allowed roles.
// Role comparison is case-insensitive.
func RequireRole(allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[strings.ToLower(strings.TrimSpace(role))] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := CurrentUser(r)
			if !ok {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			if _, has := set[strings.ToLower(u.Role)]; !has {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
