package middleware

import (
	"net/http"

	"docu360/internal/session"

	"github.com/casbin/casbin/v2"
)

// Session keys written by the auth handler on login.
const (
	SessionKeySubject    = "user_subject"
	SessionKeyRole       = "user_role"
	SessionKeyCustomerID = "user_customer_id"
)

// Authorizer creates a new middleware for authorization. It resolves the
// actor from the session, adds it to the request context, and enforces the
// Casbin route policy by role. Ownership of individual products is checked
// in the service layer, not here.
func Authorizer(e *casbin.Enforcer, sm session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			subject := sm.GetString(r.Context(), SessionKeySubject)
			role := sm.GetString(r.Context(), SessionKeyRole)
			if subject == "" {
				subject = "anonymous"
			}
			if role == "" {
				role = "anonymous"
			}

			userInfo := &UserInfo{
				Subject:    subject,
				Role:       role,
				CustomerID: sm.GetString(r.Context(), SessionKeyCustomerID),
			}
			r = r.WithContext(SetUserInfo(r.Context(), userInfo))

			allowed, err := e.Enforce(role, r.URL.Path, r.Method)
			if err != nil {
				http.Error(w, "Authorization error", http.StatusInternalServerError)
				return
			}
			if !allowed {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
