// internal/adapters/in/http/middleware/auth.go
package middleware

import (
	"context"
	"net/http"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/sirupsen/logrus"
)

// TokenVerifier is the part of the Firebase auth client the middleware uses.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

var _ TokenVerifier = (*fbauth.Client)(nil)

// AuthMiddleware checks "Authorization: Bearer <ID_TOKEN>" against Firebase
// and puts uid and email on the request context.
type AuthMiddleware struct {
	Verifier TokenVerifier
	Log      logrus.FieldLogger
}

func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m == nil || m.Verifier == nil {
			writeAuthError(w, http.StatusServiceUnavailable, "auth middleware not initialized")
			return
		}

		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			writeAuthError(w, http.StatusUnauthorized, "unauthorized: missing bearer token")
			return
		}
		idToken := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if idToken == "" {
			writeAuthError(w, http.StatusUnauthorized, "unauthorized: empty bearer token")
			return
		}

		token, err := m.Verifier.VerifyIDToken(r.Context(), idToken)
		if err != nil {
			if m.Log != nil {
				m.Log.WithField("request_id", RequestIDFrom(r.Context())).WithError(err).Warn("id token rejected")
			}
			writeAuthError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		uid := strings.TrimSpace(token.UID)
		if uid == "" {
			writeAuthError(w, http.StatusUnauthorized, "invalid uid in token")
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyUID, uid)
		if e, ok := token.Claims["email"].(string); ok && strings.TrimSpace(e) != "" {
			ctx = context.WithValue(ctx, ctxKeyEmail, strings.TrimSpace(e))
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func UIDFrom(ctx context.Context) string {
	v, _ := ctx.Value(ctxKeyUID).(string)
	return v
}

func EmailFrom(ctx context.Context) string {
	v, _ := ctx.Value(ctxKeyEmail).(string)
	return v
}

func writeAuthError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"error":"` + msg + `"}`))
}
