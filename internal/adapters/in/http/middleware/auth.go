package middleware

import (
	"context"
	"net/http"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"

	usecase "straightenup/internal/application/usecase"
	profiledom "straightenup/internal/domain/profile"
)

// FirebaseAuthClient aliases the firebase auth client so callers can take
// *middleware.FirebaseAuthClient without importing the SDK themselves.
type FirebaseAuthClient = fbauth.Client

// context keys use a private struct type to avoid collisions (SA1029)
type ctxKey struct{ name string }

var (
	ctxKeyUID     = ctxKey{name: "uid"}
	ctxKeyEmail   = ctxKey{name: "email"}
	ctxKeyProfile = ctxKey{name: "profile"}
)

// UserAuth verifies "Authorization: Bearer <ID_TOKEN>", resolves the
// caller's profile (creating one on first sight, so accounts made outside
// the sign-up endpoint still work), and stores uid/email/profile in context.
type UserAuth struct {
	FirebaseAuth *FirebaseAuthClient
	ProfileUC    *usecase.ProfileUsecase
}

func (m *UserAuth) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.FirebaseAuth == nil || m.ProfileUC == nil {
			http.Error(w, "auth middleware not initialized", http.StatusServiceUnavailable)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			http.Error(w, "unauthorized: missing bearer token", http.StatusUnauthorized)
			return
		}
		idToken := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if idToken == "" {
			http.Error(w, "unauthorized: empty bearer token", http.StatusUnauthorized)
			return
		}

		token, err := m.FirebaseAuth.VerifyIDToken(r.Context(), idToken)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		uid := strings.TrimSpace(token.UID)
		if uid == "" {
			http.Error(w, "invalid uid in token", http.StatusUnauthorized)
			return
		}

		email := ""
		if raw, ok := token.Claims["email"]; ok {
			if e, ok2 := raw.(string); ok2 {
				email = strings.TrimSpace(e)
			}
		}

		p, err := m.ProfileUC.GetOrCreate(r.Context(), uid, email)
		if err != nil {
			http.Error(w, "profile lookup failed", http.StatusInternalServerError)
			return
		}

		ctx := r.Context()
		ctx = context.WithValue(ctx, ctxKeyUID, uid)
		if email != "" {
			ctx = context.WithValue(ctx, ctxKeyEmail, email)
		}
		ctx = context.WithValue(ctx, ctxKeyProfile, *p)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UID returns the authenticated Firebase uid, or "".
func UID(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKeyUID).(string); ok {
		return v
	}
	return ""
}

// Email returns the token email claim, or "".
func Email(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKeyEmail).(string); ok {
		return v
	}
	return ""
}

// CurrentProfile returns the caller's profile; ok is false outside an
// authenticated request.
func CurrentProfile(ctx context.Context) (profiledom.Profile, bool) {
	p, ok := ctx.Value(ctxKeyProfile).(profiledom.Profile)
	return p, ok
}

// WithIdentity is a test helper that seeds the context the way Handler does.
func WithIdentity(ctx context.Context, p profiledom.Profile) context.Context {
	ctx = context.WithValue(ctx, ctxKeyUID, p.ID)
	if p.Email != "" {
		ctx = context.WithValue(ctx, ctxKeyEmail, p.Email)
	}
	return context.WithValue(ctx, ctxKeyProfile, p)
}
