package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"
	"time"

	"quiz-service/internal/auth"
	"quiz-service/internal/session"
	"quiz-service/internal/user"
)

// unexported, collision-proof context key
type identityContextKeyType struct{}

var identityKey = identityContextKeyType{}

// IdentityFromContext extracts the authenticated identity from context.
func IdentityFromContext(ctx context.Context) (auth.Identity, bool) {
	id, ok := ctx.Value(identityKey).(auth.Identity)
	return id, ok
}

type AuthMiddleware struct {
	Sessions session.Store
	Users    user.Store
}

func NewAuthMiddleware(sessions session.Store, users user.Store) *AuthMiddleware {
	return &AuthMiddleware{Sessions: sessions, Users: users}
}

// RequireAuth authenticates the request from its session cookie. The session
// only points at a claim; the claim is revalidated against the credential
// store on every request, so a session dies the moment the user's stored
// password hash changes or the account is deactivated. Every failure mode
// produces the same 401.
func (a *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 1. Read session cookie
		cookie, err := r.Cookie(session.CookieName)
		if err != nil || cookie.Value == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		sessionID := cookie.Value

		// 2. Load session
		sess, err := a.Sessions.Get(r.Context(), sessionID)
		if err != nil || sess == nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		// 3. Enforce server-side expiry
		if time.Now().After(sess.ExpiresAt) {
			_ = a.Sessions.Delete(r.Context(), sessionID)
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		// 4. Decode the stored claim (fails closed on malformed data)
		claim, err := session.ParseClaim(sess.Claim)
		if err != nil {
			_ = a.Sessions.Delete(r.Context(), sessionID)
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		// 5. Revalidate against the current user record
		u, err := a.Users.GetByUsername(r.Context(), claim.Username)
		if err != nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if subtle.ConstantTimeCompare(
			[]byte(claim.PasswordHash),
			[]byte(u.PasswordHash),
		) != 1 {
			// password changed since issue, session no longer valid
			_ = a.Sessions.Delete(r.Context(), sessionID)
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if !u.Active {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		// 6. Attach identity to context
		id := auth.Identity{
			UserID:   u.ID.String(),
			Username: u.Username,
			Role:     u.Role,
			Verified: u.Verified,
		}
		ctx := context.WithValue(r.Context(), identityKey, id)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
