package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	authgate "github.com/MrEthical07/authgate"
)

type identityContextKey struct{}

// IdentityFromContext returns the identity a guard attached to the request
// context, if any.
func IdentityFromContext(ctx context.Context) (authgate.Identity, bool) {
	identity, ok := ctx.Value(identityContextKey{}).(authgate.Identity)
	return identity, ok
}

// Guard wraps a handler with access-token enforcement. Requests without a
// bearer token or with an expired token are rejected with 401; tokens that
// fail verification for any other reason with 403.
func Guard(auth authgate.TokenAuthenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if auth == nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			identity, err := auth.AuthenticateAccess(token)
			if err != nil {
				status := rejectionStatus(err)
				http.Error(w, http.StatusText(status), status)
				return
			}

			ctx := context.WithValue(r.Context(), identityContextKey{}, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GinGuard is [Guard] as a gin handler. The identity is attached both to the
// gin context under [IdentityKey] and to the request context for
// [IdentityFromContext].
func GinGuard(auth authgate.TokenAuthenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if auth == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		identity, err := auth.AuthenticateAccess(token)
		if err != nil {
			c.AbortWithStatusJSON(rejectionStatus(err), gin.H{"error": rejectionMessage(err)})
			return
		}

		c.Set(IdentityKey, identity)
		c.Request = c.Request.WithContext(
			context.WithValue(c.Request.Context(), identityContextKey{}, identity),
		)
		c.Next()
	}
}

// IdentityKey is the gin context key [GinGuard] stores the identity under.
const IdentityKey = "authgate.identity"

func rejectionStatus(err error) int {
	if errors.Is(err, authgate.ErrMissingToken) || errors.Is(err, authgate.ErrTokenExpired) {
		return http.StatusUnauthorized
	}
	return http.StatusForbidden
}

func rejectionMessage(err error) string {
	if errors.Is(err, authgate.ErrTokenExpired) {
		return "token expired"
	}
	return "invalid token"
}

func bearerToken(value string) (string, bool) {
	const bearer = "Bearer "
	if !strings.HasPrefix(value, bearer) {
		return "", false
	}

	token := value[len(bearer):]
	if token == "" {
		return "", false
	}

	return token, true
}
