package middleware

import (
	"context"

	"github.com/SscSPs/finance_flow/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// identityKey is the key used to store the authenticated identity.
const identityKey = contextKey("identity")

// WithIdentity returns a copy of ctx carrying identity.
func WithIdentity(ctx context.Context, identity domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// GetIdentityFromContext retrieves the authenticated identity set by AuthMiddleware.
// It returns false when the request was not authenticated.
func GetIdentityFromContext(c *gin.Context) (domain.Identity, bool) {
	identity, ok := c.Request.Context().Value(identityKey).(domain.Identity)
	if !ok || identity.IsZero() {
		return domain.Identity{}, false
	}
	return identity, true
}
