package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Middleware validates the Bearer token on every request of a route
// group and injects the Principal into the request context.
func Middleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := ParseBearer(c.GetHeader("Authorization"), secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Request = c.Request.WithContext(WithPrincipal(c.Request.Context(), p))
		c.Next()
	}
}

// RequirePrincipal ensures a principal is present in context.
func RequirePrincipal(c *gin.Context) (*Principal, error) {
	p, ok := FromContext(c.Request.Context())
	if !ok {
		return nil, errors.New("missing principal")
	}
	return p, nil
}

// RequireKind ensures the caller has the given kind.
func RequireKind(c *gin.Context, kind string) (*Principal, error) {
	p, err := RequirePrincipal(c)
	if err != nil {
		return nil, err
	}
	if p.Kind != kind {
		return nil, errors.New("only " + kind + " can perform this action")
	}
	return p, nil
}

// RequireAdmin ensures the caller is an admin.
func RequireAdmin(c *gin.Context) (*Principal, error) {
	return RequireKind(c, KindAdmin)
}

// RequirePharmacy ensures the caller is a pharmacy.
func RequirePharmacy(c *gin.Context) (*Principal, error) {
	return RequireKind(c, KindPharmacy)
}
