package identity

import "github.com/gin-gonic/gin"

const principalKey = "principal"

// Principal is the caller a request acts on behalf of.
type Principal struct {
	ID              uint
	Username        string
	IsAdmin         bool
	IsAuthenticated bool
}

// Anonymous is the principal of a request without valid credentials.
var Anonymous = Principal{}

// Owns reports whether the principal is the authenticated author userID.
func (p Principal) Owns(userID uint) bool {
	return p.IsAuthenticated && p.ID == userID
}

// WithPrincipal stores p on the gin context.
func WithPrincipal(c *gin.Context, p Principal) {
	c.Set(principalKey, p)
}

// CurrentPrincipal returns the principal stored on the context, or Anonymous.
func CurrentPrincipal(c *gin.Context) Principal {
	if v, ok := c.Get(principalKey); ok {
		if p, ok := v.(Principal); ok {
			return p
		}
	}
	return Anonymous
}
