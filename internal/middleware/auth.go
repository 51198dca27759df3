package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/roadmap-board/backend/internal/authz"
	"github.com/emilythestrangee/roadmap-board/backend/internal/identity"
)

type TokenParser interface {
	Parse(raw string) (identity.Principal, error)
}

// Authenticate resolves the bearer token, if any, into the request principal.
// Requests without a valid token continue as anonymous.
func Authenticate(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity.WithPrincipal(c, identity.Anonymous)

		bearer := c.GetHeader("Authorization")
		if !strings.HasPrefix(bearer, "Bearer ") {
			c.Next()
			return
		}

		p, err := tokens.Parse(strings.TrimSpace(bearer[len("Bearer "):]))
		if err != nil {
			slog.DebugContext(c.Request.Context(), "rejected bearer token", "error", err)
			c.Next()
			return
		}

		identity.WithPrincipal(c, p)
		c.Next()
	}
}

// Require enforces the policy level of op before the handler runs.
func Require(policy authz.Policy, op authz.Operation) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch policy.Check(op, identity.CurrentPrincipal(c)) {
		case authz.Unauthenticated:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Authentication credentials were not provided."})
		case authz.Forbidden:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"detail": "You do not have permission to perform this action."})
		default:
			c.Next()
		}
	}
}
