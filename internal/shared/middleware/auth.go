package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"course-library-backend/internal/shared/response"
	"course-library-backend/pkg/jwt"
)

const (
	ClaimsKey  = "claims"
	ScopeWrite = "write"
)

// WriteGuard lets GET, HEAD and OPTIONS through. Every other method needs a
// Bearer token carrying the "write" scope; its claims are stored on the
// context under ClaimsKey.
func WriteGuard(tokens *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		claims, ok := authenticate(c, tokens)
		if !ok {
			return
		}

		if claims.Scope != ScopeWrite {
			response.Forbidden(c, "insufficient scope")
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

func authenticate(c *gin.Context, tokens *jwt.Manager) (*jwt.Claims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		response.Unauthorized(c, "missing authorization header")
		return nil, false
	}

	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		response.Unauthorized(c, "invalid authorization header format")
		return nil, false
	}

	claims, err := tokens.ValidateToken(parts[1])
	if err != nil {
		log.Debug().Err(err).Str("request_id", c.GetString(RequestIDKey)).Msg("token rejected")
		response.Unauthorized(c, "invalid token")
		return nil, false
	}

	return claims, true
}
