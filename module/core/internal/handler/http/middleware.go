package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/23f3000115/agency-os/module/core/domain"
	"github.com/23f3000115/agency-os/module/core/internal/auth"
)

const principalKey = "principal"

// Authenticate verifies the bearer token issued by the identity provider and
// resolves the caller's role from their profile row.
func Authenticate(secret []byte, profiles auth.ProfileLookup, logger *slog.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}
	verifier := auth.NewVerifier(secret)
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		userID, err := verifier.Subject(strings.TrimPrefix(h, "Bearer "))
		if errors.Is(err, auth.ErrInvalidSubject) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token subject"})
			return
		}
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		principal, err := auth.Resolve(c.Request.Context(), profiles, userID)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "user profile not found, contact admin"})
			return
		case errors.Is(err, auth.ErrUnknownRole):
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "unknown role"})
			return
		case err != nil:
			logger.ErrorContext(c.Request.Context(), "resolve profile", "user_id", userID, "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve profile"})
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

func RequireRole(role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if principalFrom(c).Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": string(role) + " only"})
			return
		}
		c.Next()
	}
}

func principalFrom(c *gin.Context) domain.Principal {
	v, _ := c.Get(principalKey)
	p, _ := v.(domain.Principal)
	return p
}

// RequestLogger writes one structured record per request.
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.InfoContext(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
