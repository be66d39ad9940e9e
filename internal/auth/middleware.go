package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nekogravitycat/trainer-booking-backend/internal/pkg/response"
	"github.com/nekogravitycat/trainer-booking-backend/internal/profile"
)

// ProfileResolver looks a profile up by the identity provider's user id.
type ProfileResolver interface {
	GetByExternalID(ctx context.Context, externalID string) (*profile.Profile, error)
}

// AuthRequired is a Gin middleware that validates JWT from Authorization: Bearer <token>
func AuthRequired(jwtManager *JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "missing Authorization header",
			})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid Authorization header format",
			})
			return
		}

		claims, err := jwtManager.ParseAndValidate(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid or expired token",
			})
			return
		}

		c.Set(subjectKey, claims.Subject)

		c.Next()
	}
}

// RequireProfile maps the token subject to the caller's profile.
// It MUST be used after AuthRequired.
func RequireProfile(profiles ProfileResolver, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		subject := GetSubject(c)
		if subject == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		p, err := profiles.GetByExternalID(c.Request.Context(), subject)
		if err != nil {
			if errors.Is(err, profile.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "profile not found"})
				return
			}
			response.Error(c, log, err)
			c.Abort()
			return
		}

		c.Set(profileIDKey, p.ID)
		c.Set(isTrainerKey, p.IsTrainer)

		c.Next()
	}
}
