package auth

import "github.com/gin-gonic/gin"

const (
	subjectKey   = "subject"
	profileIDKey = "profileID"
	isTrainerKey = "isTrainer"
)

// GetSubject returns the identity provider's user id or empty string.
func GetSubject(c *gin.Context) string {
	return c.GetString(subjectKey)
}

// GetProfileID returns the caller's profile id. It is only set after
// RequireProfile has run.
func GetProfileID(c *gin.Context) string {
	return c.GetString(profileIDKey)
}

// IsTrainer reports whether the caller's profile is a trainer.
func IsTrainer(c *gin.Context) bool {
	return c.GetBool(isTrainerKey)
}
