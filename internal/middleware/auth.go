package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yukikurage/task-tracker-api/internal/constants"
	apierrors "github.com/yukikurage/task-tracker-api/internal/errors"
)

// TokenVerifier validates a bearer token and returns its subject.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// RequireAuth rejects requests without a valid token in the Authorization
// header and binds the token subject to the context as the caller's user ID.
func RequireAuth(tokens TokenVerifier, logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader(constants.AuthorizationHeader))
		if token == "" {
			apierrors.Unauthorized(c, "Access denied: no token provided")
			return
		}

		userID, err := tokens.Verify(token)
		if err != nil {
			logger.WithError(err).WithField("path", c.FullPath()).Debug("Rejected bearer token")
			apierrors.Unauthorized(c, "Invalid token")
			return
		}

		// Store user ID in context for easy access in handlers
		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (string, bool) {
	userID := c.GetString(constants.ContextKeyUserID)
	return userID, userID != ""
}

// bearerToken accepts the raw token as sent by the web client and also
// tolerates the conventional "Bearer " prefix.
func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return header
}
