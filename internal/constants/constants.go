package constants

import "time"

const (
	// ContextKeyUserID is the gin context key holding the authenticated user ID.
	ContextKeyUserID = "user_id"

	// AuthorizationHeader carries the raw bearer token.
	AuthorizationHeader = "Authorization"

	// TokenTTL is how long an issued token stays valid.
	TokenTTL = time.Hour

	// PasswordHashCost is the bcrypt cost used for stored passwords.
	PasswordHashCost = 10

	// MaxPasswordBytes is the longest password bcrypt accepts.
	MaxPasswordBytes = 72

	// DefaultAllowedOrigin is the front-end origin allowed by CORS when none is configured.
	DefaultAllowedOrigin = "https://mern-task-tracker-xi.vercel.app"
)
