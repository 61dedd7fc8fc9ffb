package helpers

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// SessionUserKey is the session field holding the logged-in user's ID
const SessionUserKey = "user_id"

// ContextUserKey is the gin context key the auth middleware populates
// for protected handlers.
const ContextUserKey = "current_user_id"

// CurrentUserID returns the authenticated user's ID placed in the gin
// context by the auth middleware. Empty when the request is not
// authenticated.
func CurrentUserID(c *gin.Context) string {
	return c.GetString(ContextUserKey)
}

// SetSessionUser stores the user ID in the client's session
func SetSessionUser(c *gin.Context, userID string) error {
	session := sessions.Default(c)
	session.Set(SessionUserKey, userID)
	return session.Save()
}

// ClearSessionUser removes the user ID from the client's session.
// Idempotent: clearing a session that never existed still succeeds.
func ClearSessionUser(c *gin.Context) error {
	session := sessions.Default(c)
	session.Delete(SessionUserKey)
	return session.Save()
}
