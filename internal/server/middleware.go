package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"auction-house/services/auction/helpers"
	"auction-house/utils"
)

// RequestLoggerMiddleware logs incoming requests with timing
func RequestLoggerMiddleware(c *gin.Context) {
	start := time.Now()

	c.Next() // process request

	utils.Info("HTTP Request", map[string]any{
		"method":  c.Request.Method,
		"path":    c.Request.URL.Path,
		"status":  c.Writer.Status(),
		"latency": time.Since(start).String(),
	})
}

// LoginRequired gates protected routes on an authenticated session.
// Without a user ID in the session the wrapped handler never runs; with
// one, the ID is placed in the gin context for handlers to read.
func LoginRequired(c *gin.Context) {
	session := sessions.Default(c)
	userID, _ := session.Get(helpers.SessionUserKey).(string)
	if userID == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"status":  http.StatusUnauthorized,
			"message": "Login required",
		})
		return
	}

	c.Set(helpers.ContextUserKey, userID)
	c.Next()
}
