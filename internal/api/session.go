// File: internal/api/session.go
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	sessionCookie = "dashboard_session"
	sessionKey    = "sessionID"
	// one year; preference expiry is governed by the store
	sessionMaxAge = 365 * 24 * 60 * 60
)

// SessionMiddleware makes sure every request carries a session id cookie.
// Preferences are stored per session id.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(sessionCookie)
		if err != nil || !validSessionID(id) {
			id = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(sessionCookie, id, sessionMaxAge, "/", "", false, true)
		}
		c.Set(sessionKey, id)
		c.Next()
	}
}

func validSessionID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func sessionID(c *gin.Context) string {
	return c.GetString(sessionKey)
}
