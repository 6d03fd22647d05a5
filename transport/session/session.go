package session

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const contextKey = "session_id"

// Middleware makes sure every request carries a session cookie and stores
// its value in the gin context. Unknown or malformed values are replaced.
func Middleware(cookieName string, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(cookieName)
		if err != nil || uuid.Validate(id) != nil {
			id = uuid.NewString()
		}

		http.SetCookie(c.Writer, &http.Cookie{
			Name:     cookieName,
			Value:    id,
			Path:     "/",
			MaxAge:   int(ttl.Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		c.Set(contextKey, id)
		c.Next()
	}
}

// ID returns the session id stored by Middleware.
func ID(c *gin.Context) string {
	return c.GetString(contextKey)
}
