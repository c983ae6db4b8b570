package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"grove/internal/db"
	"grove/internal/models"
)

const CheckUserKey = "user"

// AuthRequired ensures a user is logged in. Anonymous requests are
// redirected to the login page rather than rejected with an error.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get("user_id")
		if userID == nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		// A session whose user id no longer resolves (the account was
		// deleted) gets its cookie cleared and the same redirect.
		if _, exists := c.Get(CheckUserKey); !exists {
			session.Clear()
			session.Save()
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// LoadUser retrieves the session user and sets it on the context. Requests
// without a session, or with a stale user id, stay anonymous.
func LoadUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get("user_id")

		if userID != nil {
			var user models.User
			result := db.DB.First(&user, userID)
			if result.Error == nil {
				c.Set(CheckUserKey, &user)
			}
		}
		c.Next()
	}
}

// Viewer returns the authenticated user on the context, or nil.
func Viewer(c *gin.Context) *models.User {
	if v, exists := c.Get(CheckUserKey); exists {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}
