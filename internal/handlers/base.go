package handlers

import (
	"github.com/gin-gonic/gin"

	"grove/internal/middleware"
)

// Render helper to inject common variables like 'current user'.
// The per-request keys go into a copy: obj may be shared with the response
// cache, and concurrent cache hits must never write into the same map.
func Render(c *gin.Context, code int, name string, obj gin.H) {
	data := make(gin.H, len(obj)+2)
	for k, v := range obj {
		data[k] = v
	}

	if user, exists := c.Get(middleware.CheckUserKey); exists {
		data["CurrentUser"] = user
	} else {
		data["CurrentUser"] = nil
	}
	data["CurrentPath"] = c.Request.URL.Path

	c.HTML(code, name, data)
}

// RenderError renders the shared error page.
func RenderError(c *gin.Context, code int, message string) {
	Render(c, code, "error.html", gin.H{"Error": message})
}
