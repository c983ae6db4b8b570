package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"grove/internal/cache"
	"grove/internal/middleware"
	"grove/internal/models"
)

type AdminHandler struct {
	cache *cache.ResponseCache
}

func NewAdminHandler(respCache *cache.ResponseCache) *AdminHandler {
	return &AdminHandler{cache: respCache}
}

// ClearCache drops every cached feed page. This is the manual override for
// the staleness window: admins who need a just-published post on the index
// right away clear instead of waiting out the TTL.
func (h *AdminHandler) ClearCache(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	if !user.IsAdmin() {
		RenderError(c, http.StatusForbidden, "Admins only")
		return
	}

	h.cache.Clear()
	c.Redirect(http.StatusFound, "/")
}
