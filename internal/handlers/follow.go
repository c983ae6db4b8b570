package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"grove/internal/db"
	"grove/internal/middleware"
	"grove/internal/models"
)

type FollowHandler struct{}

func NewFollowHandler() *FollowHandler {
	return &FollowHandler{}
}

// Follow creates a follow edge from the viewer to the named author.
// Find-or-create keeps repeated clicks from stacking duplicate edges, and
// following yourself is a no-op. Either way the viewer lands back on the
// profile.
func (h *FollowHandler) Follow(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	username := c.Param("username")

	var author models.User
	if err := db.DB.Where("username = ?", username).First(&author).Error; err != nil {
		RenderError(c, http.StatusNotFound, "User not found")
		return
	}

	if user.ID != author.ID {
		edge := models.Follow{UserID: user.ID, AuthorID: author.ID}
		db.DB.Where(&models.Follow{UserID: user.ID, AuthorID: author.ID}).FirstOrCreate(&edge)
	}

	c.Redirect(http.StatusFound, "/u/"+author.Username)
}

// Unfollow removes the viewer's follow edge to the named author, if any.
func (h *FollowHandler) Unfollow(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	username := c.Param("username")

	var author models.User
	if err := db.DB.Where("username = ?", username).First(&author).Error; err != nil {
		RenderError(c, http.StatusNotFound, "User not found")
		return
	}

	db.DB.Where("user_id = ? AND author_id = ?", user.ID, author.ID).
		Delete(&models.Follow{})

	c.Redirect(http.StatusFound, "/u/"+author.Username)
}
