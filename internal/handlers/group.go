package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"grove/internal/db"
	"grove/internal/middleware"
	"grove/internal/models"
)

type GroupHandler struct{}

func NewGroupHandler() *GroupHandler {
	return &GroupHandler{}
}

// List is the public group directory.
func (h *GroupHandler) List(c *gin.Context) {
	var groups []models.Group
	db.DB.Order("id ASC").Find(&groups)

	Render(c, http.StatusOK, "group/list.html", gin.H{
		"Title":  "Groups",
		"Active": "groups",
		"Groups": groups,
	})
}

// Create adds a group. Admin only. The slug may be given explicitly;
// otherwise the model derives it from the title on create.
func (h *GroupHandler) Create(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	if !user.IsAdmin() {
		RenderError(c, http.StatusForbidden, "Only admins can manage groups")
		return
	}

	title := strings.TrimSpace(c.PostForm("title"))
	if title == "" {
		var groups []models.Group
		db.DB.Order("id ASC").Find(&groups)
		Render(c, http.StatusBadRequest, "group/list.html", gin.H{
			"Title":  "Groups",
			"Groups": groups,
			"Error":  "Title is required",
		})
		return
	}

	group := models.Group{
		Title:       title,
		Description: strings.TrimSpace(c.PostForm("description")),
		Slug:        strings.TrimSpace(c.PostForm("slug")),
	}
	if err := db.DB.Create(&group).Error; err != nil {
		var groups []models.Group
		db.DB.Order("id ASC").Find(&groups)
		Render(c, http.StatusBadRequest, "group/list.html", gin.H{
			"Title":  "Groups",
			"Groups": groups,
			"Error":  "Could not create the group: title and slug must be unique",
		})
		return
	}

	c.Redirect(http.StatusFound, "/groups")
}

// Delete removes a group. Its posts survive with a cleared group id; the
// nullify rule is written out here rather than left to schema config.
func (h *GroupHandler) Delete(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	if !user.IsAdmin() {
		RenderError(c, http.StatusForbidden, "Only admins can manage groups")
		return
	}

	var group models.Group
	if err := db.DB.Where("slug = ?", c.Param("slug")).First(&group).Error; err != nil {
		RenderError(c, http.StatusNotFound, "Group not found")
		return
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Post{}).
			Where("group_id = ?", group.ID).
			Update("group_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&group).Error
	})
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not delete the group")
		return
	}

	c.Redirect(http.StatusFound, "/groups")
}
