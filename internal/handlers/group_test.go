package handlers_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grove/internal/db"
	"grove/internal/db/testdb"
	"grove/internal/handlers"
	"grove/internal/models"
)

func TestDeleteGroupNullifiesItsPosts(t *testing.T) {
	db.DB = testdb.Open(t)
	admin := createUser(t, db.DB, "admin")
	require.NoError(t, db.DB.Model(&admin).Update("role", "admin").Error)
	admin.Role = "admin"

	group := models.Group{Title: "Tech"}
	require.NoError(t, db.DB.Create(&group).Error)

	post := models.Post{Text: "grouped", UserID: admin.ID, GroupID: &group.ID}
	require.NoError(t, db.DB.Create(&post).Error)

	h := handlers.NewGroupHandler()
	r := setupRouter(&admin)
	r.POST("/groups/:slug/delete", h.Delete)

	w := postForm(r, "/groups/tech/delete", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/groups", w.Header().Get("Location"))

	var groups int64
	db.DB.Model(&models.Group{}).Where("id = ?", group.ID).Count(&groups)
	assert.EqualValues(t, 0, groups)

	// The post survives, detached from the dead group.
	var reloaded models.Post
	require.NoError(t, db.DB.First(&reloaded, post.ID).Error)
	assert.Nil(t, reloaded.GroupID)
}

func TestGroupManagementRequiresAdmin(t *testing.T) {
	db.DB = testdb.Open(t)
	carol := createUser(t, db.DB, "carol")

	h := handlers.NewGroupHandler()
	r := setupRouter(&carol)
	r.POST("/groups", h.Create)

	w := postForm(r, "/groups", url.Values{"title": {"Sneaky"}})
	assert.Equal(t, http.StatusForbidden, w.Code)

	var count int64
	db.DB.Model(&models.Group{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestCreateGroupDerivesSlug(t *testing.T) {
	db.DB = testdb.Open(t)
	admin := createUser(t, db.DB, "admin")
	require.NoError(t, db.DB.Model(&admin).Update("role", "admin").Error)
	admin.Role = "admin"

	h := handlers.NewGroupHandler()
	r := setupRouter(&admin)
	r.POST("/groups", h.Create)

	w := postForm(r, "/groups", url.Values{"title": {"Board Games"}, "description": {"dice and cards"}})
	assert.Equal(t, http.StatusFound, w.Code)

	var group models.Group
	require.NoError(t, db.DB.Where("title = ?", "Board Games").First(&group).Error)
	assert.Equal(t, "board-games", group.Slug)
}
