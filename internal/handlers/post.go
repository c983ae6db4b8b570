package handlers

import (
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"grove/internal/cache"
	"grove/internal/db"
	"grove/internal/middleware"
	"grove/internal/models"
	"grove/internal/services"
	"grove/internal/utils"
)

type PostHandler struct {
	cache  *cache.ResponseCache
	images *services.ImageStore
}

func NewPostHandler(respCache *cache.ResponseCache, images *services.ImageStore) *PostHandler {
	return &PostHandler{cache: respCache, images: images}
}

func postURL(username string, postID uint) string {
	return fmt.Sprintf("/u/%s/%d", username, postID)
}

// parseGroupID reads the optional group_id form value. Anything that is
// not a positive integer means "no group".
func parseGroupID(raw string) *uint {
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return nil
	}
	gid := uint(id)
	return &gid
}

// findAuthorPost resolves a post by author username and post id, the way
// every post route addresses one.
func findAuthorPost(username, postID string) (models.User, models.Post, error) {
	var author models.User
	if err := db.DB.Where("username = ?", username).First(&author).Error; err != nil {
		return author, models.Post{}, err
	}

	var post models.Post
	err := db.DB.Preload("User").Preload("Group").
		Where("id = ? AND user_id = ?", postID, author.ID).
		First(&post).Error
	return author, post, err
}

func (h *PostHandler) ShowCreate(c *gin.Context) {
	var groups []models.Group
	db.DB.Order("id ASC").Find(&groups)

	Render(c, http.StatusOK, "post/form.html", gin.H{
		"Title":  "New post",
		"Groups": groups,
	})
}

// Create stores a new post and redirects to the index. The index cache is
// left alone on purpose: the post shows up there when the cached page
// expires.
func (h *PostHandler) Create(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	text := strings.TrimSpace(c.PostForm("text"))

	renderForm := func(code int, errMsg string) {
		var groups []models.Group
		db.DB.Order("id ASC").Find(&groups)
		Render(c, code, "post/form.html", gin.H{
			"Title":  "New post",
			"Groups": groups,
			"Error":  errMsg,
			"Text":   c.PostForm("text"),
		})
	}

	if text == "" {
		renderForm(http.StatusBadRequest, "Text is required")
		return
	}

	groupID := parseGroupID(c.PostForm("group_id"))

	imagePath := ""
	if file, header, err := c.Request.FormFile("image"); err == nil {
		defer file.Close()
		imagePath, err = h.images.Save(file, header)
		if err != nil {
			renderForm(http.StatusBadRequest, "Could not store the image: "+err.Error())
			return
		}
	}

	post := models.Post{
		Text:    text,
		UserID:  user.ID,
		GroupID: groupID,
		Image:   imagePath,
	}
	if err := db.DB.Create(&post).Error; err != nil {
		renderForm(http.StatusInternalServerError, "Could not save the post")
		return
	}

	c.Redirect(http.StatusFound, "/")
}

func (h *PostHandler) renderDetail(c *gin.Context, code int, author models.User, post models.Post, extra gin.H) {
	var comments []models.Comment
	db.DB.Preload("User").
		Where("post_id = ?", post.ID).
		Order("created ASC").
		Find(&comments)

	type renderedComment struct {
		models.Comment
		TextHTML template.HTML
	}
	rendered := make([]renderedComment, len(comments))
	for i, com := range comments {
		rendered[i] = renderedComment{Comment: com, TextHTML: utils.RenderMarkdown(com.Text)}
	}

	data := gin.H{
		"Title":    "Post by " + author.Username,
		"Author":   author,
		"Post":     post,
		"PostHTML": utils.RenderMarkdown(post.Text),
		"Comments": rendered,
	}
	if viewer := middleware.Viewer(c); viewer != nil {
		data["IsOwner"] = viewer.ID == post.UserID
	}
	for k, v := range extra {
		data[k] = v
	}

	Render(c, code, "post/detail.html", data)
}

func (h *PostHandler) Detail(c *gin.Context) {
	author, post, err := findAuthorPost(c.Param("username"), c.Param("postID"))
	if err != nil {
		RenderError(c, http.StatusNotFound, "Post not found")
		return
	}
	h.renderDetail(c, http.StatusOK, author, post, nil)
}

func (h *PostHandler) ShowEdit(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	author, post, err := findAuthorPost(c.Param("username"), c.Param("postID"))
	if err != nil {
		RenderError(c, http.StatusNotFound, "Post not found")
		return
	}

	// Not the author: bounce to the post view without comment.
	if post.UserID != user.ID {
		c.Redirect(http.StatusFound, postURL(author.Username, post.ID))
		return
	}

	var groups []models.Group
	db.DB.Order("id ASC").Find(&groups)

	Render(c, http.StatusOK, "post/form.html", gin.H{
		"Title":   "Edit post",
		"Editing": true,
		"Post":    post,
		"Text":    post.Text,
		"Groups":  groups,
	})
}

// Update rewrites a post's text, group and image. PubDate is never
// touched. A non-author lands back on the post view with nothing changed.
func (h *PostHandler) Update(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	author, post, err := findAuthorPost(c.Param("username"), c.Param("postID"))
	if err != nil {
		RenderError(c, http.StatusNotFound, "Post not found")
		return
	}

	if post.UserID != user.ID {
		c.Redirect(http.StatusFound, postURL(author.Username, post.ID))
		return
	}

	text := strings.TrimSpace(c.PostForm("text"))
	if text == "" {
		var groups []models.Group
		db.DB.Order("id ASC").Find(&groups)
		Render(c, http.StatusBadRequest, "post/form.html", gin.H{
			"Title":   "Edit post",
			"Editing": true,
			"Post":    post,
			"Groups":  groups,
			"Error":   "Text is required",
		})
		return
	}

	groupID := parseGroupID(c.PostForm("group_id"))

	updates := map[string]interface{}{
		"text":     text,
		"group_id": groupID,
	}
	if file, header, err := c.Request.FormFile("image"); err == nil {
		defer file.Close()
		imagePath, err := h.images.Save(file, header)
		if err != nil {
			RenderError(c, http.StatusBadRequest, "Could not store the image: "+err.Error())
			return
		}
		updates["image"] = imagePath
	}

	if err := db.DB.Model(&post).Updates(updates).Error; err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not save the post")
		return
	}

	c.Redirect(http.StatusFound, postURL(author.Username, post.ID))
}

// Delete removes a post and, in the same transaction, its comments. The
// first cached index page is dropped so the listing does not keep serving
// a dead link for a full TTL.
func (h *PostHandler) Delete(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	author, post, err := findAuthorPost(c.Param("username"), c.Param("postID"))
	if err != nil {
		RenderError(c, http.StatusNotFound, "Post not found")
		return
	}

	if post.UserID != user.ID {
		c.Redirect(http.StatusFound, postURL(author.Username, post.ID))
		return
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&post).Error
	})
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not delete the post")
		return
	}

	h.cache.Delete(cache.IndexKey(1))

	c.Redirect(http.StatusFound, "/u/"+author.Username)
}

// AddComment attaches a comment to a post. An empty comment re-renders
// the post view with a field error and writes nothing.
func (h *PostHandler) AddComment(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	author, post, err := findAuthorPost(c.Param("username"), c.Param("postID"))
	if err != nil {
		RenderError(c, http.StatusNotFound, "Post not found")
		return
	}

	text := strings.TrimSpace(c.PostForm("text"))
	if text == "" {
		h.renderDetail(c, http.StatusBadRequest, author, post, gin.H{
			"CommentError": "Comment text is required",
		})
		return
	}

	comment := models.Comment{
		PostID: post.ID,
		UserID: user.ID,
		Text:   text,
	}
	if err := db.DB.Create(&comment).Error; err != nil {
		h.renderDetail(c, http.StatusInternalServerError, author, post, gin.H{
			"CommentError": "Could not save the comment",
		})
		return
	}

	c.Redirect(http.StatusFound, postURL(author.Username, post.ID))
}
