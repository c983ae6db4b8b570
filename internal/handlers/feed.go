package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"grove/internal/cache"
	"grove/internal/db"
	"grove/internal/feed"
	"grove/internal/middleware"
	"grove/internal/models"
	"grove/internal/pagination"
)

type FeedHandler struct {
	cache *cache.ResponseCache
}

func NewFeedHandler(respCache *cache.ResponseCache) *FeedHandler {
	return &FeedHandler{cache: respCache}
}

// Index is the global feed. The rendered page data is cached per page
// number for a short TTL; a freshly created post stays invisible here
// until the entry expires, even though the store already has it.
func (h *FeedHandler) Index(c *gin.Context) {
	pageNum := pagination.ParsePage(c.Query("page"))
	if pageNum < 1 {
		pageNum = 1
	}

	key := cache.IndexKey(pageNum)
	if cached, ok := h.cache.Get(key); ok {
		if data, ok := cached.(gin.H); ok {
			Render(c, http.StatusOK, "feed/index.html", data)
			return
		}
	}

	posts, err := feed.Global(db.DB)
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not load the feed")
		return
	}
	page := pagination.Paginate(posts, feed.PerPage, pageNum)
	feed.FillCommentCounts(db.DB, page.Items)

	var groups []models.Group
	db.DB.Order("id ASC").Find(&groups)

	data := gin.H{
		"Title":  "Latest posts",
		"Active": "index",
		"Page":   page,
		"Groups": groups,
	}

	h.cache.Set(key, data, cache.IndexTTL)

	Render(c, http.StatusOK, "feed/index.html", data)
}

// Group lists one group's posts, resolved by slug.
func (h *FeedHandler) Group(c *gin.Context) {
	group, posts, err := feed.ByGroup(db.DB, c.Param("slug"))
	if err == feed.ErrNotFound {
		RenderError(c, http.StatusNotFound, "Group not found")
		return
	}
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not load the group")
		return
	}
	pageNum := pagination.ParsePage(c.Query("page"))
	page := pagination.Paginate(posts, feed.PerPage, pageNum)
	feed.FillCommentCounts(db.DB, page.Items)

	Render(c, http.StatusOK, "feed/group.html", gin.H{
		"Title":  group.Title,
		"Active": "group",
		"Group":  group,
		"Page":   page,
	})
}

// Profile is an author's page: their posts plus, for logged-in viewers,
// whether the viewer follows them.
func (h *FeedHandler) Profile(c *gin.Context) {
	author, posts, err := feed.ByAuthor(db.DB, c.Param("username"))
	if err == feed.ErrNotFound {
		RenderError(c, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not load the profile")
		return
	}
	pageNum := pagination.ParsePage(c.Query("page"))
	page := pagination.Paginate(posts, feed.PerPage, pageNum)
	feed.FillCommentCounts(db.DB, page.Items)

	var followers int64
	db.DB.Model(&models.Follow{}).Where("author_id = ?", author.ID).Count(&followers)

	data := gin.H{
		"Title":         author.Username,
		"Author":        author,
		"Page":          page,
		"FollowerCount": followers,
	}

	// Following is only meaningful for a logged-in viewer; anonymous
	// visitors get no key at all.
	if viewer := middleware.Viewer(c); viewer != nil {
		data["Following"] = feed.IsFollowing(db.DB, viewer.ID, author.ID)
	}

	Render(c, http.StatusOK, "user/profile.html", data)
}

// FollowFeed shows posts from every author the viewer follows.
func (h *FeedHandler) FollowFeed(c *gin.Context) {
	viewer := c.MustGet(middleware.CheckUserKey).(*models.User)

	posts, err := feed.Following(db.DB, viewer.ID)
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not load the feed")
		return
	}
	pageNum := pagination.ParsePage(c.Query("page"))
	page := pagination.Paginate(posts, feed.PerPage, pageNum)
	feed.FillCommentCounts(db.DB, page.Items)

	Render(c, http.StatusOK, "feed/follow.html", gin.H{
		"Title":  "Following",
		"Active": "follow",
		"Page":   page,
	})
}
