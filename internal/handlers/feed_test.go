package handlers_test

import (
	"net/http"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grove/internal/cache"
	"grove/internal/db"
	"grove/internal/db/testdb"
	"grove/internal/handlers"
	"grove/internal/models"
	"grove/internal/pagination"
)

func TestIndexPopulatesCache(t *testing.T) {
	db.DB = testdb.Open(t)
	alice := createUser(t, db.DB, "alice")
	createPost(t, db.DB, alice, "hello")

	respCache, err := cache.New(16)
	require.NoError(t, err)

	h := handlers.NewFeedHandler(respCache)
	r := setupRouter(nil)
	r.GET("/", h.Index)

	w := get(r, "/")
	assert.Equal(t, http.StatusOK, w.Code)

	_, ok := respCache.Get(cache.IndexKey(1))
	assert.True(t, ok, "index render must be cached under its page key")

	// only the requested page is cached
	_, ok = respCache.Get(cache.IndexKey(2))
	assert.False(t, ok)
}

func TestCacheHitDoesNotMutateStoredPageData(t *testing.T) {
	db.DB = testdb.Open(t)
	alice := createUser(t, db.DB, "alice")
	createPost(t, db.DB, alice, "hello")

	respCache, err := cache.New(16)
	require.NoError(t, err)
	h := handlers.NewFeedHandler(respCache)

	// Warm the cache anonymously, then serve a logged-in viewer from it.
	anon := setupRouter(nil)
	anon.GET("/", h.Index)
	require.Equal(t, http.StatusOK, get(anon, "/").Code)

	viewer := setupRouter(&alice)
	viewer.GET("/", h.Index)
	require.Equal(t, http.StatusOK, get(viewer, "/").Code)

	cached, ok := respCache.Get(cache.IndexKey(1))
	require.True(t, ok)
	data, ok := cached.(gin.H)
	require.True(t, ok)

	_, hasUser := data["CurrentUser"]
	_, hasPath := data["CurrentPath"]
	assert.False(t, hasUser, "per-request keys must never leak into the cached map")
	assert.False(t, hasPath)
}

func TestConcurrentIndexRequestsOnWarmCache(t *testing.T) {
	db.DB = testdb.Open(t)
	alice := createUser(t, db.DB, "alice")
	createPost(t, db.DB, alice, "hello")

	respCache, err := cache.New(16)
	require.NoError(t, err)
	h := handlers.NewFeedHandler(respCache)
	r := setupRouter(&alice)
	r.GET("/", h.Index)

	// Warm the entry so every goroutine below renders from the cache.
	require.Equal(t, http.StatusOK, get(r, "/").Code)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, http.StatusOK, get(r, "/").Code)
		}()
	}
	wg.Wait()
}

func TestIndexCommentCountsOnRenderedPage(t *testing.T) {
	db.DB = testdb.Open(t)
	alice := createUser(t, db.DB, "alice")
	post := createPost(t, db.DB, alice, "talked about")
	require.NoError(t, db.DB.Create(&models.Comment{PostID: post.ID, UserID: alice.ID, Text: "one"}).Error)
	require.NoError(t, db.DB.Create(&models.Comment{PostID: post.ID, UserID: alice.ID, Text: "two"}).Error)

	respCache, err := cache.New(16)
	require.NoError(t, err)
	h := handlers.NewFeedHandler(respCache)
	r := setupRouter(nil)
	r.GET("/", h.Index)

	require.Equal(t, http.StatusOK, get(r, "/").Code)

	cached, ok := respCache.Get(cache.IndexKey(1))
	require.True(t, ok)
	page, ok := cached.(gin.H)["Page"].(pagination.Page[models.Post])
	require.True(t, ok)
	require.Len(t, page.Items, 1)
	assert.Equal(t, 2, page.Items[0].CommentCount)
}

func TestGroupFeedUnknownSlugIs404(t *testing.T) {
	db.DB = testdb.Open(t)

	respCache, err := cache.New(16)
	require.NoError(t, err)

	h := handlers.NewFeedHandler(respCache)
	r := setupRouter(nil)
	r.GET("/group/:slug", h.Group)

	w := get(r, "/group/nonexistent-slug")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProfileUnknownUserIs404(t *testing.T) {
	db.DB = testdb.Open(t)

	respCache, err := cache.New(16)
	require.NoError(t, err)

	h := handlers.NewFeedHandler(respCache)
	r := setupRouter(nil)
	r.GET("/u/:username", h.Profile)

	w := get(r, "/u/nobody")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
