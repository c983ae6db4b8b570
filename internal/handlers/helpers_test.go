package handlers_test

import (
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"grove/internal/middleware"
	"grove/internal/models"
)

// setupRouter builds a bare engine with stub templates and, when user is
// non-nil, that user preloaded on every request context.
func setupRouter(user *models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	tmpl := template.New("root")
	for _, name := range []string{
		"error.html",
		"feed/index.html", "feed/group.html", "feed/follow.html",
		"post/form.html", "post/detail.html",
		"user/profile.html", "group/list.html",
	} {
		template.Must(tmpl.New(name).Parse(`ok`))
	}
	r.SetHTMLTemplate(tmpl)

	r.Use(func(c *gin.Context) {
		if user != nil {
			c.Set(middleware.CheckUserKey, user)
		}
		c.Next()
	})
	return r
}

func postForm(r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)
	return w
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func createUser(t *testing.T, conn *gorm.DB, username string) models.User {
	t.Helper()
	user := models.User{Username: username, Email: username + "@example.com", Password: "x"}
	require.NoError(t, conn.Create(&user).Error)
	return user
}

func createPost(t *testing.T, conn *gorm.DB, author models.User, text string) models.Post {
	t.Helper()
	post := models.Post{Text: text, UserID: author.ID, PubDate: time.Now()}
	require.NoError(t, conn.Create(&post).Error)
	return post
}
