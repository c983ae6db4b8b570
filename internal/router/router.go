package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"grove/internal/cache"
	"grove/internal/handlers"
	"grove/internal/middleware"
	"grove/internal/services"
)

func RegisterRoutes(r *gin.Engine, respCache *cache.ResponseCache, images *services.ImageStore) {
	// Handlers
	authHandler := handlers.NewAuthHandler()
	feedHandler := handlers.NewFeedHandler(respCache)
	postHandler := handlers.NewPostHandler(respCache, images)
	followHandler := handlers.NewFollowHandler()
	groupHandler := handlers.NewGroupHandler()
	aboutHandler := handlers.NewAboutHandler()
	adminHandler := handlers.NewAdminHandler(respCache)

	// Public Routes
	r.GET("/", feedHandler.Index)                     // global feed (cached)
	r.GET("/group/:slug", feedHandler.Group)          // one group's feed
	r.GET("/groups", groupHandler.List)               // group directory
	r.GET("/u/:username", feedHandler.Profile)        // author feed
	r.GET("/u/:username/:postID", postHandler.Detail) // post view + comments
	r.GET("/about/author", aboutHandler.Author)
	r.GET("/about/tech", aboutHandler.Tech)

	r.GET("/signup", authHandler.ShowRegister)
	r.POST("/signup", authHandler.Register)
	r.GET("/login", authHandler.ShowLogin)
	r.POST("/login", authHandler.Login)
	r.GET("/logout", authHandler.Logout)

	// Protected Routes
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/new", postHandler.ShowCreate)
		authorized.POST("/new", postHandler.Create)

		authorized.GET("/follow", feedHandler.FollowFeed) // personalized feed
		authorized.GET("/follow/:username", followHandler.Follow)
		authorized.GET("/unfollow/:username", followHandler.Unfollow)

		authorized.GET("/u/:username/:postID/edit", postHandler.ShowEdit)
		authorized.POST("/u/:username/:postID/edit", postHandler.Update)
		authorized.POST("/u/:username/:postID/comment", postHandler.AddComment)
		authorized.POST("/u/:username/:postID/delete", postHandler.Delete)

		authorized.POST("/groups", groupHandler.Create)
		authorized.POST("/groups/:slug/delete", groupHandler.Delete)

		authorized.POST("/admin/cache/clear", adminHandler.ClearCache)
	}

	r.NoRoute(func(c *gin.Context) {
		handlers.RenderError(c, http.StatusNotFound, "Page not found")
	})
}
