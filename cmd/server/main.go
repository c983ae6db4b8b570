package main

import (
	"fmt"
	"html/template"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"grove/internal/cache"
	"grove/internal/db"
	"grove/internal/middleware"
	"grove/internal/router"
	"grove/internal/services"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}

	// Initialize Database
	db.Init()

	// Response cache: constructed here, handed to the handlers that use it
	respCache, err := cache.New(cache.DefaultCapacity)
	if err != nil {
		log.Fatalf("Failed to create response cache: %v", err)
	}

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "./web/uploads"
	}
	images, err := services.NewImageStore(uploadDir)
	if err != nil {
		log.Fatalf("Failed to create image store: %v", err)
	}

	// Initialize Gin
	r := gin.Default()

	// Setup Sessions
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "secret_key_change_me"
	}
	store := cookie.NewStore([]byte(secret))
	r.Use(sessions.Sessions("grove_session", store))

	// Load Templates using Multitemplate to avoid collision and allow handler names
	r.HTMLRender = loadTemplates("./web/templates")

	// Static Assets
	r.Static("/static", "./web/static")
	r.Static("/uploads", uploadDir)

	// Middleware
	r.Use(middleware.LoadUser())

	router.RegisterRoutes(r, respCache, images)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Grove server starting on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}

func loadTemplates(templatesDir string) multitemplate.Renderer {
	r := multitemplate.NewRenderer()

	layouts, err := filepath.Glob(templatesDir + "/layouts/*.html")
	if err != nil {
		panic(err)
	}

	includes, err := filepath.Glob(templatesDir + "/includes/*.html")
	if err != nil {
		panic(err)
	}

	// Helper to assemble files
	assemble := func(view string) []string {
		files := make([]string, 0)
		files = append(files, layouts...)
		files = append(files, includes...)
		files = append(files, view)
		return files
	}

	// FuncMap
	funcMap := template.FuncMap{
		"dict": func(values ...interface{}) (map[string]interface{}, error) {
			if len(values)%2 != 0 {
				return nil, fmt.Errorf("invalid dict call")
			}
			dict := make(map[string]interface{}, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					return nil, fmt.Errorf("dict keys must be strings")
				}
				dict[key] = values[i+1]
			}
			return dict, nil
		},
		"add": func(a, b int) int {
			return a + b
		},
		"timeAgo": func(t interface{}) string {
			var timeVal time.Time
			switch v := t.(type) {
			case time.Time:
				timeVal = v
			default:
				return ""
			}

			duration := time.Since(timeVal)
			seconds := int(duration.Seconds())

			if seconds < 60 {
				return fmt.Sprintf("%ds ago", seconds)
			} else if seconds < 3600 {
				return fmt.Sprintf("%dm ago", seconds/60)
			} else if seconds < 86400 {
				return fmt.Sprintf("%dh ago", seconds/3600)
			} else if seconds < 2592000 {
				return fmt.Sprintf("%dd ago", seconds/86400)
			} else if seconds < 31536000 {
				return fmt.Sprintf("%dmo ago", seconds/2592000)
			}
			return fmt.Sprintf("%dy ago", seconds/31536000)
		},
		"safeHTML": func(s string) template.HTML {
			return template.HTML(s)
		},
	}

	// Manual registration to ensure keys match handler expectation
	// Auth
	r.AddFromFilesFuncs("auth/login.html", funcMap, assemble(templatesDir+"/views/auth/login.html")...)
	r.AddFromFilesFuncs("auth/register.html", funcMap, assemble(templatesDir+"/views/auth/register.html")...)

	// Feeds
	r.AddFromFilesFuncs("feed/index.html", funcMap, assemble(templatesDir+"/views/feed/index.html")...)
	r.AddFromFilesFuncs("feed/group.html", funcMap, assemble(templatesDir+"/views/feed/group.html")...)
	r.AddFromFilesFuncs("feed/follow.html", funcMap, assemble(templatesDir+"/views/feed/follow.html")...)

	// Posts
	r.AddFromFilesFuncs("post/detail.html", funcMap, assemble(templatesDir+"/views/post/detail.html")...)
	r.AddFromFilesFuncs("post/form.html", funcMap, assemble(templatesDir+"/views/post/form.html")...)

	// User
	r.AddFromFilesFuncs("user/profile.html", funcMap, assemble(templatesDir+"/views/user/profile.html")...)

	// Groups
	r.AddFromFilesFuncs("group/list.html", funcMap, assemble(templatesDir+"/views/group/list.html")...)

	// About
	r.AddFromFilesFuncs("about/author.html", funcMap, assemble(templatesDir+"/views/about/author.html")...)
	r.AddFromFilesFuncs("about/tech.html", funcMap, assemble(templatesDir+"/views/about/tech.html")...)

	// Error
	r.AddFromFilesFuncs("error.html", funcMap, assemble(templatesDir+"/views/error.html")...)

	return r
}
