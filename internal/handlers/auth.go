package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"grove/internal/db"
	"grove/internal/models"
	"grove/internal/utils"
)

type AuthHandler struct{}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

func (h *AuthHandler) ShowRegister(c *gin.Context) {
	Render(c, http.StatusOK, "auth/register.html", nil)
}

func (h *AuthHandler) Register(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")

	if username == "" {
		Render(c, http.StatusBadRequest, "auth/register.html", gin.H{"Error": "Username is required"})
		return
	}
	if !strings.Contains(email, "@") {
		Render(c, http.StatusBadRequest, "auth/register.html", gin.H{"Error": "Enter a valid email address"})
		return
	}
	if len(password) < 6 {
		Render(c, http.StatusBadRequest, "auth/register.html", gin.H{"Error": "Password must be at least 6 characters"})
		return
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		Render(c, http.StatusInternalServerError, "auth/register.html", gin.H{"Error": "Could not create the account"})
		return
	}

	user := models.User{
		Username: username,
		Email:    email,
		Password: hash,
	}
	if err := db.DB.Create(&user).Error; err != nil {
		Render(c, http.StatusConflict, "auth/register.html", gin.H{"Error": "Username or email already registered"})
		return
	}

	Render(c, http.StatusOK, "auth/login.html", gin.H{"Success": "Account created, you can log in now"})
}

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	Render(c, http.StatusOK, "auth/login.html", nil)
}

func (h *AuthHandler) Login(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")

	var user models.User
	if err := db.DB.Where("username = ?", username).First(&user).Error; err != nil {
		Render(c, http.StatusUnauthorized, "auth/login.html", gin.H{"Error": "Wrong username or password"})
		return
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		Render(c, http.StatusUnauthorized, "auth/login.html", gin.H{"Error": "Wrong username or password"})
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Save()

	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.Redirect(http.StatusFound, "/")
}
