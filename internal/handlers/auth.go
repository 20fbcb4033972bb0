package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AparicioQA/RedditClone/internal/apperrors"
	"github.com/AparicioQA/RedditClone/internal/auth"
	"github.com/AparicioQA/RedditClone/internal/db"
	"github.com/AparicioQA/RedditClone/internal/models"
	"github.com/AparicioQA/RedditClone/internal/services"
	"github.com/AparicioQA/RedditClone/internal/utils"
)

type AuthHandler struct {
	tokens *auth.Service
}

func NewAuthHandler(tokens *auth.Service) *AuthHandler {
	return &AuthHandler{tokens: tokens}
}

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// Register creates a local password account and signs the user in.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, apperrors.InvalidInput("Username, a valid email and a password of at least 6 characters are required"))
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		Fail(c, err)
		return
	}

	user := models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: hash,
	}
	if err := db.DB.Create(&user).Error; err != nil {
		Fail(c, apperrors.FromDB(err, "", "Username or email already exists"))
		return
	}

	h.respondWithToken(c, &user)
}

// Login authenticates a local password account.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, apperrors.InvalidInput("Username and password are required"))
		return
	}

	var user models.User
	if err := db.DB.Where("username = ?", req.Username).First(&user).Error; err != nil {
		// Only an unknown username is a credential failure; anything else
		// from the store is an infrastructure error and reported as such.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			Fail(c, apperrors.Unauthenticated("Invalid username or password"))
			return
		}
		Fail(c, err)
		return
	}
	// External-only accounts have no password and cannot log in locally.
	if user.Password == "" || !utils.CheckPasswordHash(req.Password, user.Password) {
		Fail(c, apperrors.Unauthenticated("Invalid username or password"))
		return
	}

	h.respondWithToken(c, &user)
}

func (h *AuthHandler) respondWithToken(c *gin.Context, user *models.User) {
	token, err := h.tokens.GenerateToken(auth.LocalSubject(user.ID), user.Username, user.Email)
	if err != nil {
		Fail(c, err)
		return
	}

	karma, err := services.UserKarma(user.ID)
	if err != nil {
		Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, authResponse{
		Token: token,
		User: UserResponse{
			ID:        user.ID,
			Username:  user.Username,
			Email:     user.Email,
			Karma:     karma,
			CreatedAt: user.CreatedAt,
		},
	})
}
