package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AparicioQA/RedditClone/internal/apperrors"
	"github.com/AparicioQA/RedditClone/internal/db"
	"github.com/AparicioQA/RedditClone/internal/models"
	"github.com/AparicioQA/RedditClone/internal/services"
)

type UserHandler struct{}

func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

// Get returns a public profile by username. Karma is recomputed from the
// vote ledger on every call.
func (h *UserHandler) Get(c *gin.Context) {
	username := c.Param("username")

	var user models.User
	if err := db.DB.Where("username = ?", username).First(&user).Error; err != nil {
		Fail(c, apperrors.FromDB(err, "User not found", ""))
		return
	}

	karma, err := services.UserKarma(user.ID)
	if err != nil {
		Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Karma:     karma,
		CreatedAt: user.CreatedAt,
	})
}

// Posts returns everything the user has posted, newest first.
func (h *UserHandler) Posts(c *gin.Context) {
	username := c.Param("username")

	var posts []models.Post
	err := db.DB.Preload("User").Preload("Subreddit").
		Joins("JOIN users ON users.id = posts.user_id").
		Where("users.username = ?", username).
		Order("posts.created_at DESC").
		Find(&posts).Error
	if err != nil {
		Fail(c, err)
		return
	}

	out, err := buildPostResponses(posts, viewerID(c))
	if err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// Comments returns everything the user has commented, newest first.
func (h *UserHandler) Comments(c *gin.Context) {
	username := c.Param("username")

	var comments []models.Comment
	err := db.DB.Preload("User").
		Joins("JOIN users ON users.id = comments.user_id").
		Where("users.username = ?", username).
		Order("comments.created_at DESC").
		Find(&comments).Error
	if err != nil {
		Fail(c, err)
		return
	}

	out, err := buildCommentResponses(comments, viewerID(c))
	if err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
