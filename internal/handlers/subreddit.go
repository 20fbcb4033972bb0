package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AparicioQA/RedditClone/internal/apperrors"
	"github.com/AparicioQA/RedditClone/internal/db"
	"github.com/AparicioQA/RedditClone/internal/middleware"
	"github.com/AparicioQA/RedditClone/internal/models"
	"github.com/AparicioQA/RedditClone/internal/services"
	"github.com/AparicioQA/RedditClone/internal/utils"
)

type SubredditHandler struct{}

func NewSubredditHandler() *SubredditHandler {
	return &SubredditHandler{}
}

type createSubredditRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// List returns all communities, newest first.
func (h *SubredditHandler) List(c *gin.Context) {
	var subs []models.Subreddit
	if err := db.DB.Preload("Creator").Order("created_at DESC").Find(&subs).Error; err != nil {
		Fail(c, err)
		return
	}

	out, err := buildSubredditResponses(subs, viewerID(c))
	if err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *SubredditHandler) Get(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))

	var sub models.Subreddit
	if err := db.DB.Preload("Creator").First(&sub, id).Error; err != nil {
		Fail(c, apperrors.FromDB(err, "Subreddit not found", ""))
		return
	}

	out, err := buildSubredditResponses([]models.Subreddit{sub}, viewerID(c))
	if err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out[0])
}

// Create makes a community; the creator is auto-joined in the same
// transaction.
func (h *SubredditHandler) Create(c *gin.Context) {
	user := c.MustGet(middleware.CurrentUserKey).(*models.User)

	var req createSubredditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, apperrors.InvalidInput("Name is required"))
		return
	}

	sub, err := services.CreateSubreddit(user.ID, req.Name, req.Description)
	if err != nil {
		Fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, SubredditResponse{
		ID:              sub.ID,
		Name:            sub.Name,
		Description:     sub.Description,
		CreatedAt:       sub.CreatedAt,
		CreatorUsername: user.Username,
		MemberCount:     1,
		IsJoined:        true,
	})
}

func (h *SubredditHandler) Join(c *gin.Context) {
	user := c.MustGet(middleware.CurrentUserKey).(*models.User)
	id := utils.StringToUint(c.Param("id"))

	if err := services.JoinSubreddit(user.ID, id); err != nil {
		Fail(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (h *SubredditHandler) Leave(c *gin.Context) {
	user := c.MustGet(middleware.CurrentUserKey).(*models.User)
	id := utils.StringToUint(c.Param("id"))

	if err := services.LeaveSubreddit(user.ID, id); err != nil {
		// The wire contract pins this case to 400, not 404.
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Not a member"})
			return
		}
		Fail(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// Posts returns the community's posts, newest first.
func (h *SubredditHandler) Posts(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))

	var posts []models.Post
	err := db.DB.Preload("User").Preload("Subreddit").
		Where("subreddit_id = ?", id).
		Order("created_at DESC").
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
