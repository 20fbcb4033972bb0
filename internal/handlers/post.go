package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AparicioQA/RedditClone/internal/apperrors"
	"github.com/AparicioQA/RedditClone/internal/db"
	"github.com/AparicioQA/RedditClone/internal/middleware"
	"github.com/AparicioQA/RedditClone/internal/models"
	"github.com/AparicioQA/RedditClone/internal/services"
	"github.com/AparicioQA/RedditClone/internal/utils"
)

type PostHandler struct{}

func NewPostHandler() *PostHandler {
	return &PostHandler{}
}

type createPostRequest struct {
	Title       string `json:"title" binding:"required"`
	Content     string `json:"content"`
	SubredditID uint   `json:"subredditId" binding:"required"`
}

type editPostRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content"`
}

// List returns all posts, newest first.
func (h *PostHandler) List(c *gin.Context) {
	var posts []models.Post
	err := db.DB.Preload("User").Preload("Subreddit").
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

func (h *PostHandler) Get(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))

	var post models.Post
	if err := db.DB.Preload("User").Preload("Subreddit").First(&post, id).Error; err != nil {
		Fail(c, apperrors.FromDB(err, "Post not found", ""))
		return
	}

	out, err := buildPostResponses([]models.Post{post}, viewerID(c))
	if err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out[0])
}

func (h *PostHandler) Create(c *gin.Context) {
	user := c.MustGet(middleware.CurrentUserKey).(*models.User)

	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, apperrors.InvalidInput("Title and subredditId are required"))
		return
	}

	var sub models.Subreddit
	if err := db.DB.First(&sub, req.SubredditID).Error; err != nil {
		Fail(c, apperrors.InvalidInput("Subreddit not found"))
		return
	}

	post := models.Post{
		SubredditID: req.SubredditID,
		UserID:      user.ID,
		Title:       req.Title,
		Content:     req.Content,
	}
	if err := db.DB.Create(&post).Error; err != nil {
		Fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, PostResponse{
		ID:             post.ID,
		Title:          post.Title,
		Content:        post.Content,
		ContentHTML:    utils.RenderMarkdown(post.Content),
		CreatedAt:      post.CreatedAt,
		AuthorUsername: user.Username,
		AuthorID:       user.ID,
		SubredditName:  sub.Name,
		SubredditID:    sub.ID,
		VoteCount:      0,
		UserVote:       nil,
		CommentCount:   0,
	})
}

// Update edits title and content. Only the author may edit; a missing post
// is NotFound and a foreign author is Forbidden, never confused.
func (h *PostHandler) Update(c *gin.Context) {
	user := c.MustGet(middleware.CurrentUserKey).(*models.User)
	id := utils.StringToUint(c.Param("id"))

	var post models.Post
	if err := db.DB.Preload("Subreddit").First(&post, id).Error; err != nil {
		Fail(c, apperrors.FromDB(err, "Post not found", ""))
		return
	}
	if post.UserID != user.ID {
		Fail(c, apperrors.Forbidden("Only the author can edit this post"))
		return
	}

	var req editPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, apperrors.InvalidInput("Title is required"))
		return
	}

	post.Title = req.Title
	post.Content = req.Content
	if err := db.DB.Save(&post).Error; err != nil {
		Fail(c, err)
		return
	}

	out, err := buildPostResponses([]models.Post{post}, viewerID(c))
	if err != nil {
		Fail(c, err)
		return
	}
	out[0].AuthorUsername = user.Username
	c.JSON(http.StatusOK, out[0])
}

// Delete removes the post and cascades to its comments and all votes.
func (h *PostHandler) Delete(c *gin.Context) {
	user := c.MustGet(middleware.CurrentUserKey).(*models.User)
	id := utils.StringToUint(c.Param("id"))

	var post models.Post
	if err := db.DB.First(&post, id).Error; err != nil {
		Fail(c, apperrors.FromDB(err, "Post not found", ""))
		return
	}
	if post.UserID != user.ID {
		Fail(c, apperrors.Forbidden("Only the author can delete this post"))
		return
	}

	if err := services.DeletePost(post.ID); err != nil {
		Fail(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// Comments returns the post's comments, newest first.
func (h *PostHandler) Comments(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))

	var comments []models.Comment
	err := db.DB.Preload("User").
		Where("post_id = ?", id).
		Order("created_at DESC").
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
