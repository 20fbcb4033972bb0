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

type CommentHandler struct{}

func NewCommentHandler() *CommentHandler {
	return &CommentHandler{}
}

type createCommentRequest struct {
	Content string `json:"content" binding:"required"`
	PostID  uint   `json:"postId" binding:"required"`
}

func (h *CommentHandler) Create(c *gin.Context) {
	user := c.MustGet(middleware.CurrentUserKey).(*models.User)

	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, apperrors.InvalidInput("Content and postId are required"))
		return
	}

	var count int64
	if err := db.DB.Model(&models.Post{}).Where("id = ?", req.PostID).Count(&count).Error; err != nil {
		Fail(c, err)
		return
	}
	if count == 0 {
		Fail(c, apperrors.InvalidInput("Post not found"))
		return
	}

	comment := models.Comment{
		PostID:  req.PostID,
		UserID:  user.ID,
		Content: req.Content,
	}
	if err := db.DB.Create(&comment).Error; err != nil {
		Fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, CommentResponse{
		ID:             comment.ID,
		Content:        comment.Content,
		ContentHTML:    utils.RenderMarkdown(comment.Content),
		CreatedAt:      comment.CreatedAt,
		AuthorUsername: user.Username,
		AuthorID:       user.ID,
		PostID:         comment.PostID,
		VoteCount:      0,
		UserVote:       nil,
	})
}

func (h *CommentHandler) Get(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))

	var comment models.Comment
	if err := db.DB.Preload("User").First(&comment, id).Error; err != nil {
		Fail(c, apperrors.FromDB(err, "Comment not found", ""))
		return
	}

	out, err := buildCommentResponses([]models.Comment{comment}, viewerID(c))
	if err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out[0])
}

// Delete removes the comment and the votes on it; the parent post stays.
func (h *CommentHandler) Delete(c *gin.Context) {
	user := c.MustGet(middleware.CurrentUserKey).(*models.User)
	id := utils.StringToUint(c.Param("id"))

	var comment models.Comment
	if err := db.DB.First(&comment, id).Error; err != nil {
		Fail(c, apperrors.FromDB(err, "Comment not found", ""))
		return
	}
	if comment.UserID != user.ID {
		Fail(c, apperrors.Forbidden("Only the author can delete this comment"))
		return
	}

	if err := services.DeleteComment(comment.ID); err != nil {
		Fail(c, err)
		return
	}
	c.Status(http.StatusOK)
}
