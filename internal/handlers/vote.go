package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AparicioQA/RedditClone/internal/apperrors"
	"github.com/AparicioQA/RedditClone/internal/middleware"
	"github.com/AparicioQA/RedditClone/internal/models"
	"github.com/AparicioQA/RedditClone/internal/services"
	"github.com/AparicioQA/RedditClone/internal/utils"
)

type VoteHandler struct{}

func NewVoteHandler() *VoteHandler {
	return &VoteHandler{}
}

type voteRequest struct {
	Value int `json:"value"`
}

// VotePost casts, flips or removes the caller's vote on a post.
func (h *VoteHandler) VotePost(c *gin.Context) {
	h.vote(c, models.PostTarget(utils.StringToUint(c.Param("id"))))
}

// VoteComment casts, flips or removes the caller's vote on a comment.
func (h *VoteHandler) VoteComment(c *gin.Context) {
	h.vote(c, models.CommentTarget(utils.StringToUint(c.Param("id"))))
}

func (h *VoteHandler) vote(c *gin.Context, target models.Target) {
	user := c.MustGet(middleware.CurrentUserKey).(*models.User)

	var req voteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, apperrors.InvalidInput("Vote value must be 1 or -1"))
		return
	}

	if err := services.CastVote(user.ID, target, req.Value); err != nil {
		Fail(c, err)
		return
	}
	c.Status(http.StatusOK)
}
