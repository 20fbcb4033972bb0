package handlers

import (
	"time"

	"github.com/AparicioQA/RedditClone/internal/models"
	"github.com/AparicioQA/RedditClone/internal/services"
	"github.com/AparicioQA/RedditClone/internal/utils"
)

// Response shapes mirror what the SPA consumes. VoteCount and UserVote are
// always recomputed from the vote ledger when a response is built.

type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Karma     int       `json:"karma"`
	CreatedAt time.Time `json:"createdAt"`
}

type SubredditResponse struct {
	ID              uint      `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	CreatedAt       time.Time `json:"createdAt"`
	CreatorUsername string    `json:"creatorUsername"`
	MemberCount     int       `json:"memberCount"`
	IsJoined        bool      `json:"isJoined"`
}

type PostResponse struct {
	ID             uint      `json:"id"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	ContentHTML    string    `json:"contentHtml"`
	CreatedAt      time.Time `json:"createdAt"`
	AuthorUsername string    `json:"authorUsername"`
	AuthorID       uint      `json:"authorId"`
	SubredditName  string    `json:"subredditName"`
	SubredditID    uint      `json:"subredditId"`
	VoteCount      int       `json:"voteCount"`
	UserVote       *int      `json:"userVote"`
	CommentCount   int       `json:"commentCount"`
}

type CommentResponse struct {
	ID             uint      `json:"id"`
	Content        string    `json:"content"`
	ContentHTML    string    `json:"contentHtml"`
	CreatedAt      time.Time `json:"createdAt"`
	AuthorUsername string    `json:"authorUsername"`
	AuthorID       uint      `json:"authorId"`
	PostID         uint      `json:"postId"`
	VoteCount      int       `json:"voteCount"`
	UserVote       *int      `json:"userVote"`
}

// buildPostResponses shapes posts loaded with their User and Subreddit
// associations, batch-filling ledger projections.
func buildPostResponses(posts []models.Post, viewer uint) ([]PostResponse, error) {
	ids := make([]uint, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}

	meta, err := services.VoteMetaFor(models.TargetPost, ids, viewer)
	if err != nil {
		return nil, err
	}
	counts, err := services.CommentCounts(ids)
	if err != nil {
		return nil, err
	}

	out := make([]PostResponse, len(posts))
	for i, p := range posts {
		m := meta[p.ID]
		out[i] = PostResponse{
			ID:             p.ID,
			Title:          p.Title,
			Content:        p.Content,
			ContentHTML:    utils.RenderMarkdown(p.Content),
			CreatedAt:      p.CreatedAt,
			AuthorUsername: p.User.Username,
			AuthorID:       p.UserID,
			SubredditName:  p.Subreddit.Name,
			SubredditID:    p.SubredditID,
			VoteCount:      m.Score,
			UserVote:       m.ViewerVote,
			CommentCount:   counts[p.ID],
		}
	}
	return out, nil
}

// buildCommentResponses shapes comments loaded with their User association.
func buildCommentResponses(comments []models.Comment, viewer uint) ([]CommentResponse, error) {
	ids := make([]uint, len(comments))
	for i, cm := range comments {
		ids[i] = cm.ID
	}

	meta, err := services.VoteMetaFor(models.TargetComment, ids, viewer)
	if err != nil {
		return nil, err
	}

	out := make([]CommentResponse, len(comments))
	for i, cm := range comments {
		m := meta[cm.ID]
		out[i] = CommentResponse{
			ID:             cm.ID,
			Content:        cm.Content,
			ContentHTML:    utils.RenderMarkdown(cm.Content),
			CreatedAt:      cm.CreatedAt,
			AuthorUsername: cm.User.Username,
			AuthorID:       cm.UserID,
			PostID:         cm.PostID,
			VoteCount:      m.Score,
			UserVote:       m.ViewerVote,
		}
	}
	return out, nil
}

// buildSubredditResponses shapes subreddits loaded with their Creator
// association.
func buildSubredditResponses(subs []models.Subreddit, viewer uint) ([]SubredditResponse, error) {
	ids := make([]uint, len(subs))
	for i, s := range subs {
		ids[i] = s.ID
	}

	counts, err := services.MemberCounts(ids)
	if err != nil {
		return nil, err
	}
	joined, err := services.JoinedSet(ids, viewer)
	if err != nil {
		return nil, err
	}

	out := make([]SubredditResponse, len(subs))
	for i, s := range subs {
		out[i] = SubredditResponse{
			ID:              s.ID,
			Name:            s.Name,
			Description:     s.Description,
			CreatedAt:       s.CreatedAt,
			CreatorUsername: s.Creator.Username,
			MemberCount:     counts[s.ID],
			IsJoined:        joined[s.ID],
		}
	}
	return out, nil
}
