package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/AparicioQA/RedditClone/internal/db"
	"github.com/AparicioQA/RedditClone/internal/models"
)

// Read-time projections over the vote and membership ledgers. Nothing here
// is cached or denormalized: a score always recomputes from stored votes.

// TargetScore sums all stored vote values for one target.
func TargetScore(target models.Target) (int, error) {
	var score int64
	err := db.DB.Model(&models.Vote{}).
		Where("target_kind = ? AND target_id = ?", target.Kind, target.ID).
		Select("COALESCE(SUM(value), 0)").Scan(&score).Error
	return int(score), err
}

// ViewerVote returns the viewer's stored value for one target, or nil when
// no vote exists. Zero is never stored, so nil is the only "absent".
func ViewerVote(target models.Target, viewerID uint) (*int, error) {
	if viewerID == 0 {
		return nil, nil
	}
	var vote models.Vote
	err := db.DB.Where("user_id = ? AND target_kind = ? AND target_id = ?",
		viewerID, target.Kind, target.ID).First(&vote).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	value := vote.Value
	return &value, nil
}

// VoteMeta carries the two ledger projections for one target.
type VoteMeta struct {
	Score      int
	ViewerVote *int
}

// VoteMetaFor batch-loads score and viewer vote for many targets of one
// kind, two queries total regardless of list size.
func VoteMetaFor(kind models.TargetKind, ids []uint, viewerID uint) (map[uint]VoteMeta, error) {
	meta := make(map[uint]VoteMeta, len(ids))
	if len(ids) == 0 {
		return meta, nil
	}

	var sums []struct {
		TargetID uint
		Score    int
	}
	err := db.DB.Model(&models.Vote{}).
		Where("target_kind = ? AND target_id IN ?", kind, ids).
		Select("target_id, COALESCE(SUM(value), 0) AS score").
		Group("target_id").
		Scan(&sums).Error
	if err != nil {
		return nil, err
	}
	for _, s := range sums {
		m := meta[s.TargetID]
		m.Score = s.Score
		meta[s.TargetID] = m
	}

	if viewerID != 0 {
		var votes []models.Vote
		err = db.DB.Where("user_id = ? AND target_kind = ? AND target_id IN ?",
			viewerID, kind, ids).Find(&votes).Error
		if err != nil {
			return nil, err
		}
		for _, v := range votes {
			value := v.Value
			m := meta[v.Target.ID]
			m.ViewerVote = &value
			meta[v.Target.ID] = m
		}
	}
	return meta, nil
}

// CommentCounts batch-counts comments per post.
func CommentCounts(postIDs []uint) (map[uint]int, error) {
	counts := make(map[uint]int, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		PostID uint
		Count  int
	}
	err := db.DB.Model(&models.Comment{}).
		Where("post_id IN ?", postIDs).
		Select("post_id, COUNT(*) AS count").
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		counts[r.PostID] = r.Count
	}
	return counts, nil
}

// MemberCounts batch-counts memberships per subreddit.
func MemberCounts(subredditIDs []uint) (map[uint]int, error) {
	counts := make(map[uint]int, len(subredditIDs))
	if len(subredditIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		SubredditID uint
		Count       int
	}
	err := db.DB.Model(&models.Membership{}).
		Where("subreddit_id IN ?", subredditIDs).
		Select("subreddit_id, COUNT(*) AS count").
		Group("subreddit_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		counts[r.SubredditID] = r.Count
	}
	return counts, nil
}

// JoinedSet reports which of the given subreddits the viewer belongs to.
func JoinedSet(subredditIDs []uint, viewerID uint) (map[uint]bool, error) {
	joined := make(map[uint]bool, len(subredditIDs))
	if viewerID == 0 || len(subredditIDs) == 0 {
		return joined, nil
	}

	var ids []uint
	err := db.DB.Model(&models.Membership{}).
		Where("user_id = ? AND subreddit_id IN ?", viewerID, subredditIDs).
		Pluck("subreddit_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		joined[id] = true
	}
	return joined, nil
}

// UserKarma sums vote values over everything the user has authored, posts
// and comments alike. Derived from the ledger on every call, never stored.
func UserKarma(userID uint) (int, error) {
	var postKarma, commentKarma int64

	err := db.DB.Model(&models.Vote{}).
		Where("target_kind = ? AND target_id IN (?)", models.TargetPost,
			db.DB.Model(&models.Post{}).Select("id").Where("user_id = ?", userID)).
		Select("COALESCE(SUM(value), 0)").Scan(&postKarma).Error
	if err != nil {
		return 0, err
	}

	err = db.DB.Model(&models.Vote{}).
		Where("target_kind = ? AND target_id IN (?)", models.TargetComment,
			db.DB.Model(&models.Comment{}).Select("id").Where("user_id = ?", userID)).
		Select("COALESCE(SUM(value), 0)").Scan(&commentKarma).Error
	if err != nil {
		return 0, err
	}

	return int(postKarma + commentKarma), nil
}
