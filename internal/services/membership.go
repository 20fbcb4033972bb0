package services

import (
	"gorm.io/gorm"

	"github.com/AparicioQA/RedditClone/internal/apperrors"
	"github.com/AparicioQA/RedditClone/internal/db"
	"github.com/AparicioQA/RedditClone/internal/models"
)

// JoinSubreddit inserts a membership row. Repeated joins are rejected with
// Conflict, not silently absorbed; the composite primary key backs that up
// at the storage layer.
func JoinSubreddit(userID, subredditID uint) error {
	var count int64
	if err := db.DB.Model(&models.Subreddit{}).Where("id = ?", subredditID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return apperrors.NotFound("Subreddit not found")
	}

	m := models.Membership{SubredditID: subredditID, UserID: userID}
	return apperrors.FromDB(db.DB.Create(&m).Error, "", "Already a member")
}

// LeaveSubreddit deletes the membership row, failing when none exists.
func LeaveSubreddit(userID, subredditID uint) error {
	res := db.DB.Where("subreddit_id = ? AND user_id = ?", subredditID, userID).
		Delete(&models.Membership{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("Not a member")
	}
	return nil
}

// CreateSubreddit creates the community and its first membership (the
// creator) in one transaction. The auto-join inserts unconditionally:
// nothing can precede the very first membership.
func CreateSubreddit(userID uint, name, description string) (*models.Subreddit, error) {
	sub := models.Subreddit{Name: name, Description: description, CreatorID: userID}
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&sub).Error; err != nil {
			return err
		}
		return tx.Create(&models.Membership{SubredditID: sub.ID, UserID: userID}).Error
	})
	if err != nil {
		return nil, apperrors.FromDB(err, "", "Subreddit name already exists")
	}
	return &sub, nil
}
