package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/AparicioQA/RedditClone/internal/apperrors"
	"github.com/AparicioQA/RedditClone/internal/db"
	"github.com/AparicioQA/RedditClone/internal/models"
)

// CastVote applies one vote request to the (user, target) pair. Requesting
// the value already stored removes the vote, the opposite value flips the
// stored row in place, and a fresh pair inserts. The value check runs
// before any state is read, the target check before the ledger is touched.
// Both the target check and the read-then-write share one transaction, so
// a target deleted mid-request cannot acquire an orphan vote row; a racing
// insert trips the unique index and comes back as a retryable Conflict.
func CastVote(userID uint, target models.Target, value int) error {
	if value != 1 && value != -1 {
		return apperrors.InvalidInput("Vote value must be 1 or -1")
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := targetExists(tx, target); err != nil {
			return err
		}

		var existing models.Vote
		err := tx.Where("user_id = ? AND target_kind = ? AND target_id = ?",
			userID, target.Kind, target.ID).First(&existing).Error
		switch {
		case err == nil:
			if existing.Value == value {
				// Same value again: toggle off.
				return tx.Delete(&existing).Error
			}
			// Opposite value: flip in place, the row keeps its identity.
			return tx.Model(&existing).Update("value", value).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			vote := models.Vote{UserID: userID, Target: target, Value: value}
			return tx.Create(&vote).Error
		default:
			return err
		}
	})
	return apperrors.FromDB(err, targetNotFoundMsg(target), "Vote already recorded, retry")
}

func targetExists(tx *gorm.DB, target models.Target) error {
	var count int64
	var err error
	switch target.Kind {
	case models.TargetPost:
		err = tx.Model(&models.Post{}).Where("id = ?", target.ID).Count(&count).Error
	case models.TargetComment:
		err = tx.Model(&models.Comment{}).Where("id = ?", target.ID).Count(&count).Error
	default:
		return apperrors.InvalidInput("Unknown vote target")
	}
	if err != nil {
		return err
	}
	if count == 0 {
		return apperrors.NotFound(targetNotFoundMsg(target))
	}
	return nil
}

func targetNotFoundMsg(target models.Target) string {
	if target.Kind == models.TargetComment {
		return "Comment not found"
	}
	return "Post not found"
}
