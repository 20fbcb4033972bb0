package services

import (
	"gorm.io/gorm"

	"github.com/AparicioQA/RedditClone/internal/db"
	"github.com/AparicioQA/RedditClone/internal/models"
)

// DeletePost removes a post with everything hanging off it: votes on its
// comments, the comments, and votes on the post itself, in one transaction.
// The vote target is polymorphic, so FK cascades cannot reach the ledger;
// the cascade is done here instead.
func DeletePost(postID uint) error {
	return db.DB.Transaction(func(tx *gorm.DB) error {
		var commentIDs []uint
		if err := tx.Model(&models.Comment{}).Where("post_id = ?", postID).
			Pluck("id", &commentIDs).Error; err != nil {
			return err
		}
		if len(commentIDs) > 0 {
			if err := tx.Where("target_kind = ? AND target_id IN ?",
				models.TargetComment, commentIDs).Delete(&models.Vote{}).Error; err != nil {
				return err
			}
			if err := tx.Where("post_id = ?", postID).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("target_kind = ? AND target_id = ?",
			models.TargetPost, postID).Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, postID).Error
	})
}

// DeleteComment removes one comment and only the votes on it. The parent
// post is untouched.
func DeleteComment(commentID uint) error {
	return db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("target_kind = ? AND target_id = ?",
			models.TargetComment, commentID).Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Comment{}, commentID).Error
	})
}
