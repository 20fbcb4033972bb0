package models

import (
	"time"
)

// TargetKind discriminates what a vote applies to.
type TargetKind string

const (
	TargetPost    TargetKind = "post"
	TargetComment TargetKind = "comment"
)

// Target identifies the post or comment a vote applies to: one kind, one id.
// There are no nullable foreign keys to keep in sync.
type Target struct {
	Kind TargetKind `gorm:"column:target_kind;size:16;not null;uniqueIndex:idx_votes_user_target,priority:2;index:idx_votes_target,priority:1" json:"kind"`
	ID   uint       `gorm:"column:target_id;not null;uniqueIndex:idx_votes_user_target,priority:3;index:idx_votes_target,priority:2" json:"id"`
}

func PostTarget(id uint) Target    { return Target{Kind: TargetPost, ID: id} }
func CommentTarget(id uint) Target { return Target{Kind: TargetComment, ID: id} }

// Vote holds one user's vote on one target, value +1 or -1. The composite
// unique index over (user_id, target_kind, target_id) is the storage-level
// guarantee behind the at-most-one-vote invariant; racing inserts fail
// there and surface to the caller as a retryable conflict.
type Vote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_votes_user_target,priority:1" json:"user_id"`
	Target    Target    `gorm:"embedded" json:"target"`
	Value     int       `gorm:"not null" json:"value"` // 1 or -1, zero is never stored
	CreatedAt time.Time `json:"created_at"`
}
