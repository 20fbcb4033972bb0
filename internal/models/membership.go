package models

import (
	"time"
)

// Membership is a set, not a multiset: the composite primary key makes a
// second (subreddit, user) row impossible at the storage layer.
type Membership struct {
	SubredditID uint      `gorm:"primaryKey;autoIncrement:false" json:"subreddit_id"`
	Subreddit   Subreddit `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	UserID      uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	User        User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	JoinedAt    time.Time `gorm:"autoCreateTime" json:"joined_at"`
}
