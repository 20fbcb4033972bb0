package services

import (
	"fmt"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/AparicioQA/RedditClone/internal/db"
	"github.com/AparicioQA/RedditClone/internal/models"
)

// setupTestDB points the package-level connection at a fresh in-memory
// sqlite database named after the test, so cases never share state.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	db.DB = gdb
	return gdb
}

func createTestUser(t *testing.T, username string) *models.User {
	t.Helper()
	user := models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "x",
	}
	if err := db.DB.Create(&user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return &user
}

func createTestSubreddit(t *testing.T, creatorID uint, name string) *models.Subreddit {
	t.Helper()
	sub := models.Subreddit{Name: name, Description: "about " + name, CreatorID: creatorID}
	if err := db.DB.Create(&sub).Error; err != nil {
		t.Fatalf("create subreddit %s: %v", name, err)
	}
	return &sub
}

func createTestPost(t *testing.T, subredditID, userID uint, title string) *models.Post {
	t.Helper()
	post := models.Post{SubredditID: subredditID, UserID: userID, Title: title, Content: "body of " + title}
	if err := db.DB.Create(&post).Error; err != nil {
		t.Fatalf("create post %s: %v", title, err)
	}
	return &post
}

func createTestComment(t *testing.T, postID, userID uint, content string) *models.Comment {
	t.Helper()
	comment := models.Comment{PostID: postID, UserID: userID, Content: content}
	if err := db.DB.Create(&comment).Error; err != nil {
		t.Fatalf("create comment: %v", err)
	}
	return &comment
}

func countVotes(t *testing.T, target models.Target) int64 {
	t.Helper()
	var n int64
	err := db.DB.Model(&models.Vote{}).
		Where("target_kind = ? AND target_id = ?", target.Kind, target.ID).
		Count(&n).Error
	if err != nil {
		t.Fatalf("count votes: %v", err)
	}
	return n
}
