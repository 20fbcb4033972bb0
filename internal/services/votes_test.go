package services

import (
	"errors"
	"testing"

	"github.com/AparicioQA/RedditClone/internal/apperrors"
	"github.com/AparicioQA/RedditClone/internal/db"
	"github.com/AparicioQA/RedditClone/internal/models"
)

func TestCastVoteInsertToggleFlip(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice")
	author := createTestUser(t, "bob")
	sub := createTestSubreddit(t, author.ID, "golang")
	post := createTestPost(t, sub.ID, author.ID, "first")
	target := models.PostTarget(post.ID)

	// Fresh pair inserts.
	if err := CastVote(user.ID, target, 1); err != nil {
		t.Fatalf("upvote: %v", err)
	}
	assertScore(t, target, 1)
	assertViewerVote(t, target, user.ID, ptr(1))

	// Opposite value flips the stored row without creating a second one.
	var before models.Vote
	if err := db.DB.First(&before, "user_id = ?", user.ID).Error; err != nil {
		t.Fatalf("load vote: %v", err)
	}
	if err := CastVote(user.ID, target, -1); err != nil {
		t.Fatalf("flip: %v", err)
	}
	assertScore(t, target, -1)
	assertViewerVote(t, target, user.ID, ptr(-1))
	if n := countVotes(t, target); n != 1 {
		t.Fatalf("after flip want 1 vote row, got %d", n)
	}
	var after models.Vote
	if err := db.DB.First(&after, "user_id = ?", user.ID).Error; err != nil {
		t.Fatalf("reload vote: %v", err)
	}
	if after.ID != before.ID {
		t.Fatalf("flip replaced the row: id %d -> %d", before.ID, after.ID)
	}

	// Same value again toggles off.
	if err := CastVote(user.ID, target, -1); err != nil {
		t.Fatalf("toggle off: %v", err)
	}
	assertScore(t, target, 0)
	assertViewerVote(t, target, user.ID, nil)
	if n := countVotes(t, target); n != 0 {
		t.Fatalf("after toggle want 0 vote rows, got %d", n)
	}
}

func TestCastVoteDoubleUpvoteNetsZero(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice")
	sub := createTestSubreddit(t, user.ID, "golang")
	post := createTestPost(t, sub.ID, user.ID, "first")
	target := models.PostTarget(post.ID)

	for i := 0; i < 2; i++ {
		if err := CastVote(user.ID, target, 1); err != nil {
			t.Fatalf("upvote %d: %v", i+1, err)
		}
	}
	assertScore(t, target, 0)
	assertViewerVote(t, target, user.ID, nil)
}

func TestCastVoteRejectsInvalidValue(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice")
	sub := createTestSubreddit(t, user.ID, "golang")
	post := createTestPost(t, sub.ID, user.ID, "first")
	target := models.PostTarget(post.ID)

	if err := CastVote(user.ID, target, 1); err != nil {
		t.Fatalf("upvote: %v", err)
	}

	for _, value := range []int{0, 2, -2, 40} {
		err := CastVote(user.ID, target, value)
		if !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Fatalf("value %d: want ErrInvalidInput, got %v", value, err)
		}
	}
	// Rejected requests never read or touch the stored vote.
	assertScore(t, target, 1)
	assertViewerVote(t, target, user.ID, ptr(1))
}

func TestCastVoteMissingTarget(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice")

	err := CastVote(user.ID, models.PostTarget(999), 1)
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	err = CastVote(user.ID, models.CommentTarget(999), -1)
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}

	var n int64
	if err := db.DB.Model(&models.Vote{}).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Fatalf("ledger should be untouched, found %d rows", n)
	}
}

func TestVoteUniqueIndexRejectsDuplicateRow(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice")
	sub := createTestSubreddit(t, user.ID, "golang")
	post := createTestPost(t, sub.ID, user.ID, "first")
	target := models.PostTarget(post.ID)

	mustVote(t, user.ID, target, 1)

	// A second row for the same (user, target) pair must be refused by the
	// store itself, bypassing CastVote entirely. This is what keeps a racing
	// toggle from double-inserting.
	dup := models.Vote{UserID: user.ID, Target: target, Value: -1}
	err := db.DB.Create(&dup).Error
	if err == nil {
		t.Fatal("duplicate (user, target) vote row inserted")
	}
	if !errors.Is(apperrors.FromDB(err, "", "Vote already recorded, retry"), apperrors.ErrConflict) {
		t.Fatalf("duplicate insert error %v did not translate to a conflict", err)
	}

	if n := countVotes(t, target); n != 1 {
		t.Fatalf("want 1 vote row after rejected duplicate, got %d", n)
	}
	assertScore(t, target, 1)

	// A different target for the same user is not a duplicate.
	other := createTestPost(t, sub.ID, user.ID, "second")
	ok := models.Vote{UserID: user.ID, Target: models.PostTarget(other.ID), Value: 1}
	if err := db.DB.Create(&ok).Error; err != nil {
		t.Fatalf("distinct target rejected: %v", err)
	}
}

func TestCastVoteIndependentPerUserAndTarget(t *testing.T) {
	setupTestDB(t)
	alice := createTestUser(t, "alice")
	bob := createTestUser(t, "bob")
	sub := createTestSubreddit(t, alice.ID, "golang")
	post := createTestPost(t, sub.ID, alice.ID, "first")
	comment := createTestComment(t, post.ID, bob.ID, "nice")
	postTarget := models.PostTarget(post.ID)
	commentTarget := models.CommentTarget(comment.ID)

	if err := CastVote(alice.ID, postTarget, 1); err != nil {
		t.Fatal(err)
	}
	if err := CastVote(bob.ID, postTarget, 1); err != nil {
		t.Fatal(err)
	}
	if err := CastVote(alice.ID, commentTarget, -1); err != nil {
		t.Fatal(err)
	}
	assertScore(t, postTarget, 2)
	assertScore(t, commentTarget, -1)

	// Bob toggling off leaves Alice's post vote alone.
	if err := CastVote(bob.ID, postTarget, 1); err != nil {
		t.Fatal(err)
	}
	assertScore(t, postTarget, 1)
	assertViewerVote(t, postTarget, alice.ID, ptr(1))
	assertViewerVote(t, postTarget, bob.ID, nil)
}

func TestVoteMetaForBatch(t *testing.T) {
	setupTestDB(t)
	alice := createTestUser(t, "alice")
	bob := createTestUser(t, "bob")
	sub := createTestSubreddit(t, alice.ID, "golang")
	p1 := createTestPost(t, sub.ID, alice.ID, "first")
	p2 := createTestPost(t, sub.ID, alice.ID, "second")
	p3 := createTestPost(t, sub.ID, alice.ID, "third")

	mustVote(t, alice.ID, models.PostTarget(p1.ID), 1)
	mustVote(t, bob.ID, models.PostTarget(p1.ID), 1)
	mustVote(t, bob.ID, models.PostTarget(p2.ID), -1)

	meta, err := VoteMetaFor(models.TargetPost, []uint{p1.ID, p2.ID, p3.ID}, bob.ID)
	if err != nil {
		t.Fatalf("VoteMetaFor: %v", err)
	}

	if m := meta[p1.ID]; m.Score != 2 || m.ViewerVote == nil || *m.ViewerVote != 1 {
		t.Fatalf("p1 meta = %+v", m)
	}
	if m := meta[p2.ID]; m.Score != -1 || m.ViewerVote == nil || *m.ViewerVote != -1 {
		t.Fatalf("p2 meta = %+v", m)
	}
	if m := meta[p3.ID]; m.Score != 0 || m.ViewerVote != nil {
		t.Fatalf("p3 meta = %+v", m)
	}

	// Anonymous viewers get scores with no viewer votes.
	anon, err := VoteMetaFor(models.TargetPost, []uint{p1.ID, p2.ID}, 0)
	if err != nil {
		t.Fatalf("VoteMetaFor anonymous: %v", err)
	}
	if m := anon[p1.ID]; m.Score != 2 || m.ViewerVote != nil {
		t.Fatalf("anonymous p1 meta = %+v", m)
	}
}

func mustVote(t *testing.T, userID uint, target models.Target, value int) {
	t.Helper()
	if err := CastVote(userID, target, value); err != nil {
		t.Fatalf("vote %d on %s %d: %v", value, target.Kind, target.ID, err)
	}
}

func assertScore(t *testing.T, target models.Target, want int) {
	t.Helper()
	got, err := TargetScore(target)
	if err != nil {
		t.Fatalf("TargetScore: %v", err)
	}
	if got != want {
		t.Fatalf("score = %d, want %d", got, want)
	}
}

func assertViewerVote(t *testing.T, target models.Target, viewerID uint, want *int) {
	t.Helper()
	got, err := ViewerVote(target, viewerID)
	if err != nil {
		t.Fatalf("ViewerVote: %v", err)
	}
	switch {
	case want == nil && got != nil:
		t.Fatalf("viewer vote = %d, want absent", *got)
	case want != nil && got == nil:
		t.Fatalf("viewer vote absent, want %d", *want)
	case want != nil && *got != *want:
		t.Fatalf("viewer vote = %d, want %d", *got, *want)
	}
}

func ptr(v int) *int { return &v }
