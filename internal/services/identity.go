package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/AparicioQA/RedditClone/internal/apperrors"
	"github.com/AparicioQA/RedditClone/internal/auth"
	"github.com/AparicioQA/RedditClone/internal/db"
	"github.com/AparicioQA/RedditClone/internal/models"
)

// ResolveUser maps a verified principal onto a local user record. Locally
// issued subjects must already exist; external-provider subjects are
// created on first sight.
func ResolveUser(p *auth.Principal) (*models.User, error) {
	if id, ok := auth.LocalSubjectID(p.SubjectID); ok {
		var user models.User
		if err := db.DB.First(&user, id).Error; err != nil {
			return nil, apperrors.FromDB(err, "User not found", "")
		}
		return &user, nil
	}
	return GetOrCreateUser(p)
}

// GetOrCreateUser looks a user up by external subject id and registers one
// on first sighting. Username falls back from the display-name claim to the
// email local-part to a placeholder; a missing email claim gets a synthetic
// address derived from the subject id. Idempotent per subject id.
func GetOrCreateUser(p *auth.Principal) (*models.User, error) {
	var user models.User
	err := db.DB.Where("external_uid = ?", p.SubjectID).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	uid := p.SubjectID
	email := p.Email
	if email == "" {
		email = fmt.Sprintf("%s@external.user", uid)
	}
	username := strings.TrimSpace(p.Name)
	if username == "" {
		username = strings.Split(email, "@")[0]
	}
	if username == "" {
		username = "user"
	}

	user = models.User{
		Username:    username,
		Email:       email,
		Password:    "", // not used for external accounts
		ExternalUID: &uid,
	}

	// Upsert guarded by the external_uid unique index: concurrent first
	// requests race to insert and the loser reads the winner's row back.
	res := db.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "external_uid"}},
		DoNothing: true,
	}).Create(&user)
	if res.Error != nil {
		// A synthesized username or email colliding with an existing
		// account lands here.
		return nil, apperrors.FromDB(res.Error, "", "Username or email already exists")
	}
	if res.RowsAffected == 0 {
		if err := db.DB.Where("external_uid = ?", uid).First(&user).Error; err != nil {
			return nil, err
		}
	}
	return &user, nil
}
