package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AparicioQA/RedditClone/internal/apperrors"
	"github.com/AparicioQA/RedditClone/internal/middleware"
	"github.com/AparicioQA/RedditClone/internal/models"
)

// CurrentUser returns the authenticated user if LoadUser put one on the
// context.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get(middleware.CurrentUserKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}

// viewerID is 0 for anonymous requests.
func viewerID(c *gin.Context) uint {
	if user, ok := CurrentUser(c); ok {
		return user.ID
	}
	return 0
}

// Fail writes the JSON error body for a taxonomy error.
func Fail(c *gin.Context, err error) {
	var status int
	switch {
	case errors.Is(err, apperrors.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperrors.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, apperrors.ErrConflict):
		// Duplicates keep the 400 shape the SPA already expects.
		status = http.StatusBadRequest
	case errors.Is(err, apperrors.ErrUnauthenticated):
		status = http.StatusUnauthorized
	default:
		log.Printf("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	c.JSON(status, gin.H{"message": err.Error()})
}
