package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/AparicioQA/RedditClone/internal/auth"
	"github.com/AparicioQA/RedditClone/internal/services"
)

const CurrentUserKey = "user"

// LoadUser resolves an optional bearer token into a user record on the
// context. Invalid or absent tokens leave the request anonymous; protected
// routes add AuthRequired on top.
func LoadUser(verifier auth.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw := bearerToken(c); raw != "" {
			if principal, err := verifier.Verify(raw); err == nil {
				if user, err := services.ResolveUser(principal); err == nil {
					c.Set(CurrentUserKey, user)
				}
			}
		}
		c.Next()
	}
}

// AuthRequired aborts with 401 unless LoadUser put a user on the context.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(CurrentUserKey); !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
