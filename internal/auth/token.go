// Package auth issues and verifies the bearer tokens the API accepts.
// Locally registered accounts and the external identity provider both
// present JWTs; verified claims are reduced to a Principal before anything
// else sees them.
package auth

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/AparicioQA/RedditClone/internal/config"
)

// Principal is the identity carried by a verified token: the provider's
// subject id plus whatever profile claims it included.
type Principal struct {
	SubjectID string
	Name      string
	Email     string
}

// TokenVerifier turns a raw bearer token into a Principal.
type TokenVerifier interface {
	Verify(raw string) (*Principal, error)
}

const localSubjectPrefix = "local:"

// LocalSubject encodes a local user id as a token subject, so locally
// issued tokens are distinguishable from external-provider subjects.
func LocalSubject(userID uint) string {
	return localSubjectPrefix + strconv.FormatUint(uint64(userID), 10)
}

// LocalSubjectID decodes a subject produced by LocalSubject. ok is false
// for external-provider subjects.
func LocalSubjectID(subject string) (uint, bool) {
	raw, found := strings.CutPrefix(subject, localSubjectPrefix)
	if !found {
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// Service signs and verifies HS256 tokens. Issuer and audience are pinned
// at startup and validated on every token.
type Service struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
}

func NewService(cfg *config.Config) *Service {
	return &Service{
		secret:   []byte(cfg.JWTSecret),
		issuer:   cfg.JWTIssuer,
		audience: cfg.JWTAudience,
		ttl:      7 * 24 * time.Hour,
	}
}

// GenerateToken issues a token for a locally authenticated user.
func (s *Service) GenerateToken(subject, username, email string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   subject,
		"name":  username,
		"email": email,
		"iss":   s.issuer,
		"aud":   s.audience,
		"iat":   now.Unix(),
		"exp":   now.Add(s.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify validates signature, issuer, audience and expiry, then extracts
// the Principal.
func (s *Service) Verify(raw string) (*Principal, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(s.issuer), jwt.WithAudience(s.audience), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("unexpected claims type %T", token.Claims)
	}
	sub, _ := claims["sub"].(string)
	if strings.TrimSpace(sub) == "" {
		return nil, fmt.Errorf("token has no subject")
	}
	name, _ := claims["name"].(string)
	email, _ := claims["email"].(string)

	return &Principal{SubjectID: sub, Name: name, Email: email}, nil
}
