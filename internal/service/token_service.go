package service

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/noah-isme/sarhne-api/internal/models"
)

const refreshTokenBytes = 32

// TokenConfig carries the key material and lifetimes used for issuing tokens.
type TokenConfig struct {
	Secret       string
	Issuer       string
	Audience     string
	DurationDays int
	RefreshTTL   time.Duration
}

// TokenService issues session tokens and manages refresh token values.
type TokenService interface {
	IssueSessionToken(user models.User, roles []string) (string, error)
	GenerateRefreshToken() (models.RefreshToken, error)
	ValidateRefreshToken(user models.User, token string) bool
}

type tokenService struct {
	secret     []byte
	issuer     string
	audience   string
	duration   time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewTokenService validates the key material and constructs a token service.
func NewTokenService(cfg TokenConfig) (TokenService, error) {
	if cfg.Secret == "" {
		return nil, errors.New("token signing key must be provided")
	}
	if cfg.DurationDays <= 0 {
		cfg.DurationDays = 7
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = 10 * 24 * time.Hour
	}

	return &tokenService{
		secret:     []byte(cfg.Secret),
		issuer:     cfg.Issuer,
		audience:   cfg.Audience,
		duration:   time.Duration(cfg.DurationDays) * 24 * time.Hour,
		refreshTTL: cfg.RefreshTTL,
		now:        time.Now,
	}, nil
}

func (s *tokenService) IssueSessionToken(user models.User, roles []string) (string, error) {
	now := s.now()
	if roles == nil {
		roles = []string{}
	}

	claims := jwt.MapClaims{
		"sub":   user.ID,
		"name":  user.Name,
		"email": user.Email,
		"roles": roles,
		"iat":   now.Unix(),
		"exp":   now.Add(s.duration).Unix(),
	}
	if s.issuer != "" {
		claims["iss"] = s.issuer
	}
	if s.audience != "" {
		claims["aud"] = s.audience
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

func (s *tokenService) GenerateRefreshToken() (models.RefreshToken, error) {
	buf := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return models.RefreshToken{}, fmt.Errorf("generate refresh token: %w", err)
	}

	now := s.now().UTC()
	return models.RefreshToken{
		Token:     base64.StdEncoding.EncodeToString(buf),
		CreatedOn: now,
		ExpiresOn: now.Add(s.refreshTTL),
	}, nil
}

func (s *tokenService) ValidateRefreshToken(user models.User, token string) bool {
	if token == "" {
		return false
	}

	now := s.now()
	for _, candidate := range user.RefreshTokens {
		if subtle.ConstantTimeCompare([]byte(candidate.Token), []byte(token)) == 1 {
			return candidate.IsActive(now)
		}
	}
	return false
}
