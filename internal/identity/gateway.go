package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/noah-isme/sarhne-api/internal/models"
	"github.com/noah-isme/sarhne-api/internal/repository"
)

const (
	changeEmailPurpose = "change_email"
	changeEmailTTL     = time.Hour
)

var (
	// ErrUserNotFound indicates no account matched the lookup.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials indicates a password did not match the stored hash.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailTaken indicates another account already uses the email address.
	ErrEmailTaken = errors.New("email already in use")
	// ErrInvalidToken indicates a confirmation token was malformed, expired or issued for another change.
	ErrInvalidToken = errors.New("invalid confirmation token")
)

// Gateway owns credential storage and verification for user accounts.
type Gateway interface {
	FindByID(ctx context.Context, id string) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByUserName(ctx context.Context, userName string) (models.User, error)
	Create(ctx context.Context, user *models.User, password string) error
	CheckPassword(user models.User, password string) bool
	GenerateChangeEmailToken(user models.User, newEmail string) (string, error)
	ChangeEmail(ctx context.Context, userID, newEmail, token string) error
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
	Roles(user models.User) []string
}

type gateway struct {
	users  repository.UserRepository
	secret []byte
	cost   int
	logger zerolog.Logger
	now    func() time.Time
}

// NewGateway constructs a gorm backed identity gateway hashing passwords with bcrypt.
func NewGateway(users repository.UserRepository, secret string, logger zerolog.Logger) Gateway {
	return &gateway{
		users:  users,
		secret: []byte(secret),
		cost:   bcrypt.DefaultCost,
		logger: logger.With().Str("component", "identity_gateway").Logger(),
		now:    time.Now,
	}
}

func (g *gateway) FindByID(ctx context.Context, id string) (models.User, error) {
	return translate(g.users.GetByID(ctx, id))
}

func (g *gateway) FindByEmail(ctx context.Context, email string) (models.User, error) {
	return translate(g.users.GetByEmail(ctx, strings.TrimSpace(email)))
}

func (g *gateway) FindByUserName(ctx context.Context, userName string) (models.User, error) {
	return translate(g.users.GetByUserName(ctx, strings.TrimSpace(userName)))
}

func (g *gateway) Create(ctx context.Context, user *models.User, password string) error {
	if user == nil {
		return errors.New("user is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), g.cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user.PasswordHash = string(hash)
	if len(user.Roles) == 0 {
		user.Roles = []string{models.RoleUser}
	}

	if err := g.users.Create(ctx, user); err != nil {
		return err
	}

	g.logger.Info().Str("user_id", user.ID).Msg("identity created")
	return nil
}

func (g *gateway) CheckPassword(user models.User, password string) bool {
	if user.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}

func (g *gateway) GenerateChangeEmailToken(user models.User, newEmail string) (string, error) {
	now := g.now()
	claims := jwt.MapClaims{
		"sub":       user.ID,
		"new_email": normalizeEmail(newEmail),
		"purpose":   changeEmailPurpose,
		"iat":       now.Unix(),
		"exp":       now.Add(changeEmailTTL).Unix(),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.secret)
}

func (g *gateway) ChangeEmail(ctx context.Context, userID, newEmail, token string) error {
	newEmail = normalizeEmail(newEmail)
	if err := g.verifyChangeEmailToken(token, userID, newEmail); err != nil {
		return err
	}

	taken, err := g.users.EmailTaken(ctx, newEmail, userID)
	if err != nil {
		return err
	}
	if taken {
		return ErrEmailTaken
	}

	user, err := g.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	user.Email = newEmail
	if err := g.users.Update(ctx, &user); err != nil {
		return err
	}

	g.logger.Info().Str("user_id", userID).Msg("email changed")
	return nil
}

func (g *gateway) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := g.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if !g.CheckPassword(user, currentPassword) {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), g.cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user.PasswordHash = string(hash)
	if err := g.users.Update(ctx, &user); err != nil {
		return err
	}

	g.logger.Info().Str("user_id", userID).Msg("password changed")
	return nil
}

func (g *gateway) Roles(user models.User) []string {
	if len(user.Roles) == 0 {
		return []string{models.RoleUser}
	}
	roles := make([]string, len(user.Roles))
	copy(roles, user.Roles)
	return roles
}

func (g *gateway) verifyChangeEmailToken(raw, userID, newEmail string) error {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return g.secret, nil
	}, jwt.WithTimeFunc(g.now))
	if err != nil || !token.Valid {
		return ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ErrInvalidToken
	}

	purpose, _ := claims["purpose"].(string)
	subject, _ := claims["sub"].(string)
	email, _ := claims["new_email"].(string)
	if purpose != changeEmailPurpose || subject != userID || email != newEmail {
		return ErrInvalidToken
	}
	return nil
}

func translate(user models.User, err error) (models.User, error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, ErrUserNotFound
	}
	return user, err
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
