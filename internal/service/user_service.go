package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/sarhne-api/internal/dto"
	"github.com/noah-isme/sarhne-api/internal/identity"
	"github.com/noah-isme/sarhne-api/internal/repository"
)

// UserService exposes profile lookups and self-service account changes.
type UserService interface {
	GetByLink(ctx context.Context, link string) (dto.UserResponse, error)
	UpdateData(ctx context.Context, userID string, payload dto.UpdateUserDataRequest) (dto.UserResponse, error)
	UpdateEmail(ctx context.Context, userID string, payload dto.UpdateEmailRequest) error
	UpdatePassword(ctx context.Context, userID string, payload dto.UpdatePasswordRequest) error
	ChangeLink(ctx context.Context, userID string, payload dto.UpdateLinkRequest) error
}

type userService struct {
	users     repository.UserRepository
	identity  identity.Gateway
	validator *validator.Validate
	sanitizer plainText
	logger    zerolog.Logger
}

// NewUserService constructs a user profile service.
func NewUserService(users repository.UserRepository, gateway identity.Gateway, validate *validator.Validate, logger zerolog.Logger) UserService {
	return &userService{
		users:     users,
		identity:  gateway,
		validator: validate,
		sanitizer: newPlainText(),
		logger:    logger.With().Str("component", "user_service").Logger(),
	}
}

func (s *userService) GetByLink(ctx context.Context, link string) (dto.UserResponse, error) {
	link = strings.TrimSpace(link)
	if link == "" {
		return dto.UserResponse{}, newError(ErrValidation, MsgInvalidLink)
	}

	user, err := s.users.GetByLink(ctx, link)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.UserResponse{}, newError(ErrNotFound, MsgLinkUserNotFound)
		}
		return dto.UserResponse{}, err
	}

	return dto.NewUserResponse(user), nil
}

func (s *userService) UpdateData(ctx context.Context, userID string, payload dto.UpdateUserDataRequest) (dto.UserResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.UserResponse{}, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.UserResponse{}, newError(ErrNotFound, MsgUserNotFound)
		}
		return dto.UserResponse{}, err
	}

	user.Gender = payload.Gender
	user.Name = s.sanitizer.clean(payload.Name)
	user.DetailsAboutMe = s.sanitizer.clean(payload.DetailsAboutMe)

	if err := s.users.Update(ctx, &user); err != nil {
		return dto.UserResponse{}, err
	}

	s.logger.Info().Str("user_id", userID).Msg("profile updated")
	return dto.NewUserResponse(user), nil
}

func (s *userService) UpdateEmail(ctx context.Context, userID string, payload dto.UpdateEmailRequest) error {
	if err := s.validator.Struct(payload); err != nil {
		return err
	}

	user, err := s.identity.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, identity.ErrUserNotFound) {
			return newError(ErrNotFound, MsgUserNotFound)
		}
		return err
	}

	token, err := s.identity.GenerateChangeEmailToken(user, payload.NewEmail)
	if err != nil {
		return err
	}

	if err := s.identity.ChangeEmail(ctx, user.ID, payload.NewEmail, token); err != nil {
		if errors.Is(err, identity.ErrEmailTaken) || errors.Is(err, identity.ErrInvalidToken) {
			return newError(ErrValidation, MsgEmailChangeFailed)
		}
		return err
	}

	return nil
}

func (s *userService) UpdatePassword(ctx context.Context, userID string, payload dto.UpdatePasswordRequest) error {
	if err := s.validator.Struct(payload); err != nil {
		return err
	}

	if err := s.identity.ChangePassword(ctx, userID, payload.CurrentPassword, payload.NewPassword); err != nil {
		switch {
		case errors.Is(err, identity.ErrUserNotFound):
			return newError(ErrNotFound, MsgUserNotFound)
		case errors.Is(err, identity.ErrInvalidCredentials):
			return newError(ErrValidation, MsgPasswordChange)
		}
		return err
	}

	return nil
}

func (s *userService) ChangeLink(ctx context.Context, userID string, payload dto.UpdateLinkRequest) error {
	if err := s.validator.Struct(payload); err != nil {
		return err
	}
	link := strings.TrimSpace(payload.Link)

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return newError(ErrNotFound, MsgUserNotFound)
		}
		return err
	}

	taken, err := s.users.LinkTaken(ctx, link, user.ID)
	if err != nil {
		return err
	}
	if taken {
		return newError(ErrConflict, MsgLinkTaken)
	}

	user.Link = link
	if err := s.users.Update(ctx, &user); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to change link")
		return newError(ErrValidation, MsgLinkChangeFailed)
	}

	s.logger.Info().Str("user_id", userID).Str("link", link).Msg("link changed")
	return nil
}
