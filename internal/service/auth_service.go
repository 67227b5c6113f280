package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/noah-isme/sarhne-api/internal/dto"
	"github.com/noah-isme/sarhne-api/internal/identity"
	"github.com/noah-isme/sarhne-api/internal/models"
	"github.com/noah-isme/sarhne-api/internal/observability"
	"github.com/noah-isme/sarhne-api/internal/repository"
	"github.com/noah-isme/sarhne-api/internal/storage"
)

// AuthService composes the identity gateway and token service into session flows.
type AuthService interface {
	Register(ctx context.Context, payload dto.RegisterRequest) (dto.RegisterResponse, error)
	Login(ctx context.Context, payload dto.LoginRequest) (dto.UserLoginResponse, error)
	Refresh(ctx context.Context, token string) (dto.UserLoginResponse, error)
	Revoke(ctx context.Context, token string) (bool, error)
}

type authService struct {
	identity      identity.Gateway
	users         repository.UserRepository
	refreshTokens repository.RefreshTokenRepository
	tokens        TokenService
	files         storage.FileStorage
	validator     *validator.Validate
	sanitizer     plainText
	logger        zerolog.Logger
	tracer        trace.Tracer
	now           func() time.Time
}

// NewAuthService constructs the auth orchestrator.
func NewAuthService(gateway identity.Gateway, users repository.UserRepository, refreshTokens repository.RefreshTokenRepository, tokens TokenService, files storage.FileStorage, validate *validator.Validate, logger zerolog.Logger) AuthService {
	return &authService{
		identity:      gateway,
		users:         users,
		refreshTokens: refreshTokens,
		tokens:        tokens,
		files:         files,
		validator:     validate,
		sanitizer:     newPlainText(),
		logger:        logger.With().Str("component", "auth_service").Logger(),
		tracer:        otel.Tracer("github.com/noah-isme/sarhne-api/internal/service/auth"),
		now:           time.Now,
	}
}

func (s *authService) Register(ctx context.Context, payload dto.RegisterRequest) (dto.RegisterResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.RegisterResponse{}, err
	}
	if payload.Image == nil {
		return dto.RegisterResponse{}, newError(ErrValidation, MsgImageRequired)
	}

	ctx, span := s.tracer.Start(ctx, "auth.register")
	defer span.End()

	if _, err := s.identity.FindByEmail(ctx, payload.Email); err == nil {
		observability.AuthEvents().WithLabelValues("register", "email_taken").Inc()
		return dto.RegisterResponse{}, newError(ErrValidation, MsgEmailExists)
	} else if !errors.Is(err, identity.ErrUserNotFound) {
		span.RecordError(err)
		return dto.RegisterResponse{}, err
	}

	if _, err := s.identity.FindByUserName(ctx, payload.UserName); err == nil {
		observability.AuthEvents().WithLabelValues("register", "username_taken").Inc()
		return dto.RegisterResponse{}, newError(ErrValidation, MsgUserNameTaken)
	} else if !errors.Is(err, identity.ErrUserNotFound) {
		span.RecordError(err)
		return dto.RegisterResponse{}, err
	}

	link := strings.TrimSpace(payload.Link)
	if link == "" {
		link = strings.TrimSpace(payload.UserName)
	}
	span.SetAttributes(attribute.String("auth.link", link))

	taken, err := s.users.LinkTaken(ctx, link, "")
	if err != nil {
		span.RecordError(err)
		return dto.RegisterResponse{}, err
	}
	if taken {
		observability.AuthEvents().WithLabelValues("register", "link_taken").Inc()
		return dto.RegisterResponse{}, newError(ErrConflict, MsgLinkTaken)
	}

	filename := s.files.GenerateUniqueFilename(payload.Image.Filename)
	imageURL, err := s.files.URL(storage.UserImagesFolder, filename)
	if err != nil {
		span.RecordError(err)
		return dto.RegisterResponse{}, err
	}

	user := models.User{
		UserName:       strings.TrimSpace(payload.UserName),
		Email:          strings.TrimSpace(payload.Email),
		Link:           link,
		Name:           s.sanitizer.clean(payload.Name),
		Gender:         payload.Gender,
		ImageURL:       imageURL,
		DetailsAboutMe: s.sanitizer.clean(payload.DetailsAboutMe),
	}

	if err := s.identity.Create(ctx, &user, payload.Password); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "identity create failed")
		return dto.RegisterResponse{}, err
	}

	if err := s.files.Save(ctx, storage.UserImagesFolder, filename, payload.Image.Data); err != nil {
		span.RecordError(err)
		s.logger.Error().Err(err).Str("user_id", user.ID).Msg("failed to store profile image")
		return dto.RegisterResponse{}, fmt.Errorf("store profile image: %w", err)
	}

	observability.AuthEvents().WithLabelValues("register", "success").Inc()
	s.logger.Info().Str("user_id", user.ID).Str("link", link).Msg("user registered")

	return dto.RegisterResponse{Name: user.Name, Email: user.Email, UserName: user.UserName}, nil
}

func (s *authService) Login(ctx context.Context, payload dto.LoginRequest) (dto.UserLoginResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.UserLoginResponse{}, err
	}

	ctx, span := s.tracer.Start(ctx, "auth.login")
	defer span.End()

	user, err := s.identity.FindByEmail(ctx, payload.Email)
	if err != nil {
		if errors.Is(err, identity.ErrUserNotFound) {
			observability.AuthEvents().WithLabelValues("login", "unknown_email").Inc()
			return dto.UserLoginResponse{}, newError(ErrValidation, MsgUserNotExist)
		}
		span.RecordError(err)
		return dto.UserLoginResponse{}, err
	}

	if !s.identity.CheckPassword(user, payload.Password) {
		observability.AuthEvents().WithLabelValues("login", "bad_password").Inc()
		return dto.UserLoginResponse{}, newError(ErrUnauthorized, MsgInvalidCredentials)
	}

	refresh, err := s.tokens.GenerateRefreshToken()
	if err != nil {
		span.RecordError(err)
		return dto.UserLoginResponse{}, err
	}
	refresh.UserID = user.ID

	if err := s.refreshTokens.Create(ctx, &refresh); err != nil {
		span.RecordError(err)
		return dto.UserLoginResponse{}, err
	}

	response, err := s.sessionResponse(user, refresh)
	if err != nil {
		span.RecordError(err)
		return dto.UserLoginResponse{}, err
	}

	observability.AuthEvents().WithLabelValues("login", "success").Inc()
	s.logger.Info().Str("user_id", user.ID).Msg("user logged in")
	return response, nil
}

func (s *authService) Refresh(ctx context.Context, token string) (dto.UserLoginResponse, error) {
	ctx, span := s.tracer.Start(ctx, "auth.refresh")
	defer span.End()

	user, current, err := s.resolveRefreshToken(ctx, token)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			observability.AuthEvents().WithLabelValues("refresh", "invalid").Inc()
		} else {
			span.RecordError(err)
		}
		return dto.UserLoginResponse{}, err
	}

	replacement, err := s.tokens.GenerateRefreshToken()
	if err != nil {
		span.RecordError(err)
		return dto.UserLoginResponse{}, err
	}
	replacement.UserID = user.ID

	if err := s.refreshTokens.Rotate(ctx, current.ID, s.now().UTC(), &replacement); err != nil {
		if errors.Is(err, repository.ErrRefreshTokenConsumed) {
			observability.AuthEvents().WithLabelValues("refresh", "replayed").Inc()
			s.logger.Warn().Str("user_id", user.ID).Msg("refresh token redeemed concurrently")
			return dto.UserLoginResponse{}, newError(ErrUnauthorized, MsgInvalidRefresh)
		}
		span.RecordError(err)
		return dto.UserLoginResponse{}, err
	}

	response, err := s.sessionResponse(user, replacement)
	if err != nil {
		span.RecordError(err)
		return dto.UserLoginResponse{}, err
	}

	observability.AuthEvents().WithLabelValues("refresh", "success").Inc()
	s.logger.Info().Str("user_id", user.ID).Msg("refresh token rotated")
	return response, nil
}

func (s *authService) Revoke(ctx context.Context, token string) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "auth.revoke")
	defer span.End()

	user, current, err := s.resolveRefreshToken(ctx, token)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			observability.AuthEvents().WithLabelValues("revoke", "invalid").Inc()
			return false, nil
		}
		span.RecordError(err)
		return false, err
	}

	if err := s.refreshTokens.Revoke(ctx, current.ID, s.now().UTC()); err != nil {
		if errors.Is(err, repository.ErrRefreshTokenConsumed) {
			return false, nil
		}
		span.RecordError(err)
		return false, err
	}

	observability.AuthEvents().WithLabelValues("revoke", "success").Inc()
	s.logger.Info().Str("user_id", user.ID).Msg("refresh token revoked")
	return true, nil
}

// resolveRefreshToken finds the owner of token and the matching active token row.
func (s *authService) resolveRefreshToken(ctx context.Context, token string) (models.User, models.RefreshToken, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return models.User{}, models.RefreshToken{}, newError(ErrUnauthorized, MsgInvalidRefresh)
	}

	user, err := s.refreshTokens.FindOwner(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, models.RefreshToken{}, newError(ErrUnauthorized, MsgInvalidRefresh)
		}
		return models.User{}, models.RefreshToken{}, err
	}

	if !s.tokens.ValidateRefreshToken(user, token) {
		return models.User{}, models.RefreshToken{}, newError(ErrUnauthorized, MsgInvalidRefresh)
	}

	for _, candidate := range user.RefreshTokens {
		if candidate.Token == token {
			return user, candidate, nil
		}
	}
	return models.User{}, models.RefreshToken{}, newError(ErrUnauthorized, MsgInvalidRefresh)
}

func (s *authService) sessionResponse(user models.User, refresh models.RefreshToken) (dto.UserLoginResponse, error) {
	session, err := s.tokens.IssueSessionToken(user, s.identity.Roles(user))
	if err != nil {
		return dto.UserLoginResponse{}, err
	}

	return dto.UserLoginResponse{
		ID:                     user.ID,
		DisplayName:            user.UserName,
		Email:                  user.Email,
		Token:                  session,
		RefreshToken:           refresh.Token,
		RefreshTokenExpiration: refresh.ExpiresOn,
	}, nil
}
