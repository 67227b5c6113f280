package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/noah-isme/sarhne-api/internal/dto"
	"github.com/noah-isme/sarhne-api/internal/models"
	"github.com/noah-isme/sarhne-api/internal/observability"
	"github.com/noah-isme/sarhne-api/internal/repository"
	"github.com/noah-isme/sarhne-api/internal/storage"
)

// MessageService owns message delivery, visibility and receiver side state changes.
type MessageService interface {
	Send(ctx context.Context, senderID string, payload dto.SendMessageRequest) (dto.MessageResponse, error)
	ListReceived(ctx context.Context, userID string) ([]dto.MessageResponse, error)
	ListSent(ctx context.Context, userID string) ([]dto.MessageResponse, error)
	ListFavorited(ctx context.Context, userID string) ([]dto.MessageResponse, error)
	ListAppeared(ctx context.Context, userID string) ([]dto.MessageResponse, error)
	UpdateAppeared(ctx context.Context, messageID uint, userID string, value bool) error
	UpdateFavorite(ctx context.Context, messageID uint, userID string, value bool) error
	DeleteReceived(ctx context.Context, messageID uint, userID string) error
}

type messageService struct {
	messages  repository.MessageRepository
	users     repository.UserRepository
	files     storage.FileStorage
	validator *validator.Validate
	sanitizer plainText
	logger    zerolog.Logger
	tracer    trace.Tracer
}

// NewMessageService constructs a message service.
func NewMessageService(messages repository.MessageRepository, users repository.UserRepository, files storage.FileStorage, validate *validator.Validate, logger zerolog.Logger) MessageService {
	return &messageService{
		messages:  messages,
		users:     users,
		files:     files,
		validator: validate,
		sanitizer: newPlainText(),
		logger:    logger.With().Str("component", "message_service").Logger(),
		tracer:    otel.Tracer("github.com/noah-isme/sarhne-api/internal/service/message"),
	}
}

// Send stores a message for the receiver. An empty senderID marks an anonymous caller,
// who may only send secret messages.
func (s *messageService) Send(ctx context.Context, senderID string, payload dto.SendMessageRequest) (dto.MessageResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.MessageResponse{}, err
	}

	text := s.sanitizer.clean(payload.MessageText)
	if text == "" && payload.Image == nil {
		return dto.MessageResponse{}, newError(ErrValidation, MsgEmptyMessage)
	}
	if tooLong(text) {
		return dto.MessageResponse{}, newError(ErrValidation, MsgMessageTooLong)
	}

	senderID = strings.TrimSpace(senderID)
	authenticated := senderID != ""
	secret := payload.Secret()
	if !authenticated && !secret {
		return dto.MessageResponse{}, newError(ErrUnauthorized, MsgNotAuthenticated)
	}

	ctx, span := s.tracer.Start(ctx, "message.send", trace.WithAttributes(
		attribute.String("message.receiver_id", payload.ReceiverID),
		attribute.Bool("message.secret", secret),
		attribute.Bool("message.authenticated", authenticated),
		attribute.Bool("message.has_image", payload.Image != nil),
	))
	defer span.End()

	exists, err := s.users.Exists(ctx, payload.ReceiverID)
	if err != nil {
		span.RecordError(err)
		return dto.MessageResponse{}, err
	}
	if !exists {
		return dto.MessageResponse{}, newError(ErrNotFound, MsgReceiverNotFound)
	}

	message := models.Message{
		ReceiverID:  payload.ReceiverID,
		MessageText: text,
		IsSecretly:  secret,
	}
	if authenticated {
		message.SenderID = &senderID
	}

	var filename string
	if payload.Image != nil {
		filename = s.files.GenerateUniqueFilename(payload.Image.Filename)
		message.ImageURL, err = s.files.URL(storage.MessageImagesFolder, filename)
		if err != nil {
			span.RecordError(err)
			return dto.MessageResponse{}, err
		}
	}

	affected, err := s.messages.Create(ctx, &message)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "persistence failed")
		return dto.MessageResponse{}, err
	}
	if affected == 0 {
		span.SetStatus(codes.Error, "no rows affected")
		return dto.MessageResponse{}, newError(ErrPersistence, MsgSendFailed)
	}

	if payload.Image != nil {
		if err := s.files.Save(ctx, storage.MessageImagesFolder, filename, payload.Image.Data); err != nil {
			span.RecordError(err)
			s.logger.Error().Err(err).Uint("message_id", message.ID).Msg("failed to store message image")
			return dto.MessageResponse{}, err
		}
	}

	stored, err := s.messages.GetDetailed(ctx, message.ID)
	if err != nil {
		span.RecordError(err)
		return dto.MessageResponse{}, err
	}

	observability.MessagesSent().WithLabelValues(strconv.FormatBool(secret), strconv.FormatBool(authenticated)).Inc()
	s.logger.Info().Uint("message_id", message.ID).Str("receiver_id", message.ReceiverID).Bool("secret", secret).Msg("message sent")

	return dto.NewMessageResponse(stored), nil
}

func (s *messageService) ListReceived(ctx context.Context, userID string) ([]dto.MessageResponse, error) {
	return s.list(ctx, repository.MessageFilter{ReceiverID: userID, IncludeReplies: true})
}

func (s *messageService) ListSent(ctx context.Context, userID string) ([]dto.MessageResponse, error) {
	return s.list(ctx, repository.MessageFilter{SenderID: userID, IncludeReplies: true})
}

func (s *messageService) ListFavorited(ctx context.Context, userID string) ([]dto.MessageResponse, error) {
	return s.list(ctx, repository.MessageFilter{ReceiverID: userID, OnlyFavorite: true, IncludeReplies: true})
}

func (s *messageService) ListAppeared(ctx context.Context, userID string) ([]dto.MessageResponse, error) {
	return s.list(ctx, repository.MessageFilter{ReceiverID: userID, OnlyAppeared: true, IncludeReplies: true})
}

func (s *messageService) UpdateAppeared(ctx context.Context, messageID uint, userID string, value bool) error {
	if _, err := s.owned(ctx, messageID, userID); err != nil {
		return err
	}
	return s.messages.SetAppeared(ctx, messageID, value)
}

func (s *messageService) UpdateFavorite(ctx context.Context, messageID uint, userID string, value bool) error {
	if _, err := s.owned(ctx, messageID, userID); err != nil {
		return err
	}
	return s.messages.SetFavorite(ctx, messageID, value)
}

func (s *messageService) DeleteReceived(ctx context.Context, messageID uint, userID string) error {
	ctx, span := s.tracer.Start(ctx, "message.delete", trace.WithAttributes(attribute.Int64("message.id", int64(messageID))))
	defer span.End()

	if _, err := s.owned(ctx, messageID, userID); err != nil {
		return err
	}

	affected, err := s.messages.SoftDelete(ctx, messageID)
	if err != nil {
		span.RecordError(err)
		return err
	}
	if affected == 0 {
		span.SetStatus(codes.Error, "no rows affected")
		return newError(ErrPersistence, MsgDeleteFailed)
	}

	s.logger.Info().Uint("message_id", messageID).Int64("affected", affected).Msg("message deleted")
	return nil
}

func (s *messageService) list(ctx context.Context, filter repository.MessageFilter) ([]dto.MessageResponse, error) {
	if filter.ReceiverID == "" && filter.SenderID == "" {
		return []dto.MessageResponse{}, nil
	}

	messages, err := s.messages.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return dto.NewMessageResponseSlice(messages), nil
}

// owned loads a non-deleted message received by userID. Missing and foreign messages
// are reported identically.
func (s *messageService) owned(ctx context.Context, messageID uint, userID string) (models.Message, error) {
	message, err := s.messages.GetOwned(ctx, messageID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Message{}, newError(ErrNotFound, MsgMessageNotFound)
		}
		return models.Message{}, err
	}
	return message, nil
}
