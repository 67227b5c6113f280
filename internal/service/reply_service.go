package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/noah-isme/sarhne-api/internal/dto"
	"github.com/noah-isme/sarhne-api/internal/models"
	"github.com/noah-isme/sarhne-api/internal/repository"
)

// ReplyService manages the receiver's replies to appeared messages.
type ReplyService interface {
	AddReply(ctx context.Context, userID string, payload dto.AddReplyRequest) (dto.ReplyResponse, error)
	UpdateReply(ctx context.Context, userID string, replyID uint, payload dto.UpdateReplyRequest) (dto.ReplyResponse, error)
	DeleteReply(ctx context.Context, userID string, replyID uint) error
}

type replyService struct {
	messages  repository.MessageRepository
	replies   repository.ReplyRepository
	validator *validator.Validate
	sanitizer plainText
	logger    zerolog.Logger
	tracer    trace.Tracer
}

// NewReplyService constructs a reply service.
func NewReplyService(messages repository.MessageRepository, replies repository.ReplyRepository, validate *validator.Validate, logger zerolog.Logger) ReplyService {
	return &replyService{
		messages:  messages,
		replies:   replies,
		validator: validate,
		sanitizer: newPlainText(),
		logger:    logger.With().Str("component", "reply_service").Logger(),
		tracer:    otel.Tracer("github.com/noah-isme/sarhne-api/internal/service/reply"),
	}
}

func (s *replyService) AddReply(ctx context.Context, userID string, payload dto.AddReplyRequest) (dto.ReplyResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ReplyResponse{}, err
	}
	text, err := s.sanitize(payload.ReplyText)
	if err != nil {
		return dto.ReplyResponse{}, err
	}

	ctx, span := s.tracer.Start(ctx, "reply.add", trace.WithAttributes(attribute.Int64("reply.message_id", int64(payload.MessageID))))
	defer span.End()

	message, err := s.messages.GetOwned(ctx, payload.MessageID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ReplyResponse{}, newError(ErrNotFound, MsgMessageNotFound)
		}
		span.RecordError(err)
		return dto.ReplyResponse{}, err
	}
	if !message.IsAppeared {
		return dto.ReplyResponse{}, newError(ErrValidation, MsgMessageNotAppeared)
	}

	reply := models.Reply{MessageID: message.ID, ReplyText: text}
	affected, err := s.replies.Create(ctx, &reply)
	if err != nil {
		span.RecordError(err)
		return dto.ReplyResponse{}, err
	}
	if affected == 0 {
		return dto.ReplyResponse{}, newError(ErrPersistence, MsgAddReplyFailed)
	}

	reply.Message = &message
	s.logger.Info().Uint("reply_id", reply.ID).Uint("message_id", message.ID).Msg("reply added")
	return dto.NewReplyResponse(reply), nil
}

func (s *replyService) UpdateReply(ctx context.Context, userID string, replyID uint, payload dto.UpdateReplyRequest) (dto.ReplyResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ReplyResponse{}, err
	}
	text, err := s.sanitize(payload.ReplyText)
	if err != nil {
		return dto.ReplyResponse{}, err
	}

	reply, err := s.owned(ctx, replyID, userID)
	if err != nil {
		return dto.ReplyResponse{}, err
	}
	if reply.Message == nil || !reply.Message.IsAppeared {
		return dto.ReplyResponse{}, newError(ErrValidation, MsgMessageNotAppeared)
	}

	if err := s.replies.UpdateText(ctx, reply.ID, text); err != nil {
		return dto.ReplyResponse{}, err
	}

	reply.ReplyText = text
	return dto.NewReplyResponse(reply), nil
}

func (s *replyService) DeleteReply(ctx context.Context, userID string, replyID uint) error {
	reply, err := s.owned(ctx, replyID, userID)
	if err != nil {
		return err
	}

	affected, err := s.replies.Delete(ctx, reply.ID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return newError(ErrPersistence, MsgDeleteReplyFailed)
	}

	s.logger.Info().Uint("reply_id", reply.ID).Msg("reply deleted")
	return nil
}

func (s *replyService) owned(ctx context.Context, replyID uint, userID string) (models.Reply, error) {
	reply, err := s.replies.GetOwned(ctx, replyID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Reply{}, newError(ErrNotFound, MsgMessageNotFound)
		}
		return models.Reply{}, err
	}
	return reply, nil
}

func (s *replyService) sanitize(text string) (string, error) {
	sanitized := s.sanitizer.clean(text)
	if sanitized == "" {
		return "", newError(ErrValidation, MsgEmptyReply)
	}
	if tooLong(sanitized) {
		return "", newError(ErrValidation, MsgReplyTooLong)
	}
	return sanitized, nil
}
