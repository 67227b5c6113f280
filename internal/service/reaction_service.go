package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/noah-isme/sarhne-api/internal/dto"
	"github.com/noah-isme/sarhne-api/internal/models"
	"github.com/noah-isme/sarhne-api/internal/observability"
	"github.com/noah-isme/sarhne-api/internal/repository"
)

const reactionCatalogCacheKey = "sarhne:reactions:catalog"

// ReactionService applies reactions to messages and serves the reaction catalog.
type ReactionService interface {
	React(ctx context.Context, userID string, payload dto.ReactRequest) (dto.UserReactionResponse, error)
	ListReactionKinds(ctx context.Context) ([]dto.ReactionResponse, error)
	InvalidateCatalog(ctx context.Context)
}

type reactionService struct {
	reactions repository.ReactionRepository
	messages  repository.MessageRepository
	users     repository.UserRepository
	cache     *redis.Client
	ttl       time.Duration
	validator *validator.Validate
	logger    zerolog.Logger
	tracer    trace.Tracer
	now       func() time.Time
}

// NewReactionService constructs a reaction service. A nil cache disables catalog caching.
func NewReactionService(reactions repository.ReactionRepository, messages repository.MessageRepository, users repository.UserRepository, cache *redis.Client, ttl time.Duration, validate *validator.Validate, logger zerolog.Logger) ReactionService {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &reactionService{
		reactions: reactions,
		messages:  messages,
		users:     users,
		cache:     cache,
		ttl:       ttl,
		validator: validate,
		logger:    logger.With().Str("component", "reaction_service").Logger(),
		tracer:    otel.Tracer("github.com/noah-isme/sarhne-api/internal/service/reaction"),
		now:       time.Now,
	}
}

func (s *reactionService) React(ctx context.Context, userID string, payload dto.ReactRequest) (dto.UserReactionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.UserReactionResponse{}, err
	}

	ctx, span := s.tracer.Start(ctx, "reaction.react", trace.WithAttributes(
		attribute.Int64("reaction.message_id", int64(payload.MessageID)),
		attribute.Int64("reaction.kind_id", int64(payload.ReactionID)),
	))
	defer span.End()

	userExists, err := s.users.Exists(ctx, userID)
	if err != nil {
		span.RecordError(err)
		return dto.UserReactionResponse{}, err
	}
	if !userExists {
		return dto.UserReactionResponse{}, newError(ErrValidation, MsgInvalidUser)
	}

	messageExists, err := s.messages.ExistsActive(ctx, payload.MessageID)
	if err != nil {
		span.RecordError(err)
		return dto.UserReactionResponse{}, err
	}
	if !messageExists {
		return dto.UserReactionResponse{}, newError(ErrValidation, MsgInvalidMessage)
	}

	kind, err := s.reactions.GetKind(ctx, payload.ReactionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.UserReactionResponse{}, newError(ErrValidation, MsgInvalidReaction)
		}
		span.RecordError(err)
		return dto.UserReactionResponse{}, err
	}

	outcome := "updated"
	if _, err := s.reactions.GetUserReaction(ctx, userID, payload.MessageID); err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			span.RecordError(err)
			return dto.UserReactionResponse{}, err
		}
		outcome = "created"
	}

	reaction := models.UserReaction{
		UserID:     userID,
		MessageID:  payload.MessageID,
		ReactionID: kind.ID,
		ReactedAt:  s.now().UTC(),
	}
	if err := s.reactions.Upsert(ctx, &reaction); err != nil {
		span.RecordError(err)
		return dto.UserReactionResponse{}, err
	}
	reaction.Reaction = kind

	observability.Reactions().WithLabelValues(outcome).Inc()
	s.logger.Info().Str("user_id", userID).Uint("message_id", payload.MessageID).Str("reaction", kind.ReactionType).Str("outcome", outcome).Msg("reaction stored")

	return dto.NewUserReactionResponse(reaction), nil
}

func (s *reactionService) ListReactionKinds(ctx context.Context) ([]dto.ReactionResponse, error) {
	if cached, ok := s.fetchCache(ctx); ok {
		return cached, nil
	}

	kinds, err := s.reactions.ListKinds(ctx)
	if err != nil {
		return nil, err
	}

	result := dto.NewReactionResponseSlice(kinds)
	s.storeCache(ctx, result)
	return result, nil
}

// InvalidateCatalog drops the cached reaction catalog.
func (s *reactionService) InvalidateCatalog(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, reactionCatalogCacheKey).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to invalidate reaction catalog cache")
	}
}

func (s *reactionService) fetchCache(ctx context.Context) ([]dto.ReactionResponse, bool) {
	if s.cache == nil {
		return nil, false
	}

	payload, err := s.cache.Get(ctx, reactionCatalogCacheKey).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn().Err(err).Msg("failed to read reaction catalog cache")
		}
		observability.ReactionCache().WithLabelValues("miss").Inc()
		return nil, false
	}

	var result []dto.ReactionResponse
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		s.logger.Warn().Err(err).Msg("failed to decode reaction catalog cache")
		observability.ReactionCache().WithLabelValues("miss").Inc()
		return nil, false
	}

	observability.ReactionCache().WithLabelValues("hit").Inc()
	return result, true
}

func (s *reactionService) storeCache(ctx context.Context, result []dto.ReactionResponse) {
	if s.cache == nil {
		return
	}

	payload, err := json.Marshal(result)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to encode reaction catalog cache")
		return
	}
	if err := s.cache.Set(ctx, reactionCatalogCacheKey, payload, s.ttl).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to store reaction catalog cache")
	}
}
