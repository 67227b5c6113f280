package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/noah-isme/sarhne-api/internal/repository"
)

// CatalogInvalidator drops cached copies of the reaction catalog.
type CatalogInvalidator interface {
	InvalidateCatalog(ctx context.Context)
}

// SeedService loads reference data required before the API can serve requests.
type SeedService interface {
	SeedReactionKinds(ctx context.Context, kinds []string) (int64, error)
}

type seedService struct {
	reactions repository.ReactionRepository
	catalog   CatalogInvalidator
	logger    zerolog.Logger
}

// NewSeedService constructs a seeding service.
func NewSeedService(reactions repository.ReactionRepository, catalog CatalogInvalidator, logger zerolog.Logger) SeedService {
	return &seedService{
		reactions: reactions,
		catalog:   catalog,
		logger:    logger.With().Str("component", "seed_service").Logger(),
	}
}

// SeedReactionKinds inserts the missing reaction kinds and reports how many were added.
func (s *seedService) SeedReactionKinds(ctx context.Context, kinds []string) (int64, error) {
	normalized := normalizeKinds(kinds)
	if len(normalized) == 0 {
		return 0, nil
	}

	affected, err := s.reactions.SeedKinds(ctx, normalized)
	if err != nil {
		return 0, err
	}

	if affected > 0 && s.catalog != nil {
		s.catalog.InvalidateCatalog(ctx)
	}

	s.logger.Info().Int64("affected", affected).Int("kinds", len(normalized)).Msg("reaction kinds seeded")
	return affected, nil
}

func normalizeKinds(kinds []string) []string {
	seen := make(map[string]struct{}, len(kinds))
	out := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		trimmed := strings.TrimSpace(kind)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}
