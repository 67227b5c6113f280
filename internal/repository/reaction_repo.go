package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/noah-isme/sarhne-api/internal/models"
)

// ReactionRepository persists the reaction catalog and per-user reactions.
type ReactionRepository interface {
	ListKinds(ctx context.Context) ([]models.Reaction, error)
	GetKind(ctx context.Context, id uint) (models.Reaction, error)
	SeedKinds(ctx context.Context, reactionTypes []string) (int64, error)
	GetUserReaction(ctx context.Context, userID string, messageID uint) (models.UserReaction, error)
	Upsert(ctx context.Context, reaction *models.UserReaction) error
}

type reactionRepository struct {
	db *gorm.DB
}

// NewReactionRepository constructs a GORM-backed reaction repository.
func NewReactionRepository(db *gorm.DB) ReactionRepository {
	return &reactionRepository{db: db}
}

func (r *reactionRepository) ListKinds(ctx context.Context) ([]models.Reaction, error) {
	var kinds []models.Reaction
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&kinds).Error; err != nil {
		return nil, err
	}
	return kinds, nil
}

func (r *reactionRepository) GetKind(ctx context.Context, id uint) (models.Reaction, error) {
	var kind models.Reaction
	if err := r.db.WithContext(ctx).First(&kind, id).Error; err != nil {
		return models.Reaction{}, err
	}
	return kind, nil
}

// SeedKinds inserts missing catalog entries and leaves existing ones untouched.
func (r *reactionRepository) SeedKinds(ctx context.Context, reactionTypes []string) (int64, error) {
	if len(reactionTypes) == 0 {
		return 0, nil
	}

	items := make([]models.Reaction, 0, len(reactionTypes))
	for _, reactionType := range reactionTypes {
		items = append(items, models.Reaction{ReactionType: reactionType})
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "reaction_type"}},
		DoNothing: true,
	}).Create(&items)
	return result.RowsAffected, result.Error
}

func (r *reactionRepository) GetUserReaction(ctx context.Context, userID string, messageID uint) (models.UserReaction, error) {
	var reaction models.UserReaction
	err := r.db.WithContext(ctx).
		Preload("Reaction").
		Where("user_id = ? AND message_id = ?", userID, messageID).
		First(&reaction).Error
	if err != nil {
		return models.UserReaction{}, err
	}
	return reaction, nil
}

// Upsert writes the reaction row for (user, message). A concurrent insert for the
// same pair collapses into an update of the reaction kind.
func (r *reactionRepository) Upsert(ctx context.Context, reaction *models.UserReaction) error {
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "message_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"reaction_id", "reacted_at"}),
		}).
		Create(reaction).Error
}
