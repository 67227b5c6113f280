package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/noah-isme/sarhne-api/internal/models"
)

// MessageFilter narrows message listings. Deleted messages are always excluded.
type MessageFilter struct {
	ReceiverID     string
	SenderID       string
	OnlyFavorite   bool
	OnlyAppeared   bool
	IncludeReplies bool
}

// MessageRepository persists messages and their receiver-side state.
type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) (int64, error)
	GetDetailed(ctx context.Context, id uint) (models.Message, error)
	GetOwned(ctx context.Context, id uint, receiverID string) (models.Message, error)
	List(ctx context.Context, filter MessageFilter) ([]models.Message, error)
	SetAppeared(ctx context.Context, id uint, value bool) error
	SetFavorite(ctx context.Context, id uint, value bool) error
	SoftDelete(ctx context.Context, id uint) (int64, error)
	ExistsActive(ctx context.Context, id uint) (bool, error)
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository constructs a GORM-backed message repository.
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *models.Message) (int64, error) {
	result := r.db.WithContext(ctx).Omit(clause.Associations).Create(message)
	return result.RowsAffected, result.Error
}

func (r *messageRepository) GetDetailed(ctx context.Context, id uint) (models.Message, error) {
	var message models.Message
	err := withMessageRelations(r.db.WithContext(ctx), true).First(&message, id).Error
	if err != nil {
		return models.Message{}, err
	}
	return message, nil
}

// GetOwned loads a non-deleted message only when receiverID owns it.
func (r *messageRepository) GetOwned(ctx context.Context, id uint, receiverID string) (models.Message, error) {
	var message models.Message
	err := r.db.WithContext(ctx).
		Preload("Sender").
		Where("id = ? AND receiver_id = ? AND is_deleted = ?", id, receiverID, false).
		First(&message).Error
	if err != nil {
		return models.Message{}, err
	}
	return message, nil
}

func (r *messageRepository) List(ctx context.Context, filter MessageFilter) ([]models.Message, error) {
	query := withMessageRelations(r.db.WithContext(ctx), filter.IncludeReplies).
		Where("is_deleted = ?", false)

	if filter.ReceiverID != "" {
		query = query.Where("receiver_id = ?", filter.ReceiverID)
	}
	if filter.SenderID != "" {
		query = query.Where("sender_id = ?", filter.SenderID)
	}
	if filter.OnlyFavorite {
		query = query.Where("is_favorite = ?", true)
	}
	if filter.OnlyAppeared {
		query = query.Where("is_appeared = ?", true)
	}

	var messages []models.Message
	if err := query.Order("created_at DESC").Order("id DESC").Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *messageRepository) SetAppeared(ctx context.Context, id uint, value bool) error {
	return r.setFlag(ctx, id, "is_appeared", value)
}

func (r *messageRepository) SetFavorite(ctx context.Context, id uint, value bool) error {
	return r.setFlag(ctx, id, "is_favorite", value)
}

// SoftDelete flags the message deleted and removes its replies in one transaction,
// returning the total number of rows touched.
func (r *messageRepository) SoftDelete(ctx context.Context, id uint) (int64, error) {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		flagged := tx.Model(&models.Message{}).
			Where("id = ? AND is_deleted = ?", id, false).
			Update("is_deleted", true)
		if flagged.Error != nil {
			return flagged.Error
		}

		removed := tx.Where("message_id = ?", id).Delete(&models.Reply{})
		if removed.Error != nil {
			return removed.Error
		}

		affected = flagged.RowsAffected + removed.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}

func (r *messageRepository) ExistsActive(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Message{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *messageRepository) setFlag(ctx context.Context, id uint, column string, value bool) error {
	return r.db.WithContext(ctx).Model(&models.Message{}).Where("id = ?", id).Update(column, value).Error
}

func withMessageRelations(db *gorm.DB, includeReplies bool) *gorm.DB {
	query := db.Preload("Sender").
		Preload("Receiver").
		Preload("Reactions.Reaction")
	if includeReplies {
		query = query.Preload("Replies", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		})
	}
	return query
}
