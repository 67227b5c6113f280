package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/noah-isme/sarhne-api/internal/models"
)

// ReplyRepository persists replies to appeared messages.
type ReplyRepository interface {
	Create(ctx context.Context, reply *models.Reply) (int64, error)
	GetOwned(ctx context.Context, id uint, receiverID string) (models.Reply, error)
	UpdateText(ctx context.Context, id uint, text string) error
	Delete(ctx context.Context, id uint) (int64, error)
}

type replyRepository struct {
	db *gorm.DB
}

// NewReplyRepository constructs a GORM-backed reply repository.
func NewReplyRepository(db *gorm.DB) ReplyRepository {
	return &replyRepository{db: db}
}

func (r *replyRepository) Create(ctx context.Context, reply *models.Reply) (int64, error) {
	result := r.db.WithContext(ctx).Omit(clause.Associations).Create(reply)
	return result.RowsAffected, result.Error
}

// GetOwned loads a reply whose parent message is received by receiverID and not deleted.
func (r *replyRepository) GetOwned(ctx context.Context, id uint, receiverID string) (models.Reply, error) {
	owned := r.db.WithContext(ctx).Model(&models.Message{}).
		Select("id").
		Where("receiver_id = ? AND is_deleted = ?", receiverID, false)

	var reply models.Reply
	err := r.db.WithContext(ctx).
		Preload("Message").
		Preload("Message.Sender").
		Where("id = ? AND message_id IN (?)", id, owned).
		First(&reply).Error
	if err != nil {
		return models.Reply{}, err
	}
	return reply, nil
}

func (r *replyRepository) UpdateText(ctx context.Context, id uint, text string) error {
	return r.db.WithContext(ctx).Model(&models.Reply{}).Where("id = ?", id).Update("reply_text", text).Error
}

func (r *replyRepository) Delete(ctx context.Context, id uint) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&models.Reply{}, id)
	return result.RowsAffected, result.Error
}
