package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/noah-isme/sarhne-api/internal/models"
)

// UserRepository persists user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	GetByUserName(ctx context.Context, userName string) (models.User, error)
	GetByLink(ctx context.Context, link string) (models.User, error)
	LinkTaken(ctx context.Context, link, excludeUserID string) (bool, error)
	EmailTaken(ctx context.Context, email, excludeUserID string) (bool, error)
	Exists(ctx context.Context, id string) (bool, error)
	Update(ctx context.Context, user *models.User) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository constructs a GORM-backed user repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id string) (models.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (models.User, error) {
	return r.first(ctx, "LOWER(email) = LOWER(?)", email)
}

func (r *userRepository) GetByUserName(ctx context.Context, userName string) (models.User, error) {
	return r.first(ctx, "LOWER(user_name) = LOWER(?)", userName)
}

func (r *userRepository) GetByLink(ctx context.Context, link string) (models.User, error) {
	return r.first(ctx, "link = ?", link)
}

func (r *userRepository) LinkTaken(ctx context.Context, link, excludeUserID string) (bool, error) {
	return r.taken(ctx, "link = ?", link, excludeUserID)
}

func (r *userRepository) EmailTaken(ctx context.Context, email, excludeUserID string) (bool, error) {
	return r.taken(ctx, "LOWER(email) = LOWER(?)", email, excludeUserID)
}

func (r *userRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(user).Error
}

func (r *userRepository) first(ctx context.Context, query string, arg interface{}) (models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where(query, arg).First(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (r *userRepository) taken(ctx context.Context, query string, arg interface{}, excludeUserID string) (bool, error) {
	tx := r.db.WithContext(ctx).Model(&models.User{}).Select("id").Where(query, arg)
	if excludeUserID != "" {
		tx = tx.Where("id <> ?", excludeUserID)
	}

	var user models.User
	err := tx.First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
