package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/garelabs/gare-backend/internal/domain"
	"github.com/garelabs/gare-backend/internal/pkg/logger"
)

type UserTokenRepo interface {
	Create(ctx context.Context, tx *gorm.DB, token *domain.UserToken) error
	GetByRefreshToken(ctx context.Context, tx *gorm.DB, refresh string) (*domain.UserToken, error)
	Update(ctx context.Context, tx *gorm.DB, token *domain.UserToken) error
	DeleteByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
	DeleteExpired(ctx context.Context, tx *gorm.DB, cutoff time.Time) (int64, error)
}

type userTokenRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserTokenRepo(db *gorm.DB, baseLog *logger.Logger) UserTokenRepo {
	repoLog := baseLog.With("repo", "UserTokenRepo")
	return &userTokenRepo{db: db, log: repoLog}
}

func (tr *userTokenRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return tr.db
}

func (tr *userTokenRepo) Create(ctx context.Context, tx *gorm.DB, token *domain.UserToken) error {
	return tr.conn(tx).WithContext(ctx).Create(token).Error
}

func (tr *userTokenRepo) GetByRefreshToken(ctx context.Context, tx *gorm.DB, refresh string) (*domain.UserToken, error) {
	var result domain.UserToken
	err := tr.conn(tx).WithContext(ctx).Where("refresh_token = ?", refresh).First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (tr *userTokenRepo) Update(ctx context.Context, tx *gorm.DB, token *domain.UserToken) error {
	return tr.conn(tx).WithContext(ctx).Save(token).Error
}

func (tr *userTokenRepo) DeleteByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	return tr.conn(tx).WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&domain.UserToken{}).Error
}

func (tr *userTokenRepo) DeleteExpired(ctx context.Context, tx *gorm.DB, cutoff time.Time) (int64, error) {
	result := tr.conn(tx).WithContext(ctx).
		Where("expires_at < ?", cutoff).
		Delete(&domain.UserToken{})
	return result.RowsAffected, result.Error
}
