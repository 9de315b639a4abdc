package registry

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/garelabs/gare-backend/internal/domain"
	"github.com/garelabs/gare-backend/internal/pkg/logger"
)

type PhotoRepo interface {
	Create(ctx context.Context, tx *gorm.DB, photo *domain.Photo) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*domain.Photo, error)
	ListByPerson(ctx context.Context, tx *gorm.DB, personID uint) ([]*domain.Photo, error)
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
}

type photoRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPhotoRepo(db *gorm.DB, baseLog *logger.Logger) PhotoRepo {
	repoLog := baseLog.With("repo", "PhotoRepo")
	return &photoRepo{db: db, log: repoLog}
}

func (phr *photoRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return phr.db
}

func (phr *photoRepo) Create(ctx context.Context, tx *gorm.DB, photo *domain.Photo) error {
	return phr.conn(tx).WithContext(ctx).Create(photo).Error
}

func (phr *photoRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*domain.Photo, error) {
	var result domain.Photo
	err := phr.conn(tx).WithContext(ctx).Where("id = ?", id).First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (phr *photoRepo) ListByPerson(ctx context.Context, tx *gorm.DB, personID uint) ([]*domain.Photo, error) {
	var results []*domain.Photo
	err := phr.conn(tx).WithContext(ctx).
		Where("pessoa_id = ?", personID).
		Order("id").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (phr *photoRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	return phr.conn(tx).WithContext(ctx).Delete(&domain.Photo{}, id).Error
}
