package registry

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/garelabs/gare-backend/internal/domain"
	"github.com/garelabs/gare-backend/internal/pkg/logger"
)

type AddressRepo interface {
	Create(ctx context.Context, tx *gorm.DB, addresses []*domain.Address) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*domain.Address, error)
	ListByPerson(ctx context.Context, tx *gorm.DB, personID uint) ([]*domain.Address, error)
	Update(ctx context.Context, tx *gorm.DB, address *domain.Address) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
	// ClearPrimary unmarks every primary address of the person so a new
	// one can take over.
	ClearPrimary(ctx context.Context, tx *gorm.DB, personID uint) error
}

type addressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAddressRepo(db *gorm.DB, baseLog *logger.Logger) AddressRepo {
	repoLog := baseLog.With("repo", "AddressRepo")
	return &addressRepo{db: db, log: repoLog}
}

func (ar *addressRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return ar.db
}

func (ar *addressRepo) Create(ctx context.Context, tx *gorm.DB, addresses []*domain.Address) error {
	if len(addresses) == 0 {
		return nil
	}
	return ar.conn(tx).WithContext(ctx).Create(&addresses).Error
}

func (ar *addressRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*domain.Address, error) {
	var result domain.Address
	err := ar.conn(tx).WithContext(ctx).Where("id = ?", id).First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (ar *addressRepo) ListByPerson(ctx context.Context, tx *gorm.DB, personID uint) ([]*domain.Address, error) {
	var results []*domain.Address
	err := ar.conn(tx).WithContext(ctx).
		Where("pessoa_id = ?", personID).
		Order("principal DESC, id").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (ar *addressRepo) Update(ctx context.Context, tx *gorm.DB, address *domain.Address) error {
	return ar.conn(tx).WithContext(ctx).Save(address).Error
}

func (ar *addressRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	return ar.conn(tx).WithContext(ctx).Delete(&domain.Address{}, id).Error
}

func (ar *addressRepo) ClearPrimary(ctx context.Context, tx *gorm.DB, personID uint) error {
	return ar.conn(tx).WithContext(ctx).
		Model(&domain.Address{}).
		Where("pessoa_id = ? AND principal = ?", personID, true).
		Update("principal", false).Error
}
