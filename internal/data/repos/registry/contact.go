package registry

import (
	"context"

	"gorm.io/gorm"

	"github.com/garelabs/gare-backend/internal/domain"
	"github.com/garelabs/gare-backend/internal/pkg/logger"
)

type ContactRepo interface {
	Create(ctx context.Context, tx *gorm.DB, contacts []*domain.CompanyContact) error
	ListByCompany(ctx context.Context, tx *gorm.DB, companyID uint) ([]*domain.CompanyContact, error)
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
}

type contactRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewContactRepo(db *gorm.DB, baseLog *logger.Logger) ContactRepo {
	repoLog := baseLog.With("repo", "ContactRepo")
	return &contactRepo{db: db, log: repoLog}
}

func (cr *contactRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return cr.db
}

func (cr *contactRepo) Create(ctx context.Context, tx *gorm.DB, contacts []*domain.CompanyContact) error {
	if len(contacts) == 0 {
		return nil
	}
	return cr.conn(tx).WithContext(ctx).Create(&contacts).Error
}

func (cr *contactRepo) ListByCompany(ctx context.Context, tx *gorm.DB, companyID uint) ([]*domain.CompanyContact, error) {
	var results []*domain.CompanyContact
	err := cr.conn(tx).WithContext(ctx).
		Where("empresa_id = ?", companyID).
		Order("principal DESC, id").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *contactRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	return cr.conn(tx).WithContext(ctx).Delete(&domain.CompanyContact{}, id).Error
}
