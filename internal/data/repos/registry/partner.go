package registry

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/garelabs/gare-backend/internal/domain"
	"github.com/garelabs/gare-backend/internal/pkg/logger"
)

// PartnerRepo stores company membership records. The natural key is
// (company, tax id, name); re-imports land on the same row.
type PartnerRepo interface {
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*domain.Partner, error)
	GetByNaturalKey(ctx context.Context, tx *gorm.DB, companyID uint, taxID, name string) (*domain.Partner, error)
	// Upsert creates the record or, when the natural key already exists,
	// overwrites the mutable fields of the stored row. Reports whether a
	// new row was created.
	Upsert(ctx context.Context, tx *gorm.DB, record *domain.Partner) (bool, error)
	ListByCompany(ctx context.Context, tx *gorm.DB, companyID uint) ([]*domain.Partner, error)
	// ListByMember returns memberships held by the person, matched by
	// resolved person id or by normalized tax id.
	ListByMember(ctx context.Context, tx *gorm.DB, personID uint, taxID string) ([]*domain.Partner, error)
	CountByCompany(ctx context.Context, tx *gorm.DB, companyID uint) (int64, error)
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
}

type partnerRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPartnerRepo(db *gorm.DB, baseLog *logger.Logger) PartnerRepo {
	repoLog := baseLog.With("repo", "PartnerRepo")
	return &partnerRepo{db: db, log: repoLog}
}

func (sr *partnerRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return sr.db
}

func (sr *partnerRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*domain.Partner, error) {
	var result domain.Partner
	err := sr.conn(tx).WithContext(ctx).Where("id = ?", id).First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (sr *partnerRepo) GetByNaturalKey(ctx context.Context, tx *gorm.DB, companyID uint, taxID, name string) (*domain.Partner, error) {
	var result domain.Partner
	err := sr.conn(tx).WithContext(ctx).
		Where("empresa_id = ? AND cpf_cnpj = ? AND nome_socio = ?", companyID, taxID, name).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (sr *partnerRepo) Upsert(ctx context.Context, tx *gorm.DB, record *domain.Partner) (bool, error) {
	transaction := sr.conn(tx)
	existing, err := sr.GetByNaturalKey(ctx, transaction, record.CompanyID, record.TaxID, record.Name)
	if err != nil {
		return false, err
	}
	if existing == nil {
		if err := transaction.WithContext(ctx).Create(record).Error; err != nil {
			return false, err
		}
		return true, nil
	}
	record.ID = existing.ID
	record.CreatedAt = existing.CreatedAt
	if err := transaction.WithContext(ctx).Save(record).Error; err != nil {
		return false, err
	}
	return false, nil
}

func (sr *partnerRepo) ListByCompany(ctx context.Context, tx *gorm.DB, companyID uint) ([]*domain.Partner, error) {
	var results []*domain.Partner
	err := sr.conn(tx).WithContext(ctx).
		Where("empresa_id = ?", companyID).
		Order("ordem_exibicao, nome_socio").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *partnerRepo) ListByMember(ctx context.Context, tx *gorm.DB, personID uint, taxID string) ([]*domain.Partner, error) {
	q := sr.conn(tx).WithContext(ctx).Order("id")
	switch {
	case personID != 0 && taxID != "":
		q = q.Where("pessoa_id = ? OR cpf_cnpj = ?", personID, taxID)
	case personID != 0:
		q = q.Where("pessoa_id = ?", personID)
	case taxID != "":
		q = q.Where("cpf_cnpj = ?", taxID)
	default:
		return nil, nil
	}
	var results []*domain.Partner
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *partnerRepo) CountByCompany(ctx context.Context, tx *gorm.DB, companyID uint) (int64, error) {
	var count int64
	err := sr.conn(tx).WithContext(ctx).
		Model(&domain.Partner{}).
		Where("empresa_id = ?", companyID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (sr *partnerRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	return sr.conn(tx).WithContext(ctx).Delete(&domain.Partner{}, id).Error
}
