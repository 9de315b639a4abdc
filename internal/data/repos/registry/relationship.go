package registry

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/garelabs/gare-backend/internal/domain"
	"github.com/garelabs/gare-backend/internal/pkg/logger"
)

// RelationshipFilter narrows ListAll. Zero values mean "no filter".
type RelationshipFilter struct {
	PersonID uint
	Label    string
}

type RelationshipRepo interface {
	Create(ctx context.Context, tx *gorm.DB, edge *domain.Relationship) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*domain.Relationship, error)
	Update(ctx context.Context, tx *gorm.DB, edge *domain.Relationship) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
	// UpsertByEndpoints creates or overwrites the single edge keyed by
	// (origin, target). Membership imports funnel through this so that
	// re-runs refresh the edge instead of stacking duplicates.
	UpsertByEndpoints(ctx context.Context, tx *gorm.DB, edge *domain.Relationship) (bool, error)
	// ListByPerson returns edges touching the person on either endpoint,
	// in ascending id order. The graph walk relies on this order.
	ListByPerson(ctx context.Context, tx *gorm.DB, personID uint) ([]*domain.Relationship, error)
	ListByOrigin(ctx context.Context, tx *gorm.DB, personID uint) ([]*domain.Relationship, error)
	ListByTarget(ctx context.Context, tx *gorm.DB, personID uint) ([]*domain.Relationship, error)
	ListAll(ctx context.Context, tx *gorm.DB, filter RelationshipFilter) ([]*domain.Relationship, error)
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
}

type relationshipRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRelationshipRepo(db *gorm.DB, baseLog *logger.Logger) RelationshipRepo {
	repoLog := baseLog.With("repo", "RelationshipRepo")
	return &relationshipRepo{db: db, log: repoLog}
}

func (rr *relationshipRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return rr.db
}

func (rr *relationshipRepo) Create(ctx context.Context, tx *gorm.DB, edge *domain.Relationship) error {
	return rr.conn(tx).WithContext(ctx).Create(edge).Error
}

func (rr *relationshipRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*domain.Relationship, error) {
	var result domain.Relationship
	err := rr.conn(tx).WithContext(ctx).Where("id = ?", id).First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (rr *relationshipRepo) Update(ctx context.Context, tx *gorm.DB, edge *domain.Relationship) error {
	return rr.conn(tx).WithContext(ctx).Save(edge).Error
}

func (rr *relationshipRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	return rr.conn(tx).WithContext(ctx).Delete(&domain.Relationship{}, id).Error
}

func (rr *relationshipRepo) UpsertByEndpoints(ctx context.Context, tx *gorm.DB, edge *domain.Relationship) (bool, error) {
	transaction := rr.conn(tx)
	var existing domain.Relationship
	err := transaction.WithContext(ctx).
		Where("pessoa_origem_id = ? AND pessoa_destino_id = ?", edge.OriginID, edge.TargetID).
		First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := transaction.WithContext(ctx).Create(edge).Error; err != nil {
			return false, err
		}
		return true, nil
	}
	if err != nil {
		return false, err
	}
	edge.ID = existing.ID
	edge.CreatedAt = existing.CreatedAt
	if err := transaction.WithContext(ctx).Save(edge).Error; err != nil {
		return false, err
	}
	return false, nil
}

func (rr *relationshipRepo) ListByPerson(ctx context.Context, tx *gorm.DB, personID uint) ([]*domain.Relationship, error) {
	var results []*domain.Relationship
	err := rr.conn(tx).WithContext(ctx).
		Where("pessoa_origem_id = ? OR pessoa_destino_id = ?", personID, personID).
		Order("id").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *relationshipRepo) ListByOrigin(ctx context.Context, tx *gorm.DB, personID uint) ([]*domain.Relationship, error) {
	var results []*domain.Relationship
	err := rr.conn(tx).WithContext(ctx).
		Where("pessoa_origem_id = ?", personID).
		Order("id").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *relationshipRepo) ListByTarget(ctx context.Context, tx *gorm.DB, personID uint) ([]*domain.Relationship, error) {
	var results []*domain.Relationship
	err := rr.conn(tx).WithContext(ctx).
		Where("pessoa_destino_id = ?", personID).
		Order("id").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *relationshipRepo) ListAll(ctx context.Context, tx *gorm.DB, filter RelationshipFilter) ([]*domain.Relationship, error) {
	q := rr.conn(tx).WithContext(ctx).Order("id")
	if filter.PersonID != 0 {
		q = q.Where("pessoa_origem_id = ? OR pessoa_destino_id = ?", filter.PersonID, filter.PersonID)
	}
	if filter.Label != "" {
		q = q.Where("LOWER(tipo_relacionamento) LIKE ?", "%"+strings.ToLower(filter.Label)+"%")
	}
	var results []*domain.Relationship
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *relationshipRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	var count int64
	if err := rr.conn(tx).WithContext(ctx).Model(&domain.Relationship{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
