package registry

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/garelabs/gare-backend/internal/domain"
	"github.com/garelabs/gare-backend/internal/pkg/logger"
)

// PersonRepo owns the Person aggregate: the root row plus its
// Individual/LegalEntity facet. Lookups that miss return (nil, nil);
// callers decide whether absence is an error.
type PersonRepo interface {
	CreateIndividual(ctx context.Context, tx *gorm.DB, person *domain.Person, facet *domain.Individual) error
	CreateLegalEntity(ctx context.Context, tx *gorm.DB, person *domain.Person, facet *domain.LegalEntity) error

	GetPerson(ctx context.Context, tx *gorm.DB, id uint) (*domain.Person, error)
	GetIndividual(ctx context.Context, tx *gorm.DB, personID uint) (*domain.Individual, error)
	GetIndividualByCPF(ctx context.Context, tx *gorm.DB, cpf string) (*domain.Individual, error)
	GetLegalEntity(ctx context.Context, tx *gorm.DB, personID uint) (*domain.LegalEntity, error)
	GetLegalEntityByCNPJ(ctx context.Context, tx *gorm.DB, cnpj string) (*domain.LegalEntity, error)

	ListIndividuals(ctx context.Context, tx *gorm.DB, limit, offset int) ([]*domain.Individual, error)
	ListLegalEntities(ctx context.Context, tx *gorm.DB, limit, offset int) ([]*domain.LegalEntity, error)

	UpdateIndividual(ctx context.Context, tx *gorm.DB, facet *domain.Individual) error
	UpdateLegalEntity(ctx context.Context, tx *gorm.DB, facet *domain.LegalEntity) error
	SetIndividualMotherName(ctx context.Context, tx *gorm.DB, personID uint, motherName string) error
	SetPersonCaseCode(ctx context.Context, tx *gorm.DB, personID uint, caseCode *string) error

	// DeletePerson removes the root row; facets, addresses, memberships,
	// photos and edges go with it through the FK cascades.
	DeletePerson(ctx context.Context, tx *gorm.DB, id uint) error

	CountIndividuals(ctx context.Context, tx *gorm.DB) (int64, error)
	CountLegalEntities(ctx context.Context, tx *gorm.DB) (int64, error)

	CaseCodeExists(ctx context.Context, tx *gorm.DB, caseCode string, kind domain.PersonKind, excludeID uint) (bool, error)

	SearchIndividualsBySurname(ctx context.Context, tx *gorm.DB, surname string, excludeID uint, limit int) ([]*domain.Individual, error)
	SearchIndividualsByPhone(ctx context.Context, tx *gorm.DB, phone string, excludeID uint) ([]*domain.Individual, error)
	FindIndividualByName(ctx context.Context, tx *gorm.DB, name string, excludeID uint) (*domain.Individual, error)
	// ListIndividualsExcept returns every individual but excludeID in
	// storage order (ascending primary key). The duplicate-name scan
	// depends on this order being stable.
	ListIndividualsExcept(ctx context.Context, tx *gorm.DB, excludeID uint) ([]*domain.Individual, error)
}

type personRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPersonRepo(db *gorm.DB, baseLog *logger.Logger) PersonRepo {
	repoLog := baseLog.With("repo", "PersonRepo")
	return &personRepo{db: db, log: repoLog}
}

func (pr *personRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return pr.db
}

func (pr *personRepo) CreateIndividual(ctx context.Context, tx *gorm.DB, person *domain.Person, facet *domain.Individual) error {
	transaction := pr.conn(tx)
	person.Kind = domain.KindIndividual
	if err := transaction.WithContext(ctx).Create(person).Error; err != nil {
		return err
	}
	facet.PersonID = person.ID
	return transaction.WithContext(ctx).Create(facet).Error
}

func (pr *personRepo) CreateLegalEntity(ctx context.Context, tx *gorm.DB, person *domain.Person, facet *domain.LegalEntity) error {
	transaction := pr.conn(tx)
	person.Kind = domain.KindLegalEntity
	if err := transaction.WithContext(ctx).Create(person).Error; err != nil {
		return err
	}
	facet.PersonID = person.ID
	return transaction.WithContext(ctx).Create(facet).Error
}

func (pr *personRepo) GetPerson(ctx context.Context, tx *gorm.DB, id uint) (*domain.Person, error) {
	var result domain.Person
	err := pr.conn(tx).WithContext(ctx).Where("id = ?", id).First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (pr *personRepo) GetIndividual(ctx context.Context, tx *gorm.DB, personID uint) (*domain.Individual, error) {
	var result domain.Individual
	err := pr.conn(tx).WithContext(ctx).Where("pessoa_id = ?", personID).First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (pr *personRepo) GetIndividualByCPF(ctx context.Context, tx *gorm.DB, cpf string) (*domain.Individual, error) {
	if cpf == "" {
		return nil, nil
	}
	var result domain.Individual
	err := pr.conn(tx).WithContext(ctx).Where("cpf = ?", cpf).First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (pr *personRepo) GetLegalEntity(ctx context.Context, tx *gorm.DB, personID uint) (*domain.LegalEntity, error) {
	var result domain.LegalEntity
	err := pr.conn(tx).WithContext(ctx).Where("pessoa_id = ?", personID).First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (pr *personRepo) GetLegalEntityByCNPJ(ctx context.Context, tx *gorm.DB, cnpj string) (*domain.LegalEntity, error) {
	if cnpj == "" {
		return nil, nil
	}
	var result domain.LegalEntity
	err := pr.conn(tx).WithContext(ctx).Where("cnpj = ?", cnpj).First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (pr *personRepo) ListIndividuals(ctx context.Context, tx *gorm.DB, limit, offset int) ([]*domain.Individual, error) {
	var results []*domain.Individual
	q := pr.conn(tx).WithContext(ctx).Order("pessoa_id DESC").Offset(offset)
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *personRepo) ListLegalEntities(ctx context.Context, tx *gorm.DB, limit, offset int) ([]*domain.LegalEntity, error) {
	var results []*domain.LegalEntity
	q := pr.conn(tx).WithContext(ctx).Order("pessoa_id DESC").Offset(offset)
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *personRepo) UpdateIndividual(ctx context.Context, tx *gorm.DB, facet *domain.Individual) error {
	return pr.conn(tx).WithContext(ctx).Save(facet).Error
}

func (pr *personRepo) UpdateLegalEntity(ctx context.Context, tx *gorm.DB, facet *domain.LegalEntity) error {
	return pr.conn(tx).WithContext(ctx).Save(facet).Error
}

func (pr *personRepo) SetIndividualMotherName(ctx context.Context, tx *gorm.DB, personID uint, motherName string) error {
	return pr.conn(tx).WithContext(ctx).
		Model(&domain.Individual{}).
		Where("pessoa_id = ?", personID).
		Update("nome_mae", motherName).Error
}

func (pr *personRepo) SetPersonCaseCode(ctx context.Context, tx *gorm.DB, personID uint, caseCode *string) error {
	return pr.conn(tx).WithContext(ctx).
		Model(&domain.Person{}).
		Where("id = ?", personID).
		Update("goa", caseCode).Error
}

func (pr *personRepo) DeletePerson(ctx context.Context, tx *gorm.DB, id uint) error {
	return pr.conn(tx).WithContext(ctx).Delete(&domain.Person{}, id).Error
}

func (pr *personRepo) CountIndividuals(ctx context.Context, tx *gorm.DB) (int64, error) {
	var count int64
	if err := pr.conn(tx).WithContext(ctx).Model(&domain.Individual{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (pr *personRepo) CountLegalEntities(ctx context.Context, tx *gorm.DB) (int64, error) {
	var count int64
	if err := pr.conn(tx).WithContext(ctx).Model(&domain.LegalEntity{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (pr *personRepo) CaseCodeExists(ctx context.Context, tx *gorm.DB, caseCode string, kind domain.PersonKind, excludeID uint) (bool, error) {
	q := pr.conn(tx).WithContext(ctx).
		Model(&domain.Person{}).
		Where("goa = ?", caseCode)
	if kind.Valid() {
		q = q.Where("tipo = ?", kind)
	}
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (pr *personRepo) SearchIndividualsBySurname(ctx context.Context, tx *gorm.DB, surname string, excludeID uint, limit int) ([]*domain.Individual, error) {
	if surname == "" {
		return nil, nil
	}
	var results []*domain.Individual
	q := pr.conn(tx).WithContext(ctx).
		Where("LOWER(nome) LIKE ?", "% "+strings.ToLower(surname)).
		Order("pessoa_id")
	if excludeID != 0 {
		q = q.Where("pessoa_id <> ?", excludeID)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *personRepo) SearchIndividualsByPhone(ctx context.Context, tx *gorm.DB, phone string, excludeID uint) ([]*domain.Individual, error) {
	if phone == "" {
		return nil, nil
	}
	var results []*domain.Individual
	q := pr.conn(tx).WithContext(ctx).
		Where("telefone1 = ? OR telefone2 = ?", phone, phone).
		Order("pessoa_id")
	if excludeID != 0 {
		q = q.Where("pessoa_id <> ?", excludeID)
	}
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *personRepo) FindIndividualByName(ctx context.Context, tx *gorm.DB, name string, excludeID uint) (*domain.Individual, error) {
	q := pr.conn(tx).WithContext(ctx).
		Where("LOWER(nome) = ?", strings.ToLower(name)).
		Order("pessoa_id")
	if excludeID != 0 {
		q = q.Where("pessoa_id <> ?", excludeID)
	}
	var result domain.Individual
	err := q.First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (pr *personRepo) ListIndividualsExcept(ctx context.Context, tx *gorm.DB, excludeID uint) ([]*domain.Individual, error) {
	var results []*domain.Individual
	q := pr.conn(tx).WithContext(ctx).Order("pessoa_id")
	if excludeID != 0 {
		q = q.Where("pessoa_id <> ?", excludeID)
	}
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
