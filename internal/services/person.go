package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/garelabs/gare-backend/internal/data/repos"
	"github.com/garelabs/gare-backend/internal/domain"
	"github.com/garelabs/gare-backend/internal/pkg/apperr"
	"github.com/garelabs/gare-backend/internal/pkg/logger"
	"github.com/garelabs/gare-backend/internal/validation"
)

// IndividualDetail bundles the facet with the rest of its aggregate
// for detail responses.
type IndividualDetail struct {
	Person    *domain.Person     `json:"pessoa"`
	Facet     *domain.Individual `json:"dados"`
	Addresses []*domain.Address  `json:"enderecos"`
	Photos    []*domain.Photo    `json:"fotos"`
}

type LegalEntityDetail struct {
	Person    *domain.Person           `json:"pessoa"`
	Facet     *domain.LegalEntity      `json:"dados"`
	Addresses []*domain.Address        `json:"enderecos"`
	Contacts  []*domain.CompanyContact `json:"contatos"`
	Partners  []*domain.Partner        `json:"socios"`
}

type RegistryCounts struct {
	Individuals   int64 `json:"total_pessoas_fisicas"`
	LegalEntities int64 `json:"total_pessoas_juridicas"`
	Relationships int64 `json:"total_relacionamentos"`
}

// CaseCodeReport is the answer to the availability probe used during
// registration.
type CaseCodeReport struct {
	Valid    bool   `json:"valido"`
	Exists   bool   `json:"existe"`
	CaseCode string `json:"goa"`
	Label    string `json:"categoria,omitempty"`
	Message  string `json:"mensagem"`
}

type PersonService interface {
	CreateIndividual(ctx context.Context, facet *domain.Individual, caseCode string, addresses []*domain.Address) (*domain.Individual, error)
	UpdateIndividual(ctx context.Context, personID uint, facet *domain.Individual, caseCode string) (*domain.Individual, error)
	GetIndividual(ctx context.Context, personID uint) (*IndividualDetail, error)
	ListIndividuals(ctx context.Context, limit, offset int) ([]*domain.Individual, error)
	DeleteIndividual(ctx context.Context, personID uint) error

	CreateLegalEntity(ctx context.Context, facet *domain.LegalEntity, caseCode string, addresses []*domain.Address, contacts []*domain.CompanyContact) (*domain.LegalEntity, error)
	UpdateLegalEntity(ctx context.Context, personID uint, facet *domain.LegalEntity, caseCode string) (*domain.LegalEntity, error)
	GetLegalEntity(ctx context.Context, personID uint) (*LegalEntityDetail, error)
	ListLegalEntities(ctx context.Context, limit, offset int) ([]*domain.LegalEntity, error)
	DeleteLegalEntity(ctx context.Context, personID uint) error

	Counts(ctx context.Context) (*RegistryCounts, error)
	CheckCaseCode(ctx context.Context, caseCode string, kind domain.PersonKind, excludeID uint) (*CaseCodeReport, error)
}

type personService struct {
	db          *gorm.DB
	log         *logger.Logger
	personRepo  repos.PersonRepo
	addressRepo repos.AddressRepo
	contactRepo repos.ContactRepo
	partnerRepo repos.PartnerRepo
	relRepo     repos.RelationshipRepo
	photoRepo   repos.PhotoRepo
}

func NewPersonService(
	db *gorm.DB,
	log *logger.Logger,
	personRepo repos.PersonRepo,
	addressRepo repos.AddressRepo,
	contactRepo repos.ContactRepo,
	partnerRepo repos.PartnerRepo,
	relRepo repos.RelationshipRepo,
	photoRepo repos.PhotoRepo,
) PersonService {
	serviceLog := log.With("service", "PersonService")
	return &personService{
		db:          db,
		log:         serviceLog,
		personRepo:  personRepo,
		addressRepo: addressRepo,
		contactRepo: contactRepo,
		partnerRepo: partnerRepo,
		relRepo:     relRepo,
		photoRepo:   photoRepo,
	}
}

func (ps *personService) CreateIndividual(ctx context.Context, facet *domain.Individual, caseCode string, addresses []*domain.Address) (*domain.Individual, error) {
	if err := ps.normalizeIndividual(ctx, facet, 0); err != nil {
		return nil, err
	}
	normalizedCode, err := ps.normalizeCaseCode(ctx, caseCode, domain.KindIndividual, 0)
	if err != nil {
		return nil, err
	}

	person := &domain.Person{CaseCode: normalizedCode}
	err = ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ps.personRepo.CreateIndividual(ctx, tx, person, facet); err != nil {
			return err
		}
		for _, address := range addresses {
			address.PersonID = person.ID
		}
		return ps.addressRepo.Create(ctx, tx, addresses)
	})
	if err != nil {
		return nil, err
	}
	facet.Person = person
	ps.log.Info("individual created", "pessoa_id", person.ID)
	return facet, nil
}

func (ps *personService) UpdateIndividual(ctx context.Context, personID uint, facet *domain.Individual, caseCode string) (*domain.Individual, error) {
	existing, err := ps.personRepo.GetIndividual(ctx, nil, personID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperr.NotFound("Pessoa física não encontrada")
	}

	if err := ps.normalizeIndividual(ctx, facet, personID); err != nil {
		return nil, err
	}
	normalizedCode, err := ps.normalizeCaseCode(ctx, caseCode, domain.KindIndividual, personID)
	if err != nil {
		return nil, err
	}

	facet.PersonID = personID
	err = ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ps.personRepo.UpdateIndividual(ctx, tx, facet); err != nil {
			return err
		}
		return ps.personRepo.SetPersonCaseCode(ctx, tx, personID, normalizedCode)
	})
	if err != nil {
		return nil, err
	}
	return facet, nil
}

func (ps *personService) GetIndividual(ctx context.Context, personID uint) (*IndividualDetail, error) {
	facet, err := ps.personRepo.GetIndividual(ctx, nil, personID)
	if err != nil {
		return nil, err
	}
	if facet == nil {
		return nil, apperr.NotFound("Pessoa física não encontrada")
	}
	person, err := ps.personRepo.GetPerson(ctx, nil, personID)
	if err != nil {
		return nil, err
	}
	addresses, err := ps.addressRepo.ListByPerson(ctx, nil, personID)
	if err != nil {
		return nil, err
	}
	photos, err := ps.photoRepo.ListByPerson(ctx, nil, personID)
	if err != nil {
		return nil, err
	}
	return &IndividualDetail{Person: person, Facet: facet, Addresses: addresses, Photos: photos}, nil
}

func (ps *personService) ListIndividuals(ctx context.Context, limit, offset int) ([]*domain.Individual, error) {
	return ps.personRepo.ListIndividuals(ctx, nil, limit, offset)
}

func (ps *personService) DeleteIndividual(ctx context.Context, personID uint) error {
	facet, err := ps.personRepo.GetIndividual(ctx, nil, personID)
	if err != nil {
		return err
	}
	if facet == nil {
		return apperr.NotFound("Pessoa física não encontrada")
	}
	return ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return ps.personRepo.DeletePerson(ctx, tx, personID)
	})
}

func (ps *personService) CreateLegalEntity(ctx context.Context, facet *domain.LegalEntity, caseCode string, addresses []*domain.Address, contacts []*domain.CompanyContact) (*domain.LegalEntity, error) {
	if err := ps.normalizeLegalEntity(ctx, facet, 0); err != nil {
		return nil, err
	}
	normalizedCode, err := ps.normalizeCaseCode(ctx, caseCode, domain.KindLegalEntity, 0)
	if err != nil {
		return nil, err
	}

	person := &domain.Person{CaseCode: normalizedCode}
	err = ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ps.personRepo.CreateLegalEntity(ctx, tx, person, facet); err != nil {
			return err
		}
		for _, address := range addresses {
			address.PersonID = person.ID
		}
		if err := ps.addressRepo.Create(ctx, tx, addresses); err != nil {
			return err
		}
		for _, contact := range contacts {
			contact.PersonID = person.ID
		}
		return ps.contactRepo.Create(ctx, tx, contacts)
	})
	if err != nil {
		return nil, err
	}
	facet.Person = person
	ps.log.Info("legal entity created", "pessoa_id", person.ID, "cnpj", facet.CNPJ)
	return facet, nil
}

func (ps *personService) UpdateLegalEntity(ctx context.Context, personID uint, facet *domain.LegalEntity, caseCode string) (*domain.LegalEntity, error) {
	existing, err := ps.personRepo.GetLegalEntity(ctx, nil, personID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperr.NotFound("Pessoa jurídica não encontrada")
	}

	if err := ps.normalizeLegalEntity(ctx, facet, personID); err != nil {
		return nil, err
	}
	normalizedCode, err := ps.normalizeCaseCode(ctx, caseCode, domain.KindLegalEntity, personID)
	if err != nil {
		return nil, err
	}

	facet.PersonID = personID
	err = ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ps.personRepo.UpdateLegalEntity(ctx, tx, facet); err != nil {
			return err
		}
		return ps.personRepo.SetPersonCaseCode(ctx, tx, personID, normalizedCode)
	})
	if err != nil {
		return nil, err
	}
	return facet, nil
}

func (ps *personService) GetLegalEntity(ctx context.Context, personID uint) (*LegalEntityDetail, error) {
	facet, err := ps.personRepo.GetLegalEntity(ctx, nil, personID)
	if err != nil {
		return nil, err
	}
	if facet == nil {
		return nil, apperr.NotFound("Pessoa jurídica não encontrada")
	}
	person, err := ps.personRepo.GetPerson(ctx, nil, personID)
	if err != nil {
		return nil, err
	}
	addresses, err := ps.addressRepo.ListByPerson(ctx, nil, personID)
	if err != nil {
		return nil, err
	}
	contacts, err := ps.contactRepo.ListByCompany(ctx, nil, personID)
	if err != nil {
		return nil, err
	}
	partners, err := ps.partnerRepo.ListByCompany(ctx, nil, personID)
	if err != nil {
		return nil, err
	}
	return &LegalEntityDetail{
		Person:    person,
		Facet:     facet,
		Addresses: addresses,
		Contacts:  contacts,
		Partners:  partners,
	}, nil
}

func (ps *personService) ListLegalEntities(ctx context.Context, limit, offset int) ([]*domain.LegalEntity, error) {
	return ps.personRepo.ListLegalEntities(ctx, nil, limit, offset)
}

func (ps *personService) DeleteLegalEntity(ctx context.Context, personID uint) error {
	facet, err := ps.personRepo.GetLegalEntity(ctx, nil, personID)
	if err != nil {
		return err
	}
	if facet == nil {
		return apperr.NotFound("Pessoa jurídica não encontrada")
	}
	return ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return ps.personRepo.DeletePerson(ctx, tx, personID)
	})
}

func (ps *personService) Counts(ctx context.Context) (*RegistryCounts, error) {
	individuals, err := ps.personRepo.CountIndividuals(ctx, nil)
	if err != nil {
		return nil, err
	}
	entities, err := ps.personRepo.CountLegalEntities(ctx, nil)
	if err != nil {
		return nil, err
	}
	edges, err := ps.relRepo.Count(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &RegistryCounts{
		Individuals:   individuals,
		LegalEntities: entities,
		Relationships: edges,
	}, nil
}

func (ps *personService) CheckCaseCode(ctx context.Context, caseCode string, kind domain.PersonKind, excludeID uint) (*CaseCodeReport, error) {
	// An empty probe is answered as available, not rejected; the field
	// itself is optional.
	if strings.TrimSpace(caseCode) == "" {
		return &CaseCodeReport{Valid: true, Message: "GOA disponível"}, nil
	}
	info, err := validation.CaseCode(caseCode)
	if err != nil {
		return nil, err
	}
	exists, err := ps.personRepo.CaseCodeExists(ctx, nil, info.Normalized, kind, excludeID)
	if err != nil {
		return nil, err
	}
	report := &CaseCodeReport{
		Valid:    !exists,
		Exists:   exists,
		CaseCode: info.Normalized,
		Label:    info.Label,
	}
	if exists {
		report.Message = "GOA já cadastrado"
	} else {
		report.Message = "GOA disponível"
	}
	return report, nil
}

// normalizeIndividual validates the facet in place: trims the name,
// normalizes and checksums the CPF, and checks CPF uniqueness.
func (ps *personService) normalizeIndividual(ctx context.Context, facet *domain.Individual, excludeID uint) error {
	facet.Name = strings.TrimSpace(facet.Name)
	if len([]rune(facet.Name)) < 3 {
		return apperr.Validation("nome", "Nome deve ter pelo menos 3 caracteres")
	}

	if facet.CPF != nil {
		if strings.TrimSpace(*facet.CPF) == "" {
			facet.CPF = nil
			return nil
		}
		normalized, err := validation.CPF(*facet.CPF)
		if err != nil {
			return err
		}
		other, err := ps.personRepo.GetIndividualByCPF(ctx, nil, normalized)
		if err != nil {
			return err
		}
		if other != nil && other.PersonID != excludeID {
			return apperr.Conflict("cpf", "CPF já cadastrado")
		}
		facet.CPF = &normalized
	}
	return nil
}

func (ps *personService) normalizeLegalEntity(ctx context.Context, facet *domain.LegalEntity, excludeID uint) error {
	facet.LegalName = strings.TrimSpace(facet.LegalName)
	if len([]rune(facet.LegalName)) < 3 {
		return apperr.Validation("razao_social", "Razão social deve ter pelo menos 3 caracteres")
	}

	if strings.TrimSpace(facet.CNPJ) == "" {
		return apperr.Validation("cnpj", "CNPJ é obrigatório")
	}
	normalized, err := validation.CNPJ(facet.CNPJ)
	if err != nil {
		return err
	}
	other, err := ps.personRepo.GetLegalEntityByCNPJ(ctx, nil, normalized)
	if err != nil {
		return err
	}
	if other != nil && other.PersonID != excludeID {
		return apperr.Conflict("cnpj", "CNPJ já cadastrado")
	}
	facet.CNPJ = normalized
	return nil
}

// normalizeCaseCode returns nil for an absent code, or the normalized
// form after format and uniqueness checks.
func (ps *personService) normalizeCaseCode(ctx context.Context, caseCode string, kind domain.PersonKind, excludeID uint) (*string, error) {
	if strings.TrimSpace(caseCode) == "" {
		return nil, nil
	}
	info, err := validation.CaseCode(caseCode)
	if err != nil {
		return nil, err
	}
	exists, err := ps.personRepo.CaseCodeExists(ctx, nil, info.Normalized, kind, excludeID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict("goa", "GOA já cadastrado")
	}
	return &info.Normalized, nil
}
