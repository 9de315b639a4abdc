package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/garelabs/gare-backend/internal/data/repos"
	"github.com/garelabs/gare-backend/internal/domain"
	"github.com/garelabs/gare-backend/internal/pkg/apperr"
	"github.com/garelabs/gare-backend/internal/pkg/logger"
)

// PersonEdges groups a person's edges by which endpoint they occupy.
type PersonEdges struct {
	PersonID uint                   `json:"pessoa_id"`
	Total    int                    `json:"total"`
	AsOrigin []*domain.Relationship `json:"como_origem"`
	AsTarget []*domain.Relationship `json:"como_destino"`
	All      []*domain.Relationship `json:"todos"`
}

type RelationshipService interface {
	Create(ctx context.Context, edge *domain.Relationship) (*domain.Relationship, error)
	Get(ctx context.Context, id uint) (*domain.Relationship, error)
	Update(ctx context.Context, id uint, edge *domain.Relationship) (*domain.Relationship, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter repos.RelationshipFilter) ([]*domain.Relationship, error)
	ListByPerson(ctx context.Context, personID uint) (*PersonEdges, error)
}

type relationshipService struct {
	db         *gorm.DB
	log        *logger.Logger
	personRepo repos.PersonRepo
	relRepo    repos.RelationshipRepo
}

func NewRelationshipService(db *gorm.DB, log *logger.Logger, personRepo repos.PersonRepo, relRepo repos.RelationshipRepo) RelationshipService {
	serviceLog := log.With("service", "RelationshipService")
	return &relationshipService{db: db, log: serviceLog, personRepo: personRepo, relRepo: relRepo}
}

func (rs *relationshipService) Create(ctx context.Context, edge *domain.Relationship) (*domain.Relationship, error) {
	if err := rs.normalize(ctx, edge); err != nil {
		return nil, err
	}
	err := rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return rs.relRepo.Create(ctx, tx, edge)
	})
	if err != nil {
		return nil, err
	}
	rs.log.Info("relationship created", "id", edge.ID,
		"pessoa_origem", edge.OriginID, "pessoa_destino", edge.TargetID,
		"tipo_relacionamento", edge.Label)
	return edge, nil
}

func (rs *relationshipService) Get(ctx context.Context, id uint) (*domain.Relationship, error) {
	edge, err := rs.relRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if edge == nil {
		return nil, apperr.NotFound("Relacionamento não encontrado")
	}
	return edge, nil
}

func (rs *relationshipService) Update(ctx context.Context, id uint, edge *domain.Relationship) (*domain.Relationship, error) {
	existing, err := rs.relRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperr.NotFound("Relacionamento não encontrado")
	}
	if err := rs.normalize(ctx, edge); err != nil {
		return nil, err
	}
	edge.ID = id
	edge.CreatedAt = existing.CreatedAt
	err = rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return rs.relRepo.Update(ctx, tx, edge)
	})
	if err != nil {
		return nil, err
	}
	return edge, nil
}

func (rs *relationshipService) Delete(ctx context.Context, id uint) error {
	existing, err := rs.relRepo.GetByID(ctx, nil, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return apperr.NotFound("Relacionamento não encontrado")
	}
	return rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return rs.relRepo.Delete(ctx, tx, id)
	})
}

func (rs *relationshipService) List(ctx context.Context, filter repos.RelationshipFilter) ([]*domain.Relationship, error) {
	return rs.relRepo.ListAll(ctx, nil, filter)
}

func (rs *relationshipService) ListByPerson(ctx context.Context, personID uint) (*PersonEdges, error) {
	person, err := rs.personRepo.GetPerson(ctx, nil, personID)
	if err != nil {
		return nil, err
	}
	if person == nil {
		return nil, apperr.NotFound("Pessoa não encontrada")
	}
	asOrigin, err := rs.relRepo.ListByOrigin(ctx, nil, personID)
	if err != nil {
		return nil, err
	}
	asTarget, err := rs.relRepo.ListByTarget(ctx, nil, personID)
	if err != nil {
		return nil, err
	}
	all := append(append([]*domain.Relationship{}, asOrigin...), asTarget...)
	return &PersonEdges{
		PersonID: personID,
		Total:    len(all),
		AsOrigin: asOrigin,
		AsTarget: asTarget,
		All:      all,
	}, nil
}

// normalize validates endpoints and fields, stamps the endpoint kinds
// from the live Person rows, and marks self links.
func (rs *relationshipService) normalize(ctx context.Context, edge *domain.Relationship) error {
	edge.Label = strings.TrimSpace(edge.Label)
	if edge.Label == "" {
		return apperr.Validation("tipo_relacionamento", "Tipo de relacionamento é obrigatório")
	}
	if edge.Reliability == 0 {
		edge.Reliability = domain.ReliabilityMax
	}
	if edge.Reliability < 1 || edge.Reliability > domain.ReliabilityMax {
		return apperr.Validation("confiabilidade", "Confiabilidade deve estar entre 1 e 5")
	}

	origin, err := rs.personRepo.GetPerson(ctx, nil, edge.OriginID)
	if err != nil {
		return err
	}
	if origin == nil {
		return apperr.Validation("pessoa_origem", "Pessoa de origem não encontrada")
	}
	target, err := rs.personRepo.GetPerson(ctx, nil, edge.TargetID)
	if err != nil {
		return err
	}
	if target == nil {
		return apperr.Validation("pessoa_destino", "Pessoa de destino não encontrada")
	}

	edge.OriginKind = origin.Kind
	edge.TargetKind = target.Kind
	edge.SelfLink = edge.OriginID == edge.TargetID
	return nil
}
