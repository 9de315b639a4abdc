package services

import (
	"context"
	"fmt"
	"math"
	"strings"

	"gorm.io/gorm"

	"github.com/garelabs/gare-backend/internal/data/repos"
	"github.com/garelabs/gare-backend/internal/domain"
	"github.com/garelabs/gare-backend/internal/matching"
	"github.com/garelabs/gare-backend/internal/pkg/apperr"
	"github.com/garelabs/gare-backend/internal/pkg/logger"
)

const (
	surnameConfidence = 60
	phoneConfidence   = 80
	companyConfidence = 90

	surnameSuggestionCap = 10

	// Names at or above this similarity are flagged as near-duplicates.
	duplicateThreshold = 85.0
)

// Suggestion is a candidate relationship produced by the heuristics,
// never persisted automatically.
type Suggestion struct {
	Type       string `json:"tipo"`
	PersonID   uint   `json:"pessoa_id"`
	Name       string `json:"nome"`
	Reason     string `json:"motivo"`
	Confidence int    `json:"confianca"`
}

type SuggestionReport struct {
	PersonID    uint         `json:"pessoa_id"`
	Total       int          `json:"total_sugestoes"`
	Suggestions []Suggestion `json:"sugestoes"`
}

// DuplicateNameReport mirrors the three outcomes of the name check:
// exact hit, similar hit, or available.
type DuplicateNameReport struct {
	Exists     bool               `json:"existe"`
	Exact      bool               `json:"exato,omitempty"`
	Similar    bool               `json:"similar"`
	Available  bool               `json:"disponivel,omitempty"`
	Person     *domain.Individual `json:"pessoa,omitempty"`
	Similarity float64            `json:"similaridade,omitempty"`
}

type SuggestionService interface {
	Suggest(ctx context.Context, personID uint) (*SuggestionReport, error)
	CheckDuplicateName(ctx context.Context, name string, excludeID uint) (*DuplicateNameReport, error)
}

type suggestionService struct {
	db          *gorm.DB
	log         *logger.Logger
	personRepo  repos.PersonRepo
	partnerRepo repos.PartnerRepo
}

func NewSuggestionService(db *gorm.DB, log *logger.Logger, personRepo repos.PersonRepo, partnerRepo repos.PartnerRepo) SuggestionService {
	serviceLog := log.With("service", "SuggestionService")
	return &suggestionService{db: db, log: serviceLog, personRepo: personRepo, partnerRepo: partnerRepo}
}

func (ss *suggestionService) Suggest(ctx context.Context, personID uint) (*SuggestionReport, error) {
	subject, err := ss.personRepo.GetIndividual(ctx, nil, personID)
	if err != nil {
		return nil, err
	}
	if subject == nil {
		return nil, apperr.NotFound("Pessoa física não encontrada")
	}

	suggestions := []Suggestion{}

	// Shared surname, weakest signal.
	if surname := matching.Surname(subject.Name); surname != "" {
		others, err := ss.personRepo.SearchIndividualsBySurname(ctx, nil, surname, personID, surnameSuggestionCap)
		if err != nil {
			return nil, err
		}
		for _, other := range others {
			suggestions = append(suggestions, Suggestion{
				Type:       "parente",
				PersonID:   other.PersonID,
				Name:       other.Name,
				Reason:     fmt.Sprintf("Mesmo sobrenome: %s", surname),
				Confidence: surnameConfidence,
			})
		}
	}

	// Stake in the same company, strongest signal.
	companyPeers, err := ss.sharedCompanyPeers(ctx, subject)
	if err != nil {
		return nil, err
	}
	suggestions = append(suggestions, companyPeers...)

	// Shared phone number, either line.
	if subject.Phone1 != "" {
		others, err := ss.personRepo.SearchIndividualsByPhone(ctx, nil, subject.Phone1, personID)
		if err != nil {
			return nil, err
		}
		for _, other := range others {
			suggestions = append(suggestions, Suggestion{
				Type:       "telefone",
				PersonID:   other.PersonID,
				Name:       other.Name,
				Reason:     fmt.Sprintf("Mesmo telefone: %s", subject.Phone1),
				Confidence: phoneConfidence,
			})
		}
	}

	return &SuggestionReport{
		PersonID:    personID,
		Total:       len(suggestions),
		Suggestions: suggestions,
	}, nil
}

// sharedCompanyPeers finds other resolved members of the companies the
// subject holds a stake in.
func (ss *suggestionService) sharedCompanyPeers(ctx context.Context, subject *domain.Individual) ([]Suggestion, error) {
	taxID := ""
	if subject.CPF != nil {
		taxID = *subject.CPF
	}
	memberships, err := ss.partnerRepo.ListByMember(ctx, nil, subject.PersonID, taxID)
	if err != nil {
		return nil, err
	}

	seen := map[uint]bool{}
	suggestions := []Suggestion{}
	for _, membership := range memberships {
		company, err := ss.personRepo.GetLegalEntity(ctx, nil, membership.CompanyID)
		if err != nil {
			return nil, err
		}
		if company == nil {
			continue
		}
		peers, err := ss.partnerRepo.ListByCompany(ctx, nil, membership.CompanyID)
		if err != nil {
			return nil, err
		}
		for _, peer := range peers {
			if peer.PersonID == nil || *peer.PersonID == subject.PersonID || seen[*peer.PersonID] {
				continue
			}
			seen[*peer.PersonID] = true
			suggestions = append(suggestions, Suggestion{
				Type:       "empresarial",
				PersonID:   *peer.PersonID,
				Name:       peer.Name,
				Reason:     fmt.Sprintf("Mesmo CNPJ: %s", company.CNPJ),
				Confidence: companyConfidence,
			})
		}
	}
	return suggestions, nil
}

func (ss *suggestionService) CheckDuplicateName(ctx context.Context, name string, excludeID uint) (*DuplicateNameReport, error) {
	name = strings.TrimSpace(name)
	if len([]rune(name)) < 3 {
		return &DuplicateNameReport{Exists: false, Similar: false}, nil
	}

	exact, err := ss.personRepo.FindIndividualByName(ctx, nil, name, excludeID)
	if err != nil {
		return nil, err
	}
	if exact != nil {
		return &DuplicateNameReport{
			Exists:     true,
			Exact:      true,
			Person:     exact,
			Similarity: 100,
		}, nil
	}

	// Linear scan in storage order; the first name over the threshold
	// wins, the rest are not inspected.
	candidates, err := ss.personRepo.ListIndividualsExcept(ctx, nil, excludeID)
	if err != nil {
		return nil, err
	}
	for _, candidate := range candidates {
		similarity := matching.Ratio(name, candidate.Name)
		if similarity >= duplicateThreshold {
			return &DuplicateNameReport{
				Exists:     false,
				Similar:    true,
				Person:     candidate,
				Similarity: math.Round(similarity*100) / 100,
			}, nil
		}
	}

	return &DuplicateNameReport{Exists: false, Similar: false, Available: true}, nil
}
