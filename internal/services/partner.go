package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/garelabs/gare-backend/internal/data/repos"
	"github.com/garelabs/gare-backend/internal/domain"
	"github.com/garelabs/gare-backend/internal/pkg/apperr"
	"github.com/garelabs/gare-backend/internal/pkg/logger"
	"github.com/garelabs/gare-backend/internal/validation"
)

// PartnerDraft is one member record after alias resolution and
// normalization, ready to be persisted.
type PartnerDraft struct {
	Key            string
	Name           string
	TaxID          string
	Role           string
	MotherName     string
	SharePercent   *float64
	EnteredAt      *domain.Date
	BirthDate      *domain.Date
	Age            *int
	DeathSuspected bool
	DisplayOrder   int16
	Raw            json.RawMessage
}

type ItemResult struct {
	Index    int    `json:"indice"`
	Key      string `json:"chave,omitempty"`
	Name     string `json:"nome_socio,omitempty"`
	Created  bool   `json:"criado"`
	Resolved bool   `json:"vinculado"`
	Error    string `json:"erro,omitempty"`
}

// ImportReport is the outcome of one batch: counters plus a per-item
// result. A failed item never aborts the batch.
type ImportReport struct {
	CompanyID uint         `json:"empresa_id"`
	Attempted int          `json:"total_processados"`
	Created   int          `json:"criados"`
	Updated   int          `json:"atualizados"`
	Resolved  int          `json:"vinculados"`
	Failed    int          `json:"falhas"`
	Items     []ItemResult `json:"resultados"`
}

type PartnerService interface {
	// ImportBatch links a batch of raw member records to the company.
	// The payload is either a JSON array of member objects or an object
	// keyed by index/label; the object form is processed in key order.
	ImportBatch(ctx context.Context, companyID uint, raw json.RawMessage, source string) (*ImportReport, error)
	ListByCompany(ctx context.Context, companyID uint) ([]*domain.Partner, error)
}

type partnerService struct {
	db          *gorm.DB
	log         *logger.Logger
	personRepo  repos.PersonRepo
	partnerRepo repos.PartnerRepo
	relRepo     repos.RelationshipRepo
}

func NewPartnerService(db *gorm.DB, log *logger.Logger, personRepo repos.PersonRepo, partnerRepo repos.PartnerRepo, relRepo repos.RelationshipRepo) PartnerService {
	serviceLog := log.With("service", "PartnerService")
	return &partnerService{
		db:          db,
		log:         serviceLog,
		personRepo:  personRepo,
		partnerRepo: partnerRepo,
		relRepo:     relRepo,
	}
}

func (ps *partnerService) ImportBatch(ctx context.Context, companyID uint, raw json.RawMessage, source string) (*ImportReport, error) {
	company, err := ps.personRepo.GetPerson(ctx, nil, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, apperr.NotFound("Empresa não encontrada")
	}
	if company.Kind != domain.KindLegalEntity {
		return nil, apperr.Validation("empresa_id", "Pessoa informada não é pessoa jurídica")
	}

	records, err := splitBatch(raw)
	if err != nil {
		return nil, err
	}

	report := &ImportReport{CompanyID: companyID}
	for i, record := range records {
		report.Attempted++
		item := ItemResult{Index: i, Key: record.key}

		draft, err := parseDraft(record)
		if err == nil {
			item.Name = draft.Name
			err = ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
				created, resolved, txErr := ps.linkMember(ctx, tx, company, draft, source)
				item.Created = created
				item.Resolved = resolved
				return txErr
			})
		}
		if err != nil {
			item.Error = err.Error()
			report.Failed++
			ps.log.Warn("member import failed", "empresa_id", companyID, "indice", i, "error", err)
		} else {
			if item.Created {
				report.Created++
			} else {
				report.Updated++
			}
			if item.Resolved {
				report.Resolved++
			}
		}
		report.Items = append(report.Items, item)
	}

	ps.log.Info("member batch imported", "empresa_id", companyID,
		"total_processados", report.Attempted, "criados", report.Created,
		"atualizados", report.Updated, "vinculados", report.Resolved,
		"falhas", report.Failed)
	return report, nil
}

func (ps *partnerService) ListByCompany(ctx context.Context, companyID uint) ([]*domain.Partner, error) {
	company, err := ps.personRepo.GetPerson(ctx, nil, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, apperr.NotFound("Empresa não encontrada")
	}
	return ps.partnerRepo.ListByCompany(ctx, nil, companyID)
}

// linkMember runs the full pipeline for one draft inside tx: resolve
// or create the member's Individual, upsert the membership row, upsert
// the company->member edge. Reports (membership created, member
// resolved to a person).
func (ps *partnerService) linkMember(ctx context.Context, tx *gorm.DB, company *domain.Person, draft *PartnerDraft, source string) (bool, bool, error) {
	if draft.BirthDate != nil && draft.Age == nil {
		if age := ageFromBirthDate(draft.BirthDate.Time, time.Now()); age != nil {
			draft.Age = age
		}
	}

	var memberID *uint
	if len(draft.TaxID) == 11 {
		existing, err := ps.personRepo.GetIndividualByCPF(ctx, tx, draft.TaxID)
		if err != nil {
			return false, false, err
		}
		if existing != nil {
			memberID = &existing.PersonID
			if existing.MotherName != draft.MotherName {
				if err := ps.personRepo.SetIndividualMotherName(ctx, tx, existing.PersonID, draft.MotherName); err != nil {
					return false, false, err
				}
			}
		} else {
			person := &domain.Person{}
			cpf := draft.TaxID
			facet := &domain.Individual{
				Name:           draft.Name,
				CPF:            &cpf,
				MotherName:     draft.MotherName,
				BirthDate:      draft.BirthDate,
				DeathSuspected: draft.DeathSuspected,
				PartnerRole:    draft.Role,
			}
			if draft.Age != nil {
				age := int16(*draft.Age)
				facet.Age = &age
			}
			if err := ps.personRepo.CreateIndividual(ctx, tx, person, facet); err != nil {
				return false, false, err
			}
			memberID = &person.ID
		}
	}

	record := &domain.Partner{
		CompanyID:      company.ID,
		PersonID:       memberID,
		TaxID:          draft.TaxID,
		Name:           draft.Name,
		EnteredAt:      draft.EnteredAt,
		SharePercent:   draft.SharePercent,
		Role:           draft.Role,
		DeathSuspected: draft.DeathSuspected,
		MotherName:     draft.MotherName,
		BirthDate:      draft.BirthDate,
		Age:            draft.Age,
		DisplayOrder:   draft.DisplayOrder,
		ImportSource:   source,
		RawRecord:      datatypes.JSON(draft.Raw),
	}
	created, err := ps.partnerRepo.Upsert(ctx, tx, record)
	if err != nil {
		return false, false, err
	}

	if memberID != nil {
		edge := &domain.Relationship{
			OriginID:     company.ID,
			OriginKind:   domain.KindLegalEntity,
			TargetID:     *memberID,
			TargetKind:   domain.KindIndividual,
			Label:        domain.RelationshipLabelPartner,
			Description:  fmt.Sprintf("Sócio: %s", draft.Name),
			SharePercent: draft.SharePercent,
			StartedAt:    draft.EnteredAt,
			ImportSource: source,
			Reliability:  domain.ReliabilityMax,
		}
		if _, err := ps.relRepo.UpsertByEndpoints(ctx, tx, edge); err != nil {
			return false, false, err
		}
	}

	return created, memberID != nil, nil
}

type rawRecord struct {
	key  string
	body json.RawMessage
}

// splitBatch accepts either `[{...}, {...}]` or `{"0": {...}, "Sócio
// 2": {...}}`; the keyed form is ordered by key so reruns see the same
// sequence.
func splitBatch(raw json.RawMessage) ([]rawRecord, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return nil, apperr.Validation("socios", "Lista de sócios é obrigatória")
	}

	if strings.HasPrefix(trimmed, "[") {
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, apperr.Validation("socios", "Payload de sócios inválido")
		}
		records := make([]rawRecord, 0, len(items))
		for _, item := range items {
			records = append(records, rawRecord{body: item})
		}
		return records, nil
	}

	var keyed map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keyed); err != nil {
		return nil, apperr.Validation("socios", "Payload de sócios inválido")
	}
	keys := make([]string, 0, len(keyed))
	for key := range keyed {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	records := make([]rawRecord, 0, len(keys))
	for _, key := range keys {
		records = append(records, rawRecord{key: key, body: keyed[key]})
	}
	return records, nil
}

// Field aliases as they appear across form submissions and
// spreadsheet exports.
var (
	nameAliases  = []string{"nome", "nome_socio", "nome_completo"}
	taxIDAliases = []string{"cpf", "cnpj", "cpf_cnpj", "documento"}
	shareAliases = []string{"participacao", "participacao_percentual", "participacao_percent"}
	roleAliases  = []string{"qualificacao", "cargo"}
	birthAliases = []string{"data_nascimento", "nascimento"}
	orderAliases = []string{"ordem_exibicao", "ordem"}
)

func parseDraft(record rawRecord) (*PartnerDraft, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(record.body, &fields); err != nil {
		return nil, apperr.Validation("socios", "Registro de sócio inválido")
	}

	draft := &PartnerDraft{
		Key:          record.key,
		Raw:          record.body,
		DisplayOrder: 99,
	}

	draft.Name = strings.TrimSpace(firstString(fields, nameAliases))
	if draft.Name == "" {
		return nil, apperr.Validation("nome_socio", "Nome do sócio é obrigatório")
	}

	taxID, err := validation.TaxID(firstString(fields, taxIDAliases))
	if err != nil {
		return nil, err
	}
	draft.TaxID = taxID

	draft.Role = strings.TrimSpace(firstString(fields, roleAliases))
	draft.MotherName = strings.TrimSpace(firstString(fields, []string{"nome_mae"}))
	draft.SharePercent = firstFloat(fields, shareAliases)
	draft.DeathSuspected = firstBool(fields, []string{"suspeita_obito"})

	if entered, err := firstDate(fields, []string{"data_entrada"}); err != nil {
		return nil, err
	} else {
		draft.EnteredAt = entered
	}
	if birth, err := firstDate(fields, birthAliases); err != nil {
		return nil, err
	} else {
		draft.BirthDate = birth
	}

	if age := firstInt(fields, []string{"idade"}); age != nil {
		draft.Age = age
	}
	if order := firstInt(fields, orderAliases); order != nil {
		draft.DisplayOrder = int16(*order)
	}

	return draft, nil
}

func firstString(fields map[string]json.RawMessage, keys []string) string {
	for _, key := range keys {
		body, ok := fields[key]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(body, &s); err == nil {
			if s != "" {
				return s
			}
			continue
		}
		var n float64
		if err := json.Unmarshal(body, &n); err == nil {
			return strconv.FormatFloat(n, 'f', -1, 64)
		}
	}
	return ""
}

func firstFloat(fields map[string]json.RawMessage, keys []string) *float64 {
	for _, key := range keys {
		body, ok := fields[key]
		if !ok {
			continue
		}
		var n float64
		if err := json.Unmarshal(body, &n); err == nil {
			return &n
		}
		var s string
		if err := json.Unmarshal(body, &s); err == nil {
			s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
			if s == "" {
				continue
			}
			if parsed, err := strconv.ParseFloat(s, 64); err == nil {
				return &parsed
			}
		}
	}
	return nil
}

func firstInt(fields map[string]json.RawMessage, keys []string) *int {
	if f := firstFloat(fields, keys); f != nil {
		n := int(*f)
		return &n
	}
	return nil
}

func firstBool(fields map[string]json.RawMessage, keys []string) bool {
	for _, key := range keys {
		body, ok := fields[key]
		if !ok {
			continue
		}
		var b bool
		if err := json.Unmarshal(body, &b); err == nil {
			return b
		}
		var s string
		if err := json.Unmarshal(body, &s); err == nil {
			switch strings.ToLower(strings.TrimSpace(s)) {
			case "sim", "true", "1", "s":
				return true
			}
		}
	}
	return false
}

func firstDate(fields map[string]json.RawMessage, keys []string) (*domain.Date, error) {
	raw := firstString(fields, keys)
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	parsed, err := domain.ParseDate(raw)
	if err != nil {
		return nil, apperr.Validation(keys[0], "Data inválida: "+raw)
	}
	return &parsed, nil
}

// ageFromBirthDate computes completed years; a birth date in the
// future yields nil.
func ageFromBirthDate(birth, today time.Time) *int {
	age := today.Year() - birth.Year()
	if today.Month() < birth.Month() ||
		(today.Month() == birth.Month() && today.Day() < birth.Day()) {
		age--
	}
	if age < 0 {
		return nil
	}
	return &age
}
