package services

import (
	"context"
	"testing"

	"github.com/garelabs/gare-backend/internal/data/repos"
	"github.com/garelabs/gare-backend/internal/data/repos/testutil"
	"github.com/garelabs/gare-backend/internal/domain"
	"github.com/garelabs/gare-backend/internal/pkg/apperr"
	"github.com/garelabs/gare-backend/internal/pkg/logger"
	"gorm.io/gorm"
)

func personFixture(t *testing.T) (PersonService, *gorm.DB, *logger.Logger) {
	t.Helper()
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)

	svc := NewPersonService(
		tx,
		log,
		repos.NewPersonRepo(tx, log),
		repos.NewAddressRepo(tx, log),
		repos.NewContactRepo(tx, log),
		repos.NewPartnerRepo(tx, log),
		repos.NewRelationshipRepo(tx, log),
		repos.NewPhotoRepo(tx, log),
	)
	return svc, tx, log
}

func TestCreateIndividual(t *testing.T) {
	svc, _, _ := personFixture(t)
	ctx := context.Background()

	cpf := "111.444.777-35"
	facet := &domain.Individual{Name: "  João da Silva  ", CPF: &cpf}
	addresses := []*domain.Address{{Street: "Rua 10", City: "Goiânia", State: "GO"}}

	created, err := svc.CreateIndividual(ctx, facet, "goainv001", addresses)
	if err != nil {
		t.Fatalf("CreateIndividual: %v", err)
	}
	if created.Name != "João da Silva" {
		t.Fatalf("name not trimmed: %q", created.Name)
	}
	if created.CPF == nil || *created.CPF != "11144477735" {
		t.Fatalf("cpf not normalized: %+v", created.CPF)
	}
	if created.Person == nil || created.Person.CaseCode == nil || *created.Person.CaseCode != "GOAINV001" {
		t.Fatalf("case code not normalized: %+v", created.Person)
	}

	detail, err := svc.GetIndividual(ctx, created.PersonID)
	if err != nil {
		t.Fatalf("GetIndividual: %v", err)
	}
	if len(detail.Addresses) != 1 || detail.Addresses[0].City != "Goiânia" {
		t.Fatalf("addresses not persisted: %+v", detail.Addresses)
	}
}

func TestCreateIndividualRejectsBadInput(t *testing.T) {
	svc, _, _ := personFixture(t)
	ctx := context.Background()

	if _, err := svc.CreateIndividual(ctx, &domain.Individual{Name: "Jo"}, "", nil); apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("short name: expected validation error, got %v", err)
	}

	badCPF := "111.111.111-11"
	if _, err := svc.CreateIndividual(ctx, &domain.Individual{Name: "Nome Válido", CPF: &badCPF}, "", nil); apperr.KindOf(err) != apperr.KindChecksum {
		t.Fatalf("uniform cpf: expected checksum error, got %v", err)
	}

	if _, err := svc.CreateIndividual(ctx, &domain.Individual{Name: "Nome Válido"}, "XXXINV001", nil); apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("bad case code prefix: expected validation error, got %v", err)
	}
}

func TestCreateIndividualCPFConflict(t *testing.T) {
	svc, _, _ := personFixture(t)
	ctx := context.Background()

	cpf := "11144477735"
	if _, err := svc.CreateIndividual(ctx, &domain.Individual{Name: "Primeiro Dono", CPF: &cpf}, "", nil); err != nil {
		t.Fatalf("CreateIndividual: %v", err)
	}

	duplicate := "111.444.777-35"
	_, err := svc.CreateIndividual(ctx, &domain.Individual{Name: "Segundo Dono", CPF: &duplicate}, "", nil)
	if apperr.KindOf(err) != apperr.KindConflict || apperr.FieldOf(err) != "cpf" {
		t.Fatalf("duplicate cpf: expected conflict on cpf, got %v", err)
	}
}

func TestCreateLegalEntity(t *testing.T) {
	svc, _, _ := personFixture(t)
	ctx := context.Background()

	facet := &domain.LegalEntity{LegalName: "Comercial Goiás Ltda", CNPJ: "11.222.333/0001-81"}
	contacts := []*domain.CompanyContact{{Kind: "email", Value: "contato@comercialgoias.com.br", Primary: true}}

	created, err := svc.CreateLegalEntity(ctx, facet, "", nil, contacts)
	if err != nil {
		t.Fatalf("CreateLegalEntity: %v", err)
	}
	if created.CNPJ != "11222333000181" {
		t.Fatalf("cnpj not normalized: %q", created.CNPJ)
	}

	detail, err := svc.GetLegalEntity(ctx, created.PersonID)
	if err != nil {
		t.Fatalf("GetLegalEntity: %v", err)
	}
	if len(detail.Contacts) != 1 || detail.Contacts[0].Value != "contato@comercialgoias.com.br" {
		t.Fatalf("contacts not persisted: %+v", detail.Contacts)
	}
	if detail.Contacts[0].PersonID != created.PersonID {
		t.Fatalf("contact not linked to company: %+v", detail.Contacts[0])
	}

	_, err = svc.CreateLegalEntity(ctx, &domain.LegalEntity{LegalName: "Outra Empresa", CNPJ: "11222333000181"}, "", nil, nil)
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("duplicate cnpj: expected conflict, got %v", err)
	}
}

func TestDeleteIndividualRemovesAggregate(t *testing.T) {
	svc, tx, log := personFixture(t)
	ctx := context.Background()

	cpf := "52998224725"
	created, err := svc.CreateIndividual(ctx, &domain.Individual{Name: "Apagável da Silva", CPF: &cpf}, "", []*domain.Address{{Street: "Rua 1", City: "Goiânia"}})
	if err != nil {
		t.Fatalf("CreateIndividual: %v", err)
	}

	if err := svc.DeleteIndividual(ctx, created.PersonID); err != nil {
		t.Fatalf("DeleteIndividual: %v", err)
	}
	if _, err := svc.GetIndividual(ctx, created.PersonID); !apperr.IsNotFound(err) {
		t.Fatalf("expected not found after delete, got %v", err)
	}

	addresses, err := repos.NewAddressRepo(tx, log).ListByPerson(ctx, nil, created.PersonID)
	if err != nil {
		t.Fatalf("ListByPerson: %v", err)
	}
	if len(addresses) != 0 {
		t.Fatalf("addresses survived delete: %+v", addresses)
	}
}

func TestCheckCaseCode(t *testing.T) {
	svc, _, _ := personFixture(t)
	ctx := context.Background()

	report, err := svc.CheckCaseCode(ctx, " goainv001 ", domain.KindIndividual, 0)
	if err != nil {
		t.Fatalf("CheckCaseCode: %v", err)
	}
	if !report.Valid || report.Exists || report.CaseCode != "GOAINV001" {
		t.Fatalf("available code: %+v", report)
	}
	if report.Label != "Investigação" {
		t.Fatalf("label = %q", report.Label)
	}

	if _, err := svc.CreateIndividual(ctx, &domain.Individual{Name: "Dona do GOA"}, "GOAINV001", nil); err != nil {
		t.Fatalf("CreateIndividual: %v", err)
	}

	report, err = svc.CheckCaseCode(ctx, "GOAINV001", domain.KindIndividual, 0)
	if err != nil {
		t.Fatalf("CheckCaseCode: %v", err)
	}
	if report.Valid || !report.Exists {
		t.Fatalf("taken code: %+v", report)
	}

	if _, err := svc.CheckCaseCode(ctx, "GOAINV0", domain.KindIndividual, 0); apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("short code: expected validation error, got %v", err)
	}

	report, err = svc.CheckCaseCode(ctx, "  ", domain.KindIndividual, 0)
	if err != nil {
		t.Fatalf("CheckCaseCode empty: %v", err)
	}
	if !report.Valid || report.Exists || report.CaseCode != "" {
		t.Fatalf("empty code: %+v", report)
	}
}

func TestCounts(t *testing.T) {
	svc, tx, _ := personFixture(t)
	ctx := context.Background()

	a := testutil.SeedIndividual(t, ctx, tx, "Um", "")
	b := testutil.SeedIndividual(t, ctx, tx, "Dois", "")
	testutil.SeedLegalEntity(t, ctx, tx, "Empresa Única", "11222333000181")
	testutil.SeedRelationship(t, ctx, tx, a.Person, b.Person, "Irmão", 3)

	counts, err := svc.Counts(ctx)
	if err != nil {
		t.Fatalf("Counts: %v", err)
	}
	if counts.Individuals != 2 || counts.LegalEntities != 1 || counts.Relationships != 1 {
		t.Fatalf("Counts: %+v", counts)
	}
}
