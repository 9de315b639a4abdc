package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/garelabs/gare-backend/internal/data/repos"
	"github.com/garelabs/gare-backend/internal/data/repos/testutil"
	"github.com/garelabs/gare-backend/internal/domain"
)

func partnerFixture(t *testing.T) (PartnerService, repos.PersonRepo, repos.PartnerRepo, repos.RelationshipRepo, *domain.LegalEntity, context.Context) {
	t.Helper()
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	ctx := context.Background()

	personRepo := repos.NewPersonRepo(tx, log)
	partnerRepo := repos.NewPartnerRepo(tx, log)
	relRepo := repos.NewRelationshipRepo(tx, log)
	svc := NewPartnerService(tx, log, personRepo, partnerRepo, relRepo)

	company := testutil.SeedLegalEntity(t, ctx, tx, "Transportes Anápolis Ltda", "11222333000181")
	return svc, personRepo, partnerRepo, relRepo, company, ctx
}

func TestImportBatchCreatesAndResolves(t *testing.T) {
	svc, personRepo, partnerRepo, relRepo, company, ctx := partnerFixture(t)

	payload := json.RawMessage(`[
		{"nome_socio": "João da Silva", "cpf": "111.444.777-35", "participacao_percentual": 40.5,
		 "qualificacao": "Sócio-Administrador", "nome_mae": "Maria da Silva",
		 "data_nascimento": "1980-03-15", "data_entrada": "15/06/2010"},
		{"nome": "Empresa Participante SA", "cnpj": "11.222.333/0001-81"}
	]`)

	report, err := svc.ImportBatch(ctx, company.PersonID, payload, "planilha")
	if err != nil {
		t.Fatalf("ImportBatch: %v", err)
	}
	if report.Attempted != 2 || report.Failed != 0 {
		t.Fatalf("ImportBatch: attempted=%d failed=%d, want 2/0", report.Attempted, report.Failed)
	}
	if report.Created != 2 {
		t.Fatalf("ImportBatch: created=%d, want 2", report.Created)
	}
	// Only the CPF member resolves to an Individual; the CNPJ member
	// stays unresolved.
	if report.Resolved != 1 {
		t.Fatalf("ImportBatch: resolved=%d, want 1", report.Resolved)
	}

	member, err := personRepo.GetIndividualByCPF(ctx, nil, "11144477735")
	if err != nil {
		t.Fatalf("GetIndividualByCPF: %v", err)
	}
	if member == nil {
		t.Fatalf("member individual was not created")
	}
	if member.MotherName != "Maria da Silva" {
		t.Fatalf("member mother name = %q", member.MotherName)
	}
	if member.Age == nil {
		t.Fatalf("member age was not derived from birth date")
	}

	stored, err := partnerRepo.GetByNaturalKey(ctx, nil, company.PersonID, "11144477735", "João da Silva")
	if err != nil {
		t.Fatalf("GetByNaturalKey: %v", err)
	}
	if stored == nil || stored.PersonID == nil || *stored.PersonID != member.PersonID {
		t.Fatalf("membership not linked to member: %+v", stored)
	}
	if stored.SharePercent == nil || *stored.SharePercent != 40.5 {
		t.Fatalf("membership share = %+v", stored.SharePercent)
	}
	if stored.EnteredAt == nil || stored.EnteredAt.String() != "2010-06-15" {
		t.Fatalf("membership entry date = %+v", stored.EnteredAt)
	}

	edges, err := relRepo.ListByOrigin(ctx, nil, company.PersonID)
	if err != nil {
		t.Fatalf("ListByOrigin: %v", err)
	}
	if len(edges) != 1 {
		t.Fatalf("edges = %d, want 1", len(edges))
	}
	edge := edges[0]
	if edge.TargetID != member.PersonID || edge.Label != domain.RelationshipLabelPartner {
		t.Fatalf("edge wrong: %+v", edge)
	}
	if edge.Reliability != domain.ReliabilityMax {
		t.Fatalf("edge reliability = %d, want %d", edge.Reliability, domain.ReliabilityMax)
	}
	if edge.Description != "Sócio: João da Silva" {
		t.Fatalf("edge description = %q", edge.Description)
	}
}

func TestImportBatchIsIdempotent(t *testing.T) {
	svc, _, partnerRepo, relRepo, company, ctx := partnerFixture(t)

	payload := json.RawMessage(`[{"nome_socio": "João da Silva", "cpf": "11144477735", "participacao_percentual": 40}]`)
	if _, err := svc.ImportBatch(ctx, company.PersonID, payload, "planilha"); err != nil {
		t.Fatalf("first ImportBatch: %v", err)
	}

	// Re-run with a changed share: same rows, refreshed values.
	payload = json.RawMessage(`[{"nome_socio": "João da Silva", "cpf": "11144477735", "participacao_percentual": 55}]`)
	report, err := svc.ImportBatch(ctx, company.PersonID, payload, "planilha")
	if err != nil {
		t.Fatalf("second ImportBatch: %v", err)
	}
	if report.Created != 0 || report.Updated != 1 {
		t.Fatalf("second run: created=%d updated=%d, want 0/1", report.Created, report.Updated)
	}

	count, err := partnerRepo.CountByCompany(ctx, nil, company.PersonID)
	if err != nil {
		t.Fatalf("CountByCompany: %v", err)
	}
	if count != 1 {
		t.Fatalf("memberships = %d, want 1", count)
	}
	stored, err := partnerRepo.GetByNaturalKey(ctx, nil, company.PersonID, "11144477735", "João da Silva")
	if err != nil {
		t.Fatalf("GetByNaturalKey: %v", err)
	}
	if stored.SharePercent == nil || *stored.SharePercent != 55 {
		t.Fatalf("second run did not win: %+v", stored.SharePercent)
	}

	edges, err := relRepo.ListByOrigin(ctx, nil, company.PersonID)
	if err != nil {
		t.Fatalf("ListByOrigin: %v", err)
	}
	if len(edges) != 1 {
		t.Fatalf("edges after rerun = %d, want 1", len(edges))
	}
}

func TestImportBatchIsolatesFailures(t *testing.T) {
	svc, personRepo, partnerRepo, _, company, ctx := partnerFixture(t)

	payload := json.RawMessage(`[
		{"cpf": "52998224725"},
		{"nome_socio": "CPF Quebrado", "cpf": "11111111111"},
		{"nome_socio": "Ana Lima", "cpf": "52998224725"}
	]`)
	report, err := svc.ImportBatch(ctx, company.PersonID, payload, "form")
	if err != nil {
		t.Fatalf("ImportBatch: %v", err)
	}
	if report.Attempted != 3 || report.Failed != 2 {
		t.Fatalf("report: attempted=%d failed=%d, want 3/2", report.Attempted, report.Failed)
	}
	if report.Items[0].Error == "" || report.Items[1].Error == "" {
		t.Fatalf("failed items missing errors: %+v", report.Items)
	}
	if report.Items[2].Error != "" || !report.Items[2].Resolved {
		t.Fatalf("healthy item affected by neighbors: %+v", report.Items[2])
	}

	// The broken records left nothing behind.
	count, err := partnerRepo.CountByCompany(ctx, nil, company.PersonID)
	if err != nil {
		t.Fatalf("CountByCompany: %v", err)
	}
	if count != 1 {
		t.Fatalf("memberships = %d, want 1", count)
	}
	member, err := personRepo.GetIndividualByCPF(ctx, nil, "52998224725")
	if err != nil {
		t.Fatalf("GetIndividualByCPF: %v", err)
	}
	if member == nil || member.Name != "Ana Lima" {
		t.Fatalf("resolved member wrong: %+v", member)
	}
}

func TestImportBatchKeyedPayloadOrder(t *testing.T) {
	svc, _, _, _, company, ctx := partnerFixture(t)

	payload := json.RawMessage(`{
		"Sócio 2": {"nome_socio": "Segundo Sócio"},
		"Sócio 1": {"nome_socio": "Primeiro Sócio"}
	}`)
	report, err := svc.ImportBatch(ctx, company.PersonID, payload, "form")
	if err != nil {
		t.Fatalf("ImportBatch: %v", err)
	}
	if report.Attempted != 2 {
		t.Fatalf("attempted = %d, want 2", report.Attempted)
	}
	if report.Items[0].Key != "Sócio 1" || report.Items[1].Key != "Sócio 2" {
		t.Fatalf("keyed payload not processed in key order: %+v", report.Items)
	}
}

func TestImportBatchReconcilesMotherName(t *testing.T) {
	svc, personRepo, _, _, company, ctx := partnerFixture(t)

	existing, err := personRepo.GetIndividualByCPF(ctx, nil, "11144477735")
	if err != nil {
		t.Fatalf("GetIndividualByCPF: %v", err)
	}
	if existing != nil {
		t.Fatalf("fixture leak: individual already present")
	}

	seed := json.RawMessage(`[{"nome_socio": "João da Silva", "cpf": "11144477735", "nome_mae": "Nome Antigo"}]`)
	if _, err := svc.ImportBatch(ctx, company.PersonID, seed, "form"); err != nil {
		t.Fatalf("seed ImportBatch: %v", err)
	}

	update := json.RawMessage(`[{"nome_socio": "João da Silva", "cpf": "11144477735", "nome_mae": "Maria Correta"}]`)
	if _, err := svc.ImportBatch(ctx, company.PersonID, update, "form"); err != nil {
		t.Fatalf("update ImportBatch: %v", err)
	}

	member, err := personRepo.GetIndividualByCPF(ctx, nil, "11144477735")
	if err != nil {
		t.Fatalf("GetIndividualByCPF: %v", err)
	}
	if member == nil || member.MotherName != "Maria Correta" {
		t.Fatalf("mother name not reconciled: %+v", member)
	}
}
