package registry

import (
	"context"
	"testing"

	"github.com/garelabs/gare-backend/internal/data/repos/testutil"
	"github.com/garelabs/gare-backend/internal/domain"
)

func TestPartnerRepoUpsert(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewPartnerRepo(db, testutil.Logger(t))
	ctx := context.Background()

	company := testutil.SeedLegalEntity(t, ctx, tx, "Transportes Anápolis Ltda", "11222333000181")

	share := 40.0
	record := &domain.Partner{
		CompanyID:    company.PersonID,
		TaxID:        "11144477735",
		Name:         "João da Silva",
		SharePercent: &share,
		Role:         "Sócio-Administrador",
	}
	created, err := repo.Upsert(ctx, tx, record)
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if !created {
		t.Fatalf("Upsert: expected first write to create")
	}
	firstID := record.ID

	// Same natural key lands on the same row with refreshed fields.
	newShare := 55.0
	again := &domain.Partner{
		CompanyID:    company.PersonID,
		TaxID:        "11144477735",
		Name:         "João da Silva",
		SharePercent: &newShare,
	}
	created, err = repo.Upsert(ctx, tx, again)
	if err != nil {
		t.Fatalf("Upsert repeat: %v", err)
	}
	if created {
		t.Fatalf("Upsert repeat: expected update, got create")
	}
	if again.ID != firstID {
		t.Fatalf("Upsert repeat: id changed %d -> %d", firstID, again.ID)
	}

	stored, err := repo.GetByNaturalKey(ctx, tx, company.PersonID, "11144477735", "João da Silva")
	if err != nil {
		t.Fatalf("GetByNaturalKey: %v", err)
	}
	if stored == nil || stored.SharePercent == nil || *stored.SharePercent != 55.0 {
		t.Fatalf("GetByNaturalKey: stale fields: %+v", stored)
	}

	count, err := repo.CountByCompany(ctx, tx, company.PersonID)
	if err != nil {
		t.Fatalf("CountByCompany: %v", err)
	}
	if count != 1 {
		t.Fatalf("CountByCompany: got %d, want 1", count)
	}
}

func TestPartnerRepoEmptyTaxIDKeysSeparately(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewPartnerRepo(db, testutil.Logger(t))
	ctx := context.Background()

	company := testutil.SeedLegalEntity(t, ctx, tx, "Mercearia Central", "19131243000197")

	testutil.SeedPartner(t, ctx, tx, company.PersonID, "", "Fulano de Tal")

	other := &domain.Partner{CompanyID: company.PersonID, TaxID: "", Name: "Beltrano de Tal"}
	created, err := repo.Upsert(ctx, tx, other)
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if !created {
		t.Fatalf("Upsert: distinct name with empty tax id must create a new row")
	}

	list, err := repo.ListByCompany(ctx, tx, company.PersonID)
	if err != nil {
		t.Fatalf("ListByCompany: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("ListByCompany: got %d rows, want 2", len(list))
	}
}
