package registry

import (
	"context"
	"testing"

	"github.com/garelabs/gare-backend/internal/data/repos/testutil"
	"github.com/garelabs/gare-backend/internal/domain"
)

func TestRelationshipRepoUpsertByEndpoints(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewRelationshipRepo(db, testutil.Logger(t))
	ctx := context.Background()

	member := testutil.SeedIndividual(t, ctx, tx, "João da Silva", "")
	company := testutil.SeedLegalEntity(t, ctx, tx, "Transportes Anápolis Ltda", "11222333000181")

	edge := &domain.Relationship{
		OriginID:    member.PersonID,
		OriginKind:  domain.KindIndividual,
		TargetID:    company.PersonID,
		TargetKind:  domain.KindLegalEntity,
		Label:       domain.RelationshipLabelPartner,
		Description: "Sócio: João da Silva",
		Reliability: domain.ReliabilityMax,
	}
	created, err := repo.UpsertByEndpoints(ctx, tx, edge)
	if err != nil {
		t.Fatalf("UpsertByEndpoints: %v", err)
	}
	if !created {
		t.Fatalf("UpsertByEndpoints: expected create")
	}
	firstID := edge.ID

	repeat := &domain.Relationship{
		OriginID:    member.PersonID,
		OriginKind:  domain.KindIndividual,
		TargetID:    company.PersonID,
		TargetKind:  domain.KindLegalEntity,
		Label:       domain.RelationshipLabelPartner,
		Description: "Sócio: João da Silva",
		Reliability: domain.ReliabilityMax,
	}
	created, err = repo.UpsertByEndpoints(ctx, tx, repeat)
	if err != nil {
		t.Fatalf("UpsertByEndpoints repeat: %v", err)
	}
	if created || repeat.ID != firstID {
		t.Fatalf("UpsertByEndpoints repeat: expected update of row %d, got created=%v id=%d", firstID, created, repeat.ID)
	}

	count, err := repo.Count(ctx, tx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 1 {
		t.Fatalf("Count: got %d, want 1", count)
	}
}

func TestRelationshipRepoListByPerson(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewRelationshipRepo(db, testutil.Logger(t))
	ctx := context.Background()

	a := testutil.SeedIndividual(t, ctx, tx, "A", "")
	b := testutil.SeedIndividual(t, ctx, tx, "B", "")
	c := testutil.SeedIndividual(t, ctx, tx, "C", "")

	e1 := testutil.SeedRelationship(t, ctx, tx, a.Person, b.Person, "Irmão", 4)
	e2 := testutil.SeedRelationship(t, ctx, tx, c.Person, a.Person, "Vizinho", 2)
	testutil.SeedRelationship(t, ctx, tx, b.Person, c.Person, "Colega", 1)

	edges, err := repo.ListByPerson(ctx, tx, a.PersonID)
	if err != nil {
		t.Fatalf("ListByPerson: %v", err)
	}
	if len(edges) != 2 {
		t.Fatalf("ListByPerson: got %d edges, want 2", len(edges))
	}
	// Ascending id order: the edge where A is origin was stored first.
	if edges[0].ID != e1.ID || edges[1].ID != e2.ID {
		t.Fatalf("ListByPerson: wrong order: %d, %d", edges[0].ID, edges[1].ID)
	}

	origins, err := repo.ListByOrigin(ctx, tx, a.PersonID)
	if err != nil {
		t.Fatalf("ListByOrigin: %v", err)
	}
	if len(origins) != 1 || origins[0].ID != e1.ID {
		t.Fatalf("ListByOrigin: unexpected result: %+v", origins)
	}

	filtered, err := repo.ListAll(ctx, tx, RelationshipFilter{Label: "irm"})
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(filtered) != 1 || filtered[0].ID != e1.ID {
		t.Fatalf("ListAll label filter: unexpected result: %+v", filtered)
	}
}
