package services

import (
	"context"
	"testing"

	"github.com/garelabs/gare-backend/internal/data/repos"
	"github.com/garelabs/gare-backend/internal/data/repos/testutil"
	"github.com/garelabs/gare-backend/internal/pkg/apperr"
)

func TestNetworkExpandChain(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	ctx := context.Background()

	personRepo := repos.NewPersonRepo(tx, log)
	relRepo := repos.NewRelationshipRepo(tx, log)
	svc := NewNetworkService(tx, log, personRepo, relRepo)

	p1 := testutil.SeedIndividual(t, ctx, tx, "P1", "")
	p2 := testutil.SeedIndividual(t, ctx, tx, "P2", "")
	p3 := testutil.SeedIndividual(t, ctx, tx, "P3", "")
	testutil.SeedRelationship(t, ctx, tx, p1.Person, p2.Person, "Irmão", 4)
	testutil.SeedRelationship(t, ctx, tx, p2.Person, p3.Person, "Colega", 2)

	result, err := svc.Expand(ctx, p1.PersonID, 2)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if result.TotalConnections != 2 || result.TotalVisited != 3 {
		t.Fatalf("Expand: conexoes=%d visitados=%d, want 2/3", result.TotalConnections, result.TotalVisited)
	}
	if result.Network[0].PersonID != p2.PersonID || result.Network[0].Depth != 1 {
		t.Fatalf("Expand: first hop wrong: %+v", result.Network[0])
	}
	if result.Network[1].PersonID != p3.PersonID || result.Network[1].Depth != 2 {
		t.Fatalf("Expand: second hop wrong: %+v", result.Network[1])
	}
	if result.Network[0].Label != "Irmão" || result.Network[1].Label != "Colega" {
		t.Fatalf("Expand: edge labels wrong: %+v", result.Network)
	}
}

func TestNetworkExpandDepthLimit(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	ctx := context.Background()

	personRepo := repos.NewPersonRepo(tx, log)
	relRepo := repos.NewRelationshipRepo(tx, log)
	svc := NewNetworkService(tx, log, personRepo, relRepo)

	p1 := testutil.SeedIndividual(t, ctx, tx, "P1", "")
	p2 := testutil.SeedIndividual(t, ctx, tx, "P2", "")
	p3 := testutil.SeedIndividual(t, ctx, tx, "P3", "")
	testutil.SeedRelationship(t, ctx, tx, p1.Person, p2.Person, "Irmão", 4)
	testutil.SeedRelationship(t, ctx, tx, p2.Person, p3.Person, "Colega", 2)

	result, err := svc.Expand(ctx, p1.PersonID, 1)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if result.TotalConnections != 1 || result.Network[0].PersonID != p2.PersonID {
		t.Fatalf("Expand depth 1: unexpected network: %+v", result.Network)
	}
}

func TestNetworkExpandCycle(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	ctx := context.Background()

	personRepo := repos.NewPersonRepo(tx, log)
	relRepo := repos.NewRelationshipRepo(tx, log)
	svc := NewNetworkService(tx, log, personRepo, relRepo)

	a := testutil.SeedIndividual(t, ctx, tx, "A", "")
	b := testutil.SeedIndividual(t, ctx, tx, "B", "")
	c := testutil.SeedIndividual(t, ctx, tx, "C", "")
	testutil.SeedRelationship(t, ctx, tx, a.Person, b.Person, "Irmão", 4)
	testutil.SeedRelationship(t, ctx, tx, b.Person, c.Person, "Colega", 2)
	testutil.SeedRelationship(t, ctx, tx, c.Person, a.Person, "Vizinho", 1)

	result, err := svc.Expand(ctx, a.PersonID, 3)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	// Each person appears once, at the depth it was first reached.
	if result.TotalConnections != 2 || result.TotalVisited != 3 {
		t.Fatalf("Expand cycle: conexoes=%d visitados=%d, want 2/3", result.TotalConnections, result.TotalVisited)
	}
	for _, node := range result.Network {
		if node.Depth != 1 {
			t.Fatalf("Expand cycle: node %d at depth %d, want 1", node.PersonID, node.Depth)
		}
	}
}

func TestNetworkExpandParallelEdgesFirstWins(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	ctx := context.Background()

	personRepo := repos.NewPersonRepo(tx, log)
	relRepo := repos.NewRelationshipRepo(tx, log)
	svc := NewNetworkService(tx, log, personRepo, relRepo)

	p1 := testutil.SeedIndividual(t, ctx, tx, "P1", "")
	p2 := testutil.SeedIndividual(t, ctx, tx, "P2", "")
	testutil.SeedRelationship(t, ctx, tx, p1.Person, p2.Person, "Irmão", 2)
	testutil.SeedRelationship(t, ctx, tx, p1.Person, p2.Person, "Sócio", 5)

	result, err := svc.Expand(ctx, p1.PersonID, 2)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	// Two edges join the pair; the neighbor appears once, annotated
	// with whichever edge scans first in id order.
	if result.TotalConnections != 1 {
		t.Fatalf("Expand parallel: conexoes=%d, want 1", result.TotalConnections)
	}
	node := result.Network[0]
	if node.PersonID != p2.PersonID || node.Label != "Irmão" || node.Reliability != 2 {
		t.Fatalf("Expand parallel: node %+v, want first-scanned edge Irmão/2", node)
	}
}

func TestNetworkExpandDepthZeroAndNegative(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	ctx := context.Background()

	personRepo := repos.NewPersonRepo(tx, log)
	relRepo := repos.NewRelationshipRepo(tx, log)
	svc := NewNetworkService(tx, log, personRepo, relRepo)

	p1 := testutil.SeedIndividual(t, ctx, tx, "P1", "")
	p2 := testutil.SeedIndividual(t, ctx, tx, "P2", "")
	testutil.SeedRelationship(t, ctx, tx, p1.Person, p2.Person, "Irmão", 4)

	result, err := svc.Expand(ctx, p1.PersonID, 0)
	if err != nil {
		t.Fatalf("Expand depth 0: %v", err)
	}
	if result.TotalConnections != 0 || result.TotalVisited != 1 {
		t.Fatalf("Expand depth 0: conexoes=%d visitados=%d, want 0/1", result.TotalConnections, result.TotalVisited)
	}

	if _, err := svc.Expand(ctx, p1.PersonID, -1); !apperr.IsValidation(err) {
		t.Fatalf("Expand depth -1: expected validation error, got %v", err)
	}
}

func TestNetworkExpandUnknownPerson(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)

	personRepo := repos.NewPersonRepo(tx, log)
	relRepo := repos.NewRelationshipRepo(tx, log)
	svc := NewNetworkService(tx, log, personRepo, relRepo)

	_, err := svc.Expand(context.Background(), 424242, 2)
	if !apperr.IsNotFound(err) {
		t.Fatalf("Expand: expected not found, got %v", err)
	}
}
