package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/garelabs/gare-backend/internal/domain"
)

func SeedIndividual(tb testing.TB, ctx context.Context, tx *gorm.DB, name, cpf string) *domain.Individual {
	tb.Helper()
	p := &domain.Person{Kind: domain.KindIndividual}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed person: %v", err)
	}
	facet := &domain.Individual{
		PersonID: p.ID,
		Name:     name,
	}
	if cpf != "" {
		facet.CPF = &cpf
	}
	if err := tx.WithContext(ctx).Create(facet).Error; err != nil {
		tb.Fatalf("seed individual: %v", err)
	}
	facet.Person = p
	return facet
}

func SeedLegalEntity(tb testing.TB, ctx context.Context, tx *gorm.DB, legalName, cnpj string) *domain.LegalEntity {
	tb.Helper()
	p := &domain.Person{Kind: domain.KindLegalEntity}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed person: %v", err)
	}
	facet := &domain.LegalEntity{
		PersonID:  p.ID,
		LegalName: legalName,
		CNPJ:      cnpj,
	}
	if err := tx.WithContext(ctx).Create(facet).Error; err != nil {
		tb.Fatalf("seed legal entity: %v", err)
	}
	facet.Person = p
	return facet
}

func SeedRelationship(tb testing.TB, ctx context.Context, tx *gorm.DB, origin, target *domain.Person, label string, reliability int16) *domain.Relationship {
	tb.Helper()
	edge := &domain.Relationship{
		OriginID:    origin.ID,
		OriginKind:  origin.Kind,
		TargetID:    target.ID,
		TargetKind:  target.Kind,
		Label:       label,
		Reliability: reliability,
	}
	if err := tx.WithContext(ctx).Create(edge).Error; err != nil {
		tb.Fatalf("seed relationship: %v", err)
	}
	return edge
}

func SeedPartner(tb testing.TB, ctx context.Context, tx *gorm.DB, companyID uint, taxID, name string) *domain.Partner {
	tb.Helper()
	record := &domain.Partner{
		CompanyID: companyID,
		TaxID:     taxID,
		Name:      name,
	}
	if err := tx.WithContext(ctx).Create(record).Error; err != nil {
		tb.Fatalf("seed partner: %v", err)
	}
	return record
}

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *domain.User {
	tb.Helper()
	u := &domain.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         "Operador",
		PasswordHash: "hash",
		Role:         domain.RoleUser,
		Active:       true,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}
