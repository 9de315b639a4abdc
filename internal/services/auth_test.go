package services

import (
	"context"
	"testing"
	"time"

	"github.com/garelabs/gare-backend/internal/data/repos"
	"github.com/garelabs/gare-backend/internal/data/repos/testutil"
	"github.com/garelabs/gare-backend/internal/pkg/apperr"
	"github.com/garelabs/gare-backend/internal/pkg/ctxutil"
)

func authFixture(t *testing.T) (AuthService, UserService) {
	t.Helper()
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)

	userRepo := repos.NewUserRepo(tx, log)
	tokenRepo := repos.NewUserTokenRepo(tx, log)
	auth := NewAuthService(tx, log, userRepo, tokenRepo, "test-secret", 15*time.Minute, 24*time.Hour)
	users := NewUserService(tx, log, userRepo, tokenRepo)
	return auth, users
}

func TestAuthLifecycle(t *testing.T) {
	auth, users := authFixture(t)
	ctx := context.Background()

	user, err := auth.Register(ctx, "Operadora", "op@example.com", "senha-segura")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Active {
		t.Fatalf("new account must start inactive")
	}

	// Pending approval blocks login.
	if _, _, err := auth.Login(ctx, "op@example.com", "senha-segura"); apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("inactive login: expected validation error, got %v", err)
	}

	if _, err := users.SetActive(ctx, user.ID, true); err != nil {
		t.Fatalf("SetActive: %v", err)
	}

	access, refresh, err := auth.Login(ctx, "OP@example.com", "senha-segura")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if access == "" || refresh == "" {
		t.Fatalf("Login: empty tokens")
	}

	authed, err := auth.SetContextFromToken(ctx, access)
	if err != nil {
		t.Fatalf("SetContextFromToken: %v", err)
	}
	rd := ctxutil.GetRequestData(authed)
	if rd == nil || rd.UserID != user.ID {
		t.Fatalf("request data wrong: %+v", rd)
	}

	newAccess, newRefresh, err := auth.Refresh(ctx, refresh)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if newRefresh == refresh {
		t.Fatalf("refresh token was not rotated")
	}
	if newAccess == "" {
		t.Fatalf("Refresh: empty access token")
	}

	// The old refresh token died with the rotation.
	if _, _, err := auth.Refresh(ctx, refresh); apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("stale refresh: expected validation error, got %v", err)
	}

	if err := auth.Logout(ctx, newRefresh); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, _, err := auth.Refresh(ctx, newRefresh); apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("refresh after logout: expected validation error, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	auth, _ := authFixture(t)
	ctx := context.Background()

	if _, err := auth.Register(ctx, "", "a@b.com", "senha-segura"); apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("empty name: got %v", err)
	}
	if _, err := auth.Register(ctx, "Nome", "não-é-email", "senha-segura"); apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("bad email: got %v", err)
	}
	if _, err := auth.Register(ctx, "Nome", "a@b.com", "curta"); apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("short password: got %v", err)
	}

	if _, err := auth.Register(ctx, "Nome", "dup@example.com", "senha-segura"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := auth.Register(ctx, "Outro", "dup@example.com", "senha-segura"); apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("duplicate email: expected conflict, got %v", err)
	}
}
