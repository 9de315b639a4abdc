package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/garelabs/gare-backend/internal/data/repos"
	"github.com/garelabs/gare-backend/internal/domain"
	"github.com/garelabs/gare-backend/internal/pkg/apperr"
	"github.com/garelabs/gare-backend/internal/pkg/ctxutil"
	"github.com/garelabs/gare-backend/internal/pkg/logger"
)

type UserService interface {
	Me(ctx context.Context) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	// SetActive flips account approval; deactivating also revokes the
	// user's sessions.
	SetActive(ctx context.Context, id uuid.UUID, active bool) (*domain.User, error)
}

type userService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	userTokenRepo repos.UserTokenRepo
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, userTokenRepo repos.UserTokenRepo) UserService {
	serviceLog := log.With("service", "UserService")
	return &userService{db: db, log: serviceLog, userRepo: userRepo, userTokenRepo: userTokenRepo}
}

func (us *userService) Me(ctx context.Context) (*domain.User, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil {
		return nil, apperr.Validation("authorization", "Não autenticado")
	}
	user, err := us.userRepo.GetByID(ctx, nil, rd.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("Usuário não encontrado")
	}
	return user, nil
}

func (us *userService) List(ctx context.Context) ([]*domain.User, error) {
	return us.userRepo.List(ctx, nil)
}

func (us *userService) SetActive(ctx context.Context, id uuid.UUID, active bool) (*domain.User, error) {
	user, err := us.userRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("Usuário não encontrado")
	}
	user.Active = active
	err = us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := us.userRepo.Update(ctx, tx, user); err != nil {
			return err
		}
		if !active {
			return us.userTokenRepo.DeleteByUser(ctx, tx, user.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	us.log.Info("user activation changed", "user_id", user.ID, "ativo", active)
	return user, nil
}
