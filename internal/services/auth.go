package services

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/garelabs/gare-backend/internal/data/repos"
	"github.com/garelabs/gare-backend/internal/domain"
	"github.com/garelabs/gare-backend/internal/pkg/apperr"
	"github.com/garelabs/gare-backend/internal/pkg/ctxutil"
	"github.com/garelabs/gare-backend/internal/pkg/logger"
)

type JWTClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*domain.User, error)
	// Login returns (access token, refresh token). Accounts pending
	// approval cannot log in.
	Login(ctx context.Context, email, password string) (string, string, error)
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
	Logout(ctx context.Context, refreshToken string) error
	// SetContextFromToken validates the bearer token and attaches the
	// caller's identity to the context.
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	AccessTTL() time.Duration
}

type authService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	userTokenRepo repos.UserTokenRepo
	jwtSecretKey  string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	userTokenRepo repos.UserTokenRepo,
	jwtSecretKey string,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) AuthService {
	serviceLog := log.With("service", "AuthService")
	return &authService{
		db:            db,
		log:           serviceLog,
		userRepo:      userRepo,
		userTokenRepo: userTokenRepo,
		jwtSecretKey:  jwtSecretKey,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (as *authService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" {
		return nil, apperr.Validation("nome", "Nome é obrigatório")
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, apperr.Validation("email", "Email inválido")
	}
	if len(password) < 8 {
		return nil, apperr.Validation("senha", "Senha deve ter pelo menos 8 caracteres")
	}

	exists, err := as.userRepo.EmailExists(ctx, nil, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict("email", "Email já cadastrado")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		Active:       false,
	}
	err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return as.userRepo.Create(ctx, tx, user)
	})
	if err != nil {
		return nil, err
	}
	as.log.Info("user registered", "user_id", user.ID, "email", user.Email)
	return user, nil
}

func (as *authService) Login(ctx context.Context, email, password string) (string, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := as.userRepo.GetByEmail(ctx, nil, email)
	if err != nil {
		return "", "", err
	}
	if user == nil {
		return "", "", apperr.Validation("email", "Credenciais inválidas")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", "", apperr.Validation("senha", "Credenciais inválidas")
	}
	if !user.Active {
		return "", "", apperr.Validation("email", "Conta aguardando aprovação")
	}

	var accessToken, refreshToken string
	err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := as.userTokenRepo.DeleteExpired(ctx, tx, time.Now()); err != nil {
			return err
		}
		tok, err := as.generateAccessToken(user)
		if err != nil {
			return err
		}
		accessToken = tok
		refreshToken = uuid.New().String()
		return as.userTokenRepo.Create(ctx, tx, &domain.UserToken{
			ID:           uuid.New(),
			UserID:       user.ID,
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			ExpiresAt:    time.Now().Add(as.refreshTTL),
		})
	})
	if err != nil {
		return "", "", err
	}
	as.log.Info("user logged in", "user_id", user.ID)
	return accessToken, refreshToken, nil
}

func (as *authService) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	if refreshToken == "" {
		return "", "", apperr.Validation("refresh_token", "Refresh token é obrigatório")
	}

	var accessToken, newRefreshToken string
	err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := as.userTokenRepo.GetByRefreshToken(ctx, tx, refreshToken)
		if err != nil {
			return err
		}
		if existing == nil {
			return apperr.Validation("refresh_token", "Refresh token inválido")
		}
		if existing.ExpiresAt.Before(time.Now()) {
			if err := as.userTokenRepo.DeleteByUser(ctx, tx, existing.UserID); err != nil {
				return err
			}
			return apperr.Validation("refresh_token", "Refresh token expirado")
		}
		user, err := as.userRepo.GetByID(ctx, tx, existing.UserID)
		if err != nil {
			return err
		}
		if user == nil {
			return apperr.Validation("refresh_token", "Usuário do token não existe")
		}
		tok, err := as.generateAccessToken(user)
		if err != nil {
			return err
		}
		accessToken = tok
		newRefreshToken = uuid.New().String()
		existing.AccessToken = accessToken
		existing.RefreshToken = newRefreshToken
		existing.ExpiresAt = time.Now().Add(as.refreshTTL)
		return as.userTokenRepo.Update(ctx, tx, existing)
	})
	if err != nil {
		return "", "", err
	}
	return accessToken, newRefreshToken, nil
}

func (as *authService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return apperr.Validation("refresh_token", "Refresh token é obrigatório")
	}
	return as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := as.userTokenRepo.GetByRefreshToken(ctx, tx, refreshToken)
		if err != nil {
			return err
		}
		if existing == nil {
			return nil
		}
		return as.userTokenRepo.DeleteByUser(ctx, tx, existing.UserID)
	})
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	if tokenString == "" {
		return ctx, apperr.Validation("authorization", "Token não informado")
	}
	parsed, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil {
		return ctx, apperr.Validation("authorization", "Token inválido ou expirado")
	}
	claims, ok := parsed.Claims.(*JWTClaims)
	if !ok || !parsed.Valid {
		return ctx, apperr.Validation("authorization", "Token inválido ou expirado")
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ctx, apperr.Validation("authorization", "Token sem identidade válida")
	}
	return ctxutil.WithRequestData(ctx, &ctxutil.RequestData{UserID: userID, Role: claims.Role}), nil
}

func (as *authService) AccessTTL() time.Duration { return as.accessTTL }

func (as *authService) generateAccessToken(user *domain.User) (string, error) {
	claims := JWTClaims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(as.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecretKey))
}
