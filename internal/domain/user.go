package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is an operator account. New accounts start inactive and need
// admin approval before login succeeds.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Name         string    `gorm:"column:nome;type:varchar(255);not null" json:"nome"`
	PasswordHash string    `gorm:"column:senha_hash;not null" json:"-"`
	Role         string    `gorm:"column:role;type:varchar(20);not null;default:'user'" json:"role"`
	Active       bool      `gorm:"column:ativo;not null;default:false" json:"ativo"`

	CreatedAt time.Time `gorm:"column:criado_em;not null" json:"criado_em"`
	UpdatedAt time.Time `gorm:"column:atualizado_em;not null" json:"atualizado_em"`
}

func (User) TableName() string { return "usuarios" }

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// UserToken persists one refresh/access token pair per login.
type UserToken struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User         *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	AccessToken  string    `gorm:"not null" json:"-"`
	RefreshToken string    `gorm:"uniqueIndex;not null" json:"-"`
	ExpiresAt    time.Time `gorm:"not null" json:"expires_at"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (UserToken) TableName() string { return "usuario_token" }
