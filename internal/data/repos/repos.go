package repos

import (
	"gorm.io/gorm"

	"github.com/garelabs/gare-backend/internal/data/repos/auth"
	"github.com/garelabs/gare-backend/internal/data/repos/registry"
	"github.com/garelabs/gare-backend/internal/pkg/logger"
)

type UserRepo = auth.UserRepo
type UserTokenRepo = auth.UserTokenRepo

type PersonRepo = registry.PersonRepo
type AddressRepo = registry.AddressRepo
type ContactRepo = registry.ContactRepo
type PartnerRepo = registry.PartnerRepo
type RelationshipRepo = registry.RelationshipRepo
type PhotoRepo = registry.PhotoRepo

type RelationshipFilter = registry.RelationshipFilter

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo { return auth.NewUserRepo(db, baseLog) }
func NewUserTokenRepo(db *gorm.DB, baseLog *logger.Logger) UserTokenRepo {
	return auth.NewUserTokenRepo(db, baseLog)
}

func NewPersonRepo(db *gorm.DB, baseLog *logger.Logger) PersonRepo {
	return registry.NewPersonRepo(db, baseLog)
}
func NewAddressRepo(db *gorm.DB, baseLog *logger.Logger) AddressRepo {
	return registry.NewAddressRepo(db, baseLog)
}
func NewContactRepo(db *gorm.DB, baseLog *logger.Logger) ContactRepo {
	return registry.NewContactRepo(db, baseLog)
}
func NewPartnerRepo(db *gorm.DB, baseLog *logger.Logger) PartnerRepo {
	return registry.NewPartnerRepo(db, baseLog)
}
func NewRelationshipRepo(db *gorm.DB, baseLog *logger.Logger) RelationshipRepo {
	return registry.NewRelationshipRepo(db, baseLog)
}
func NewPhotoRepo(db *gorm.DB, baseLog *logger.Logger) PhotoRepo {
	return registry.NewPhotoRepo(db, baseLog)
}
