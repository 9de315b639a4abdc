package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Partner is an ownership/membership record: someone's stake in a
// legal entity. PersonID is only set once the member has been resolved
// to an Individual; an unresolved membership is a valid state (the
// member may only be known by the raw name on a filing).
//
// The natural key for deduplication is (company_id, tax_id, name).
// TaxID is stored as normalized digits or the empty string, never
// NULL, so the key always compares.
type Partner struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	CompanyID uint    `gorm:"column:empresa_id;not null;index:idx_socio_natural_key,unique;index" json:"empresa_id"`
	Company   *Person `gorm:"constraint:OnDelete:CASCADE;foreignKey:CompanyID;references:ID" json:"-"`

	PersonID *uint   `gorm:"column:pessoa_id;index" json:"pessoa_id"`
	Person   *Person `gorm:"constraint:OnDelete:SET NULL;foreignKey:PersonID;references:ID" json:"-"`

	TaxID string `gorm:"column:cpf_cnpj;type:varchar(14);not null;default:'';index:idx_socio_natural_key,unique;index" json:"cpf_cnpj"`
	Name  string `gorm:"column:nome_socio;type:varchar(300);not null;index:idx_socio_natural_key,unique;index" json:"nome_socio"`

	EnteredAt      *Date          `gorm:"column:data_entrada" json:"data_entrada"`
	SharePercent   *float64       `gorm:"column:participacao_percentual;type:decimal(6,3)" json:"participacao_percentual"`
	Role           string         `gorm:"column:qualificacao;type:varchar(150)" json:"qualificacao"`
	DeathSuspected bool           `gorm:"column:suspeita_obito;not null;default:false" json:"suspeita_obito"`
	MotherName     string         `gorm:"column:nome_mae;type:varchar(300)" json:"nome_mae"`
	BirthDate      *Date          `gorm:"column:data_nascimento" json:"data_nascimento"`
	Age            *int           `gorm:"column:idade" json:"idade"`
	DisplayOrder   int16          `gorm:"column:ordem_exibicao;not null;default:99" json:"ordem_exibicao"`
	ImportSource   string         `gorm:"column:fonte_importacao;type:varchar(100)" json:"fonte_importacao"`
	RawRecord      datatypes.JSON `gorm:"column:registro_original;type:jsonb" json:"registro_original,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Partner) TableName() string { return "socio_empresa" }
