package domain

import "time"

// RelationshipLabelPartner is the fixed label for edges synthesized by
// the membership linker. Edge upserts during import key on
// (origin, target) with this label.
const RelationshipLabelPartner = "Sócio"

// ReliabilityMax is the top tier of the 1..5 confidence scale.
const ReliabilityMax = 5

// Relationship is a directed, typed, weighted edge between two
// Persons. Parallel edges between the same ordered pair are allowed as
// long as their labels differ. Edges are removed when either endpoint
// goes away.
type Relationship struct {
	ID uint `gorm:"primaryKey" json:"id"`

	OriginID   uint       `gorm:"column:pessoa_origem_id;not null;index" json:"pessoa_origem"`
	Origin     *Person    `gorm:"constraint:OnDelete:CASCADE;foreignKey:OriginID;references:ID" json:"-"`
	OriginKind PersonKind `gorm:"column:tipo_origem;type:varchar(1);not null" json:"tipo_origem"`

	TargetID   uint       `gorm:"column:pessoa_destino_id;not null;index" json:"pessoa_destino"`
	Target     *Person    `gorm:"constraint:OnDelete:CASCADE;foreignKey:TargetID;references:ID" json:"-"`
	TargetKind PersonKind `gorm:"column:tipo_destino;type:varchar(1);not null" json:"tipo_destino"`

	Label        string   `gorm:"column:tipo_relacionamento;type:varchar(100);not null;index" json:"tipo_relacionamento"`
	Description  string   `gorm:"column:descricao" json:"descricao"`
	StartedAt    *Date    `gorm:"column:data_inicio" json:"data_inicio"`
	EndedAt      *Date    `gorm:"column:data_fim" json:"data_fim"`
	SharePercent *float64 `gorm:"column:participacao;type:decimal(6,3)" json:"participacao"`
	SelfLink     bool     `gorm:"column:eh_auto;not null;default:false" json:"eh_auto"`
	ImportSource string   `gorm:"column:fonte_importacao;type:varchar(100)" json:"fonte_importacao"`

	// Reliability ranges 1 (weak hint) to 5 (confirmed).
	Reliability int16 `gorm:"column:confiabilidade;not null;default:5" json:"confiabilidade"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Relationship) TableName() string { return "relacionamento" }
