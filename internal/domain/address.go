package domain

import "time"

// Address belongs to a Person; a Person may hold many. The "primary"
// flag is an application-level convention, not enforced by the store.
type Address struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	PersonID uint    `gorm:"column:pessoa_id;not null;index" json:"pessoa_id"`
	Person   *Person `gorm:"constraint:OnDelete:CASCADE;foreignKey:PersonID;references:ID" json:"-"`

	AddressKind string `gorm:"column:tipo_endereco;type:varchar(50);not null;default:'RESIDENCIAL'" json:"tipo_endereco"`
	Street      string `gorm:"column:logradouro;type:varchar(300)" json:"logradouro"`
	Number      string `gorm:"column:numero;type:varchar(20)" json:"numero"`
	Complement  string `gorm:"column:complemento;type:varchar(100)" json:"complemento"`
	District    string `gorm:"column:bairro;type:varchar(100)" json:"bairro"`
	City        string `gorm:"column:cidade;type:varchar(100)" json:"cidade"`
	State       string `gorm:"column:uf;type:varchar(2)" json:"uf"`
	PostalCode  string `gorm:"column:cep;type:varchar(8);index" json:"cep"`
	Primary     bool   `gorm:"column:principal;not null;default:false" json:"principal"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Address) TableName() string { return "endereco" }

// CompanyContact is an extra reachable point for a legal entity
// (email, landline, mobile, whatsapp).
type CompanyContact struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	PersonID uint    `gorm:"column:empresa_id;not null;index" json:"empresa_id"`
	Person   *Person `gorm:"constraint:OnDelete:CASCADE;foreignKey:PersonID;references:ID" json:"-"`

	Kind    string `gorm:"column:tipo;type:varchar(20);not null" json:"tipo"`
	Value   string `gorm:"column:valor;type:varchar(150);not null" json:"valor"`
	Primary bool   `gorm:"column:principal;not null;default:false" json:"principal"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (CompanyContact) TableName() string { return "contato_empresa" }

// Photo references an externally stored file for a Person.
type Photo struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	PersonID uint    `gorm:"column:pessoa_id;not null;index" json:"pessoa_id"`
	Person   *Person `gorm:"constraint:OnDelete:CASCADE;foreignKey:PersonID;references:ID" json:"-"`

	FileURL     string `gorm:"column:url_arquivo;not null" json:"url_arquivo"`
	FileName    string `gorm:"column:nome_arquivo;type:varchar(255);not null" json:"nome_arquivo"`
	FileType    string `gorm:"column:tipo_arquivo;type:varchar(100)" json:"tipo_arquivo"`
	FileSize    *int64 `gorm:"column:tamanho_arquivo" json:"tamanho_arquivo"`
	Description string `gorm:"column:descricao" json:"descricao"`
	Status      string `gorm:"column:status;type:varchar(20);not null;default:'ativa'" json:"status"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Photo) TableName() string { return "fotos" }
