package domain

import (
	"time"
)

// PersonKind tags a Person as an individual ("F", pessoa física) or a
// legal entity ("J", pessoa jurídica). Exactly one facet record exists
// per Person, matching its kind.
type PersonKind string

const (
	KindIndividual  PersonKind = "F"
	KindLegalEntity PersonKind = "J"
)

func (k PersonKind) Valid() bool {
	return k == KindIndividual || k == KindLegalEntity
}

func (k PersonKind) Label() string {
	switch k {
	case KindIndividual:
		return "Física"
	case KindLegalEntity:
		return "Jurídica"
	default:
		return string(k)
	}
}

// Person is the root identity record. Facets, addresses, memberships
// and relationship edges all hang off it and are removed with it.
type Person struct {
	ID       uint       `gorm:"primaryKey" json:"id"`
	Kind     PersonKind `gorm:"column:tipo;type:varchar(1);not null;index" json:"tipo"`
	CaseCode *string    `gorm:"column:goa;type:varchar(100);uniqueIndex" json:"goa"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Person) TableName() string { return "pessoa" }

// Individual is the pessoa física facet, owned 1:1 by a Person and
// sharing its primary key.
type Individual struct {
	PersonID uint    `gorm:"column:pessoa_id;primaryKey" json:"pessoa_id"`
	Person   *Person `gorm:"constraint:OnDelete:CASCADE;foreignKey:PersonID;references:ID" json:"-"`

	Name          string  `gorm:"column:nome;type:varchar(300);not null;index" json:"nome"`
	CPF           *string `gorm:"column:cpf;type:varchar(11);uniqueIndex" json:"cpf"`
	RG            string  `gorm:"column:rg;type:varchar(20)" json:"rg"`
	BirthDate     *Date   `gorm:"column:nascimento" json:"nascimento"`
	MotherName    string  `gorm:"column:nome_mae;type:varchar(300)" json:"nome_mae"`
	FatherName    string  `gorm:"column:nome_pai;type:varchar(300)" json:"nome_pai"`
	BirthPlace    string  `gorm:"column:naturalidade;type:varchar(200)" json:"naturalidade"`
	Sex           string  `gorm:"column:sexo;type:varchar(1)" json:"sexo"`
	MaritalStatus string  `gorm:"column:estado_civil;type:varchar(50)" json:"estado_civil"`
	Phone1        string  `gorm:"column:telefone1;type:varchar(20)" json:"telefone1"`
	Phone2        string  `gorm:"column:telefone2;type:varchar(20)" json:"telefone2"`
	Occupation    string  `gorm:"column:ocupacao;type:varchar(200)" json:"ocupacao"`
	Affiliation   string  `gorm:"column:vinculo;type:varchar(200)" json:"vinculo"`
	Notes         string  `gorm:"column:observacoes" json:"observacoes"`

	// Vehicle sub-attributes are only meaningful when OwnsVehicles is set.
	OwnsVehicles bool    `gorm:"column:possui_veiculos;not null;default:false" json:"possui_veiculos"`
	Plate        string  `gorm:"column:placa;type:varchar(10)" json:"placa"`
	MakeModel    string  `gorm:"column:marca_modelo;type:varchar(100)" json:"marca_modelo"`
	VehicleYear  *uint16 `gorm:"column:ano_veiculo" json:"ano_veiculo"`
	VehicleColor string  `gorm:"column:cor_veiculo;type:varchar(50)" json:"cor_veiculo"`

	Age            *int16 `gorm:"column:idade" json:"idade"`
	DeathSuspected bool   `gorm:"column:suspeita_obito;not null;default:false" json:"suspeita_obito"`
	PartnerRole    string `gorm:"column:qualificacao_socio;type:varchar(100)" json:"qualificacao_socio"`
}

func (Individual) TableName() string { return "pessoa_fisica" }

// LegalEntity is the pessoa jurídica facet.
type LegalEntity struct {
	PersonID uint    `gorm:"column:pessoa_id;primaryKey" json:"pessoa_id"`
	Person   *Person `gorm:"constraint:OnDelete:CASCADE;foreignKey:PersonID;references:ID" json:"-"`

	LegalName          string `gorm:"column:razao_social;type:varchar(300);not null;index" json:"razao_social"`
	TradeName          string `gorm:"column:nome_fantasia;type:varchar(300)" json:"nome_fantasia"`
	CNPJ               string `gorm:"column:cnpj;type:varchar(14);uniqueIndex;not null" json:"cnpj"`
	RegistrationStatus string `gorm:"column:situacao_cadastral;type:varchar(50);not null;default:'ATIVA'" json:"situacao_cadastral"`

	OpenedAt   *Date `gorm:"column:data_abertura" json:"data_abertura"`
	ClosedAt   *Date `gorm:"column:data_fechamento" json:"data_fechamento"`
	StatusDate *Date `gorm:"column:data_situacao_cadastral" json:"data_situacao_cadastral"`

	CompanySize string `gorm:"column:porte_empresa;type:varchar(50)" json:"porte_empresa"`
	EntityType  string `gorm:"column:tipo;type:varchar(100)" json:"tipo"`
	Situation   string `gorm:"column:situacao;type:varchar(20)" json:"situacao"`

	ShareCapital *float64 `gorm:"column:capital_social;type:decimal(16,2)" json:"capital_social"`

	MainCNAE        string `gorm:"column:cnae_principal;type:varchar(20)" json:"cnae_principal"`
	CNAEDescription string `gorm:"column:cnae_descricao" json:"cnae_descricao"`

	Email      string `gorm:"column:email;type:varchar(254)" json:"email"`
	PostalCode string `gorm:"column:cep;type:varchar(9)" json:"cep"`
	Phone1     string `gorm:"column:telefone1;type:varchar(15)" json:"telefone1"`
	Phone2     string `gorm:"column:telefone2;type:varchar(15)" json:"telefone2"`

	Street       string `gorm:"column:endereco;type:varchar(255)" json:"endereco"`
	City         string `gorm:"column:cidade;type:varchar(100)" json:"cidade"`
	HasBranch    bool   `gorm:"column:possui_filial;not null;default:false" json:"possui_filial"`
	BranchStreet string `gorm:"column:endereco_filial;type:varchar(255)" json:"endereco_filial"`
	BranchCity   string `gorm:"column:cidade_filial;type:varchar(100)" json:"cidade_filial"`

	SimplesStatus     string `gorm:"column:situacao_simples_nacional;type:varchar(20)" json:"situacao_simples_nacional"`
	MEI               bool   `gorm:"column:mei;not null;default:false" json:"mei"`
	SimplesOptant     bool   `gorm:"column:optante_simples;not null;default:false" json:"optante_simples"`
	SimplesOptedAt    *Date  `gorm:"column:data_opcao_simples" json:"data_opcao_simples"`
	SimplesExcludedAt *Date  `gorm:"column:data_exclusao_simples" json:"data_exclusao_simples"`

	Notes string `gorm:"column:observacoes" json:"observacoes"`
}

func (LegalEntity) TableName() string { return "pessoa_juridica" }
