package gorm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	// LegacySchemaVersion marks rows still carrying per-category contact lists or end_date.
	LegacySchemaVersion = 1
	// CurrentSchemaVersion marks rows using the unified contacts table.
	CurrentSchemaVersion = 2

	DefaultPropertyLogo = "/images/default-property.png"
)

type Property struct {
	ID                     string     `gorm:"column:id;primaryKey;size:36"`
	Name                   string     `gorm:"column:name;uniqueIndex;not null"`
	SunsetName             string     `gorm:"column:sunset_name"`
	Logo                   string     `gorm:"column:logo"`
	CoverPhoto             string     `gorm:"column:cover_photo"`
	ContractStartDate      *time.Time `gorm:"column:contract_start_date"`
	ContractExpiration     *time.Time `gorm:"column:contract_expiration"`
	Contract               string     `gorm:"column:contract"`
	Commission             string     `gorm:"column:commission"`
	ProjectedAnnualDeal    float64    `gorm:"column:projected_annual_deal;default:0"`
	ActualAnnualDeal       float64    `gorm:"column:actual_annual_deal;default:0"`
	DealTermLength         int        `gorm:"column:deal_term_length;default:1"`
	ProhibitedCategories   []string   `gorm:"column:prohibited_categories;serializer:json;type:text"`
	CarveOuts              string     `gorm:"column:carve_outs"`
	FinancialTerms         string     `gorm:"column:financial_terms"`
	CharitableContribution string     `gorm:"column:charitable_contribution"`
	TEReimbursements       string     `gorm:"column:te_reimbursements"`
	MMRHolder              string     `gorm:"column:mmr_holder"`

	// Pre-migration shape, read only by the contacts/end-date migration
	LegacyAlumniContacts    []string   `gorm:"column:alumni_contacts;serializer:json;type:text"`
	LegacyCampusContacts    []string   `gorm:"column:campus_contacts;serializer:json;type:text"`
	LegacyMMRContacts       []string   `gorm:"column:mmr_contacts;serializer:json;type:text"`
	LegacyAthleticsContacts []string   `gorm:"column:athletics_contacts;serializer:json;type:text"`
	LegacyEndDate           *time.Time `gorm:"column:end_date"`

	SchemaVersion int       `gorm:"column:schema_version;default:2;index"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`

	// Relationships
	Contacts []PropertyContact `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for GORM
func (Property) TableName() string {
	return "properties"
}

func (p *Property) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// HasLegacyFields reports whether the row still needs the contacts/end-date migration.
func (p *Property) HasLegacyFields() bool {
	return len(p.LegacyAlumniContacts) > 0 ||
		len(p.LegacyCampusContacts) > 0 ||
		len(p.LegacyMMRContacts) > 0 ||
		len(p.LegacyAthleticsContacts) > 0 ||
		p.LegacyEndDate != nil ||
		p.SchemaVersion < CurrentSchemaVersion
}

type ContactCategory string

const (
	ContactCategoryAlumni    ContactCategory = "alumni"
	ContactCategoryCampus    ContactCategory = "campus"
	ContactCategoryMMR       ContactCategory = "mmr"
	ContactCategoryAthletics ContactCategory = "athletics"
)

// ContactCategories lists the categories in the order legacy lists are merged.
var ContactCategories = []ContactCategory{
	ContactCategoryAlumni,
	ContactCategoryCampus,
	ContactCategoryMMR,
	ContactCategoryAthletics,
}

func (c ContactCategory) Valid() bool {
	for _, known := range ContactCategories {
		if c == known {
			return true
		}
	}
	return false
}

type PropertyContact struct {
	ID         string          `gorm:"column:id;primaryKey;size:36"`
	PropertyID string          `gorm:"column:property_id;size:36;index;not null"`
	Name       string          `gorm:"column:name;not null"`
	Position   string          `gorm:"column:position"`
	Email      string          `gorm:"column:email"`
	Category   ContactCategory `gorm:"column:category;not null"`
	SortOrder  int             `gorm:"column:sort_order"`
}

// TableName specifies the table name for GORM
func (PropertyContact) TableName() string {
	return "property_contacts"
}

func (c *PropertyContact) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
