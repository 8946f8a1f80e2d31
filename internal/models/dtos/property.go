package dtos

import "time"

// Contact is one entry of a property's unified contact list.
type Contact struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	Position string `json:"position,omitempty"`
	Email    string `json:"email,omitempty"`
	Category string `json:"category"`
}

// Property is the wire shape served by /api/properties and consumed by the
// revenue report.
type Property struct {
	ID                     string    `json:"id,omitempty"`
	Name                   string    `json:"name"`
	SunsetName             string    `json:"sunsetName,omitempty"`
	Logo                   string    `json:"logo,omitempty"`
	CoverPhoto             string    `json:"coverPhoto,omitempty"`
	ContractStartDate      *Date     `json:"contractStartDate,omitempty"`
	ContractExpiration     *Date     `json:"contractExpiration,omitempty"`
	Contract               string    `json:"contract,omitempty"`
	Commission             string    `json:"commission,omitempty"`
	ProjectedAnnualDeal    float64   `json:"projectedAnnualDeal"`
	ActualAnnualDeal       float64   `json:"actualAnnualDeal"`
	DealTermLength         int       `json:"dealTermLength"`
	ProhibitedCategories   []string  `json:"prohibitedCategories"`
	CarveOuts              string    `json:"carveOuts,omitempty"`
	FinancialTerms         string    `json:"financialTerms,omitempty"`
	CharitableContribution string    `json:"charitableContribution,omitempty"`
	TEReimbursements       string    `json:"teReimbursements,omitempty"`
	MMRHolder              string    `json:"mmrHolder,omitempty"`
	Contacts               []Contact `json:"contacts"`

	// Legacy fields, present only in exports of the old document store.
	AlumniContacts    []string `json:"alumniContacts,omitempty"`
	CampusContacts    []string `json:"campusContacts,omitempty"`
	MMRContacts       []string `json:"mmrContacts,omitempty"`
	AthleticsContacts []string `json:"athleticsContacts,omitempty"`
	EndDate           *Date    `json:"endDate,omitempty"`

	SchemaVersion int        `json:"schemaVersion,omitempty"`
	CreatedAt     *time.Time `json:"createdAt,omitempty"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty"`
}

// PropertyRequest is the create/update body. Nil fields are left untouched on
// update; contacts are always replaced wholesale. Dates sent as null clear.
type PropertyRequest struct {
	Name                   *string      `json:"name"`
	SunsetName             *string      `json:"sunsetName"`
	Logo                   *string      `json:"logo"`
	CoverPhoto             *string      `json:"coverPhoto"`
	ContractStartDate      OptionalDate `json:"contractStartDate"`
	ContractExpiration     OptionalDate `json:"contractExpiration"`
	Contract               *string      `json:"contract"`
	Commission             *string      `json:"commission"`
	ProjectedAnnualDeal    *float64     `json:"projectedAnnualDeal"`
	ActualAnnualDeal       *float64     `json:"actualAnnualDeal"`
	DealTermLength         *int         `json:"dealTermLength"`
	ProhibitedCategories   []string     `json:"prohibitedCategories"`
	CarveOuts              *string      `json:"carveOuts"`
	FinancialTerms         *string      `json:"financialTerms"`
	CharitableContribution *string      `json:"charitableContribution"`
	TEReimbursements       *string      `json:"teReimbursements"`
	MMRHolder              *string      `json:"mmrHolder"`
	Contacts               []Contact    `json:"contacts"`

	AlumniContacts    []string `json:"alumniContacts"`
	CampusContacts    []string `json:"campusContacts"`
	MMRContacts       []string `json:"mmrContacts"`
	AthleticsContacts []string `json:"athleticsContacts"`
	EndDate           *Date    `json:"endDate"`
}

// PropertyListQuery carries the list endpoint's filters.
type PropertyListQuery struct {
	Search string
	Status string
}

type MigratedProperty struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ContactCount int    `json:"contactCount"`
	MovedEndDate bool   `json:"movedEndDate"`
}

type MigrationReport struct {
	Message            string             `json:"message"`
	DryRun             bool               `json:"dryRun"`
	TotalProperties    int                `json:"totalProperties"`
	UpdatedProperties  int                `json:"updatedProperties"`
	MigratedProperties []MigratedProperty `json:"migratedProperties"`
}

// PropertyAudit mirrors the counts printed by the data-quality check.
type PropertyAudit struct {
	Total             int `json:"total" db:"total"`
	WithStartDate     int `json:"withStartDate" db:"with_start_date"`
	WithExpiration    int `json:"withExpiration" db:"with_expiration"`
	NeedingMigration  int `json:"needingEndDateMigration" db:"needing_migration"`
	WithBothDates     int `json:"withEndDateAndStartDate" db:"with_both_dates"`
	LegacySchema      int `json:"legacySchema" db:"legacy_schema"`
	MissingCommission int `json:"missingCommission" db:"missing_commission"`
}

// AuditReport is the audit endpoint payload: the counts plus the properties
// whose revenue start year has to be assumed.
type AuditReport struct {
	PropertyAudit
	UndatedProperties []string `json:"undatedProperties"`
}
