package services

import (
	"strings"

	"ise-marketing/propdesk/internal/models/dtos"
	gormModels "ise-marketing/propdesk/internal/models/gorm"
	"ise-marketing/propdesk/internal/revenue"
)

// ToPropertyDTO converts a stored property to its wire shape. Legacy columns
// are only exposed while the row has not been migrated.
func ToPropertyDTO(p gormModels.Property) dtos.Property {
	out := dtos.Property{
		ID:                     p.ID,
		Name:                   p.Name,
		SunsetName:             p.SunsetName,
		Logo:                   p.Logo,
		CoverPhoto:             p.CoverPhoto,
		ContractStartDate:      dtos.DateOf(p.ContractStartDate),
		ContractExpiration:     dtos.DateOf(p.ContractExpiration),
		Contract:               p.Contract,
		Commission:             p.Commission,
		ProjectedAnnualDeal:    p.ProjectedAnnualDeal,
		ActualAnnualDeal:       p.ActualAnnualDeal,
		DealTermLength:         p.DealTermLength,
		ProhibitedCategories:   nonNil(p.ProhibitedCategories),
		CarveOuts:              p.CarveOuts,
		FinancialTerms:         p.FinancialTerms,
		CharitableContribution: p.CharitableContribution,
		TEReimbursements:       p.TEReimbursements,
		MMRHolder:              p.MMRHolder,
		Contacts:               make([]dtos.Contact, 0, len(p.Contacts)),
		SchemaVersion:          p.SchemaVersion,
	}
	if !p.CreatedAt.IsZero() {
		created := p.CreatedAt.UTC()
		out.CreatedAt = &created
	}
	if !p.UpdatedAt.IsZero() {
		updated := p.UpdatedAt.UTC()
		out.UpdatedAt = &updated
	}

	for _, c := range p.Contacts {
		out.Contacts = append(out.Contacts, dtos.Contact{
			ID:       c.ID,
			Name:     c.Name,
			Position: c.Position,
			Email:    c.Email,
			Category: string(c.Category),
		})
	}

	if p.SchemaVersion < gormModels.CurrentSchemaVersion {
		out.AlumniContacts = p.LegacyAlumniContacts
		out.CampusContacts = p.LegacyCampusContacts
		out.MMRContacts = p.LegacyMMRContacts
		out.AthleticsContacts = p.LegacyAthleticsContacts
		out.EndDate = dtos.DateOf(p.LegacyEndDate)
	}
	return out
}

func ToPropertyDTOs(props []gormModels.Property) []dtos.Property {
	out := make([]dtos.Property, 0, len(props))
	for _, p := range props {
		out = append(out, ToPropertyDTO(p))
	}
	return out
}

// FromImportedDTO maps an exported document to a row, keeping any legacy
// fields so the migration can process them later.
func FromImportedDTO(in dtos.Property) gormModels.Property {
	p := gormModels.Property{
		Name:                    strings.TrimSpace(in.Name),
		SunsetName:              strings.TrimSpace(in.SunsetName),
		Logo:                    in.Logo,
		CoverPhoto:              in.CoverPhoto,
		ContractStartDate:       in.ContractStartDate.TimePtr(),
		ContractExpiration:      in.ContractExpiration.TimePtr(),
		Contract:                strings.TrimSpace(in.Contract),
		Commission:              in.Commission,
		ProjectedAnnualDeal:     in.ProjectedAnnualDeal,
		ActualAnnualDeal:        in.ActualAnnualDeal,
		DealTermLength:          in.DealTermLength,
		ProhibitedCategories:    nonNil(in.ProhibitedCategories),
		CarveOuts:               in.CarveOuts,
		FinancialTerms:          in.FinancialTerms,
		CharitableContribution:  in.CharitableContribution,
		TEReimbursements:        in.TEReimbursements,
		MMRHolder:               in.MMRHolder,
		LegacyAlumniContacts:    in.AlumniContacts,
		LegacyCampusContacts:    in.CampusContacts,
		LegacyMMRContacts:       in.MMRContacts,
		LegacyAthleticsContacts: in.AthleticsContacts,
		LegacyEndDate:           in.EndDate.TimePtr(),
		SchemaVersion:           gormModels.CurrentSchemaVersion,
	}
	if p.Logo == "" {
		p.Logo = gormModels.DefaultPropertyLogo
	}
	if p.DealTermLength < 1 {
		p.DealTermLength = 1
	}
	if p.DealTermLength > revenue.MaxTermLength {
		p.DealTermLength = revenue.MaxTermLength
	}
	for _, c := range in.Contacts {
		p.Contacts = append(p.Contacts, gormModels.PropertyContact{
			Name:     c.Name,
			Position: c.Position,
			Email:    c.Email,
			Category: gormModels.ContactCategory(c.Category),
		})
	}
	if len(p.LegacyAlumniContacts)+len(p.LegacyCampusContacts)+len(p.LegacyMMRContacts)+len(p.LegacyAthleticsContacts) > 0 || p.LegacyEndDate != nil {
		p.SchemaVersion = gormModels.LegacySchemaVersion
	}
	return p
}

// FoldLegacy moves legacy contact lists into the unified contacts (alumni,
// campus, mmr, athletics order, after existing contacts) and a legacy end
// date into an empty contract start date. Legacy columns are cleared and the
// schema version raised. It reports how many contacts were added and whether
// the end date was used.
func FoldLegacy(p *gormModels.Property) (added int, movedEndDate bool) {
	lists := map[gormModels.ContactCategory][]string{
		gormModels.ContactCategoryAlumni:    p.LegacyAlumniContacts,
		gormModels.ContactCategoryCampus:    p.LegacyCampusContacts,
		gormModels.ContactCategoryMMR:       p.LegacyMMRContacts,
		gormModels.ContactCategoryAthletics: p.LegacyAthleticsContacts,
	}
	for _, category := range gormModels.ContactCategories {
		for _, name := range lists[category] {
			if name = strings.TrimSpace(name); name == "" {
				continue
			}
			p.Contacts = append(p.Contacts, gormModels.PropertyContact{
				PropertyID: p.ID,
				Name:       name,
				Category:   category,
			})
			added++
		}
	}

	if p.LegacyEndDate != nil && p.ContractStartDate == nil {
		start := *p.LegacyEndDate
		p.ContractStartDate = &start
		movedEndDate = true
	}

	p.LegacyAlumniContacts = nil
	p.LegacyCampusContacts = nil
	p.LegacyMMRContacts = nil
	p.LegacyAthleticsContacts = nil
	p.LegacyEndDate = nil
	p.SchemaVersion = gormModels.CurrentSchemaVersion
	return added, movedEndDate
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
