package services

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"ise-marketing/propdesk/internal/logging"
	"ise-marketing/propdesk/internal/metrics"
	"ise-marketing/propdesk/internal/models/dtos"
	gormModels "ise-marketing/propdesk/internal/models/gorm"
	"ise-marketing/propdesk/internal/revenue"
)

// ImportReport lists what an import wrote and what it left alone.
type ImportReport struct {
	Imported []string `json:"imported"`
	Skipped  []string `json:"skipped"`
}

// MigrationService rewrites legacy-shaped rows and loads exports of the old
// document store.
type MigrationService struct {
	repo       PropertyStore
	properties *PropertyService
	metrics    *metrics.MetricsRegistry
}

func NewMigrationService(repo PropertyStore, properties *PropertyService, metricsReg *metrics.MetricsRegistry) *MigrationService {
	return &MigrationService{
		repo:       repo,
		properties: properties,
		metrics:    metricsReg,
	}
}

// MigrateLegacy folds legacy contact lists and end dates into the current
// shape for every row still on the legacy schema. Running it again finds
// nothing to do. With dryRun set nothing is written.
func (s *MigrationService) MigrateLegacy(ctx context.Context, dryRun bool) (*dtos.MigrationReport, error) {
	log := logging.WithComponent("migration")

	rows, err := s.repo.List(ctx, "")
	if err != nil {
		return nil, err
	}

	report := &dtos.MigrationReport{
		DryRun:             dryRun,
		TotalProperties:    len(rows),
		MigratedProperties: []dtos.MigratedProperty{},
	}

	for i := range rows {
		prop := &rows[i]
		if !prop.HasLegacyFields() {
			continue
		}

		added, moved := FoldLegacy(prop)
		report.MigratedProperties = append(report.MigratedProperties, dtos.MigratedProperty{
			ID:           prop.ID,
			Name:         prop.Name,
			ContactCount: len(prop.Contacts),
			MovedEndDate: moved,
		})

		if dryRun {
			continue
		}
		if err := s.repo.Update(ctx, prop); err != nil {
			return nil, fmt.Errorf("failed to migrate property %s: %w", prop.Name, err)
		}
		log.Infow("Property migrated",
			"property_id", prop.ID,
			"name", prop.Name,
			"contacts_added", added,
			"moved_end_date", moved,
		)
	}

	report.UpdatedProperties = len(report.MigratedProperties)
	switch {
	case dryRun:
		report.Message = fmt.Sprintf("Dry run: %d of %d properties would be migrated", report.UpdatedProperties, report.TotalProperties)
	default:
		report.Message = fmt.Sprintf("Successfully migrated %d properties", report.UpdatedProperties)
		if report.UpdatedProperties > 0 {
			if s.properties != nil {
				s.properties.Invalidate()
			}
			if s.metrics != nil {
				s.metrics.PropertiesMigratedTotal.Add(float64(report.UpdatedProperties))
			}
		}
	}

	log.Infow("Legacy migration finished",
		"dry_run", dryRun,
		"total", report.TotalProperties,
		"updated", report.UpdatedProperties,
	)
	return report, nil
}

// Import loads an export of the old store: either a bare JSON array of
// properties or a {success, data} list response. Names already present,
// in the store or earlier in the file, are skipped. Rows keep their legacy
// fields until MigrateLegacy runs.
func (s *MigrationService) Import(ctx context.Context, r io.Reader) (*ImportReport, error) {
	docs, err := decodeExport(r)
	if err != nil {
		return nil, err
	}

	report := &ImportReport{Imported: []string{}, Skipped: []string{}}
	seen := make(map[string]bool, len(docs))
	batch := make([]gormModels.Property, 0, len(docs))

	for _, doc := range docs {
		row := FromImportedDTO(doc)
		if row.Name == "" {
			report.Skipped = append(report.Skipped, "(unnamed)")
			continue
		}
		key := strings.ToLower(row.Name)
		if seen[key] {
			report.Skipped = append(report.Skipped, row.Name)
			continue
		}
		seen[key] = true

		existing, err := s.repo.FindByName(ctx, row.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			report.Skipped = append(report.Skipped, row.Name)
			continue
		}
		batch = append(batch, row)
	}

	if len(batch) > 0 {
		if err := s.repo.CreateBatch(ctx, batch); err != nil {
			return nil, fmt.Errorf("failed to import properties: %w", err)
		}
		if s.properties != nil {
			s.properties.Invalidate()
		}
	}
	for _, row := range batch {
		report.Imported = append(report.Imported, row.Name)
	}

	logging.WithComponent("import").Infow("Import finished",
		"imported", len(report.Imported),
		"skipped", len(report.Skipped),
	)
	return report, nil
}

func decodeExport(r io.Reader) ([]dtos.Property, error) {
	br := bufio.NewReader(r)
	for {
		b, err := br.ReadByte()
		if err != nil {
			return nil, fmt.Errorf("%w: empty export", revenue.ErrMalformedPayload)
		}
		if b == ' ' || b == '\n' || b == '\r' || b == '\t' {
			continue
		}
		if err := br.UnreadByte(); err != nil {
			return nil, err
		}
		if b == '{' {
			return revenue.DecodeListResponse(br)
		}
		break
	}

	var docs []dtos.Property
	if err := json.NewDecoder(br).Decode(&docs); err != nil {
		return nil, fmt.Errorf("%w: %v", revenue.ErrMalformedPayload, err)
	}
	return docs, nil
}
