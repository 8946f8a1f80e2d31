package repositories

import (
	"context"
	"fmt"

	"ise-marketing/propdesk/internal/constants"
	"ise-marketing/propdesk/internal/models/dtos"
	gormModels "ise-marketing/propdesk/internal/models/gorm"

	"github.com/jmoiron/sqlx"
)

// AuditRepository runs read-only data-quality queries over the raw pool
type AuditRepository struct {
	db *sqlx.DB
}

func NewAuditRepository(db *sqlx.DB) *AuditRepository {
	return &AuditRepository{db}
}

func (r *AuditRepository) PropertyAudit(ctx context.Context) (*dtos.PropertyAudit, error) {
	var audit dtos.PropertyAudit

	query := r.db.Rebind(constants.PropertyAudit)
	if err := r.db.GetContext(ctx, &audit, query, gormModels.CurrentSchemaVersion); err != nil {
		return nil, fmt.Errorf("failed to run property audit: %w", err)
	}
	return &audit, nil
}

// UndatedPropertyNames lists properties whose revenue start year must be guessed
func (r *AuditRepository) UndatedPropertyNames(ctx context.Context) ([]string, error) {
	names := []string{}
	if err := r.db.SelectContext(ctx, &names, constants.PropertyNamesMissingDates); err != nil {
		return nil, fmt.Errorf("failed to list undated properties: %w", err)
	}
	return names, nil
}
