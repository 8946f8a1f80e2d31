package services

import (
	"context"

	"ise-marketing/propdesk/internal/models/dtos"
)

// AuditStore runs the data-quality queries; AuditRepository satisfies it.
type AuditStore interface {
	PropertyAudit(ctx context.Context) (*dtos.PropertyAudit, error)
	UndatedPropertyNames(ctx context.Context) ([]string, error)
}

type AuditService struct {
	repo AuditStore
}

func NewAuditService(repo AuditStore) *AuditService {
	return &AuditService{repo: repo}
}

func (s *AuditService) Audit(ctx context.Context) (*dtos.AuditReport, error) {
	counts, err := s.repo.PropertyAudit(ctx)
	if err != nil {
		return nil, err
	}
	undated, err := s.repo.UndatedPropertyNames(ctx)
	if err != nil {
		return nil, err
	}
	return &dtos.AuditReport{PropertyAudit: *counts, UndatedProperties: undated}, nil
}
