package services

import (
	"context"
	"fmt"
	"time"

	"ise-marketing/propdesk/internal/logging"
	"ise-marketing/propdesk/internal/metrics"
	"ise-marketing/propdesk/internal/models/dtos"
	"ise-marketing/propdesk/internal/revenue"
)

// PropertySource supplies the property list a revenue report is built from.
// PropertyService reads the local store; PropertyAPIProvider reads a remote server.
type PropertySource interface {
	ListProperties(ctx context.Context) ([]dtos.Property, error)
}

// ListProperties satisfies PropertySource from the cached snapshot.
func (s *PropertyService) ListProperties(ctx context.Context) ([]dtos.Property, error) {
	return s.All(ctx)
}

// RevenueService builds the yearly revenue report and publishes its headline
// figures as gauges.
type RevenueService struct {
	source    PropertySource
	allocator *revenue.Allocator
	metrics   *metrics.MetricsRegistry
}

func NewRevenueService(source PropertySource, metricsReg *metrics.MetricsRegistry) *RevenueService {
	return &RevenueService{
		source:    source,
		allocator: revenue.NewAllocator(),
		metrics:   metricsReg,
	}
}

// WithClock pins the allocator's current year.
func (s *RevenueService) WithClock(now func() time.Time) *RevenueService {
	s.allocator.Now = now
	return s
}

// Report loads every property and allocates its commission across years.
// Reports are computed per call and never cached.
func (s *RevenueService) Report(ctx context.Context) (*revenue.Report, error) {
	props, err := s.source.ListProperties(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load properties: %w", err)
	}
	return s.ReportFor(props), nil
}

// ReportFor allocates an already loaded property list.
func (s *RevenueService) ReportFor(props []dtos.Property) *revenue.Report {
	start := time.Now()
	alloc := s.allocator.Allocate(props)
	elapsed := time.Since(start)

	report := revenue.NewReport(alloc)
	s.publish(alloc, elapsed)

	for _, w := range alloc.Warnings {
		logging.Debug("Revenue data warning",
			"kind", w.Kind,
			"property", w.Property,
			"value", w.Value,
		)
	}
	if len(alloc.Warnings) > 0 {
		logging.Info("Revenue allocation produced warnings",
			"warnings", len(alloc.Warnings),
			"by_kind", alloc.CountByKind(),
		)
	}
	return report
}

func (s *RevenueService) publish(alloc *revenue.Allocation, elapsed time.Duration) {
	if s.metrics == nil {
		return
	}
	s.metrics.AllocationDuration.Observe(elapsed.Seconds())
	s.metrics.PropertiesTotal.Set(float64(alloc.TotalProperties))
	s.metrics.PropertiesIncluded.Set(float64(len(alloc.IncludedProperties)))
	s.metrics.CurrentYearRevenue.Set(alloc.YearlyRevenue[s.currentYear()])

	counts := alloc.CountByKind()
	for _, kind := range revenue.WarningKinds {
		s.metrics.RevenueWarnings.WithLabelValues(string(kind)).Set(float64(counts[kind]))
	}
}

func (s *RevenueService) currentYear() int {
	if s.allocator.Now != nil {
		return s.allocator.Now().UTC().Year()
	}
	return time.Now().UTC().Year()
}
