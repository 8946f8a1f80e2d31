package jobs

import (
	"context"
	"fmt"
	"time"

	"ise-marketing/propdesk/internal/constants"
	"ise-marketing/propdesk/internal/logging"
	"ise-marketing/propdesk/internal/metrics"
	"ise-marketing/propdesk/internal/models/dtos"
	"ise-marketing/propdesk/internal/revenue"
)

// ReportSource builds a revenue report; services.RevenueService satisfies it.
type ReportSource interface {
	Report(ctx context.Context) (*revenue.Report, error)
}

// AuditSource returns data-quality counts; services.AuditService satisfies it.
type AuditSource interface {
	Audit(ctx context.Context) (*dtos.AuditReport, error)
}

// RevenueAuditJob recomputes the revenue report so its gauges stay current
// and logs data-quality findings.
type RevenueAuditJob struct {
	reports ReportSource
	audits  AuditSource
	metrics *metrics.MetricsRegistry
}

func NewRevenueAuditJob(reports ReportSource, audits AuditSource, metricsReg *metrics.MetricsRegistry) *RevenueAuditJob {
	return &RevenueAuditJob{
		reports: reports,
		audits:  audits,
		metrics: metricsReg,
	}
}

// Run executes one audit pass
func (j *RevenueAuditJob) Run(ctx context.Context) error {
	start := time.Now()
	log := logging.WithComponent(constants.RevenueAuditJobName)
	defer func() {
		if j.metrics != nil {
			j.metrics.JobDuration.WithLabelValues(constants.RevenueAuditJobName).Observe(time.Since(start).Seconds())
		}
	}()

	report, err := j.reports.Report(ctx)
	if err != nil {
		return fmt.Errorf("failed to build revenue report: %w", err)
	}

	fields := []interface{}{
		"properties", report.TotalProperties,
		"included", len(report.IncludedProperties),
		"with_commission", report.PropertiesWithCommission,
		"total_revenue", report.Summary.TotalRevenue,
		"years", report.Summary.YearCount,
	}
	for kind, n := range report.CountByKind() {
		fields = append(fields, "warnings_"+string(kind), n)
	}

	if j.audits != nil {
		audit, err := j.audits.Audit(ctx)
		if err != nil {
			log.Warnw("Property audit failed", "error", err)
		} else {
			fields = append(fields,
				"needing_end_date_migration", audit.NeedingMigration,
				"legacy_schema", audit.LegacySchema,
				"missing_commission", audit.MissingCommission,
				"undated", len(audit.UndatedProperties),
			)
			if audit.LegacySchema > 0 {
				log.Warnw("Properties still on the legacy schema; run the contacts migration",
					"count", audit.LegacySchema)
			}
		}
	}

	fields = append(fields, "duration", time.Since(start).Truncate(time.Millisecond).String())
	log.Infow("Revenue audit completed", fields...)
	return nil
}

// RunScheduled runs the job immediately and then every interval until ctx is cancelled
func (j *RevenueAuditJob) RunScheduled(ctx context.Context, interval time.Duration) {
	log := logging.WithComponent(constants.RevenueAuditJobName)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	if err := j.Run(ctx); err != nil {
		log.Errorw("Error in initial run", "error", err)
	}

	for {
		select {
		case <-ticker.C:
			if err := j.Run(ctx); err != nil {
				log.Errorw("Error in scheduled run", "error", err)
			}
		case <-ctx.Done():
			log.Infow("Shutting down scheduled revenue audit")
			return
		}
	}
}
