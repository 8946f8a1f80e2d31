package jobs

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
	"ise-marketing/propdesk/internal/metrics"
)

// InitializeJobs builds the background jobs and starts them on g. They stop
// when ctx is cancelled.
func InitializeJobs(
	ctx context.Context,
	g *errgroup.Group,
	reports ReportSource,
	audits AuditSource,
	metricsReg *metrics.MetricsRegistry,
	auditInterval time.Duration,
) *RevenueAuditJob {
	// Revenue audit keeps the business gauges fresh between dashboard visits
	auditJob := NewRevenueAuditJob(reports, audits, metricsReg)

	if auditInterval > 0 {
		g.Go(func() error {
			auditJob.RunScheduled(ctx, auditInterval)
			return nil
		})
	}

	return auditJob
}
