package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/sync/errgroup"
	"ise-marketing/propdesk/internal/logging"
	"ise-marketing/propdesk/internal/metrics"
	"ise-marketing/propdesk/internal/models/dtos"
	"ise-marketing/propdesk/internal/revenue"
)

// Mock ReportSource
type mockReportSource struct {
	calls      atomic.Int32
	reportFunc func(ctx context.Context) (*revenue.Report, error)
}

func (m *mockReportSource) Report(ctx context.Context) (*revenue.Report, error) {
	m.calls.Add(1)
	return m.reportFunc(ctx)
}

// Mock AuditSource
type mockAuditSource struct {
	auditFunc func(ctx context.Context) (*dtos.AuditReport, error)
}

func (m *mockAuditSource) Audit(ctx context.Context) (*dtos.AuditReport, error) {
	return m.auditFunc(ctx)
}

func sampleReport() *revenue.Report {
	alloc := revenue.NewAllocator().Allocate([]dtos.Property{
		{Name: "A", ActualAnnualDeal: 100000, Commission: "10%", DealTermLength: 1},
		{Name: "B", ActualAnnualDeal: 100000, Commission: "n/a", DealTermLength: 1},
	})
	return revenue.NewReport(alloc)
}

func observeLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	logging.SetLogger(zap.New(core).Sugar())
	t.Cleanup(func() { logging.SetLogger(zap.NewNop().Sugar()) })
	return logs
}

func TestRevenueAuditJob_Run(t *testing.T) {
	logs := observeLogs(t)
	reg := prometheus.NewRegistry()

	job := NewRevenueAuditJob(
		&mockReportSource{reportFunc: func(ctx context.Context) (*revenue.Report, error) { return sampleReport(), nil }},
		&mockAuditSource{auditFunc: func(ctx context.Context) (*dtos.AuditReport, error) {
			return &dtos.AuditReport{
				PropertyAudit:     dtos.PropertyAudit{Total: 2, LegacySchema: 1},
				UndatedProperties: []string{"A", "B"},
			}, nil
		}},
		metrics.NewMetricsRegistry(reg),
	)

	require.NoError(t, job.Run(context.Background()))

	completed := logs.FilterMessage("Revenue audit completed").All()
	require.Len(t, completed, 1)
	fields := completed[0].ContextMap()
	assert.EqualValues(t, 2, fields["properties"])
	assert.EqualValues(t, 1, fields["included"])
	assert.EqualValues(t, 1, fields["warnings_invalid_commission"])
	assert.EqualValues(t, 2, fields["undated"])
	assert.Equal(t, "revenue_audit", fields["component"])

	assert.Equal(t, 1, logs.FilterMessageSnippet("legacy schema").Len())

	families, err := reg.Gather()
	require.NoError(t, err)
	observed := false
	for _, mf := range families {
		if mf.GetName() == "propdesk_job_duration_seconds" {
			observed = mf.GetMetric()[0].GetHistogram().GetSampleCount() == 1
		}
	}
	assert.True(t, observed)
}

func TestRevenueAuditJob_RunErrors(t *testing.T) {
	observeLogs(t)
	boom := errors.New("db down")

	job := NewRevenueAuditJob(
		&mockReportSource{reportFunc: func(ctx context.Context) (*revenue.Report, error) { return nil, boom }},
		nil,
		nil,
	)
	assert.ErrorIs(t, job.Run(context.Background()), boom)

	// a failing audit is logged but does not fail the run
	logs := observeLogs(t)
	job = NewRevenueAuditJob(
		&mockReportSource{reportFunc: func(ctx context.Context) (*revenue.Report, error) { return sampleReport(), nil }},
		&mockAuditSource{auditFunc: func(ctx context.Context) (*dtos.AuditReport, error) { return nil, boom }},
		nil,
	)
	assert.NoError(t, job.Run(context.Background()))
	assert.Equal(t, 1, logs.FilterMessage("Property audit failed").Len())
}

func TestInitializeJobs_RunsUntilCancelled(t *testing.T) {
	observeLogs(t)
	source := &mockReportSource{reportFunc: func(ctx context.Context) (*revenue.Report, error) { return sampleReport(), nil }}

	ctx, cancel := context.WithCancel(context.Background())
	g, gctx := errgroup.WithContext(ctx)
	InitializeJobs(gctx, g, source, nil, nil, 10*time.Millisecond)

	require.Eventually(t, func() bool { return source.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()
	assert.NoError(t, g.Wait())
}
