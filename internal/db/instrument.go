package db

import (
	"time"

	"ise-marketing/propdesk/internal/metrics"

	"gorm.io/gorm"
)

const startKey = "propdesk:query_start"

// Instrument registers gorm callbacks that feed the DB query metrics.
func (s *Store) Instrument(m *metrics.MetricsRegistry) error {
	cb := s.ORM.Callback()

	start := func(tx *gorm.DB) { tx.InstanceSet(startKey, time.Now()) }
	observe := func(queryType string) func(tx *gorm.DB) {
		return func(tx *gorm.DB) {
			m.DBQueriesTotal.WithLabelValues(queryType).Inc()
			if v, ok := tx.InstanceGet(startKey); ok {
				if t, ok := v.(time.Time); ok {
					m.DBQueryDuration.WithLabelValues(queryType).Observe(time.Since(t).Seconds())
				}
			}
		}
	}

	registrations := []error{
		cb.Query().Before("gorm:query").Register("propdesk:before_query", start),
		cb.Query().After("gorm:query").Register("propdesk:after_query", observe("query")),
		cb.Create().Before("gorm:create").Register("propdesk:before_create", start),
		cb.Create().After("gorm:create").Register("propdesk:after_create", observe("create")),
		cb.Update().Before("gorm:update").Register("propdesk:before_update", start),
		cb.Update().After("gorm:update").Register("propdesk:after_update", observe("update")),
		cb.Delete().Before("gorm:delete").Register("propdesk:before_delete", start),
		cb.Delete().After("gorm:delete").Register("propdesk:after_delete", observe("delete")),
	}
	for _, err := range registrations {
		if err != nil {
			return err
		}
	}
	return nil
}
