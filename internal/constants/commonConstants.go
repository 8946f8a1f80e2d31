package constants

import "time"

type CachePrefix string

const (
	CacheKeyPropertyList CachePrefix = "PROPERTIES_ALL"

	DefaultCacheTTL = 5 * time.Minute

	RevenueAuditJobName = "revenue_audit"
)
