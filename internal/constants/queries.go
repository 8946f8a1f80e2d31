package constants

const (
	// PropertyAudit uses ? placeholders; callers Rebind for the active driver.
	PropertyAudit = `
	SELECT
		COUNT(*) AS total,
		COUNT(contract_start_date) AS with_start_date,
		COUNT(contract_expiration) AS with_expiration,
		COALESCE(SUM(CASE WHEN end_date IS NOT NULL AND contract_start_date IS NULL THEN 1 ELSE 0 END), 0) AS needing_migration,
		COALESCE(SUM(CASE WHEN end_date IS NOT NULL AND contract_start_date IS NOT NULL THEN 1 ELSE 0 END), 0) AS with_both_dates,
		COALESCE(SUM(CASE WHEN schema_version < ? THEN 1 ELSE 0 END), 0) AS legacy_schema,
		COALESCE(SUM(CASE WHEN commission IS NULL OR commission = '' THEN 1 ELSE 0 END), 0) AS missing_commission
	FROM properties
	`

	PropertyNamesMissingDates = `
	SELECT name FROM properties
	WHERE contract_start_date IS NULL AND contract_expiration IS NULL
	ORDER BY name
	`

	// Postgres and SQLite both accept expression indexes.
	PropertyNameLowerIndex = `CREATE UNIQUE INDEX IF NOT EXISTS idx_properties_name_lower ON properties (LOWER(name))`
)
