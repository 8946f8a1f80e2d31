package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"ise-marketing/propdesk/internal/models/dtos"
	"ise-marketing/propdesk/internal/revenue"
)

func TestPrintRevenue(t *testing.T) {
	start, _ := dtos.ParseDate("2023-01-01")
	alloc := (&revenue.Allocator{Now: func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }}).Allocate([]dtos.Property{
		{Name: "A", ActualAnnualDeal: 100000, Commission: "10%", DealTermLength: 2, ContractStartDate: &start},
		{Name: "B", ActualAnnualDeal: 100000, Commission: "??", DealTermLength: 1},
	})

	var buf bytes.Buffer
	printRevenue(&buf, revenue.NewReport(alloc))
	out := buf.String()

	assert.Contains(t, out, "2023")
	assert.Contains(t, out, "10000.00")
	assert.Contains(t, out, "Total 20000.00")
	assert.Contains(t, out, "1 of 2 properties contribute (1 with a commission)")
	assert.Contains(t, out, "warning [invalid_commission] B:")
}

func TestPrintAudit(t *testing.T) {
	var buf bytes.Buffer
	printAudit(&buf, &dtos.AuditReport{
		PropertyAudit:     dtos.PropertyAudit{Total: 4, NeedingMigration: 1},
		UndatedProperties: []string{"Mystery College"},
	})

	out := buf.String()
	assert.Contains(t, out, "Total properties:")
	assert.Contains(t, out, "Needing end date migration:")
	assert.Contains(t, out, "  - Mystery College")
}

func TestPrintMigrationReport(t *testing.T) {
	var buf bytes.Buffer
	printMigrationReport(&buf, &dtos.MigrationReport{
		Message:            "Successfully migrated 1 properties",
		MigratedProperties: []dtos.MigratedProperty{{Name: "Legacy U", ContactCount: 3, MovedEndDate: true}},
	})

	out := buf.String()
	assert.Contains(t, out, "Successfully migrated 1 properties")
	assert.Contains(t, out, "Legacy U")
	assert.Contains(t, out, "true")
}
