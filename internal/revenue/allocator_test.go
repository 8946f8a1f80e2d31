package revenue

import (
	"math"
	"testing"
	"time"

	"ise-marketing/propdesk/internal/models/dtos"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedAllocator(year int) *Allocator {
	return &Allocator{Now: func() time.Time {
		return time.Date(year, time.March, 1, 12, 0, 0, 0, time.UTC)
	}}
}

func date(t *testing.T, s string) *dtos.Date {
	t.Helper()
	d, err := dtos.ParseDate(s)
	require.NoError(t, err)
	return &d
}

func TestAllocate_Idempotent(t *testing.T) {
	props := []dtos.Property{
		{Name: "State U", ActualAnnualDeal: 100000, Commission: "10%", DealTermLength: 2, ContractStartDate: date(t, "2023-07-01")},
		{Name: "Tech", ActualAnnualDeal: 40000, Commission: "abc"},
		{Name: "Coastal", ActualAnnualDeal: 20000, Commission: "15", DealTermLength: 1},
	}
	a := fixedAllocator(2024)

	first := a.Allocate(props)
	second := a.Allocate(props)

	assert.Equal(t, first, second)
	assert.Equal(t, "10%", props[0].Commission)
}

func TestAllocate_ZeroActualDealNeverIncluded(t *testing.T) {
	props := []dtos.Property{
		{Name: "Zero", ActualAnnualDeal: 0, ProjectedAnnualDeal: 500000, Commission: "20%", DealTermLength: 5, ContractStartDate: date(t, "2024-01-01")},
	}

	got := fixedAllocator(2024).Allocate(props)

	assert.Empty(t, got.IncludedProperties)
	assert.Empty(t, got.YearlyRevenue)
	assert.Equal(t, 0, got.PropertiesWithCommission)
	assert.Empty(t, got.Warnings)
}

func TestAllocate_CommissionParsing(t *testing.T) {
	props := []dtos.Property{
		{Name: "Percent", ActualAnnualDeal: 1000, Commission: "15%", ContractStartDate: date(t, "2024-01-01")},
		{Name: "Bare", ActualAnnualDeal: 1000, Commission: "15", ContractStartDate: date(t, "2024-01-01")},
		{Name: "Garbage", ActualAnnualDeal: 1000, Commission: "abc", ContractStartDate: date(t, "2024-01-01")},
	}

	got := fixedAllocator(2024).Allocate(props)

	require.Len(t, got.IncludedProperties, 2)
	for _, ip := range got.IncludedProperties {
		assert.Equal(t, "15.0%", ip.CommissionRate)
		assert.InDelta(t, 150.0, ip.TakeHome, 1e-9)
	}
	assert.Equal(t, 2, got.PropertiesWithCommission)
	require.Len(t, got.Warnings, 1)
	assert.Equal(t, WarningInvalidCommission, got.Warnings[0].Kind)
	assert.Equal(t, "Garbage", got.Warnings[0].Property)
	assert.Equal(t, "abc", got.Warnings[0].Value)
}

func TestAllocate_SingleYearTerm(t *testing.T) {
	props := []dtos.Property{
		{Name: "Single", ActualAnnualDeal: 100000, Commission: "10%", DealTermLength: 1, ContractStartDate: date(t, "2024-01-15")},
	}

	got := fixedAllocator(2030).Allocate(props)

	require.Len(t, got.IncludedProperties, 1)
	assert.InDelta(t, 10000.0, got.IncludedProperties[0].TakeHome, 1e-9)
	assert.Equal(t, map[int]float64{2024: 10000}, got.YearlyRevenue)
	assert.Equal(t, []Contribution{{Property: "Single", Contribution: 10000, ContractYear: 1, TotalYears: 1}}, got.YearlyBreakdown[2024])
}

func TestAllocate_MultiYearFromExpiration(t *testing.T) {
	props := []dtos.Property{
		{Name: "Multi", ActualAnnualDeal: 50000, Commission: "20%", DealTermLength: 3, ContractExpiration: date(t, "2025-06-01")},
	}

	got := fixedAllocator(2030).Allocate(props)

	require.Len(t, got.IncludedProperties, 1)
	ip := got.IncludedProperties[0]
	assert.Equal(t, 2022, ip.StartYear)
	assert.Equal(t, 2024, ip.EndYear)
	assert.Equal(t, map[int]float64{2022: 10000, 2023: 10000, 2024: 10000}, got.YearlyRevenue)
	assert.Equal(t, 3, got.YearlyBreakdown[2024][0].ContractYear)
	assert.Equal(t, 3, got.YearlyBreakdown[2024][0].TotalYears)
	assert.Empty(t, got.Warnings)
}

func TestAllocate_AggregatesAcrossProperties(t *testing.T) {
	props := []dtos.Property{
		{Name: "A", ActualAnnualDeal: 50000, Commission: "10%", ContractStartDate: date(t, "2024-03-01")},
		{Name: "B", ActualAnnualDeal: 70000, Commission: "10%", ContractStartDate: date(t, "2024-09-01")},
	}

	got := fixedAllocator(2024).Allocate(props)

	assert.InDelta(t, 12000.0, got.YearlyRevenue[2024], 1e-9)
	require.Len(t, got.YearlyBreakdown[2024], 2)
	sum := 0.0
	for _, c := range got.YearlyBreakdown[2024] {
		sum += c.Contribution
	}
	assert.InDelta(t, 12000.0, sum, 1e-9)
	assert.Equal(t, "A", got.YearlyBreakdown[2024][0].Property)

	sorted := got.SortedBreakdown(2024)
	assert.Equal(t, "B", sorted[0].Property)
	assert.Equal(t, "A", got.YearlyBreakdown[2024][0].Property, "sorting must not reorder stored breakdown")
}

func TestAllocate_EmptyInput(t *testing.T) {
	got := fixedAllocator(2024).Allocate(nil)

	assert.NotNil(t, got.IncludedProperties)
	assert.Empty(t, got.IncludedProperties)
	assert.Empty(t, got.YearlyRevenue)
	assert.Equal(t, 0, got.TotalProperties)
	assert.Equal(t, Summary{}, got.Summary())
	assert.Empty(t, got.Series().Years)
}

func TestAllocate_TermBelowOneTreatedAsOne(t *testing.T) {
	props := []dtos.Property{
		{Name: "Zero term", ActualAnnualDeal: 1000, Commission: "10%", DealTermLength: 0, ContractStartDate: date(t, "2021-05-05")},
		{Name: "Negative term", ActualAnnualDeal: 1000, Commission: "10%", DealTermLength: -4, ContractStartDate: date(t, "2021-05-05")},
	}

	got := fixedAllocator(2024).Allocate(props)

	require.Len(t, got.IncludedProperties, 2)
	for _, ip := range got.IncludedProperties {
		assert.Equal(t, 1, ip.TermLength)
		assert.Equal(t, 2021, ip.EndYear)
	}
}

func TestAllocate_TermAboveMaxExcluded(t *testing.T) {
	props := []dtos.Property{
		{Name: "Forever", ActualAnnualDeal: 1000, Commission: "10%", DealTermLength: math.MaxInt, ContractStartDate: date(t, "2024-01-01")},
		{Name: "Long", ActualAnnualDeal: 1000, Commission: "10%", DealTermLength: 2000000},
		{Name: "Century", ActualAnnualDeal: 1000, Commission: "10%", DealTermLength: MaxTermLength, ContractStartDate: date(t, "2000-01-01")},
	}

	got := fixedAllocator(2024).Allocate(props)

	require.Len(t, got.IncludedProperties, 1)
	assert.Equal(t, "Century", got.IncludedProperties[0].Name)
	assert.Equal(t, 2099, got.IncludedProperties[0].EndYear)
	assert.Len(t, got.YearlyRevenue, MaxTermLength)
	assert.Equal(t, 3, got.PropertiesWithCommission)

	require.Len(t, got.Warnings, 2)
	for _, w := range got.Warnings {
		assert.Equal(t, WarningTermOutOfRange, w.Kind)
	}
	assert.Equal(t, "Forever", got.Warnings[0].Property)
	assert.Equal(t, "2000000", got.Warnings[1].Value)

	// every included property still reaches the yearly totals
	var spread float64
	for _, v := range got.YearlyRevenue {
		spread += v
	}
	assert.InDelta(t, 100*float64(MaxTermLength), spread, 1e-6)
}

func TestAllocate_NoDatesUsesCurrentYearAndWarns(t *testing.T) {
	props := []dtos.Property{
		{Name: "Undated", ActualAnnualDeal: 1000, Commission: "10%", DealTermLength: 2},
	}

	got := fixedAllocator(2026).Allocate(props)

	assert.Equal(t, map[int]float64{2026: 100, 2027: 100}, got.YearlyRevenue)
	require.Len(t, got.Warnings, 1)
	assert.Equal(t, WarningStartYearDefaulted, got.Warnings[0].Kind)
}

func TestAllocate_NonPositiveTakeHomeCountsCommission(t *testing.T) {
	props := []dtos.Property{
		{Name: "Zero rate", ActualAnnualDeal: 1000, Commission: "0%", ContractStartDate: date(t, "2024-01-01")},
		{Name: "Refund", ActualAnnualDeal: -1000, Commission: "5%", ContractStartDate: date(t, "2024-01-01")},
	}

	got := fixedAllocator(2024).Allocate(props)

	assert.Empty(t, got.IncludedProperties)
	assert.Equal(t, 2, got.PropertiesWithCommission)
	assert.Equal(t, 2, got.TotalProperties)
}

func TestAllocate_MissingCommissionIsSilent(t *testing.T) {
	props := []dtos.Property{{Name: "No commission", ActualAnnualDeal: 1000}}

	got := fixedAllocator(2024).Allocate(props)

	assert.Empty(t, got.IncludedProperties)
	assert.Empty(t, got.Warnings)
}

func TestAllocate_DateTermMismatchSurfacedNotReconciled(t *testing.T) {
	props := []dtos.Property{
		// three-year term but dates only span one year
		{Name: "Mismatch", ActualAnnualDeal: 10000, Commission: "10%", DealTermLength: 3,
			ContractStartDate: date(t, "2022-07-01"), ContractExpiration: date(t, "2023-06-30")},
		// expires the summer after the final term year
		{Name: "Consistent", ActualAnnualDeal: 10000, Commission: "10%", DealTermLength: 2,
			ContractStartDate: date(t, "2022-07-01"), ContractExpiration: date(t, "2024-06-30")},
	}

	got := fixedAllocator(2024).Allocate(props)

	require.Len(t, got.Warnings, 1)
	assert.Equal(t, WarningDateTermMismatch, got.Warnings[0].Kind)
	assert.Equal(t, "Mismatch", got.Warnings[0].Property)
	// start date still wins
	assert.Equal(t, 2022, got.IncludedProperties[0].StartYear)
	assert.Equal(t, 2024, got.IncludedProperties[0].EndYear)
}

func TestSeries_NumericOrder(t *testing.T) {
	a := &Allocation{YearlyRevenue: map[int]float64{10000: 1, 999: 2, 2024: 3}}

	s := a.Series()

	assert.Equal(t, []int{999, 2024, 10000}, s.Years)
	assert.Equal(t, []float64{2, 3, 1}, s.Revenues)
}

func TestSummaryOf(t *testing.T) {
	s := SummaryOf(map[int]float64{2023: 10000, 2024: 30000})

	assert.Equal(t, 40000.0, s.TotalRevenue)
	assert.Equal(t, 30000.0, s.HighestRevenue)
	assert.Equal(t, 20000.0, s.AverageRevenue)
	assert.Equal(t, 2, s.YearCount)
}

func TestNewReport_BreakdownMostRecentFirst(t *testing.T) {
	props := []dtos.Property{
		{Name: "Small", ActualAnnualDeal: 10000, Commission: "10%", DealTermLength: 2, ContractStartDate: date(t, "2023-01-01")},
		{Name: "Big", ActualAnnualDeal: 90000, Commission: "10%", ContractStartDate: date(t, "2024-01-01")},
	}

	r := NewReport(fixedAllocator(2024).Allocate(props))

	require.Len(t, r.Breakdown, 2)
	assert.Equal(t, 2024, r.Breakdown[0].Year)
	assert.Equal(t, "Big", r.Breakdown[0].Contributions[0].Property)
	assert.InDelta(t, 10000.0, r.Breakdown[0].Total, 1e-9)
	assert.Equal(t, []int{2023, 2024}, r.Chart.Years)
	assert.InDelta(t, 11000.0, r.Summary.TotalRevenue, 1e-9)
}
