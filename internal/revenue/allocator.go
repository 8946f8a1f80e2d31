package revenue

import (
	"fmt"
	"sort"
	"time"

	"ise-marketing/propdesk/internal/models/dtos"
)

type WarningKind string

const (
	WarningInvalidCommission  WarningKind = "invalid_commission"
	WarningDateTermMismatch   WarningKind = "date_term_mismatch"
	WarningStartYearDefaulted WarningKind = "start_year_defaulted"
	WarningTermOutOfRange     WarningKind = "term_out_of_range"
)

// MaxTermLength is the longest contract term, in years, the allocator spreads.
const MaxTermLength = 100

// WarningKinds lists every kind, for publishing zero counts.
var WarningKinds = []WarningKind{
	WarningInvalidCommission,
	WarningDateTermMismatch,
	WarningStartYearDefaulted,
	WarningTermOutOfRange,
}

// Warning is a data-quality finding. Warnings never change report totals.
type Warning struct {
	Kind     WarningKind `json:"kind"`
	Property string      `json:"property"`
	Value    string      `json:"value,omitempty"`
	Message  string      `json:"message"`
}

// Contribution is one property's share of one calendar year.
type Contribution struct {
	Property     string  `json:"property"`
	Contribution float64 `json:"contribution"`
	ContractYear int     `json:"contractYear"`
	TotalYears   int     `json:"totalYears"`
}

type IncludedProperty struct {
	Name           string  `json:"name"`
	AnnualDeal     float64 `json:"annualDeal"`
	CommissionRate string  `json:"commissionRate"`
	TakeHome       float64 `json:"takeHome"`
	TermLength     int     `json:"termLength"`
	StartYear      int     `json:"startYear"`
	EndYear        int     `json:"endYear"`
}

// Allocation is the raw output of Allocate. Yearly maps are keyed by calendar year.
type Allocation struct {
	YearlyRevenue            map[int]float64        `json:"yearlyRevenue"`
	YearlyBreakdown          map[int][]Contribution `json:"yearlyBreakdown"`
	IncludedProperties       []IncludedProperty     `json:"includedProperties"`
	PropertiesWithCommission int                    `json:"propertiesWithCommission"`
	TotalProperties          int                    `json:"totalProperties"`
	Warnings                 []Warning              `json:"warnings"`
}

// Allocator spreads each property's commission take-home across the calendar
// years of its contract term. It holds no state between calls.
type Allocator struct {
	// Now supplies the fallback start year for properties without dates.
	Now func() time.Time
}

func NewAllocator() *Allocator {
	return &Allocator{Now: time.Now}
}

func (a *Allocator) now() time.Time {
	if a == nil || a.Now == nil {
		return time.Now()
	}
	return a.Now()
}

// Allocate computes the per-year commission revenue for props. The input is
// never modified.
func (a *Allocator) Allocate(props []dtos.Property) *Allocation {
	out := &Allocation{
		YearlyRevenue:      make(map[int]float64),
		YearlyBreakdown:    make(map[int][]Contribution),
		IncludedProperties: []IncludedProperty{},
		TotalProperties:    len(props),
		Warnings:           []Warning{},
	}
	currentYear := a.now().UTC().Year()

	for i := range props {
		p := &props[i]
		if p.ActualAnnualDeal == 0 || p.Commission == "" {
			continue
		}

		rate, ok := ParseCommission(p.Commission)
		if !ok {
			out.Warnings = append(out.Warnings, Warning{
				Kind:     WarningInvalidCommission,
				Property: p.Name,
				Value:    p.Commission,
				Message:  fmt.Sprintf("commission %q is not a percentage; property excluded", p.Commission),
			})
			continue
		}
		out.PropertiesWithCommission++

		takeHome := p.ActualAnnualDeal * rate
		if takeHome <= 0 {
			continue
		}

		term := p.DealTermLength
		if term < 1 {
			term = 1
		}
		if term > MaxTermLength {
			out.Warnings = append(out.Warnings, Warning{
				Kind:     WarningTermOutOfRange,
				Property: p.Name,
				Value:    fmt.Sprintf("%d", p.DealTermLength),
				Message:  fmt.Sprintf("term of %d years exceeds %d; property excluded", p.DealTermLength, MaxTermLength),
			})
			continue
		}

		var startYear int
		switch {
		case p.ContractStartDate.Valid():
			startYear = p.ContractStartDate.UTC().Year()
		case p.ContractExpiration.Valid():
			startYear = p.ContractExpiration.UTC().Year() - term
		default:
			startYear = currentYear
			out.Warnings = append(out.Warnings, Warning{
				Kind:     WarningStartYearDefaulted,
				Property: p.Name,
				Message:  fmt.Sprintf("no contract dates; term assumed to start in %d", currentYear),
			})
		}
		endYear := startYear + term - 1

		if w, bad := checkDateTerm(p, term, endYear); bad {
			out.Warnings = append(out.Warnings, w)
		}

		for year := startYear; year <= endYear; year++ {
			out.YearlyRevenue[year] += takeHome
			out.YearlyBreakdown[year] = append(out.YearlyBreakdown[year], Contribution{
				Property:     p.Name,
				Contribution: takeHome,
				ContractYear: year - startYear + 1,
				TotalYears:   term,
			})
		}

		out.IncludedProperties = append(out.IncludedProperties, IncludedProperty{
			Name:           p.Name,
			AnnualDeal:     p.ActualAnnualDeal,
			CommissionRate: FormatRate(rate),
			TakeHome:       takeHome,
			TermLength:     term,
			StartYear:      startYear,
			EndYear:        endYear,
		})
	}

	return out
}

// checkDateTerm flags contracts whose expiration year disagrees with the
// window derived from the start date and term. An expiration in the final
// term year or early in the following year both count as consistent.
func checkDateTerm(p *dtos.Property, term, endYear int) (Warning, bool) {
	if !p.ContractStartDate.Valid() || !p.ContractExpiration.Valid() {
		return Warning{}, false
	}
	expYear := p.ContractExpiration.UTC().Year()
	if expYear == endYear || expYear == endYear+1 {
		return Warning{}, false
	}
	return Warning{
		Kind:     WarningDateTermMismatch,
		Property: p.Name,
		Value:    fmt.Sprintf("%s..%s/%dy", p.ContractStartDate, p.ContractExpiration, term),
		Message: fmt.Sprintf("start %s with a %d-year term ends in %d but expiration is %s",
			p.ContractStartDate, term, endYear, p.ContractExpiration),
	}, true
}

// Years returns the allocated years in ascending numeric order.
func (a *Allocation) Years() []int {
	years := make([]int, 0, len(a.YearlyRevenue))
	for y := range a.YearlyRevenue {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// Series is the chart input: years ascending with the matching totals.
type Series struct {
	Years    []int     `json:"years"`
	Revenues []float64 `json:"revenues"`
}

func (a *Allocation) Series() Series {
	years := a.Years()
	s := Series{Years: years, Revenues: make([]float64, len(years))}
	for i, y := range years {
		s.Revenues[i] = a.YearlyRevenue[y]
	}
	return s
}

// SortedBreakdown returns year's contributions, largest first. The stored
// breakdown keeps input order.
func (a *Allocation) SortedBreakdown(year int) []Contribution {
	src := a.YearlyBreakdown[year]
	out := make([]Contribution, len(src))
	copy(out, src)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Contribution > out[j].Contribution
	})
	return out
}

// CountByKind tallies warnings per kind.
func (a *Allocation) CountByKind() map[WarningKind]int {
	counts := make(map[WarningKind]int)
	for _, w := range a.Warnings {
		counts[w.Kind]++
	}
	return counts
}
