package revenue

// Summary holds the headline figures of a report. It is always derived from
// the yearly totals and never stored.
type Summary struct {
	TotalRevenue   float64 `json:"totalRevenue"`
	HighestRevenue float64 `json:"highestRevenue"`
	AverageRevenue float64 `json:"averageRevenue"`
	YearCount      int     `json:"yearCount"`
}

// SummaryOf computes total, highest and per-year average. With no years all
// figures are zero.
func SummaryOf(yearly map[int]float64) Summary {
	s := Summary{YearCount: len(yearly)}
	first := true
	for _, v := range yearly {
		s.TotalRevenue += v
		if first || v > s.HighestRevenue {
			s.HighestRevenue = v
			first = false
		}
	}
	if s.YearCount > 0 {
		s.AverageRevenue = s.TotalRevenue / float64(s.YearCount)
	}
	return s
}

func (a *Allocation) Summary() Summary {
	return SummaryOf(a.YearlyRevenue)
}

// YearBreakdown is one year of the report with contributions largest first.
type YearBreakdown struct {
	Year          int            `json:"year"`
	Total         float64        `json:"total"`
	Contributions []Contribution `json:"contributions"`
}

// Report is the full revenue projection served to clients.
type Report struct {
	*Allocation
	Chart     Series          `json:"chart"`
	Summary   Summary         `json:"summary"`
	Breakdown []YearBreakdown `json:"breakdown"`
}

// NewReport assembles the chart series, summary and per-year breakdown
// (most recent year first) from an allocation.
func NewReport(a *Allocation) *Report {
	years := a.Years()
	breakdown := make([]YearBreakdown, 0, len(years))
	for i := len(years) - 1; i >= 0; i-- {
		y := years[i]
		breakdown = append(breakdown, YearBreakdown{
			Year:          y,
			Total:         a.YearlyRevenue[y],
			Contributions: a.SortedBreakdown(y),
		})
	}
	return &Report{
		Allocation: a,
		Chart:      a.Series(),
		Summary:    a.Summary(),
		Breakdown:  breakdown,
	}
}
