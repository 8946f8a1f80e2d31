package contracts

import (
	"time"

	"ise-marketing/propdesk/internal/models/dtos"
)

// PortfolioSummary is the dashboard headline: live contract value and value
// already realised on expired contracts.
type PortfolioSummary struct {
	TotalProperties int     `json:"totalProperties"`
	ActiveCount     int     `json:"activeCount"`
	ActiveValue     float64 `json:"activeValue"`
	ExpiredCount    int     `json:"expiredCount"`
	ExpiredValue    float64 `json:"expiredValue"`
}

// Summarize values active contracts at projected deal × term and expired ones
// at actual deal × term.
func Summarize(props []dtos.Property, now time.Time) PortfolioSummary {
	s := PortfolioSummary{TotalProperties: len(props)}
	for _, p := range props {
		term := p.DealTermLength
		if term < 1 {
			term = 1
		}
		switch {
		case FilterActive.Matches(p, now):
			s.ActiveCount++
			s.ActiveValue += p.ProjectedAnnualDeal * float64(term)
		case FilterExpired.Matches(p, now):
			s.ExpiredCount++
			s.ExpiredValue += p.ActualAnnualDeal * float64(term)
		}
	}
	return s
}
