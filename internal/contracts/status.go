package contracts

import (
	"fmt"
	"math"
	"strings"
	"time"

	"ise-marketing/propdesk/internal/models/dtos"
)

type Status string

const (
	StatusActive     Status = "active"
	StatusExpired    Status = "expired"
	StatusNotStarted Status = "not_started"
	StatusUnknown    Status = "unknown"
)

// StatusOf classifies a contract at instant now. Without an expiration the
// status is unknown.
func StatusOf(p dtos.Property, now time.Time) Status {
	if !p.ContractExpiration.Valid() {
		return StatusUnknown
	}
	if now.After(p.ContractExpiration.Time) {
		return StatusExpired
	}
	if p.ContractStartDate.Valid() && now.Before(p.ContractStartDate.Time) {
		return StatusNotStarted
	}
	return StatusActive
}

// Progress describes how far through its term a contract is.
type Progress struct {
	Status          Status `json:"status"`
	Percent         int    `json:"percent"`
	DaysRemaining   int    `json:"daysRemaining"`
	MonthsRemaining int    `json:"monthsRemaining"`
	Remaining       string `json:"remaining"`
}

const day = 24 * time.Hour

// ProgressOf needs both dates; otherwise the status is unknown and the
// remaining term reads "Not specified".
func ProgressOf(p dtos.Property, now time.Time) Progress {
	if !p.ContractStartDate.Valid() || !p.ContractExpiration.Valid() {
		return Progress{Status: StatusUnknown, Remaining: "Not specified"}
	}
	start, end := p.ContractStartDate.Time, p.ContractExpiration.Time

	if now.After(end) {
		return Progress{Status: StatusExpired, Percent: 100, Remaining: "Expired"}
	}

	days := int(math.Ceil(float64(end.Sub(now)) / float64(day)))
	pr := Progress{
		Status:          StatusActive,
		DaysRemaining:   days,
		MonthsRemaining: days / 30,
		Remaining:       formatRemaining(days),
	}

	if now.Before(start) {
		pr.Status = StatusNotStarted
		return pr
	}

	total := end.Sub(start)
	if total > 0 {
		pr.Percent = int(math.Round(float64(now.Sub(start)) / float64(total) * 100))
	}
	return pr
}

func formatRemaining(days int) string {
	months, rest := days/30, days%30
	if months == 0 {
		return plural(days, "day")
	}
	if rest == 0 {
		return plural(months, "month")
	}
	return plural(months, "month") + " " + plural(rest, "day")
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

type Filter string

const (
	FilterAll     Filter = "all"
	FilterActive  Filter = "active"
	FilterExpired Filter = "expired"
)

// ParseFilter accepts all, active or expired; empty means all.
func ParseFilter(s string) (Filter, error) {
	switch f := Filter(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FilterAll:
		return FilterAll, nil
	case FilterActive, FilterExpired:
		return f, nil
	default:
		return "", fmt.Errorf("unknown status filter %q (want all, active or expired)", s)
	}
}

// Matches applies the listing filter. Properties without an expiration only
// appear under "all".
func (f Filter) Matches(p dtos.Property, now time.Time) bool {
	switch f {
	case FilterActive:
		return p.ContractExpiration.Valid() && p.ContractExpiration.After(now)
	case FilterExpired:
		return p.ContractExpiration.Valid() && p.ContractExpiration.Before(now)
	default:
		return true
	}
}

// MatchesSearch is a case-insensitive substring match on the property name.
func MatchesSearch(p dtos.Property, term string) bool {
	term = strings.TrimSpace(term)
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), strings.ToLower(term))
}
