package domain

import "slices"

// DateLayout is the calendar-day format used as the progress map key.
const DateLayout = "2006-01-02"

// DailyProgress records which modules were completed on which day. Only the
// LastResetDate day is ever consulted; older entries are kept as history.
type DailyProgress struct {
	LastResetDate   string              `json:"lastResetDate"`
	CompletedByDate map[string][]string `json:"completedByDate"`
	PlanCompleted   []string            `json:"planCompleted,omitempty"`
}

// CompletedOn returns the module ids completed on date, in completion order.
func (p *DailyProgress) CompletedOn(date string) []string {
	return p.CompletedByDate[date]
}

// Add records moduleID for date and reports whether it was newly added.
func (p *DailyProgress) Add(date, moduleID string) bool {
	if p.CompletedByDate == nil {
		p.CompletedByDate = make(map[string][]string)
	}
	ids := p.CompletedByDate[date]
	if slices.Contains(ids, moduleID) {
		return false
	}
	p.CompletedByDate[date] = append(ids, moduleID)
	if !slices.Contains(p.PlanCompleted, moduleID) {
		p.PlanCompleted = append(p.PlanCompleted, moduleID)
	}
	return true
}
