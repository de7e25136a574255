// Package analytics turns grouped communication rows into the dashboard
// statistics: method distribution, daily trend, per-company overdue status,
// method performance and engagement metrics.
package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/octobees/commtrack/api/internal/entity"
)

const (
	millisPerDay           = 1000 * 60 * 60 * 24
	defaultPeriodicityDays = 14
)

var periodicityDays = map[string]int{
	entity.PeriodicityOneWeek:   7,
	entity.PeriodicityTwoWeeks:  14,
	entity.PeriodicityOneMonth:  30,
	entity.PeriodicityTwoMonths: 60,
}

// MethodCount is one slice of the method distribution.
type MethodCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// DailyCount is the number of communications logged on a UTC day.
type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// CompanyActivity is the raw per-company history row.
type CompanyActivity struct {
	ID                  uuid.UUID
	Name                string
	Periodicity         string
	TotalCommunications int
	LastCommunication   *time.Time
}

// CompanySummary is the per-company entry of the stats response.
type CompanySummary struct {
	ID                  uuid.UUID  `json:"id"`
	Name                string     `json:"name"`
	TotalCommunications int        `json:"totalCommunications"`
	LastCommunication   *time.Time `json:"lastCommunication"`
	PeriodicityDays     int        `json:"periodicityDays"`
	DaysOverdue         int        `json:"daysOverdue"`
}

// OverdueCompany lists a company past its periodicity threshold.
type OverdueCompany struct {
	Company      string `json:"company"`
	OverdueCount int    `json:"overdueCount"`
	DaysOverdue  int    `json:"daysOverdue"`
}

// MethodUsage is the raw per-method row for the performance section.
type MethodUsage struct {
	Method           string
	TotalUsed        int
	TotalNotesLength int
	WithNotes        int
}

// MethodPerformance describes how a method is used and documented.
type MethodPerformance struct {
	Method          string  `json:"method"`
	TotalUsed       int     `json:"totalUsed"`
	AvgNotesLength  float64 `json:"avgNotesLength"`
	NotesPercentage float64 `json:"notesPercentage"`
}

// Engagement summarises activity across all companies.
type Engagement struct {
	TotalCompanies                  int `json:"totalCompanies"`
	ActiveCompanies                 int `json:"activeCompanies"`
	OverdueCompanies                int `json:"overdueCompanies"`
	AverageCommunicationsPerCompany int `json:"averageCommunicationsPerCompany"`
}

// Input holds the grouped rows read from the store.
type Input struct {
	Methods   []MethodCount
	Daily     []DailyCount
	Companies []CompanyActivity
	Usage     []MethodUsage
}

// Result is the flat object served by the stats endpoint.
type Result struct {
	MethodStats       []MethodCount       `json:"methodStats"`
	CommunicationData []DailyCount        `json:"communicationData"`
	OverdueData       []OverdueCompany    `json:"overdueData"`
	CompanyStats      []CompanySummary    `json:"companyStats"`
	MethodPerformance []MethodPerformance `json:"methodPerformance"`
	EngagementMetrics Engagement          `json:"engagementMetrics"`
}

// Aggregate computes every section of the stats response relative to now.
func Aggregate(in Input, now time.Time) Result {
	companies := SummarizeCompanies(in.Companies, now)
	overdue := OverdueCompanies(companies)

	return Result{
		MethodStats:       SortMethodCounts(in.Methods),
		CommunicationData: SortDailyCounts(in.Daily),
		OverdueData:       overdue,
		CompanyStats:      companies,
		MethodPerformance: Performance(in.Usage),
		EngagementMetrics: Engage(companies, overdue),
	}
}

// PeriodicityDays converts a periodicity label to days. Unknown labels map to 14.
func PeriodicityDays(periodicity string) int {
	if days, ok := periodicityDays[periodicity]; ok {
		return days
	}
	return defaultPeriodicityDays
}

// DaysOverdue returns the whole days, rounded up, elapsed since last. A company
// that was never contacted is zero days overdue.
func DaysOverdue(last *time.Time, now time.Time) int {
	if last == nil {
		return 0
	}
	elapsed := float64(now.Sub(*last).Milliseconds())
	return int(math.Ceil(elapsed / millisPerDay))
}

// SummarizeCompanies derives periodicity and overdue days for each company.
func SummarizeCompanies(rows []CompanyActivity, now time.Time) []CompanySummary {
	out := make([]CompanySummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, CompanySummary{
			ID:                  row.ID,
			Name:                row.Name,
			TotalCommunications: row.TotalCommunications,
			LastCommunication:   row.LastCommunication,
			PeriodicityDays:     PeriodicityDays(row.Periodicity),
			DaysOverdue:         DaysOverdue(row.LastCommunication, now),
		})
	}
	return out
}

// OverdueCompanies keeps companies whose overdue days exceed their periodicity,
// most overdue first.
func OverdueCompanies(companies []CompanySummary) []OverdueCompany {
	out := make([]OverdueCompany, 0)
	for _, c := range companies {
		if c.DaysOverdue <= c.PeriodicityDays {
			continue
		}
		out = append(out, OverdueCompany{
			Company:      c.Name,
			OverdueCount: 1,
			DaysOverdue:  max(c.DaysOverdue-c.PeriodicityDays, 0),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DaysOverdue > out[j].DaysOverdue
	})
	return out
}

// Performance rounds per-method usage into the performance section, most used first.
func Performance(rows []MethodUsage) []MethodPerformance {
	out := make([]MethodPerformance, 0, len(rows))
	for _, row := range rows {
		if row.TotalUsed <= 0 {
			continue
		}
		used := float64(row.TotalUsed)
		out = append(out, MethodPerformance{
			Method:          row.Method,
			TotalUsed:       row.TotalUsed,
			AvgNotesLength:  roundTenth(float64(row.TotalNotesLength) / used),
			NotesPercentage: roundTenth(float64(row.WithNotes) / used * 100),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalUsed > out[j].TotalUsed
	})
	return out
}

// Engage computes the engagement metrics.
func Engage(companies []CompanySummary, overdue []OverdueCompany) Engagement {
	total := 0
	active := 0
	for _, c := range companies {
		total += c.TotalCommunications
		if c.TotalCommunications > 0 {
			active++
		}
	}

	return Engagement{
		TotalCompanies:                  len(companies),
		ActiveCompanies:                 active,
		OverdueCompanies:                len(overdue),
		AverageCommunicationsPerCompany: roundHalfUp(float64(total) / float64(max(len(companies), 1))),
	}
}

// SortMethodCounts orders the distribution by count descending, then name.
func SortMethodCounts(in []MethodCount) []MethodCount {
	out := append(make([]MethodCount, 0, len(in)), in...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// SortDailyCounts orders the trend chronologically.
func SortDailyCounts(in []DailyCount) []DailyCount {
	out := append(make([]DailyCount, 0, len(in)), in...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date < out[j].Date
	})
	return out
}

func roundTenth(v float64) float64 {
	return math.RoundToEven(v*10) / 10
}

func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
