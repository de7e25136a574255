package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/octobees/commtrack/api/internal/dto"
	"github.com/octobees/commtrack/api/internal/entity"
	"github.com/octobees/commtrack/api/internal/service/analytics"
	"github.com/octobees/commtrack/api/internal/service/report"
)

type mockAnalyticsRepository struct {
	since       atomic.Value
	companyID   atomic.Value
	failMethods error
	companies   []analytics.CompanyActivity
}

func (m *mockAnalyticsRepository) record(since time.Time, companyID *uuid.UUID) {
	m.since.Store(since)
	m.companyID.Store(companyID)
}

func (m *mockAnalyticsRepository) MethodCounts(ctx context.Context, since time.Time, companyID *uuid.UUID) ([]analytics.MethodCount, error) {
	m.record(since, companyID)
	if m.failMethods != nil {
		return nil, m.failMethods
	}
	return []analytics.MethodCount{{Name: "Email", Value: 1}, {Name: "Phone Call", Value: 3}}, nil
}

func (m *mockAnalyticsRepository) DailyCounts(ctx context.Context, since time.Time, companyID *uuid.UUID) ([]analytics.DailyCount, error) {
	m.record(since, companyID)
	return []analytics.DailyCount{{Date: "2024-05-14", Count: 3}, {Date: "2024-05-02", Count: 1}}, nil
}

func (m *mockAnalyticsRepository) MethodUsage(ctx context.Context, since time.Time, companyID *uuid.UUID) ([]analytics.MethodUsage, error) {
	m.record(since, companyID)
	return []analytics.MethodUsage{{Method: "Phone Call", TotalUsed: 3, TotalNotesLength: 10, WithNotes: 1}}, nil
}

func (m *mockAnalyticsRepository) CompanyActivity(ctx context.Context) ([]analytics.CompanyActivity, error) {
	return m.companies, nil
}

func TestAnalyticsService_Stats(t *testing.T) {
	now := time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)
	companyID := uuid.New()
	repo := &mockAnalyticsRepository{companies: []analytics.CompanyActivity{
		{ID: companyID, Name: "Acme", Periodicity: "1 week", TotalCommunications: 4, LastCommunication: timePtr(now.AddDate(0, 0, -10))},
		{ID: uuid.New(), Name: "Dormant", Periodicity: "2 weeks"},
	}}
	service := NewAnalyticsService(repo, &mockCommunicationsRepository{})
	service.now = func() time.Time { return now }

	result, err := service.Stats(context.Background(), dto.StatsQuery{Timeframe: "week", CompanyID: &companyID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if since := repo.since.Load().(time.Time); !since.Equal(now.AddDate(0, 0, -7)) {
		t.Fatalf("expected week window, got %s", since)
	}
	if got := repo.companyID.Load().(*uuid.UUID); got == nil || *got != companyID {
		t.Fatalf("expected company filter to be forwarded")
	}
	if result.MethodStats[0].Name != "Phone Call" {
		t.Fatalf("expected method stats sorted by value, got %+v", result.MethodStats)
	}
	if result.CommunicationData[0].Date != "2024-05-02" {
		t.Fatalf("expected daily data sorted ascending, got %+v", result.CommunicationData)
	}
	if len(result.CompanyStats) != 2 || len(result.OverdueData) != 1 || result.OverdueData[0].DaysOverdue != 3 {
		t.Fatalf("unexpected company sections: %+v %+v", result.CompanyStats, result.OverdueData)
	}
	if result.EngagementMetrics.TotalCompanies != 2 || result.EngagementMetrics.AverageCommunicationsPerCompany != 2 {
		t.Fatalf("unexpected engagement: %+v", result.EngagementMetrics)
	}
}

func TestAnalyticsService_StatsFailsWhole(t *testing.T) {
	repo := &mockAnalyticsRepository{failMethods: errors.New("relation does not exist")}
	service := NewAnalyticsService(repo, &mockCommunicationsRepository{})

	_, err := service.Stats(context.Background(), dto.StatsQuery{})
	if err == nil || !strings.Contains(err.Error(), "relation does not exist") {
		t.Fatalf("expected underlying error, got %v", err)
	}
}

func TestAnalyticsService_Report(t *testing.T) {
	now := time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)
	var filter dto.CommunicationFilter
	comms := &mockCommunicationsRepository{
		list: func(ctx context.Context, f dto.CommunicationFilter) ([]entity.Communication, error) {
			filter = f
			return []entity.Communication{
				{CompanyName: "Acme", MethodName: "Email", Date: now.AddDate(0, 0, -1), Notes: "hello"},
			}, nil
		},
	}
	service := NewAnalyticsService(&mockAnalyticsRepository{}, comms)
	service.now = func() time.Time { return now }

	buf := &bytes.Buffer{}
	format, err := service.Report(context.Background(), buf, dto.ReportQuery{Format: "csv", Timeframe: "quarter"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if format != report.FormatCSV {
		t.Fatalf("expected csv format, got %s", format)
	}
	if filter.Since == nil || !filter.Since.Equal(now.AddDate(0, -3, 0)) {
		t.Fatalf("expected quarter window, got %v", filter.Since)
	}
	if !strings.Contains(buf.String(), "Acme,Email,5/14/2024,hello") {
		t.Fatalf("unexpected csv output: %q", buf.String())
	}
}

func TestAnalyticsService_ReportValidatesFormatFirst(t *testing.T) {
	comms := &mockCommunicationsRepository{
		list: func(ctx context.Context, f dto.CommunicationFilter) ([]entity.Communication, error) {
			t.Fatalf("store must not be queried for an invalid format")
			return nil, nil
		},
	}
	service := NewAnalyticsService(&mockAnalyticsRepository{}, comms)

	if _, err := service.Report(context.Background(), &bytes.Buffer{}, dto.ReportQuery{Format: "xlsx"}); !errors.Is(err, report.ErrInvalidFormat) {
		t.Fatalf("expected ErrInvalidFormat, got %v", err)
	}
}
