package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/sync/errgroup"

	"github.com/octobees/commtrack/api/internal/dto"
	"github.com/octobees/commtrack/api/internal/repository"
	"github.com/octobees/commtrack/api/internal/service/analytics"
	"github.com/octobees/commtrack/api/internal/service/report"
)

var reportsGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "commtrack",
	Name:      "reports_generated_total",
	Help:      "Number of communication reports rendered by format",
}, []string{"format"})

// AnalyticsService serves dashboard statistics and report exports.
type AnalyticsService struct {
	stats          repository.AnalyticsRepository
	communications repository.CommunicationsRepository
	now            func() time.Time
}

// NewAnalyticsService builds an AnalyticsService.
func NewAnalyticsService(stats repository.AnalyticsRepository, communications repository.CommunicationsRepository) *AnalyticsService {
	return &AnalyticsService{stats: stats, communications: communications, now: time.Now}
}

// Stats loads the grouped rows concurrently and aggregates them. The first
// failing query cancels the others; no partial result is returned.
func (s *AnalyticsService) Stats(ctx context.Context, q dto.StatsQuery) (analytics.Result, error) {
	now := s.now()
	since := analytics.StartDate(q.Timeframe, now)

	var in analytics.Input
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		in.Methods, err = s.stats.MethodCounts(gctx, since, q.CompanyID)
		return err
	})
	g.Go(func() (err error) {
		in.Daily, err = s.stats.DailyCounts(gctx, since, q.CompanyID)
		return err
	})
	g.Go(func() (err error) {
		in.Usage, err = s.stats.MethodUsage(gctx, since, q.CompanyID)
		return err
	})
	g.Go(func() (err error) {
		in.Companies, err = s.stats.CompanyActivity(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return analytics.Result{}, fmt.Errorf("load communication stats: %w", err)
	}

	return analytics.Aggregate(in, now), nil
}

// Report renders the communications of the requested window to w. The
// format is validated before the store is queried.
func (s *AnalyticsService) Report(ctx context.Context, w io.Writer, q dto.ReportQuery) (report.Format, error) {
	format, err := report.ParseFormat(q.Format)
	if err != nil {
		return "", err
	}

	now := s.now()
	since := analytics.StartDate(q.Timeframe, now)
	entries, err := s.communications.List(ctx, dto.CommunicationFilter{CompanyID: q.CompanyID, Since: &since})
	if err != nil {
		return "", fmt.Errorf("load report communications: %w", err)
	}

	meta := report.Meta{GeneratedAt: now, Period: analytics.Label(q.Timeframe)}
	if err := report.Render(w, format, meta, entries); err != nil {
		return "", err
	}

	reportsGenerated.WithLabelValues(string(format)).Inc()
	return format, nil
}
