package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/octobees/commtrack/api/internal/entity"
	"github.com/octobees/commtrack/api/internal/repository"
	"github.com/octobees/commtrack/api/internal/service/analytics"
)

var notificationRefreshes = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "commtrack",
	Name:      "notification_refreshes_total",
	Help:      "Number of notification regenerations by result",
}, []string{"result"})

// ActivitySource yields per-company communication history.
type ActivitySource interface {
	CompanyActivity(ctx context.Context) ([]analytics.CompanyActivity, error)
}

// NotificationsService derives due and overdue reminders from company history.
type NotificationsService struct {
	activity ActivitySource
	repo     repository.NotificationsRepository
	logger   *log.Logger
	now      func() time.Time
}

// NewNotificationsService builds a NotificationsService.
func NewNotificationsService(activity ActivitySource, repo repository.NotificationsRepository, logger *log.Logger) *NotificationsService {
	if logger == nil {
		logger = log.Default()
	}
	return &NotificationsService{
		activity: activity,
		repo:     repo,
		logger:   logger.WithPrefix("notifications"),
		now:      time.Now,
	}
}

// Refresh regenerates the notification set and returns how many were stored.
func (s *NotificationsService) Refresh(ctx context.Context) (int, error) {
	companies, err := s.activity.CompanyActivity(ctx)
	if err != nil {
		notificationRefreshes.WithLabelValues("error").Inc()
		return 0, fmt.Errorf("load company activity: %w", err)
	}

	notifications := BuildNotifications(companies, s.now())
	if _, err := s.repo.Replace(ctx, notifications); err != nil {
		notificationRefreshes.WithLabelValues("error").Inc()
		return 0, err
	}

	notificationRefreshes.WithLabelValues("ok").Inc()
	s.logger.Info("notifications refreshed", "companies", len(companies), "notifications", len(notifications))
	return len(notifications), nil
}

// ListNotifications returns stored notifications, optionally of one type.
func (s *NotificationsService) ListNotifications(ctx context.Context, notificationType string) ([]entity.Notification, error) {
	notificationType = strings.ToLower(strings.TrimSpace(notificationType))
	switch notificationType {
	case "", entity.NotificationOverdue, entity.NotificationDueToday:
	default:
		return nil, validationErrorf("type must be %q or %q", entity.NotificationOverdue, entity.NotificationDueToday)
	}
	return s.repo.List(ctx, notificationType)
}

// BuildNotifications classifies each company by its next due date, computed
// in whole UTC days from the last communication. Companies never contacted
// are due today; companies not yet due produce nothing.
func BuildNotifications(companies []analytics.CompanyActivity, now time.Time) []entity.Notification {
	today := truncateDay(now)
	out := make([]entity.Notification, 0)

	for _, c := range companies {
		n := entity.Notification{CompanyID: c.ID, CompanyName: c.Name}

		if c.LastCommunication == nil {
			n.Type = entity.NotificationDueToday
			n.DueDate = today
			n.Message = fmt.Sprintf("No communication logged with %s yet", c.Name)
			out = append(out, n)
			continue
		}

		due := truncateDay(*c.LastCommunication).AddDate(0, 0, analytics.PeriodicityDays(c.Periodicity))
		n.DueDate = due
		switch {
		case due.Before(today):
			days := int(today.Sub(due).Hours() / 24)
			n.Type = entity.NotificationOverdue
			n.Message = fmt.Sprintf("Communication with %s is overdue by %d %s", c.Name, days, plural(days, "day"))
		case due.Equal(today):
			n.Type = entity.NotificationDueToday
			n.Message = fmt.Sprintf("Communication with %s is due today", c.Name)
		default:
			continue
		}
		out = append(out, n)
	}
	return out
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
