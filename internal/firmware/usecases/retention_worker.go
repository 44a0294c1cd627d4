package usecases

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"firmgen-server/internal/infra/async"

	"github.com/robfig/cron/v3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

type RetentionPolicy struct {
	// Schedule is a five field cron expression.
	Schedule string
	MaxAge   time.Duration
}

func NewRetentionWorker(
	ticker *time.Ticker,
	repository BuildRecordRepository,
	policy RetentionPolicy,
) (*RetentionWorker, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	schedule, err := parser.Parse(policy.Schedule)
	if err != nil {
		return nil, fmt.Errorf("parsing retention schedule: %w", err)
	}

	return &RetentionWorker{
		ticker:     ticker,
		repository: repository,
		schedule:   schedule,
		maxAge:     policy.MaxAge,
		now:        time.Now,
	}, nil
}

var _ async.Worker = &RetentionWorker{}

// RetentionWorker purges build records older than the policy's max age each
// time the cron schedule comes due.
type RetentionWorker struct {
	ticker       *time.Ticker
	repository   BuildRecordRepository
	schedule     cron.Schedule
	maxAge       time.Duration
	now          func() time.Time
	next         time.Time
	purgeCounter metric.Int64Counter
}

func (w *RetentionWorker) Run(ctx context.Context, done func()) {
	slog.Debug("retention worker started")
	defer done()
	w.setupOtelCounters()
	w.next = w.schedule.Next(w.now())

	for {
		select {
		case <-ctx.Done():
			slog.Info("retention worker cancelled")
			return
		case <-w.ticker.C:
			w.Tick(ctx)
		}
	}
}

// Tick purges when the schedule is due and returns the number of removed
// records.
func (w *RetentionWorker) Tick(ctx context.Context) int64 {
	now := w.now()
	if w.next.IsZero() {
		w.next = w.schedule.Next(now)
	}
	if now.Before(w.next) {
		return 0
	}
	w.next = w.schedule.Next(now)

	cutoff := now.Add(-w.maxAge)
	deleted, err := w.repository.DeleteCreatedBefore(ctx, cutoff)
	if err != nil {
		slog.Error("purging build records", slog.Time("cutoff", cutoff), slog.String("error", err.Error()))
		return 0
	}

	if w.purgeCounter != nil {
		w.purgeCounter.Add(ctx, deleted)
	}
	slog.Info("build records purged", slog.Int64("deleted", deleted), slog.Time("next", w.next))
	return deleted
}

func (w *RetentionWorker) Shutdown() {
	w.ticker.Stop()
}

func (w *RetentionWorker) setupOtelCounters() {
	meter := otel.Meter("firmgen_server")
	w.purgeCounter, _ = meter.Int64Counter(
		fmt.Sprintf("%s.%s", "firmgen_server", "build_records.purged"),
		metric.WithDescription("firmgen_server purged build records"),
	)
}

// WithClock replaces the worker's time source.
func (w *RetentionWorker) WithClock(now func() time.Time) *RetentionWorker {
	w.now = now
	return w
}
