// Package jobs は定期実行ジョブ (カタログキャッシュの温め直し、古いダウンロード記録の削除)
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"eduafri/internal/config"
	"eduafri/internal/middleware"

	"github.com/robfig/cron/v3"
)

// jobTimeout は1回の実行に許す時間
const jobTimeout = 2 * time.Minute

type CatalogWarmer interface {
	WarmCatalog(ctx context.Context) error
}

type DownloadPruner interface {
	PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type Scheduler struct {
	cron          *cron.Cron
	logger        *slog.Logger
	warmer        CatalogWarmer
	pruner        DownloadPruner
	retentionDays int
	now           func() time.Time
}

// slogCronLogger は cron.Logger を slog に流す
type slogCronLogger struct {
	logger *slog.Logger
}

func (l slogCronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l slogCronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, append([]interface{}{"error", err}, keysAndValues...)...)
}

// NewScheduler はジョブを登録したスケジューラを返す。retentionDays が 0 以下なら削除ジョブは登録しない。
func NewScheduler(cfg config.JobsConfig, retentionDays int, warmer CatalogWarmer, pruner DownloadPruner, logger *slog.Logger) (*Scheduler, error) {
	cronLogger := slogCronLogger{logger: logger.With(slog.String("component", "cron"))}
	s := &Scheduler{
		cron: cron.New(
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		logger:        logger,
		warmer:        warmer,
		pruner:        pruner,
		retentionDays: retentionDays,
		now:           time.Now,
	}

	if _, err := s.cron.AddFunc(cfg.CatalogWarmSchedule, func() { s.RunCatalogWarm(context.Background()) }); err != nil {
		return nil, fmt.Errorf("jobs: invalid catalog warm schedule %q: %w", cfg.CatalogWarmSchedule, err)
	}
	if retentionDays > 0 {
		if _, err := s.cron.AddFunc(cfg.RetentionSchedule, func() { s.RunRetention(context.Background()) }); err != nil {
			return nil, fmt.Errorf("jobs: invalid retention schedule %q: %w", cfg.RetentionSchedule, err)
		}
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.logger.Info("Starting job scheduler", slog.Int("jobs", len(s.cron.Entries())))
	s.cron.Start()
}

// Stop は新しい実行を止め、実行中のジョブの終了を ctx の期限まで待つ
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop().Done()
	select {
	case <-done:
		s.logger.Info("Job scheduler stopped")
	case <-ctx.Done():
		s.logger.Warn("Job scheduler stop timed out", slog.Any("error", ctx.Err()))
	}
}

func (s *Scheduler) jobContext(parent context.Context, name string) (context.Context, context.CancelFunc, *slog.Logger) {
	logger := s.logger.With(slog.String("job", name))
	ctx, cancel := context.WithTimeout(parent, jobTimeout)
	return middleware.WithLogger(ctx, logger), cancel, logger
}

func (s *Scheduler) RunCatalogWarm(parent context.Context) {
	ctx, cancel, logger := s.jobContext(parent, "catalog_warm")
	defer cancel()

	start := s.now()
	if err := s.warmer.WarmCatalog(ctx); err != nil {
		logger.Error("Catalog warm failed", slog.Any("error", err))
		return
	}
	logger.Info("Catalog cache warmed", slog.Duration("duration", s.now().Sub(start)))
}

// RunRetention は retentionDays より古い downloaded_content を削除する
func (s *Scheduler) RunRetention(parent context.Context) {
	ctx, cancel, logger := s.jobContext(parent, "download_retention")
	defer cancel()

	cutoff := s.now().UTC().AddDate(0, 0, -s.retentionDays)
	removed, err := s.pruner.PruneOlderThan(ctx, cutoff)
	if err != nil {
		logger.Error("Download retention failed", slog.Any("error", err))
		return
	}
	logger.Info("Old downloads pruned", slog.Int64("removed", removed), slog.Time("cutoff", cutoff))
}
