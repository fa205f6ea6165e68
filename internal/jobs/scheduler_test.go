package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"eduafri/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWarmer struct {
	calls int
	err   error
}

func (f *fakeWarmer) WarmCatalog(ctx context.Context) error {
	f.calls++
	return f.err
}

type fakePruner struct {
	cutoffs []time.Time
}

func (f *fakePruner) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	f.cutoffs = append(f.cutoffs, cutoff)
	return 4, nil
}

var testJobsConfig = config.JobsConfig{
	Enabled:             true,
	CatalogWarmSchedule: config.DefaultCatalogWarmSchedule,
	RetentionSchedule:   config.DefaultRetentionSchedule,
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewScheduler_RegistersJobs(t *testing.T) {
	s, err := NewScheduler(testJobsConfig, 30, &fakeWarmer{}, &fakePruner{}, discardLogger())
	require.NoError(t, err)
	assert.Len(t, s.cron.Entries(), 2)

	s, err = NewScheduler(testJobsConfig, 0, &fakeWarmer{}, &fakePruner{}, discardLogger())
	require.NoError(t, err)
	assert.Len(t, s.cron.Entries(), 1, "retention is disabled when retention days is 0")
}

func TestNewScheduler_InvalidSchedule(t *testing.T) {
	cfg := testJobsConfig
	cfg.CatalogWarmSchedule = "every now and then"
	_, err := NewScheduler(cfg, 0, &fakeWarmer{}, &fakePruner{}, discardLogger())
	assert.Error(t, err)
}

func TestRunRetention_Cutoff(t *testing.T) {
	pruner := &fakePruner{}
	s, err := NewScheduler(testJobsConfig, 30, &fakeWarmer{}, pruner, discardLogger())
	require.NoError(t, err)
	fixed := time.Date(2026, 3, 31, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	s.RunRetention(context.Background())

	require.Len(t, pruner.cutoffs, 1)
	assert.Equal(t, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), pruner.cutoffs[0])
}

func TestRunCatalogWarm(t *testing.T) {
	warmer := &fakeWarmer{err: errors.New("redis down")}
	s, err := NewScheduler(testJobsConfig, 0, warmer, &fakePruner{}, discardLogger())
	require.NoError(t, err)

	s.RunCatalogWarm(context.Background())
	assert.Equal(t, 1, warmer.calls)
}
