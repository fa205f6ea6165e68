package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/rollbar/rollbar-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type report struct {
	level  string
	msg    string
	err    error
	extras map[string]interface{}
}

type fakeReporter struct {
	reports []report
}

func (f *fakeReporter) MessageWithExtrasAndContext(_ context.Context, level string, msg string, extras map[string]interface{}) {
	f.reports = append(f.reports, report{level: level, msg: msg, extras: extras})
}

func (f *fakeReporter) ErrorWithExtrasAndContext(_ context.Context, level string, err error, extras map[string]interface{}) {
	f.reports = append(f.reports, report{level: level, err: err, extras: extras})
}

func TestRollbarHandler_ForwardsOnlyErrors(t *testing.T) {
	var buf bytes.Buffer
	reporter := &fakeReporter{}
	logger := slog.New(NewRollbarHandler(slog.NewJSONHandler(&buf, nil), reporter))

	logger.Info("content listed")
	logger.Warn("slow query")
	assert.Empty(t, reporter.reports)

	cause := errors.New("connection refused")
	logger.With("handler", "ContentHandler").Error("Error listing content", "error", cause)

	require.Len(t, reporter.reports, 1)
	got := reporter.reports[0]
	assert.Equal(t, rollbar.ERR, got.level)
	assert.ErrorIs(t, got.err, cause)
	assert.Equal(t, "ContentHandler", got.extras["handler"])
	assert.Equal(t, "Error listing content", got.extras["message"])

	assert.Contains(t, buf.String(), "content listed", "records still reach the next handler")
	assert.Contains(t, buf.String(), "Error listing content")
}

func TestRollbarHandler_MessageWithoutError(t *testing.T) {
	reporter := &fakeReporter{}
	logger := slog.New(NewRollbarHandler(slog.NewTextHandler(&bytes.Buffer{}, nil), reporter))

	logger.WithGroup("job").Error("job failed", "name", "catalog-warm")

	require.Len(t, reporter.reports, 1)
	assert.Equal(t, "job failed", reporter.reports[0].msg)
	assert.Equal(t, "catalog-warm", reporter.reports[0].extras["job.name"])
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in     string
		want   slog.Level
		wantOK bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{"warning", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"", slog.LevelInfo, true},
		{"verbose", slog.LevelInfo, false},
	}
	for _, tt := range tests {
		got, ok := ParseLevel(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.wantOK, ok, tt.in)
	}
}
