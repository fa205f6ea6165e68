package logging

import (
	"context"
	"errors"
	"log/slog"

	"github.com/rollbar/rollbar-go"
)

// Reporter は *rollbar.Client のうち使う部分
type Reporter interface {
	MessageWithExtrasAndContext(ctx context.Context, level string, msg string, extras map[string]interface{})
	ErrorWithExtrasAndContext(ctx context.Context, level string, err error, extras map[string]interface{})
}

// RollbarHandler は next にそのまま流しつつ、Error 以上のレコードを Rollbar に送る
type RollbarHandler struct {
	next     slog.Handler
	reporter Reporter
	attrs    []slog.Attr
	group    string
}

var _ slog.Handler = (*RollbarHandler)(nil)

func NewRollbarHandler(next slog.Handler, reporter Reporter) *RollbarHandler {
	return &RollbarHandler{next: next, reporter: reporter}
}

func (h *RollbarHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *RollbarHandler) Handle(ctx context.Context, record slog.Record) error {
	if record.Level >= slog.LevelError {
		h.report(ctx, record)
	}
	return h.next.Handle(ctx, record)
}

func (h *RollbarHandler) report(ctx context.Context, record slog.Record) {
	extras := make(map[string]interface{}, len(h.attrs)+record.NumAttrs())
	var cause error
	add := func(a slog.Attr) {
		key := a.Key
		if h.group != "" {
			key = h.group + "." + key
		}
		if err, ok := a.Value.Any().(error); ok && cause == nil {
			cause = err
		}
		extras[key] = a.Value.Resolve().String()
	}
	for _, a := range h.attrs {
		add(a)
	}
	record.Attrs(func(a slog.Attr) bool {
		add(a)
		return true
	})
	extras["message"] = record.Message

	level := rollbar.ERR
	if record.Level > slog.LevelError {
		level = rollbar.CRIT
	}
	if cause != nil {
		h.reporter.ErrorWithExtrasAndContext(ctx, level, errors.Join(errors.New(record.Message), cause), extras)
		return
	}
	h.reporter.MessageWithExtrasAndContext(ctx, level, record.Message, extras)
}

func (h *RollbarHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &RollbarHandler{next: h.next.WithAttrs(attrs), reporter: h.reporter, attrs: merged, group: h.group}
}

func (h *RollbarHandler) WithGroup(name string) slog.Handler {
	group := name
	if h.group != "" {
		group = h.group + "." + name
	}
	return &RollbarHandler{next: h.next.WithGroup(name), reporter: h.reporter, attrs: h.attrs, group: group}
}
