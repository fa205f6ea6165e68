// Package logging はアプリケーション全体の slog ロガーを組み立てる
package logging

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"eduafri/internal/config"

	"github.com/lmittmann/tint"
	"github.com/rollbar/rollbar-go"
)

// ParseLevel は設定値をログレベルに変換する。不明な値は Info として ok=false を返す。
func ParseLevel(level string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}

// NewHandler は dev 環境なら tint、それ以外はソース付きの JSON ハンドラを返す
func NewHandler(w io.Writer, env string, level slog.Leveler) slog.Handler {
	if strings.EqualFold(env, "dev") {
		return tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.RFC3339,
		})
	}
	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: true,
	})
}

// Setup はロガーを作ってデフォルトに設定する。Rollbar のトークンがあれば
// Error 以上のレコードを Rollbar にも送る。返り値の close は終了時に呼ぶこと。
func Setup(cfg *config.Config, w io.Writer) (*slog.Logger, func()) {
	level := new(slog.LevelVar)
	lvl, ok := ParseLevel(cfg.Log.Level)
	level.Set(lvl)

	handler := NewHandler(w, cfg.App.Env, level)
	closeFn := func() {}

	if cfg.Rollbar.Token != "" {
		client := rollbar.NewAsync(cfg.Rollbar.Token, cfg.App.Env, config.AppVersion, "", "")
		handler = NewRollbarHandler(handler, client)
		closeFn = func() {
			client.Wait()
			client.Close()
		}
	}

	logger := slog.New(handler)
	if !ok {
		logger.Warn("Unknown log level specified in config, defaulting to INFO", slog.String("level", cfg.Log.Level))
	}
	slog.SetDefault(logger)
	return logger, closeFn
}
