// cmd/setup/main.go はスキーマのマイグレーションを適用する
//
//	go run ./cmd/setup            # up
//	go run ./cmd/setup -cmd status
//	go run ./cmd/setup -cmd down
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"eduafri/internal/config"
	"eduafri/internal/logging"
	"eduafri/internal/repository"
	"eduafri/migrations"

	_ "github.com/lib/pq"
)

func main() {
	command := flag.String("cmd", "up", "goose command (up, down, status, redo, version, reset)")
	configDir := flag.String("config", "configs", "directory containing config.yaml")
	flag.Parse()

	if err := config.LoadConfig(*configDir); err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	cfg := &config.Cfg
	logger, closeLogger := logging.Setup(cfg, os.Stderr)
	defer closeLogger()

	if err := run(context.Background(), cfg, logger, *command, flag.Args()); err != nil {
		logger.Error("Migration failed", slog.String("command", *command), slog.Any("error", err))
		closeLogger()
		os.Exit(1)
	}
	logger.Info("Migration finished", slog.String("command", *command))
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, command string, args []string) error {
	if cfg.Database.URL == "" {
		return fmt.Errorf("database.url (DATABASE_URL) is not set")
	}
	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := ping(ctx, db); err != nil {
		return err
	}
	logger.Info("Database reachable, running migrations", slog.String("command", command))
	return repository.Migrate(ctx, db, migrations.FS, command, args...)
}

// ping はDBの起動を待つ。試行ごとに待ち時間を 100ms ずつ延ばす。
func ping(ctx context.Context, db *sql.DB) error {
	var err error
	for attempt := 1; attempt <= 30; attempt++ {
		if err = db.PingContext(ctx); err == nil {
			return nil
		}
		time.Sleep(time.Duration(attempt) * 100 * time.Millisecond)
	}
	return fmt.Errorf("database ping timeout: %w", err)
}
