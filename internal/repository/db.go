package repository

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"eduafri/internal/model"

	"github.com/jackc/pgx/v5/pgconn"
	slogGorm "github.com/orandin/slog-gorm" // slogGormはエイリアス
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewGormLogger は slog を利用する GORM Logger を返す
func NewGormLogger(appLogger *slog.Logger, env string) gormlogger.Interface {
	gormLogLevel := gormlogger.Warn
	if env == "dev" {
		gormLogLevel = gormlogger.Info
	}
	return slogGorm.New(
		slogGorm.WithHandler(appLogger.Handler()),
		slogGorm.WithTraceAll(),
		slogGorm.WithSlowThreshold(500*time.Millisecond),
	).LogMode(gormLogLevel)
}

// NewDB は Postgres に接続し、コネクションプールを設定する
func NewDB(databaseURL string, env string, appLogger *slog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger:         NewGormLogger(appLogger, env),
		TranslateError: true,
	})
	if err != nil {
		appLogger.Error("Failed to connect to database with GORM", slog.Any("error", err))
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		appLogger.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		return nil, err
	}

	if err = sqlDB.Ping(); err != nil {
		appLogger.Error("Error pinging database", slog.Any("error", err))
		sqlDB.Close()
		return nil, err
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	appLogger.Info("Database connection established with GORM")
	return db, nil
}

// CloseDB は基盤の sql.DB を閉じる
func CloseDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// isUniqueViolation は一意制約違反かどうかを判定する (23505)
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// isForeignKeyViolation は外部キー制約違反かどうかを判定する (23503)
func isForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

// translateWriteError は書き込み系のDBエラーをアプリケーションエラーに変換する
func translateWriteError(op string, err error) error {
	switch {
	case isUniqueViolation(err):
		return model.ErrConflict
	case isForeignKeyViolation(err):
		return model.NewAppError("INVALID_REFERENCE", "referenced record does not exist", "", model.ErrInvalidInput)
	}
	return fmt.Errorf("%s: %w", op, err)
}
