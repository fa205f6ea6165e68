// internal/config/constants.go
package config

import "time"

// アプリケーション情報
const (
	AppName    = "EduAfri"
	AppVersion = "1.0.0"
)

// デフォルト設定値
const (
	DefaultServerPort      = ":8080"
	DefaultLogLevel        = "info"
	DefaultJWTTTLMinutes   = 60
	DefaultRefreshMinutes  = 10
	DefaultCacheTTLSeconds = 300
	DefaultRequestTimeout  = 60 * time.Second
	DefaultSiteURL         = "http://localhost:3000"

	MiB                    = 1 << 20
	DefaultCourseSizeBytes = 5 * MiB
	DefaultLessonSizeBytes = 2 * MiB
	DefaultQuizSizeBytes   = 1 * MiB

	DefaultCatalogWarmSchedule = "@every 15m"
	DefaultRetentionSchedule   = "@daily"
)
