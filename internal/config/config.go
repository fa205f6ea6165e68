// internal/config/config.go
package config

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	CORS     CORSConfig     `mapstructure:"cors"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Mailer   MailerConfig   `mapstructure:"mailer"`
	SMTP     SMTPConfig     `mapstructure:"smtp"`
	SES      SESConfig      `mapstructure:"ses"`
	SendGrid SendGridConfig `mapstructure:"sendgrid"`
	Download DownloadConfig `mapstructure:"downloads"`
	Jobs     JobsConfig     `mapstructure:"jobs"`
	Otel     OtelConfig     `mapstructure:"otel"`
	Rollbar  RollbarConfig  `mapstructure:"rollbar"`
}

type AppConfig struct {
	Name    string `mapstructure:"name"`
	Env     string `mapstructure:"env"`
	SiteURL string `mapstructure:"site_url"`
}

type ServerConfig struct {
	Port           string        `mapstructure:"port"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// HandlerTimeout は chi の Timeout に渡すハンドラの処理時間上限
func (s ServerConfig) HandlerTimeout() time.Duration {
	if s.RequestTimeout <= 0 {
		return DefaultRequestTimeout
	}
	return s.RequestTimeout
}

// WriteTimeout は http.Server 用。ハンドラのタイムアウト応答 (503) を書き切れるよう少し長くする。
func (s ServerConfig) WriteTimeout() time.Duration {
	return s.HandlerTimeout() + 5*time.Second
}

type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type JWTConfig struct {
	SecretKey      string        `mapstructure:"secret_key"`
	AccessTokenTTL time.Duration `mapstructure:"access_token_ttl"`
	RefreshWindow  time.Duration `mapstructure:"refresh_window"`
}

type AuthConfig struct {
	// DevHeader enables the X-User-ID header instead of bearer tokens.
	DevHeader      bool   `mapstructure:"dev_header"`
	ServiceRoleKey string `mapstructure:"service_role_key"`
	AnonKey        string `mapstructure:"anon_key"`
	CookieName     string `mapstructure:"cookie_name"`
	CookieSecure   bool   `mapstructure:"cookie_secure"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type CacheConfig struct {
	ContentTTL time.Duration `mapstructure:"content_ttl"`
}

type MailerConfig struct {
	Type string `mapstructure:"type"` // log, smtp, ses, sendgrid
	From string `mapstructure:"from"`
}

type SMTPConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	From string `mapstructure:"from"`
}

type SESConfig struct {
	Region          string `mapstructure:"region"`
	AuthType        string `mapstructure:"auth_type"` // static_credentials, iam_role
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	From            string `mapstructure:"from"`
}

type SendGridConfig struct {
	APIKey string `mapstructure:"api_key"`
	From   string `mapstructure:"from"`
}

// DownloadConfig holds the simulated package size per content type.
type DownloadConfig struct {
	CourseSizeBytes int64 `mapstructure:"course_size_bytes"`
	LessonSizeBytes int64 `mapstructure:"lesson_size_bytes"`
	QuizSizeBytes   int64 `mapstructure:"quiz_size_bytes"`
	RetentionDays   int   `mapstructure:"retention_days"`
}

type JobsConfig struct {
	Enabled             bool   `mapstructure:"enabled"`
	CatalogWarmSchedule string `mapstructure:"catalog_warm_schedule"`
	RetentionSchedule   string `mapstructure:"retention_schedule"`
}

type OtelConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	Exporter    string  `mapstructure:"exporter"` // stdout, otlp
	Endpoint    string  `mapstructure:"endpoint"`
	Insecure    bool    `mapstructure:"insecure"`
	SampleRatio float64 `mapstructure:"sample_ratio"`
}

type RollbarConfig struct {
	Token string `mapstructure:"token"`
}

var Cfg Config

// envBindings maps config keys to the environment names deployments already use.
var envBindings = map[string][]string{
	"database.url":          {"DATABASE_URL"},
	"jwt.secret_key":        {"JWT_SECRET", "SUPABASE_JWT_SECRET"},
	"auth.service_role_key": {"SERVICE_ROLE_KEY", "SUPABASE_SERVICE_ROLE_KEY"},
	"auth.anon_key":         {"NEXT_PUBLIC_SUPABASE_ANON_KEY"},
	"app.site_url":          {"SITE_URL", "NEXT_PUBLIC_SUPABASE_URL"},
	"app.env":               {"APP_ENV"},
	"redis.addr":            {"REDIS_ADDR"},
	"rollbar.token":         {"ROLLBAR_TOKEN"},
	"sendgrid.api_key":      {"SENDGRID_API_KEY"},
}

func LoadConfig(path string) error {
	// .env is optional; real environment variables win over it.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file loaded")
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)
	v.AddConfigPath(".")

	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, names := range envBindings {
		args := append([]string{key}, names...)
		if err := v.BindEnv(args...); err != nil {
			return err
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			log.Println("Warning: Config file not found. Using default settings or environment variables if available.")
		} else {
			log.Printf("Error reading config file: %s\n", err)
			return err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Printf("Error unmarshalling config: %s\n", err)
		return err
	}
	applyDefaults(&cfg)
	Cfg = cfg

	log.Println("Config loaded successfully")
	log.Printf("Server Port: %s", Cfg.Server.Port)
	log.Printf("Redis Enabled: %t", Cfg.Redis.Enabled)
	log.Printf("Mailer: %s", Cfg.Mailer.Type)
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = AppName
	}
	if cfg.App.SiteURL == "" {
		cfg.App.SiteURL = DefaultSiteURL
	}
	if cfg.Server.Port == "" {
		log.Println("Server port not set, using default ':8080'")
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Server.RequestTimeout <= 0 {
		cfg.Server.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Database.URL == "" {
		log.Println("Warning: Database URL is not set in config.")
	}
	if cfg.JWT.SecretKey == "" {
		log.Println("Warning: JWT secret is not set; tokens cannot be issued or verified.")
	}
	if cfg.JWT.AccessTokenTTL <= 0 {
		cfg.JWT.AccessTokenTTL = DefaultJWTTTLMinutes * time.Minute
	}
	if cfg.JWT.RefreshWindow <= 0 {
		cfg.JWT.RefreshWindow = DefaultRefreshMinutes * time.Minute
	}
	if cfg.Auth.CookieName == "" {
		cfg.Auth.CookieName = "access_token"
	}
	if cfg.Cache.ContentTTL <= 0 {
		cfg.Cache.ContentTTL = DefaultCacheTTLSeconds * time.Second
	}
	if cfg.Mailer.Type == "" {
		cfg.Mailer.Type = "log"
	}
	if cfg.Download.CourseSizeBytes <= 0 {
		cfg.Download.CourseSizeBytes = DefaultCourseSizeBytes
	}
	if cfg.Download.LessonSizeBytes <= 0 {
		cfg.Download.LessonSizeBytes = DefaultLessonSizeBytes
	}
	if cfg.Download.QuizSizeBytes <= 0 {
		cfg.Download.QuizSizeBytes = DefaultQuizSizeBytes
	}
	if cfg.Jobs.CatalogWarmSchedule == "" {
		cfg.Jobs.CatalogWarmSchedule = DefaultCatalogWarmSchedule
	}
	if cfg.Jobs.RetentionSchedule == "" {
		cfg.Jobs.RetentionSchedule = DefaultRetentionSchedule
	}
	if cfg.Otel.Exporter == "" {
		cfg.Otel.Exporter = "stdout"
	}
	if cfg.Otel.SampleRatio <= 0 || cfg.Otel.SampleRatio > 1 {
		cfg.Otel.SampleRatio = 0.1
	}
	if len(cfg.CORS.AllowedMethods) == 0 {
		cfg.CORS.AllowedMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	}
	if len(cfg.CORS.AllowedHeaders) == 0 {
		cfg.CORS.AllowedHeaders = []string{"Authorization", "Content-Type", "X-Service-Key"}
	}
}
