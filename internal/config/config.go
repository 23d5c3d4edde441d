package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Config はアプリケーション設定を表す
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Booking  BookingConfig
	Provider ProviderConfig
}

// ServerConfig はサーバー設定
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DatabaseConfig は予約アーカイブ用のPostgreSQL設定。
// Enabled が false の場合、アーカイブは無効になる。
type DatabaseConfig struct {
	Enabled  bool
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig は空席数キャッシュ用のRedis設定。
// Enabled が false の場合、キャッシュは無効になる。
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
}

// BookingConfig は予約コアのパラメータ。座席配置・料金・有効期限・
// 決済成功率をひとつの設定に集約する。
type BookingConfig struct {
	Rows               []string
	SeatsPerRow        int
	PremiumRows        []string
	VIPRows            []string
	OccupancyRatio     float64
	BookingFee         decimal.Decimal
	HoldTTL            time.Duration
	PaymentSuccessRate float64
	SweepInterval      time.Duration
}

// ProviderConfig は外部映画情報プロバイダ（TMDb互換）の設定。
// APIKey が空の場合、プロバイダ連携は無効になる。
type ProviderConfig struct {
	BaseURL string
	APIKey  string
	Region  string
	Timeout time.Duration
}

// Load は環境変数から設定を読み込む
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			Enabled:  getBoolEnv("DB_ENABLED", false),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "cinema_booking"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Enabled:  getBoolEnv("REDIS_ENABLED", false),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},
		Booking: BookingConfig{
			Rows:               getListEnv("SEAT_ROWS", []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J"}),
			SeatsPerRow:        getIntEnv("SEATS_PER_ROW", 12),
			PremiumRows:        getListEnv("PREMIUM_ROWS", []string{"E", "F", "G"}),
			VIPRows:            getListEnv("VIP_ROWS", []string{"H", "I", "J"}),
			OccupancyRatio:     getFloatEnv("OCCUPANCY_RATIO", 0.30),
			BookingFee:         getDecimalEnv("BOOKING_FEE", decimal.NewFromFloat(1.50)),
			HoldTTL:            getDurationEnv("BOOKING_HOLD_TTL", 10*time.Minute),
			PaymentSuccessRate: getFloatEnv("PAYMENT_SUCCESS_RATE", 0.90),
			SweepInterval:      getDurationEnv("BOOKING_SWEEP_INTERVAL", 1*time.Minute),
		},
		Provider: ProviderConfig{
			BaseURL: getEnv("TMDB_BASE_URL", "https://api.themoviedb.org/3"),
			APIKey:  getEnv("TMDB_API_KEY", ""),
			Region:  getEnv("TMDB_REGION", "FR"),
			Timeout: getDurationEnv("TMDB_TIMEOUT", 5*time.Second),
		},
	}
}

// DSN はPostgreSQL接続文字列を返す
func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" port=" + c.Port +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.DBName +
		" sslmode=" + c.SSLMode
}

// Addr はRedis接続アドレスを返す
func (c *RedisConfig) Addr() string {
	return c.Host + ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getDecimalEnv(key string, defaultValue decimal.Decimal) decimal.Decimal {
	if value := os.Getenv(key); value != "" {
		if d, err := decimal.NewFromString(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getListEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return defaultValue
}
