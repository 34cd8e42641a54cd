package config

import (
	"os"
	"strconv"
	"time"

	"tenderserver/evaluation"
)

// Config конфигурация сервера
type Config struct {
	// Сервер
	Port string `json:"port"`

	// База данных
	DatabasePath string `json:"database_path"`

	// Connection pooling
	MaxOpenConns    int           `json:"max_open_conns"`
	MaxIdleConns    int           `json:"max_idle_conns"`
	ConnMaxLifetime time.Duration `json:"conn_max_lifetime"`

	// Логирование
	LogLevel string `json:"log_level"`

	// Экспорт отчетов
	ExportDir string `json:"export_dir"`

	// Пороги анализатора оценки
	Evaluation evaluation.AnalyzerConfig `json:"evaluation"`

	// Ограничение частоты импорта/экспорта (запросов в секунду и burst)
	ImportRatePerSecond float64 `json:"import_rate_per_second"`
	ImportRateBurst     int     `json:"import_rate_burst"`
}

// LoadConfig загружает конфигурацию из переменных окружения с дефолтами
func LoadConfig() (*Config, error) {
	defaults := evaluation.DefaultAnalyzerConfig()

	config := &Config{
		Port: getEnv("SERVER_PORT", "9999"),

		DatabasePath: getEnv("DATABASE_PATH", "tenders.db"),

		MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
		ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),

		LogLevel: getEnv("LOG_LEVEL", "INFO"),

		ExportDir: getEnv("EXPORT_DIR", "exports"),

		Evaluation: evaluation.AnalyzerConfig{
			MedianDeviationThreshold: getEnvFloat("EVAL_MEDIAN_DEVIATION_THRESHOLD", defaults.MedianDeviationThreshold),
			DominantWinnerShare:      getEnvFloat("EVAL_DOMINANT_WINNER_SHARE", defaults.DominantWinnerShare),
			LowBidGapThreshold:       getEnvFloat("EVAL_LOW_BID_GAP_THRESHOLD", defaults.LowBidGapThreshold),
		},

		ImportRatePerSecond: getEnvFloat("IMPORT_RATE_PER_SECOND", 2),
		ImportRateBurst:     getEnvInt("IMPORT_RATE_BURST", 5),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// getEnv возвращает значение переменной окружения или дефолт
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt возвращает целочисленное значение переменной окружения или дефолт
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvFloat возвращает вещественное значение переменной окружения или дефолт
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvDuration возвращает длительность из переменной окружения или дефолт
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
