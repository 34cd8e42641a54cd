package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Validate проверяет корректность конфигурации
func (c *Config) Validate() error {
	var errors []string

	// Валидация порта
	if c.Port == "" {
		errors = append(errors, "port is required")
	} else {
		port, err := strconv.Atoi(c.Port)
		if err != nil {
			errors = append(errors, fmt.Sprintf("invalid port: %s", c.Port))
		} else if port < 1 || port > 65535 {
			errors = append(errors, fmt.Sprintf("port must be between 1 and 65535, got %d", port))
		}
	}

	// Валидация пути к базе данных
	if c.DatabasePath == "" {
		errors = append(errors, "database path is required")
	}

	// Валидация connection pooling
	if c.MaxOpenConns < 1 {
		errors = append(errors, "max open connections must be at least 1")
	}
	if c.MaxIdleConns < 1 {
		errors = append(errors, "max idle connections must be at least 1")
	}
	if c.MaxIdleConns > c.MaxOpenConns {
		errors = append(errors, "max idle connections cannot be greater than max open connections")
	}
	if c.ConnMaxLifetime < time.Second {
		errors = append(errors, "connection max lifetime must be at least 1 second")
	}

	// Валидация порогов анализатора
	if c.Evaluation.MedianDeviationThreshold <= 0 {
		errors = append(errors, "median deviation threshold must be positive")
	}
	if c.Evaluation.DominantWinnerShare <= 0 || c.Evaluation.DominantWinnerShare > 1 {
		errors = append(errors, "dominant winner share must be in (0, 1]")
	}
	if c.Evaluation.LowBidGapThreshold <= 0 || c.Evaluation.LowBidGapThreshold >= 1 {
		errors = append(errors, "low bid gap threshold must be in (0, 1)")
	}

	// Валидация ограничения частоты импорта
	if c.ImportRatePerSecond <= 0 {
		errors = append(errors, "import rate per second must be positive")
	}
	if c.ImportRateBurst < 1 {
		errors = append(errors, "import rate burst must be at least 1")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errors, "; "))
	}

	return nil
}
