package config

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/srgjo27/rac_reservation/internal/core/domain"
	"github.com/srgjo27/rac_reservation/internal/platform/database"
)

type Config struct {
	HTTPAddr             string
	Database             database.Config
	RedisAddr            string
	CacheTTL             time.Duration
	JournalFlushInterval time.Duration
	Capacity             domain.Capacity
}

// LoadEnv copies KEY=VALUE lines from a dotenv file into the process
// environment. A missing file is not an error.
func LoadEnv(filepath string) {
	file, err := os.Open(filepath)
	if err != nil {
		log.Println("No .env file found, using OS environment variables.")
		return
	}

	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) == 2 {
			key := strings.TrimSpace(parts[0])
			value := strings.TrimSpace(parts[1])

			os.Setenv(key, value)
		}
	}

	if err := scanner.Err(); err != nil {
		log.Printf("Failed to read .env file: %v\n", err)
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func FromEnv() (Config, error) {
	var cfg Config
	var err error

	cfg.HTTPAddr = getenv("HTTP_ADDR", ":8080")

	cfg.Database = database.Config{
		Host:     getenv("DB_HOST", "localhost"),
		Port:     getenv("DB_PORT", "5432"),
		User:     getenv("DB_USER", "postgres"),
		Password: os.Getenv("DB_PASSWORD"),
		DBName:   getenv("DB_NAME", "rac_reservation"),
	}

	cfg.RedisAddr = fmt.Sprintf("%s:%s", getenv("REDIS_HOST", "localhost"), getenv("REDIS_PORT", "6379"))

	if cfg.CacheTTL, err = time.ParseDuration(getenv("CACHE_TTL", "30s")); err != nil {
		return Config{}, fmt.Errorf("invalid CACHE_TTL: %w", err)
	}

	if cfg.JournalFlushInterval, err = time.ParseDuration(getenv("JOURNAL_FLUSH_INTERVAL", "5s")); err != nil {
		return Config{}, fmt.Errorf("invalid JOURNAL_FLUSH_INTERVAL: %w", err)
	}
	if cfg.JournalFlushInterval <= 0 {
		return Config{}, fmt.Errorf("JOURNAL_FLUSH_INTERVAL must be positive")
	}

	seats := []struct {
		key string
		dst *int
		def string
	}{
		{"BERTHS_LOWER", &cfg.Capacity.Lower, "21"},
		{"BERTHS_UPPER", &cfg.Capacity.Upper, "21"},
		{"BERTHS_MIDDLE", &cfg.Capacity.Middle, "21"},
		{"RAC_SEATS", &cfg.Capacity.RAC, "1"},
	}
	for _, s := range seats {
		n, err := strconv.Atoi(getenv(s.key, s.def))
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", s.key, err)
		}
		*s.dst = n
	}

	if err := cfg.Capacity.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
