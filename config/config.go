package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/Dosada05/tournament-engine/models"
	"github.com/Dosada05/tournament-engine/rating"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	ServerPort         int
	LogLevel           slog.Level
	CORSAllowedOrigins []string
	RateLimitRPS       float64
	RateLimitBurst     int

	// Snapshot store (Cloudflare R2). Either all five are set or none.
	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicBaseURL   string

	Engine EngineConfig
}

// EngineConfig is the per-deployment tuning of the scheduling and rating engine.
type EngineConfig struct {
	Rating     rating.Config             `yaml:"rating"`
	RoundRobin models.RoundRobinSettings `yaml:"round_robin"`
	MultiStage models.MultiStageSettings `yaml:"multi_stage"`
	Points     models.PointsTable        `yaml:"points"`
}

func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Rating:     rating.DefaultConfig(),
		RoundRobin: models.RoundRobinSettings{}.Normalized(),
		MultiStage: models.MultiStageSettings{}.Normalized(),
		Points:     models.DefaultPointsTable,
	}
}

func (c *Config) SnapshotStoreEnabled() bool {
	return c.R2AccountID != ""
}

// Load загружает конфигурацию из переменных окружения.
// Опционально подгружает .env файл (полезно для локальной разработки).
func Load() (*Config, error) {
	_ = godotenv.Load()

	port, err := intEnv("SERVER_PORT", 8080)
	if err != nil {
		return nil, err
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(envOr("LOG_LEVEL", "INFO"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL environment variable: %w", err)
	}

	rps, err := floatEnv("RATE_LIMIT_RPS", 20)
	if err != nil {
		return nil, err
	}
	burst, err := intEnv("RATE_LIMIT_BURST", 40)
	if err != nil {
		return nil, err
	}
	if rps <= 0 || burst <= 0 {
		return nil, errors.New("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}

	cfg := &Config{
		ServerPort:         port,
		LogLevel:           level,
		CORSAllowedOrigins: splitList(envOr("CORS_ALLOWED_ORIGINS", "*")),
		RateLimitRPS:       rps,
		RateLimitBurst:     burst,
		R2AccountID:        os.Getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:      os.Getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey:  os.Getenv("R2_SECRET_ACCESS_KEY"),
		R2BucketName:       os.Getenv("R2_BUCKET_NAME"),
		R2PublicBaseURL:    os.Getenv("R2_PUBLIC_BASE_URL"),
	}
	if err := cfg.validateR2(); err != nil {
		return nil, err
	}

	cfg.Engine = DefaultEngineConfig()
	if path := os.Getenv("ENGINE_CONFIG_FILE"); path != "" {
		engine, err := LoadEngineConfig(path)
		if err != nil {
			return nil, err
		}
		cfg.Engine = engine
	}
	if err := cfg.Engine.applyEnv(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadEngineConfig reads engine settings from a YAML file. Sections or fields
// left out keep their defaults.
func LoadEngineConfig(path string) (EngineConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return EngineConfig{}, fmt.Errorf("failed to read engine config %s: %w", path, err)
	}
	return ParseEngineConfig(data)
}

func ParseEngineConfig(data []byte) (EngineConfig, error) {
	cfg := DefaultEngineConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return EngineConfig{}, fmt.Errorf("failed to parse engine config: %w", err)
	}
	cfg.Rating = cfg.Rating.Normalized()
	cfg.RoundRobin = cfg.RoundRobin.Normalized()
	cfg.MultiStage = cfg.MultiStage.Normalized()
	return cfg, nil
}

func (e *EngineConfig) applyEnv() error {
	if v := os.Getenv("ELO_K_FACTOR"); v != "" {
		k, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid ELO_K_FACTOR environment variable: %w", err)
		}
		e.Rating.KFactor = k
	}
	if v := os.Getenv("ELO_BASELINE"); v != "" {
		b, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid ELO_BASELINE environment variable: %w", err)
		}
		e.Rating.Baseline = b
	}
	if v := os.Getenv("QUALIFIERS_PER_GROUP"); v != "" {
		q, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid QUALIFIERS_PER_GROUP environment variable: %w", err)
		}
		e.MultiStage.QualifiersPerGroup = q
	}
	e.Rating = e.Rating.Normalized()
	e.MultiStage = e.MultiStage.Normalized()
	return nil
}

func (c *Config) validateR2() error {
	set := 0
	for _, v := range []string{c.R2AccountID, c.R2AccessKeyID, c.R2SecretAccessKey, c.R2BucketName, c.R2PublicBaseURL} {
		if v != "" {
			set++
		}
	}
	if set != 0 && set != 5 {
		return errors.New("incomplete R2 configuration: set all of R2_ACCOUNT_ID, R2_ACCESS_KEY_ID, R2_SECRET_ACCESS_KEY, R2_BUCKET_NAME, R2_PUBLIC_BASE_URL or none")
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func intEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	return n, nil
}

func floatEnv(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	return f, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
