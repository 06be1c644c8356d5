// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package config

import (
	"github.com/typegamer/rhythm-core/pkg/mechanics"
)

// Config holds all application configuration loaded from environment variables.
// This struct uses github.com/caarlos0/env for automatic environment variable parsing.
type Config struct {
	// Server configuration
	HTTPPort    int    `env:"HTTP_PORT" envDefault:"8000"`
	MetricsPort int    `env:"METRICS_PORT" envDefault:"8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"dev"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"TypingRhythmCore"`

	// Redis configuration
	RedisHost       string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort       string `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword   string `env:"REDIS_PASSWORD"`
	RedisMaxRetries int    `env:"REDIS_MAX_RETRIES" envDefault:"5"`

	// Content configuration
	WordListDir     string `env:"WORD_LIST_DIR" envDefault:"data/words"`
	MusicConfigPath string `env:"MUSIC_CONFIG_PATH" envDefault:"config/music.yaml"`

	// Game balance configuration
	BasePoints          int     `env:"GAME_BASE_POINTS" envDefault:"10"`
	ComboMultiplier     float64 `env:"GAME_COMBO_MULTIPLIER" envDefault:"0.1"`
	ChallengeMultiplier float64 `env:"GAME_CHALLENGE_MULTIPLIER" envDefault:"1.0"`
	AccuracyThreshold   float64 `env:"GAME_ACCURACY_THRESHOLD" envDefault:"95"`
	WordVariance        float64 `env:"WORD_DEFAULT_VARIANCE" envDefault:"0.5"`

	// Telemetry configuration
	OtelEnabled    bool   `env:"OTEL_ENABLED" envDefault:"true"`
	ZipkinEndpoint string `env:"ZIPKIN_ENDPOINT" envDefault:"http://localhost:9411/api/v2/spans"`
}

// RedisAddr returns the host:port Redis address.
func (c *Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

// GameConfig assembles the mechanics balance config.
func (c *Config) GameConfig() mechanics.Config {
	return mechanics.Config{
		BasePoints:          c.BasePoints,
		ComboMultiplier:     c.ComboMultiplier,
		ChallengeMultiplier: c.ChallengeMultiplier,
		AccuracyThreshold:   c.AccuracyThreshold,
	}
}
