package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server
	Port string

	// Filesystem areas, created at process start and shared by all runs
	TempDir   string
	OutputDir string

	// Fetching
	DownloadTimeoutSeconds int

	// Quality settings
	VideoFPS        int
	AudioSampleRate int
	AudioBitrate    string

	// Mixing: background music level relative to narration
	BackgroundVolume float64
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	cfg := &Config{
		Port:      getEnv("PORT", "8080"),
		TempDir:   getEnv("TEMP_DIR", "./temp"),
		OutputDir: getEnv("OUTPUT_DIR", "./output"),

		DownloadTimeoutSeconds: getEnvAsInt("DOWNLOAD_TIMEOUT_SECONDS", 300),

		VideoFPS:        getEnvAsInt("VIDEO_FPS", 30),
		AudioSampleRate: getEnvAsInt("AUDIO_SAMPLE_RATE", 44100),
		AudioBitrate:    getEnv("AUDIO_BITRATE", "192k"),

		BackgroundVolume: getEnvAsFloat("BACKGROUND_VOLUME", 0.3),
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if configuration is valid
func (c *Config) Validate() error {
	if c.TempDir == "" {
		return errors.New("TEMP_DIR is required")
	}
	if c.OutputDir == "" {
		return errors.New("OUTPUT_DIR is required")
	}
	if c.DownloadTimeoutSeconds <= 0 {
		return errors.New("DOWNLOAD_TIMEOUT_SECONDS must be positive")
	}
	if c.VideoFPS <= 0 {
		return errors.New("VIDEO_FPS must be positive")
	}
	if c.BackgroundVolume <= 0 || c.BackgroundVolume > 1 {
		return errors.New("BACKGROUND_VOLUME must be in (0, 1]")
	}
	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func (c *Config) String() string {
	return fmt.Sprintf("Config{Port: %s, TempDir: %s, OutputDir: %s, FPS: %d, BackgroundVolume: %.2f}",
		c.Port, c.TempDir, c.OutputDir, c.VideoFPS, c.BackgroundVolume)
}
