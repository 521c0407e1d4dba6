package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// Config holds all configuration for the lab driver
type Config struct {
	// Lab settings
	Lab       string
	Sample    string
	StudentID string

	// Parameter overrides, nil keeps the lab default
	NumberOfValues *int
	Temperature    *float64
	NoiseLevel     *float64

	// Output settings
	OutputDir  string
	OutputFile string
	PlotFile   string
	LogLevel   zerolog.Level

	// Peak fitting settings
	SpectrumFile  string
	FitPeaks      int
	FitRangeMin   *float64
	FitRangeMax   *float64
	FitBackground bool
	FitPositions  []float64
	FitFixed      []string
}

// Load reads configuration from environment variables with defaults
func Load() (*Config, error) {
	cfg := &Config{
		// Lab settings
		Lab:       getEnvOrDefault("LAB", "statistics"),
		Sample:    getEnvOrDefault("SAMPLE", ""),
		StudentID: getEnvOrDefault("STUDENT_ID", ""),

		// Parameter overrides
		NumberOfValues: getEnvAsOptionalInt("NUMBER_OF_VALUES"),
		Temperature:    getEnvAsOptionalFloat("TEMPERATURE"),
		NoiseLevel:     getEnvAsOptionalFloat("NOISE_LEVEL"),

		// Output settings
		OutputDir:  getEnvOrDefault("OUTPUT_DIR", "."),
		OutputFile: getEnvOrDefault("OUTPUT_FILE", ""),
		PlotFile:   getEnvOrDefault("PLOT_FILE", ""),

		// Peak fitting settings
		SpectrumFile:  getEnvOrDefault("SPECTRUM_FILE", ""),
		FitPeaks:      getEnvAsIntOrDefault("FIT_PEAKS", 1),
		FitRangeMin:   getEnvAsOptionalFloat("FIT_RANGE_MIN"),
		FitRangeMax:   getEnvAsOptionalFloat("FIT_RANGE_MAX"),
		FitBackground: getEnvAsBoolOrDefault("FIT_BACKGROUND", false),
		FitFixed:      getEnvAsList("FIT_FIXED"),
	}

	level, err := zerolog.ParseLevel(strings.ToLower(getEnvOrDefault("LOG_LEVEL", "info")))
	if err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	cfg.LogLevel = level

	for _, item := range getEnvAsList("FIT_POSITIONS") {
		pos, err := strconv.ParseFloat(item, 64)
		if err != nil {
			return nil, fmt.Errorf("FIT_POSITIONS: %q is not a number", item)
		}
		cfg.FitPositions = append(cfg.FitPositions, pos)
	}

	if (cfg.FitRangeMin == nil) != (cfg.FitRangeMax == nil) {
		return nil, errors.New("FIT_RANGE_MIN and FIT_RANGE_MAX must be set together")
	}

	return cfg, nil
}

// Parameters returns the lab parameter overrides that were set
func (c *Config) Parameters() map[string]any {
	params := make(map[string]any)
	if c.Sample != "" {
		params["sample"] = c.Sample
	}
	if c.NumberOfValues != nil {
		params["number_of_values"] = *c.NumberOfValues
	}
	if c.Temperature != nil {
		params["temperature"] = *c.Temperature
	}
	if c.NoiseLevel != nil {
		params["noise_level"] = *c.NoiseLevel
	}
	if c.OutputFile != "" {
		params["output_file"] = c.OutputFile
	}
	return params
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsOptionalInt(key string) *int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return &intVal
		}
	}
	return nil
}

func getEnvAsOptionalFloat(key string) *float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return &floatVal
		}
	}
	return nil
}

// getEnvAsList splits a comma separated value, dropping empty items
func getEnvAsList(key string) []string {
	var out []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
