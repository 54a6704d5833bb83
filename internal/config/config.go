package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Input    InputConfig
	Output   OutputConfig
	Classify ClassifyConfig
	Metrics  MetricsConfig
	Logger   LoggerConfig
}

type InputConfig struct {
	// Path points at the transaction table, either .csv or .xlsx.
	Path string
	// IncludeReturns keeps Retur rows; by default only Pembelian rows are
	// aggregated.
	IncludeReturns bool
}

type OutputConfig struct {
	Dir                string
	ClassificationFile string
	TopNFile           string
	ReportFile         string
	WorkbookFile       string
	LabelChartFile     string
	RegionChartFile    string
	Charts             bool
	Workbook           bool
}

// ClassifyConfig carries every threshold of the decision rule plus the
// ranking cutoff. All of them are candidates for sensitivity analysis, so
// none is hard-coded.
type ClassifyConfig struct {
	NMin              int
	TopN              int
	GlobalPresenceMin int
	GlobalHNormMin    float64
	GlobalMaxShareMax float64
	LocalMaxShareMin  float64
	LocalHNormMax     float64
	LocalLQMin        float64
}

type MetricsConfig struct {
	// Workers bounds the per-item metrics pool.
	Workers int
}

type LoggerConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	cfg := &Config{
		Input: InputConfig{
			Path:           getEnvString("INPUT_FILE", "data_transaksi.csv"),
			IncludeReturns: getEnvBool("INCLUDE_RETURNS", false),
		},
		Output: OutputConfig{
			Dir:                getEnvString("OUTPUT_DIR", "hasil"),
			ClassificationFile: getEnvString("OUTPUT_CLASSIFICATION_FILE", "klasifikasi_item_global_lokal.csv"),
			TopNFile:           getEnvString("OUTPUT_TOPN_FILE", "top_item_per_wilayah.csv"),
			ReportFile:         getEnvString("OUTPUT_REPORT_FILE", "laporan_wilayah.md"),
			WorkbookFile:       getEnvString("OUTPUT_WORKBOOK_FILE", "analisis_wilayah.xlsx"),
			LabelChartFile:     getEnvString("OUTPUT_LABEL_CHART_FILE", "distribusi_label.png"),
			RegionChartFile:    getEnvString("OUTPUT_REGION_CHART_FILE", "transaksi_per_wilayah.png"),
			Charts:             getEnvBool("OUTPUT_CHARTS", true),
			Workbook:           getEnvBool("OUTPUT_WORKBOOK", true),
		},
		Classify: ClassifyConfig{
			NMin:              getEnvInt("CLASSIFY_N_MIN", 30),
			TopN:              getEnvInt("CLASSIFY_TOP_N", 5),
			GlobalPresenceMin: getEnvInt("CLASSIFY_GLOBAL_PRESENCE_MIN", 4),
			GlobalHNormMin:    getEnvFloat("CLASSIFY_GLOBAL_H_NORM_MIN", 0.70),
			GlobalMaxShareMax: getEnvFloat("CLASSIFY_GLOBAL_MAX_SHARE_MAX", 0.50),
			LocalMaxShareMin:  getEnvFloat("CLASSIFY_LOCAL_MAX_SHARE_MIN", 0.60),
			LocalHNormMax:     getEnvFloat("CLASSIFY_LOCAL_H_NORM_MAX", 0.40),
			LocalLQMin:        getEnvFloat("CLASSIFY_LOCAL_LQ_MIN", 1.5),
		},
		Metrics: MetricsConfig{
			Workers: getEnvInt("METRICS_WORKERS", 10),
		},
		Logger: LoggerConfig{
			Level:  getEnvString("LOG_LEVEL", "info"),
			Format: getEnvString("LOG_FORMAT", "json"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate is re-run by cmd/analyze after flag overrides are applied.
func (c *Config) Validate() error {
	if c.Input.Path == "" {
		return fmt.Errorf("input file path cannot be empty")
	}

	if c.Output.Dir == "" {
		return fmt.Errorf("output directory cannot be empty")
	}

	if c.Classify.NMin < 0 {
		return fmt.Errorf("minimum transaction count must not be negative, got %d", c.Classify.NMin)
	}

	if c.Classify.TopN < 1 {
		return fmt.Errorf("top-N cutoff must be at least 1, got %d", c.Classify.TopN)
	}

	if c.Classify.GlobalPresenceMin < 1 {
		return fmt.Errorf("global presence minimum must be at least 1, got %d", c.Classify.GlobalPresenceMin)
	}

	shares := map[string]float64{
		"CLASSIFY_GLOBAL_H_NORM_MIN":    c.Classify.GlobalHNormMin,
		"CLASSIFY_GLOBAL_MAX_SHARE_MAX": c.Classify.GlobalMaxShareMax,
		"CLASSIFY_LOCAL_MAX_SHARE_MIN":  c.Classify.LocalMaxShareMin,
		"CLASSIFY_LOCAL_H_NORM_MAX":     c.Classify.LocalHNormMax,
	}
	for name, v := range shares {
		if v < 0 || v > 1 {
			return fmt.Errorf("%s must be within [0, 1], got %v", name, v)
		}
	}

	if c.Classify.LocalLQMin < 0 {
		return fmt.Errorf("local LQ minimum must not be negative, got %v", c.Classify.LocalLQMin)
	}

	if c.Metrics.Workers < 1 {
		return fmt.Errorf("metrics worker count must be at least 1, got %d", c.Metrics.Workers)
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, c.Logger.Level) {
		return fmt.Errorf("invalid log level %q, must be one of: %s", c.Logger.Level, strings.Join(validLogLevels, ", "))
	}

	validLogFormats := []string{"json", "text"}
	if !contains(validLogFormats, c.Logger.Format) {
		return fmt.Errorf("invalid log format %q, must be one of: %s", c.Logger.Format, strings.Join(validLogFormats, ", "))
	}

	return nil
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
