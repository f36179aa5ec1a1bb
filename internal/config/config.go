// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - New() returns a Config holding every default.
// - Load layers an optional YAML file and FITSCORE_* env vars over New().
// - External errors are wrapped with this package's sentinel kinds.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// OutputDir receives the combined and per-class report workbooks.
	OutputDir string `koanf:"output_dir"`

	// RulesFile optionally points at a YAML band file overlaying the
	// built-in scoring table.
	RulesFile string `koanf:"rules_file"`

	// MaxUploadMB caps the size of an uploaded workbook.
	MaxUploadMB int `koanf:"max_upload_mb"`

	// PreviewRows is the number of combined rows echoed back after an upload.
	PreviewRows int `koanf:"preview_rows"`

	// CleanupPrevious removes earlier report workbooks from OutputDir before
	// each run.
	CleanupPrevious bool `koanf:"cleanup_previous"`

	// RunHistory bounds how many runs the download index remembers.
	RunHistory int `koanf:"run_history"`

	// MetricsEnabled turns Prometheus recording on or off.
	MetricsEnabled bool `koanf:"metrics_enabled"`

	// MetricsNamespace prefixes every exported metric name.
	MetricsNamespace string `koanf:"metrics_namespace"`

	// MetricsBuckets overrides the millisecond buckets of the duration
	// histograms. Empty keeps the built-in buckets.
	MetricsBuckets []float64 `koanf:"metrics_buckets"`
}

// New creates a Config holding the defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		Addr:             ":9080",
		OutputDir:        "reports",
		RulesFile:        "",
		MaxUploadMB:      20,
		PreviewRows:      30,
		CleanupPrevious:  true,
		RunHistory:       20,
		MetricsEnabled:   true,
		MetricsNamespace: "fitscore",
	}
}
