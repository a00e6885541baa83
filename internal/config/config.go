package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server     ServerConfig     `mapstructure:"server" validate:"required"`
	Upload     UploadConfig     `mapstructure:"upload" validate:"required"`
	Extraction ExtractionConfig `mapstructure:"extraction" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                   int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel               string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"gt=0"`
}

// UploadConfig controls how uploaded documents are held during extraction.
type UploadConfig struct {
	// Dir is where transient copies are written; empty means os.TempDir().
	Dir      string `mapstructure:"dir"`
	MaxBytes int64  `mapstructure:"max_bytes" validate:"gt=0"`
}

// ExtractionConfig selects the document backend and scan parallelism.
type ExtractionConfig struct {
	Backend       string `mapstructure:"backend" validate:"required,oneof=native pdftotext"`
	Workers       int    `mapstructure:"workers" validate:"gte=1,lte=64"`
	PdftotextPath string `mapstructure:"pdftotext_path" validate:"required"`
}
