package config

import "github.com/healthwatch/riskengine/internal/logging"

// Default configuration values.
const (
	defaultServiceName         = "riskengine"
	defaultServiceVersion      = "1.0.0"
	defaultMetricsPort         = 9090
	defaultConcurrency         = 8
	defaultItemsPerSecond      = 0 // 0 disables throttling
	defaultDatabasePath        = "riskengine.db"
	defaultLogLevel            = "info"
	defaultConfidenceThreshold = 0.7
	defaultMaxVocabulary       = 5000
	defaultEstimators          = 7
	defaultCVFolds             = 5
	defaultModelSeed           = 42
)

// Config holds all configuration for the risk engine.
type Config struct {
	Service        ServiceConfig        `yaml:"service"`
	Database       DatabaseConfig       `yaml:"database"`
	Logging        logging.Config       `yaml:"logging"`
	Classification ClassificationConfig `yaml:"classification"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name           string `yaml:"name"`
	Version        string `yaml:"version"`
	MetricsPort    int    `env:"RISKENGINE_METRICS_PORT" yaml:"metrics_port"`
	Concurrency    int    `env:"RISKENGINE_CONCURRENCY"  yaml:"concurrency"`
	ItemsPerSecond int    `yaml:"items_per_second"`
}

// DatabaseConfig holds the embedded SQLite store configuration.
type DatabaseConfig struct {
	Path string `env:"RISKENGINE_DB_PATH" yaml:"path"`
}

// ClassificationConfig holds the decision-policy settings.
type ClassificationConfig struct {
	// ConfidenceThreshold is the minimum model confidence at which the
	// model's label wins over the keyword signal.
	ConfidenceThreshold float64        `yaml:"confidence_threshold"`
	Keywords            KeywordsConfig `yaml:"keywords"`
	Model               ModelConfig    `yaml:"model"`
}

// KeywordsConfig lists the trigger phrases per severity level. Empty lists
// fall back to the built-in defaults.
type KeywordsConfig struct {
	High     []string `yaml:"high"`
	Moderate []string `yaml:"moderate"`
	Low      []string `yaml:"low"`
}

// ModelConfig holds statistical model hyperparameters.
type ModelConfig struct {
	MaxVocabulary int   `yaml:"max_vocabulary"`
	Estimators    int   `yaml:"estimators"`
	CVFolds       int   `yaml:"cv_folds"`
	Seed          int64 `yaml:"seed"`
}

// Load loads configuration from the specified path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := load(path, &cfg); err != nil {
		return nil, err
	}
	setDefaults(&cfg)
	// Re-apply env overrides after defaults (env always wins).
	applyEnvOverrides(&cfg)
	return &cfg, nil
}

// Default returns a config with all defaults applied and no file loaded.
func Default() *Config {
	cfg := &Config{}
	setDefaults(cfg)
	return cfg
}

func setDefaults(cfg *Config) {
	setServiceDefaults(&cfg.Service)
	if cfg.Database.Path == "" {
		cfg.Database.Path = defaultDatabasePath
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = defaultLogLevel
	}
	setClassificationDefaults(&cfg.Classification)
}

func setServiceDefaults(s *ServiceConfig) {
	if s.Name == "" {
		s.Name = defaultServiceName
	}
	if s.Version == "" {
		s.Version = defaultServiceVersion
	}
	if s.MetricsPort == 0 {
		s.MetricsPort = defaultMetricsPort
	}
	if s.Concurrency == 0 {
		s.Concurrency = defaultConcurrency
	}
	if s.ItemsPerSecond == 0 {
		s.ItemsPerSecond = defaultItemsPerSecond
	}
}

func setClassificationDefaults(c *ClassificationConfig) {
	if c.ConfidenceThreshold == 0 {
		c.ConfidenceThreshold = defaultConfidenceThreshold
	}
	if c.Model.MaxVocabulary == 0 {
		c.Model.MaxVocabulary = defaultMaxVocabulary
	}
	if c.Model.Estimators == 0 {
		c.Model.Estimators = defaultEstimators
	}
	if c.Model.CVFolds == 0 {
		c.Model.CVFolds = defaultCVFolds
	}
	if c.Model.Seed == 0 {
		c.Model.Seed = defaultModelSeed
	}
}
