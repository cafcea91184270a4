// Package config loads the arithgen YAML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultPath is looked up in the working directory when --config is unset.
const DefaultPath = "arithgen.yaml"

// Config is the full configuration file.
type Config struct {
	Generation GenerationConfig `yaml:"generation"`
	Files      FilesConfig      `yaml:"files"`
	Logging    LoggingConfig    `yaml:"logging"`
	Server     ServerConfig     `yaml:"server"`
}

// GenerationConfig mirrors the -n / -r flags and the generator knobs.
type GenerationConfig struct {
	Count           int     `yaml:"count" validate:"gte=0"`
	Range           int     `yaml:"range" validate:"gte=0"`
	MaxOperators    int     `yaml:"max_operators" validate:"gte=0,lte=10"`
	LeafProbability float64 `yaml:"leaf_probability" validate:"gte=0,lt=1"`
	MaxAttempts     int     `yaml:"max_attempts" validate:"gte=0"`
	Seed            uint64  `yaml:"seed"` // 0 draws a random seed
	Notation        string  `yaml:"notation" validate:"oneof=unicode ascii"`
}

// FilesConfig names the output and grading files.
type FilesConfig struct {
	Dir       string `yaml:"dir"`
	Exercises string `yaml:"exercises" validate:"required"`
	Answers   string `yaml:"answers" validate:"required"`
	Grade     string `yaml:"grade" validate:"required"`
}

// LoggingConfig selects the zap preset and level.
type LoggingConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=console json"`
}

// ServerConfig configures the tool server.
type ServerConfig struct {
	Addr         string `yaml:"addr" validate:"required"`
	MaxBodyBytes int64  `yaml:"max_body_bytes" validate:"gt=0"`
}

var validate = validator.New()

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Generation: GenerationConfig{
			Count:           10,
			MaxOperators:    3,
			LeafProbability: 0.4,
			Notation:        "unicode",
		},
		Files: FilesConfig{
			Dir:       ".",
			Exercises: "Exercises.txt",
			Answers:   "Answers.txt",
			Grade:     "Grade.txt",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Server: ServerConfig{
			Addr:         ":8080",
			MaxBodyBytes: 1 << 20,
		},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case os.IsNotExist(err):
		// Defaults only
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if s := os.Getenv("ARITHGEN_SEED"); s != "" {
		if seed, err := strconv.ParseUint(s, 10, 64); err == nil {
			c.Generation.Seed = seed
		}
	}
	if lvl := os.Getenv("ARITHGEN_LOG_LEVEL"); lvl != "" {
		c.Logging.Level = lvl
	}
	if addr := os.Getenv("ARITHGEN_ADDR"); addr != "" {
		c.Server.Addr = addr
	}
}

// Path joins name onto the configured output directory.
func (f FilesConfig) Path(name string) string {
	if filepath.IsAbs(name) || f.Dir == "" {
		return name
	}
	return filepath.Join(f.Dir, name)
}
