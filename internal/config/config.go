package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultDotEnv is the env file LoadDotEnv reads when no path is given.
const DefaultDotEnv = ".env"

// Config holds the settings of the HTTP presenter.
type Config struct {
	// Addr is the listen address of the HTTP server.
	Addr string `yaml:"addr"`
	// Root, when set, confines requested paths to this directory. Relative
	// paths are resolved against it.
	Root string `yaml:"root"`
	// LogLevel is one of DEBUG, INFO, WARN, ERROR.
	LogLevel string `yaml:"log_level"`
	// Timeout bounds the time spent describing a single file.
	Timeout time.Duration `yaml:"timeout"`
	// Parallelism bounds the number of files described at once in batch mode.
	Parallelism int `yaml:"parallelism"`
	// AllowOrigins enables CORS for the listed origins. "*" allows any origin.
	AllowOrigins []string `yaml:"allow_origins"`
}

func Default() Config {
	return Config{
		Addr:        "127.0.0.1:8080",
		LogLevel:    "INFO",
		Timeout:     5 * time.Second,
		Parallelism: 4,
	}
}

// Load returns the default configuration, overridden by the YAML file at path
// (if path is not empty) and then by FILEINFO_* environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
		}
		if err := decode(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %q: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadDotEnv copies the variables of a dotenv file into the process
// environment, without overriding the ones already set. With an empty path,
// DefaultDotEnv is loaded if it exists.
func LoadDotEnv(path string) error {
	optional := path == ""
	if optional {
		path = DefaultDotEnv
	}

	err := godotenv.Load(path)
	if optional && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load env file %q: %w", path, err)
	}
	return nil
}

func decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	err := dec.Decode(cfg)
	if errors.Is(err, io.EOF) {
		// empty file
		return nil
	}
	return err
}

func applyEnv(cfg *Config) error {
	cfg.Addr = getEnv("FILEINFO_ADDR", cfg.Addr)
	cfg.Root = getEnv("FILEINFO_ROOT", cfg.Root)
	cfg.LogLevel = getEnv("FILEINFO_LOG_LEVEL", cfg.LogLevel)

	if s := getEnv("FILEINFO_TIMEOUT", ""); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid FILEINFO_TIMEOUT: %w", err)
		}
		cfg.Timeout = d
	}

	if s := getEnv("FILEINFO_PARALLELISM", ""); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("invalid FILEINFO_PARALLELISM: %w", err)
		}
		cfg.Parallelism = n
	}

	if s := getEnv("FILEINFO_ALLOW_ORIGINS", ""); s != "" {
		cfg.AllowOrigins = nil
		for _, origin := range strings.Split(s, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.AllowOrigins = append(cfg.AllowOrigins, origin)
			}
		}
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Addr == "" {
		return errors.New("addr must not be empty")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.Parallelism <= 0 {
		return fmt.Errorf("parallelism must be greater than 0, got %d", c.Parallelism)
	}
	for _, origin := range c.AllowOrigins {
		if origin != "*" && !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return fmt.Errorf("invalid origin %q: must be \"*\" or start with http:// or https://", origin)
		}
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
