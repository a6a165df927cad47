package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/tristendillon/gohb/core/logger"
	"gopkg.in/yaml.v3"
)

const (
	FileName = "gohb.yaml"

	DefaultAPIHost       = "http://localhost:8080"
	DefaultEntryFile     = "main.go"
	DefaultParserTimeout = 4000 * time.Millisecond
	DefaultPreviewLimit  = 1000
	DefaultDebounce      = 500 * time.Millisecond

	EnvAPIHost   = "GOHB_API_HOST"
	EnvParser    = "GOHB_PARSER"
	EnvStateFile = "GOHB_STATE_FILE"
)

// DefaultExclude holds directory names reserved for dependencies and
// version control. They are never walked.
var DefaultExclude = []string{"vendor", "node_modules", ".git"}

type Config struct {
	APIHost   string   `yaml:"api_host"`
	EntryFile string   `yaml:"entry_file"`
	Exclude   []string `yaml:"exclude"`
	Parser    Parser   `yaml:"parser"`
	State     State    `yaml:"state"`
	Invoke    Invoke   `yaml:"invoke"`
	Watch     Watch    `yaml:"watch"`
}

type Parser struct {
	Path        string        `yaml:"path"`
	Timeout     time.Duration `yaml:"timeout"`
	Concurrency int           `yaml:"concurrency"`
}

type State struct {
	Path string `yaml:"path"`
}

type Invoke struct {
	PreviewLimit int `yaml:"preview_limit"`
}

type Watch struct {
	Debounce time.Duration `yaml:"debounce"`
}

func Default() *Config {
	return &Config{
		APIHost:   DefaultAPIHost,
		EntryFile: DefaultEntryFile,
		Parser: Parser{
			Timeout: DefaultParserTimeout,
		},
		State: State{
			Path: defaultStatePath(),
		},
		Invoke: Invoke{
			PreviewLimit: DefaultPreviewLimit,
		},
		Watch: Watch{
			Debounce: DefaultDebounce,
		},
	}
}

func defaultStatePath() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "gohb", "state.json")
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "gohb", "state.json")
	}
	return filepath.Join(".gohb", "state.json")
}

// Load reads gohb.yaml from dir, falling back to defaults when the file
// is absent. A .env file in dir is loaded first so GOHB_* variables can
// live next to the project.
func Load(dir string) (*Config, error) {
	envFile := filepath.Join(dir, ".env")
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			logger.Debug("Failed to load %s: %v", envFile, err)
		}
	}

	cfg := Default()
	filePath := filepath.Join(dir, FileName)

	data, err := os.ReadFile(filePath)
	switch {
	case os.IsNotExist(err):
		logger.Debug("No config file found, using default config")
	case err != nil:
		return nil, fmt.Errorf("failed to read config file %s: %w", filePath, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse yaml: %w", err)
		}
		logger.Debug("Config file found: %s", filePath)
	}

	cfg.applyEnv()
	cfg.fillDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	logger.Debug("Config: %+v", *cfg)

	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvAPIHost)); v != "" {
		c.APIHost = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvParser)); v != "" {
		c.Parser.Path = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvStateFile)); v != "" {
		c.State.Path = v
	}
}

// fillDefaults restores zero values a partial yaml file may have left.
func (c *Config) fillDefaults() {
	def := Default()
	if c.APIHost == "" {
		c.APIHost = def.APIHost
	}
	if c.EntryFile == "" {
		c.EntryFile = def.EntryFile
	}
	if c.Parser.Timeout == 0 {
		c.Parser.Timeout = def.Parser.Timeout
	}
	if c.State.Path == "" {
		c.State.Path = def.State.Path
	}
	if c.Invoke.PreviewLimit == 0 {
		c.Invoke.PreviewLimit = def.Invoke.PreviewLimit
	}
	if c.Watch.Debounce == 0 {
		c.Watch.Debounce = def.Watch.Debounce
	}
}

func (c *Config) Validate() error {
	u, err := url.Parse(c.APIHost)
	if err != nil {
		return fmt.Errorf("invalid api_host %q: %w", c.APIHost, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api_host %q must use http or https", c.APIHost)
	}
	if u.Host == "" {
		return fmt.Errorf("api_host %q has no host", c.APIHost)
	}
	if c.Parser.Timeout < 0 {
		return fmt.Errorf("parser timeout must be positive, got %v", c.Parser.Timeout)
	}
	if c.Parser.Concurrency < 0 {
		return fmt.Errorf("parser concurrency must not be negative, got %d", c.Parser.Concurrency)
	}
	if c.Invoke.PreviewLimit < 0 {
		return fmt.Errorf("preview_limit must not be negative, got %d", c.Invoke.PreviewLimit)
	}
	if strings.ContainsRune(c.EntryFile, filepath.Separator) {
		return fmt.Errorf("entry_file %q must be a bare file name", c.EntryFile)
	}
	return nil
}

// ExcludeDirs returns the built-in exclusions plus any configured extras.
func (c *Config) ExcludeDirs() []string {
	out := make([]string, 0, len(DefaultExclude)+len(c.Exclude))
	out = append(out, DefaultExclude...)
	for _, ex := range c.Exclude {
		if ex = strings.TrimSpace(ex); ex != "" {
			out = append(out, ex)
		}
	}
	return out
}
