package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/vango-dev/craft/internal/errors"
)

const (
	// ConfigFileName is the JSON configuration file name.
	ConfigFileName = "craft.json"

	// DefaultPort is the default preview server port.
	DefaultPort = 3000

	// DefaultHost is the default preview server host.
	DefaultHost = "localhost"

	// DefaultTemplates is the default template directory.
	DefaultTemplates = "templates"

	// DefaultNamespace is the default metrics namespace.
	DefaultNamespace = "craft"
)

// configFiles are tried in order.
var configFiles = []string{ConfigFileName, "craft.yaml", "craft.yml"}

// Environment variables applied over the file.
const (
	EnvDev      = "CRAFT_DEV"
	EnvStrict   = "CRAFT_STRICT"
	EnvPort     = "CRAFT_PORT"
	EnvLogLevel = "CRAFT_LOG_LEVEL"
)

// Config is the project configuration.
type Config struct {
	// Name is the project name.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Templates is the template directory, relative to the project root.
	Templates string `json:"templates,omitempty" yaml:"templates,omitempty"`

	// Strict makes every diagnostic panic.
	Strict bool `json:"strict,omitempty" yaml:"strict,omitempty"`

	Dev     DevConfig     `json:"dev,omitempty" yaml:"dev,omitempty"`
	Metrics MetricsConfig `json:"metrics,omitempty" yaml:"metrics,omitempty"`
	Log     LogConfig     `json:"log,omitempty" yaml:"log,omitempty"`
	Publish PublishConfig `json:"publish,omitempty" yaml:"publish,omitempty"`

	configPath string
	dir        string
}

// DevConfig contains preview server settings.
type DevConfig struct {
	// Enabled turns on dev mode: registry replacement and reload.
	Enabled bool `json:"enabled,omitempty" yaml:"enabled,omitempty"`

	// Host is the host to bind to.
	Host string `json:"host,omitempty" yaml:"host,omitempty"`

	// Port is the port to listen on.
	Port int `json:"port,omitempty" yaml:"port,omitempty"`

	// HotReload pushes reloads to open pages when templates change.
	HotReload bool `json:"hotReload,omitempty" yaml:"hotReload,omitempty"`

	// Watch lists extra paths to watch. The template directory is always
	// watched.
	Watch []string `json:"watch,omitempty" yaml:"watch,omitempty"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	Enabled   bool   `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is debug, info, warn or error.
	Level string `json:"level,omitempty" yaml:"level,omitempty"`

	// Format is text or json.
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// PublishConfig contains the S3 export target.
type PublishConfig struct {
	Bucket string `json:"bucket,omitempty" yaml:"bucket,omitempty"`
	Prefix string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Region string `json:"region,omitempty" yaml:"region,omitempty"`
}

// New creates a Config with default values.
func New() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads the configuration from dir. It fails with C040 when no
// configuration file exists.
func Load(dir string) (*Config, error) {
	for _, name := range configFiles {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return nil, errors.New("C040").
		WithDetail("No craft.json or craft.yaml found in " + dir)
}

// LoadOptional is Load, except that a missing file yields the defaults
// with the environment overlay applied.
func LoadOptional(dir string) (*Config, error) {
	cfg, err := Load(dir)
	if err == nil {
		return cfg, nil
	}
	if errors.Code(err) != "C040" {
		return nil, err
	}
	cfg = New()
	cfg.dir = dir
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads the configuration from path. The format follows the
// extension.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("C040").WithDetail("No config file at " + path)
		}
		return nil, errors.New("C041").Wrap(err).WithDetail(err.Error())
	}

	cfg := &Config{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, errors.New("C041").
			Wrap(err).
			WithDetailf("Failed to parse %s: %v", filepath.Base(path), err)
	}

	cfg.configPath = path
	cfg.dir = filepath.Dir(path)
	cfg.applyDefaults()
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to path, as YAML when the extension
// says so and JSON otherwise.
func (c *Config) SaveTo(path string) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return errors.New("C041").Wrap(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("C041").Wrap(err)
	}
	c.configPath = path
	c.dir = filepath.Dir(path)
	return nil
}

// Path returns the path the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the project root.
func (c *Config) Dir() string {
	return c.dir
}

func (c *Config) applyDefaults() {
	if c.Templates == "" {
		c.Templates = DefaultTemplates
	}
	if c.Dev.Host == "" {
		c.Dev.Host = DefaultHost
	}
	if c.Dev.Port == 0 {
		c.Dev.Port = DefaultPort
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// applyEnv loads .env from the project root without overriding variables
// already set, then applies the CRAFT_ variables.
func (c *Config) applyEnv() error {
	if c.dir != "" {
		envFile := filepath.Join(c.dir, ".env")
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				return errors.New("C041").Wrap(err).WithDetail("Failed to read " + envFile)
			}
		}
	}

	if v, ok := os.LookupEnv(EnvDev); ok {
		on := parseBool(v)
		c.Dev.Enabled = on
		c.Dev.HotReload = on
	}
	if v, ok := os.LookupEnv(EnvStrict); ok {
		c.Strict = parseBool(v)
	}
	if v, ok := os.LookupEnv(EnvPort); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return errors.New("C041").WithDetailf("%s=%q is not a port number", EnvPort, v)
		}
		c.Dev.Port = port
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		c.Log.Level = v
	}
	return nil
}

func parseBool(v string) bool {
	b, err := strconv.ParseBool(v)
	return err == nil && b
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.Dev.Port < 0 || c.Dev.Port > 65535 {
		return errors.New("C041").WithDetail("Port must be between 0 and 65535")
	}
	if _, ok := levels[strings.ToLower(c.Log.Level)]; !ok {
		return errors.New("C041").WithDetailf("Unknown log level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return errors.New("C041").WithDetailf("Unknown log format %q", c.Log.Format)
	}
	return nil
}

var levels = map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

// LogLevel returns the configured slog level, defaulting to info.
func (c *Config) LogLevel() slog.Level {
	if l, ok := levels[strings.ToLower(c.Log.Level)]; ok {
		return l
	}
	return slog.LevelInfo
}

// DevAddress returns the listen address of the preview server.
func (c *Config) DevAddress() string {
	return c.Dev.Host + ":" + strconv.Itoa(c.Dev.Port)
}

// DevURL returns the preview server URL.
func (c *Config) DevURL() string {
	return "http://" + c.DevAddress()
}

// TemplatesPath returns the absolute template directory.
func (c *Config) TemplatesPath() string {
	return c.resolve(c.Templates)
}

// WatchPaths returns the absolute paths watched in dev mode, the template
// directory first.
func (c *Config) WatchPaths() []string {
	out := []string{c.TemplatesPath()}
	seen := map[string]bool{out[0]: true}
	for _, p := range c.Dev.Watch {
		abs := c.resolve(p)
		if !seen[abs] {
			seen[abs] = true
			out = append(out, abs)
		}
	}
	return out
}

func (c *Config) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.dir, p)
}
