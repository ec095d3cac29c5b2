package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/philipp01105/rlog/core"
	"github.com/philipp01105/rlog/handler"
	"github.com/philipp01105/rlog/handler/consolehandler"
	"github.com/philipp01105/rlog/logger"
)

const (
	TargetStdout  = "stdout"
	TargetStderr  = "stderr"
	TargetDiscard = "discard"
)

// EnvPrefix prefixes environment overrides, e.g. RLOG_LOGGING_LEVEL
const EnvPrefix = "RLOG"

// keyDelimiter separates nested viper keys. Message keys usually contain
// dots, so the default "." delimiter cannot be used.
const keyDelimiter = "::"

// ErrInvalidConfig is returned by Load when the configuration fails validation
var ErrInvalidConfig = errors.New("invalid configuration")

// MessageConfig declares one message
type MessageConfig = core.Template

type LoggingConfig struct {
	Level        string                   `mapstructure:"level"`
	Levels       string                   `mapstructure:"levels"`
	CustomLevels []string                 `mapstructure:"custom_levels"`
	Messages     map[string]MessageConfig `mapstructure:"messages"`
	Catalog      string                   `mapstructure:"catalog"`
}

type ConsoleConfig struct {
	Target    string `mapstructure:"target"`
	ErrorRank int    `mapstructure:"error_rank"`
}

type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Console ConsoleConfig `mapstructure:"console"`
}

func key(parts ...string) string {
	return strings.Join(parts, keyDelimiter)
}

// Load reads rlog.yaml from paths (default: ./config and the working
// directory), applies RLOG_ environment overrides, merges the message
// catalog and validates the result. A missing config file is not an error.
func Load(paths ...string) (*Config, error) {
	v := viper.NewWithOptions(viper.KeyDelimiter(keyDelimiter))

	v.SetDefault(key("logging", "level"), "info")
	v.SetDefault(key("logging", "levels"), "syslog")
	v.SetDefault(key("logging", "catalog"), "")
	v.SetDefault(key("console", "target"), TargetStdout)
	v.SetDefault(key("console", "error_rank"), -1)

	v.SetConfigName("rlog")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{"./config", "."}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(keyDelimiter, "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			slog.Error("failed to read config file", slog.String("error", err.Error()))
			return nil, err
		}
		slog.Info("config file not found, using defaults and environment variables")
	} else {
		slog.Info("loaded config file", slog.String("file", v.ConfigFileUsed()))
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		slog.Error("failed to unmarshal config", slog.String("error", err.Error()))
		return nil, err
	}

	if cfg.Logging.Catalog != "" {
		if err := cfg.mergeCatalog(cfg.Logging.Catalog); err != nil {
			slog.Error("failed to load message catalog",
				slog.String("file", cfg.Logging.Catalog),
				slog.String("error", err.Error()))
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return &cfg, nil
}

// mergeCatalog adds the catalog's messages; inline messages take precedence.
func (c *Config) mergeCatalog(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	catalog, err := LoadCatalog(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	merged := make(map[string]MessageConfig, len(catalog)+len(c.Logging.Messages))
	for k, t := range catalog {
		merged[k] = t
	}
	for k, t := range c.Logging.Messages {
		merged[k] = t
	}
	c.Logging.Messages = merged
	return nil
}

// Levels returns the configured level enumeration: the custom levels when
// any are set, otherwise the named preset.
func (c *Config) Levels() (core.Levels, error) {
	if len(c.Logging.CustomLevels) > 0 {
		return core.NewLevels(c.Logging.CustomLevels...)
	}
	ls, ok := core.Preset(c.Logging.Levels)
	if !ok {
		return core.Levels{}, fmt.Errorf("%w: unknown preset %q", core.ErrInvalidLevels, c.Logging.Levels)
	}
	return ls, nil
}

// Templates returns a copy of the configured messages
func (c *Config) Templates() map[string]core.Template {
	out := make(map[string]core.Template, len(c.Logging.Messages))
	for k, t := range c.Logging.Messages {
		out[k] = t
	}
	return out
}

// LoggerConfig returns a logger.Config dispatching to h
func (c *Config) LoggerConfig(h handler.Handler) (logger.Config, error) {
	ls, err := c.Levels()
	if err != nil {
		return logger.Config{}, err
	}
	// Names from files and the environment are matched leniently
	level := c.Logging.Level
	if l, err := ls.ParseLevel(level); err == nil {
		level = l.Name
	}
	messages := c.Templates()
	for k, t := range messages {
		if l, err := ls.ParseLevel(t.Level); err == nil {
			t.Level = l.Name
			messages[k] = t
		}
	}

	return logger.Config{
		Handler:  h,
		Messages: messages,
		Level:    level,
		Levels:   ls,
	}, nil
}

// ConsoleHandler returns a console handler for the configured target.
// Lines routed by error_rank go to stderr unless the target is discard.
func (c *Config) ConsoleHandler() *consolehandler.ConsoleHandler {
	var w, errW io.Writer
	switch c.Console.Target {
	case TargetStderr:
		w, errW = os.Stderr, os.Stderr
	case TargetDiscard:
		w, errW = io.Discard, io.Discard
	default:
		w, errW = os.Stdout, os.Stderr
	}

	ls, err := c.Levels()
	if err != nil {
		ls = core.Syslog
	}
	return consolehandler.NewConsoleHandler(consolehandler.ConsoleConfig{
		Writer:    w,
		ErrWriter: errW,
		ErrorRank: c.Console.ErrorRank,
		Levels:    ls,
	})
}

// NewLogger builds a Logger writing to the configured console
func NewLogger(c *Config) (*logger.Logger, error) {
	lc, err := c.LoggerConfig(c.ConsoleHandler())
	if err != nil {
		return nil, err
	}
	return logger.New(lc)
}
