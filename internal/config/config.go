package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/adrg/xdg"
	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog"

	"github.com/inoxlang/ctxcompletion/internal/utils"
)

const (
	APP_NAME            = "ctxcompletion"
	CONFIG_FILE_NAME    = "config.yaml"
	CONFIG_FILE_RELPATH = APP_NAME + "/" + CONFIG_FILE_NAME

	DEFAULT_LOG_LEVEL = "info"
	DEFAULT_MAX_ITEMS = 200
	MAX_MAX_ITEMS     = 10_000

	LOG_TIME_FORMAT = time.TimeOnly
)

var (
	ErrInvalidLogLevel = errors.New("invalid log level")
	ErrInvalidMaxItems = errors.New("invalid max item count")

	USER_HOME             string
	FORCE_COLOR           bool
	NO_COLOR              bool
	TERM_256COLOR_CAPABLE bool
	SHOULD_COLORIZE       bool
)

func init() {
	targetSpecificInit()
}

type Config struct {
	LogLevel string `yaml:"logLevel"`

	//maximum number of items returned by a request, 0 means no limit.
	MaxItems int `yaml:"maxItems"`

	//if false snippets are converted to plain text.
	SnippetSupport bool `yaml:"snippetSupport"`

	NoColor bool `yaml:"noColor"`
}

func Default() Config {
	return Config{
		LogLevel:       DEFAULT_LOG_LEVEL,
		MaxItems:       DEFAULT_MAX_ITEMS,
		SnippetSupport: true,
	}
}

// Load reads the configuration file at path, if path is empty the file is searched for in the XDG
// config directories (ctxcompletion/config.yaml) and the default configuration is returned if there
// is no such file. Fields absent from the file keep their default value.
func Load(path string) (Config, error) {
	if path == "" {
		found, err := xdg.SearchConfigFile(CONFIG_FILE_RELPATH)
		if err != nil {
			return Default(), nil
		}
		path = found
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read configuration file: %w", err)
	}

	return Parse(content)
}

func Parse(content []byte) (Config, error) {
	config := Default()
	if err := yaml.Unmarshal(content, &config); err != nil {
		return Config{}, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// Validate reports all the invalid fields at once.
func (c Config) Validate() error {
	var errs []error

	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil || c.LogLevel == "" {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel))
	}

	if c.MaxItems < 0 || c.MaxItems > MAX_MAX_ITEMS {
		errs = append(errs, fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidMaxItems, c.MaxItems, MAX_MAX_ITEMS))
	}

	return utils.CombineErrorsWithPrefixMessage("invalid configuration", errs...)
}

func (c Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || c.LogLevel == "" {
		return zerolog.InfoLevel
	}
	return level
}

// NewLogger creates a logger writing human-readable logs to w at the configured level.
func (c Config) NewLogger(w io.Writer) zerolog.Logger {
	writer := zerolog.NewConsoleWriter(func(cw *zerolog.ConsoleWriter) {
		cw.Out = w
		cw.NoColor = c.NoColor || !SHOULD_COLORIZE
		cw.TimeFormat = LOG_TIME_FORMAT
	})

	return zerolog.New(writer).Level(c.Level()).With().Timestamp().Logger()
}
