// Package config loads stagebench output options from defaults, an optional
// config file and STAGEBENCH_* environment variables.
package config

import (
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/NikitaCOEUR/stagebench/internal/logger"
	"github.com/NikitaCOEUR/stagebench/pkg/bench"
	"github.com/NikitaCOEUR/stagebench/pkg/render"
)

// EnvPrefix is the prefix of environment variables overriding options
const EnvPrefix = "STAGEBENCH_"

var (
	// ErrUnsupportedFormat is returned for config files koanf cannot parse
	ErrUnsupportedFormat = errors.New("unsupported config format")

	// ErrInvalidConfig is returned when the merged options fail validation
	ErrInvalidConfig = errors.New("invalid config")
)

// Metrics configures the Prometheus exporter
type Metrics struct {
	Namespace string `koanf:"namespace"`
	Subsystem string `koanf:"subsystem"`
}

// Options are the user facing settings of a benchmark run
type Options struct {
	Color              render.ColorMode `koanf:"color"`
	Format             render.Format    `koanf:"format"`
	ThousandsSeparator string           `koanf:"thousands_separator"`
	HeaderTemplate     string           `koanf:"header_template"`
	LogLevel           string           `koanf:"log_level"`
	Warmup             time.Duration    `koanf:"warmup"`
	Metrics            Metrics          `koanf:"metrics"`
}

// Defaults returns the options used when nothing overrides them
func Defaults() Options {
	return Options{
		Color:              render.ColorAuto,
		Format:             render.FormatText,
		ThousandsSeparator: "_",
		HeaderTemplate:     render.DefaultHeaderTemplate,
		LogLevel:           logger.DefaultLevel,
		Warmup:             bench.DefaultWarmup,
		Metrics:            Metrics{Namespace: "stagebench"},
	}
}

func defaultsMap() map[string]any {
	d := Defaults()
	return map[string]any{
		"color":               string(d.Color),
		"format":              string(d.Format),
		"thousands_separator": d.ThousandsSeparator,
		"header_template":     d.HeaderTemplate,
		"log_level":           d.LogLevel,
		"warmup":              d.Warmup.String(),
		"metrics.namespace":   d.Metrics.Namespace,
		"metrics.subsystem":   d.Metrics.Subsystem,
	}
}

// Loader merges option sources with koanf
type Loader struct {
	k *koanf.Koanf
}

// New creates a loader holding the defaults
func New() (*Loader, error) {
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(defaultsMap(), "."), nil); err != nil {
		return nil, errors.Wrap(err, "failed to load defaults")
	}
	return &Loader{k: k}, nil
}

func newEmpty() (*Loader, error) {
	return &Loader{k: koanf.New(".")}, nil
}

// parserFor picks a koanf parser from a file extension or format name
func parserFor(format string) (koanf.Parser, error) {
	switch strings.TrimPrefix(strings.ToLower(format), ".") {
	case "yml", "yaml":
		return yaml.Parser(), nil
	case "toml":
		return toml.Parser(), nil
	case "json":
		return json.Parser(), nil
	default:
		return nil, errors.Wrapf(ErrUnsupportedFormat, "%q", format)
	}
}

// LoadFile merges a yaml, toml or json file over the current values
func (l *Loader) LoadFile(path string) error {
	parser, err := parserFor(filepath.Ext(path))
	if err != nil {
		return err
	}
	if err := l.k.Load(file.Provider(path), parser); err != nil {
		return errors.Wrapf(err, "failed to load config file %s", path)
	}
	return nil
}

// LoadBytes merges raw config content in the given format
func (l *Loader) LoadBytes(data []byte, format string) error {
	parser, err := parserFor(format)
	if err != nil {
		return err
	}
	if err := l.k.Load(rawbytes.Provider(data), parser); err != nil {
		return errors.Wrap(err, "failed to parse config")
	}
	return nil
}

// LoadEnv merges STAGEBENCH_* variables. Unknown variables are ignored.
func (l *Loader) LoadEnv() error {
	opt := env.Opt{
		Prefix:        EnvPrefix,
		TransformFunc: envTransform,
	}
	if err := l.k.Load(env.Provider(".", opt), nil); err != nil {
		return errors.Wrap(err, "failed to load env vars")
	}
	return nil
}

// envTransform maps variable names to option keys:
// STAGEBENCH_LOG_LEVEL → log_level, STAGEBENCH_METRICS_NAMESPACE → metrics.namespace
func envTransform(key, value string) (string, any) {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	if rest, ok := strings.CutPrefix(key, "metrics_"); ok {
		key = "metrics." + rest
	}
	if _, known := defaultsMap()[key]; !known {
		return "", nil
	}
	return key, value
}

// Raw returns the merged values as a nested map
func (l *Loader) Raw() map[string]any {
	return l.k.Raw()
}

// Options validates the merged values and decodes them
func (l *Loader) Options() (Options, error) {
	result, err := Validate(l.k.Raw())
	if err != nil {
		return Options{}, err
	}
	if !result.Valid {
		return Options{}, errors.Wrap(ErrInvalidConfig, result.String())
	}

	var opts Options
	conf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			WeaklyTypedInput: true,
			Result:           &opts,
		},
	}
	if err := l.k.UnmarshalWithConf("", &opts, conf); err != nil {
		return Options{}, errors.Wrap(err, "failed to unmarshal config")
	}
	return opts, nil
}

// Load merges defaults, the file at path (skipped when empty) and the
// environment, in increasing priority.
func Load(path string) (Options, error) {
	l, err := New()
	if err != nil {
		return Options{}, err
	}
	if path != "" {
		if err := l.LoadFile(path); err != nil {
			return Options{}, err
		}
	}
	if err := l.LoadEnv(); err != nil {
		return Options{}, err
	}
	return l.Options()
}

// LoadBytes merges defaults with raw content, ignoring the environment
func LoadBytes(data []byte, format string) (Options, error) {
	l, err := New()
	if err != nil {
		return Options{}, err
	}
	if err := l.LoadBytes(data, format); err != nil {
		return Options{}, err
	}
	return l.Options()
}

// Style builds the render style for output written to w
func (o Options) Style(w io.Writer) render.Style {
	style := render.DefaultStyle()
	style.Theme = render.NewTheme(w, render.ColorEnabled(o.Color, w))
	style.Grouping = o.ThousandsSeparator
	if o.HeaderTemplate != "" {
		style.HeaderTemplate = o.HeaderTemplate
	}
	style.Width = render.TermWidth(w)
	if o.Format != "" {
		style.Format = o.Format
	}
	return style
}

// BenchOptions returns the engine options matching the log settings
func (o Options) BenchOptions(logOutput io.Writer) []bench.Option {
	return []bench.Option{bench.WithLogOutput(logOutput, o.LogLevel)}
}
