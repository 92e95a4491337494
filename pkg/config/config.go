package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/eventmgr/pkg/errors"
	"github.com/arthur-debert/eventmgr/pkg/event"
	"github.com/arthur-debert/eventmgr/pkg/logging"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables read by Load
const EnvPrefix = "EVENTMGR_"

// Options are the manager settings that can be configured
type Options struct {
	StrictEvent    bool `koanf:"strict_event"`
	WideSourceUnit bool `koanf:"wide_source_unit"`
}

// Default returns the options of the embedded defaults file
func Default() Options {
	return Options{StrictEvent: true}
}

// ManagerOptions converts o into event.Manager options
func (o Options) ManagerOptions() []event.Option {
	return []event.Option{
		event.WithStrict(o.StrictEvent),
		event.WithGrammar(event.GrammarFor(o.WideSourceUnit)),
	}
}

// NewManager creates a Manager configured by o. extra options are applied
// after the configured ones.
func (o Options) NewManager(extra ...event.Option) *event.Manager {
	return event.New(append(o.ManagerOptions(), extra...)...)
}

// ParserFor picks the koanf parser for a file by extension
func ParserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Parser(), nil
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	}
	return nil, errors.Newf(errors.ErrConfigParse, "unsupported config format %q", filepath.Ext(path)).
		WithDetail("path", path)
}

// Load resolves the options. Layers, later ones winning:
//  1. embedded defaults
//  2. the file at path, if path is not empty
//  3. EVENTMGR_* environment variables
//  4. overrides
func Load(path string, overrides map[string]interface{}) (*Options, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "cannot read config file %s", path).
				WithDetail("path", path)
		}
		parser, err := ParserFor(path)
		if err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse config file %s", path).
				WithDetail("path", path)
		}
		logger.Debug().Str("path", path).Msg("Config file loaded")
	}

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	var opts Options
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &opts,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &opts, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigInvalid, "failed to unmarshal configuration")
	}

	logger.Debug().
		Bool("strictEvent", opts.StrictEvent).
		Bool("wideSourceUnit", opts.WideSourceUnit).
		Msg("Configuration resolved")
	return &opts, nil
}
