// Package manifest loads declarative event definitions (event names and
// ordered bindings) from TOML, YAML or HCL files and applies them to an
// event.Manager.
package manifest

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/eventmgr/pkg/config"
	"github.com/arthur-debert/eventmgr/pkg/errors"
	"github.com/arthur-debert/eventmgr/pkg/event"
	"github.com/arthur-debert/eventmgr/pkg/logging"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Manifest is the parsed content of a manifest file
type Manifest struct {
	Path string

	// StrictEvent and WideSourceUnit are nil when the file leaves them unset
	StrictEvent    *bool
	WideSourceUnit *bool

	Events   []string
	Bindings []event.Binding
}

// document is the koanf shape of TOML and YAML manifests
type document struct {
	StrictEvent    *bool         `koanf:"strict_event"`
	WideSourceUnit *bool         `koanf:"wide_source_unit"`
	Events         []interface{} `koanf:"events"`
	Bind           []struct {
		Event   string      `koanf:"event"`
		Handler interface{} `koanf:"handler"`
	} `koanf:"bind"`
}

// Load reads a manifest. The format is chosen by extension: .toml, .yaml,
// .yml or .hcl.
func Load(path string) (*Manifest, error) {
	logger := logging.GetLogger("manifest").With().Str("path", path).Logger()
	done := logging.LogOperationStart(logger, "manifest.load")

	var (
		mf  *Manifest
		err error
	)
	if strings.EqualFold(filepath.Ext(path), ".hcl") {
		mf, err = loadHCL(path)
	} else {
		mf, err = loadKoanf(path)
	}
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Int("events", len(mf.Events)).
		Int("bindings", len(mf.Bindings)).
		Msg("Manifest loaded")
	done()
	return mf, nil
}

func loadKoanf(path string) (*Manifest, error) {
	parser, err := config.ParserFor(path)
	if err != nil {
		return nil, err
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse manifest %s", path).
			WithDetail("path", path)
	}

	var doc document
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &doc,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &doc, unmarshalConf); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigInvalid, "invalid manifest %s", path).
			WithDetail("path", path)
	}

	mf := &Manifest{
		Path:           path,
		StrictEvent:    doc.StrictEvent,
		WideSourceUnit: doc.WideSourceUnit,
	}

	mf.Events, err = flattenEvents(doc.Events, nil)
	if err != nil {
		return nil, invalid(path, err.Error())
	}

	for i, b := range doc.Bind {
		if b.Event == "" {
			return nil, invalid(path, fmt.Sprintf("bind[%d]: event is required", i))
		}
		handler, err := handlerValue(b.Handler)
		if err != nil {
			return nil, invalid(path, fmt.Sprintf("bind[%d] (%s): %v", i, b.Event, err))
		}
		mf.Bindings = append(mf.Bindings, event.Binding{Event: b.Event, Handler: handler})
	}

	return mf, nil
}

func flattenEvents(values []interface{}, out []string) ([]string, error) {
	for _, v := range values {
		switch tv := v.(type) {
		case string:
			out = append(out, tv)
		case []interface{}:
			var err error
			if out, err = flattenEvents(tv, out); err != nil {
				return nil, err
			}
		case []string:
			out = append(out, tv...)
		default:
			return nil, fmt.Errorf("events: %v (%T) is not an event name", v, v)
		}
	}
	return out, nil
}

// handlerValue accepts a string expression or a {unit, type, member} table
func handlerValue(v interface{}) (interface{}, error) {
	switch tv := v.(type) {
	case string:
		return tv, nil
	case map[string]interface{}:
		var d event.Descriptor
		for key, raw := range tv {
			s, ok := raw.(string)
			if !ok {
				return nil, fmt.Errorf("handler.%s must be a string", key)
			}
			switch key {
			case "unit":
				d.Unit = s
			case "type":
				d.Type = s
			case "member":
				d.Member = s
			default:
				return nil, fmt.Errorf("unknown handler key %q", key)
			}
		}
		if d.Member == "" {
			return nil, fmt.Errorf("handler.member is required")
		}
		return d, nil
	case nil:
		return nil, fmt.Errorf("handler is required")
	}
	return nil, fmt.Errorf("handler must be a string or a table, got %T", v)
}

func invalid(path, msg string) *errors.EventError {
	return errors.Newf(errors.ErrConfigInvalid, "%s: %s", path, msg).WithDetail("path", path)
}

// Overrides returns the option keys set by the manifest, in the form
// accepted by config.Load.
func (mf *Manifest) Overrides() map[string]interface{} {
	out := make(map[string]interface{})
	if mf.StrictEvent != nil {
		out["strict_event"] = *mf.StrictEvent
	}
	if mf.WideSourceUnit != nil {
		out["wide_source_unit"] = *mf.WideSourceUnit
	}
	return out
}

// Apply registers the manifest events on m, then binds each entry in file
// order. It stops at the first failing binding.
func (mf *Manifest) Apply(m *event.Manager) error {
	m.RegisterEvent(mf.Events)

	for i, b := range mf.Bindings {
		if err := m.On(b.Event, b.Handler); err != nil {
			return errors.Wrapf(err, errors.ErrConfigInvalid, "%s: bind[%d] (%s)", mf.Path, i, b.Event).
				WithDetail("path", mf.Path).
				WithDetail("event", b.Event)
		}
	}
	return nil
}
