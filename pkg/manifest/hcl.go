package manifest

import (
	"fmt"

	"github.com/arthur-debert/eventmgr/pkg/errors"
	"github.com/arthur-debert/eventmgr/pkg/event"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

// hclDocument is the HCL shape of a manifest:
//
//	strict_event = true
//	events       = ["user.created", ["user.updated", "user.deleted"]]
//
//	bind "user.created" {
//	  handler = "Mailer@welcome"
//	}
//
//	bind "user.created" {
//	  type   = "Audit"
//	  member = "record"
//	}
type hclDocument struct {
	StrictEvent    *bool     `hcl:"strict_event,optional"`
	WideSourceUnit *bool     `hcl:"wide_source_unit,optional"`
	Events         cty.Value `hcl:"events,optional"`
	Binds          []hclBind `hcl:"bind,block"`
}

type hclBind struct {
	Event   string  `hcl:"event,label"`
	Handler *string `hcl:"handler,optional"`
	Unit    *string `hcl:"unit,optional"`
	Type    *string `hcl:"type,optional"`
	Member  *string `hcl:"member,optional"`
}

func loadHCL(path string) (*Manifest, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, errors.Wrapf(diags, errors.ErrConfigParse, "failed to parse manifest %s", path).
			WithDetail("path", path)
	}

	var doc hclDocument
	if diags := gohcl.DecodeBody(f.Body, nil, &doc); diags.HasErrors() {
		return nil, errors.Wrapf(diags, errors.ErrConfigInvalid, "invalid manifest %s", path).
			WithDetail("path", path)
	}

	mf := &Manifest{
		Path:           path,
		StrictEvent:    doc.StrictEvent,
		WideSourceUnit: doc.WideSourceUnit,
	}

	events, err := flattenCty(doc.Events, nil)
	if err != nil {
		return nil, invalid(path, err.Error())
	}
	mf.Events = events

	for i, b := range doc.Binds {
		handler, err := b.handler()
		if err != nil {
			return nil, invalid(path, fmt.Sprintf("bind[%d] (%s): %v", i, b.Event, err))
		}
		mf.Bindings = append(mf.Bindings, event.Binding{Event: b.Event, Handler: handler})
	}

	return mf, nil
}

func (b hclBind) handler() (interface{}, error) {
	hasTable := b.Unit != nil || b.Type != nil || b.Member != nil
	switch {
	case b.Handler != nil && hasTable:
		return nil, fmt.Errorf("handler cannot be combined with unit, type or member")
	case b.Handler != nil:
		return *b.Handler, nil
	case b.Member == nil || *b.Member == "":
		return nil, fmt.Errorf("handler or member is required")
	}

	d := event.Descriptor{Member: *b.Member}
	if b.Unit != nil {
		d.Unit = *b.Unit
	}
	if b.Type != nil {
		d.Type = *b.Type
	}
	return d, nil
}

func flattenCty(v cty.Value, out []string) ([]string, error) {
	if v.IsNull() {
		return out, nil
	}
	if !v.IsWhollyKnown() {
		return nil, fmt.Errorf("events must be known values")
	}

	ty := v.Type()
	switch {
	case ty.Equals(cty.String):
		return append(out, v.AsString()), nil
	case ty.IsTupleType() || ty.IsListType() || ty.IsSetType():
		for it := v.ElementIterator(); it.Next(); {
			_, elem := it.Element()
			var err error
			if out, err = flattenCty(elem, out); err != nil {
				return nil, err
			}
		}
		return out, nil
	}
	return nil, fmt.Errorf("events: %s is not an event name", ty.FriendlyName())
}
