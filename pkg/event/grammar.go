package event

import (
	"regexp"

	"github.com/arthur-debert/eventmgr/pkg/errors"
)

// Grammar parses string action expressions of the form unit#Type@member.
type Grammar struct {
	name string
	re   *regexp.Regexp
}

var (
	// StrictGrammar accepts a single-character source unit before '#'.
	// A single trailing newline is tolerated, as PCRE's '$' does.
	StrictGrammar = Grammar{
		name: "strict",
		re:   regexp.MustCompile(`^(([^\#])\#){0,1}((\w+)@){0,1}(\w+)\n?$`),
	}

	// WideGrammar accepts any non-empty source unit before '#'.
	WideGrammar = Grammar{
		name: "wide",
		re:   regexp.MustCompile(`^(([^\#]+)\#){0,1}((\w+)@){0,1}(\w+)\n?$`),
	}
)

// Name returns "strict" or "wide"
func (g Grammar) Name() string {
	if g.re == nil {
		return StrictGrammar.name
	}
	return g.name
}

// Parse splits expr into a Descriptor. An expression that does not match
// the grammar yields no member and fails with ErrInvalidArgument.
func (g Grammar) Parse(expr string) (Descriptor, error) {
	re := g.re
	if re == nil {
		re = StrictGrammar.re
	}

	var d Descriptor
	if m := re.FindStringSubmatch(expr); m != nil {
		d = Descriptor{Unit: m[2], Type: m[4], Member: m[5]}
	}
	if d.Member == "" {
		return Descriptor{}, errors.New(errors.ErrInvalidArgument, "Invalid argument(s) [empty callback provided]!").
			WithDetail("handler", expr)
	}
	return d, nil
}

// ParseAction parses expr with StrictGrammar
func ParseAction(expr string) (Descriptor, error) {
	return StrictGrammar.Parse(expr)
}

// GrammarFor maps the wide flag to a Grammar
func GrammarFor(wide bool) Grammar {
	if wide {
		return WideGrammar
	}
	return StrictGrammar
}
