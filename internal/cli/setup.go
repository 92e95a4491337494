package cli

import (
	"github.com/arthur-debert/eventmgr/pkg/config"
	"github.com/arthur-debert/eventmgr/pkg/event"
	"github.com/arthur-debert/eventmgr/pkg/manifest"
	"github.com/spf13/cobra"
)

// overrides returns the option keys set explicitly on the command line
func (f *globalFlags) overrides(cmd *cobra.Command) map[string]interface{} {
	out := make(map[string]interface{})
	if cmd.Flags().Changed("wide") {
		out["wide_source_unit"] = f.wide
	}
	if cmd.Flags().Changed("no-strict") {
		out["strict_event"] = !f.noStrict
	}
	return out
}

// resolveOptions loads config with manifest settings layered under the
// command-line flags
func (f *globalFlags) resolveOptions(cmd *cobra.Command, mf *manifest.Manifest) (*config.Options, error) {
	merged := make(map[string]interface{})
	if mf != nil {
		for k, v := range mf.Overrides() {
			merged[k] = v
		}
	}
	for k, v := range f.overrides(cmd) {
		merged[k] = v
	}
	return config.Load(f.configPath, merged)
}

// loadManager reads the manifest at path and applies it to a new manager
// bound to the built-in scope
func (f *globalFlags) loadManager(cmd *cobra.Command, path string) (*event.Manager, *manifest.Manifest, error) {
	mf, err := manifest.Load(path)
	if err != nil {
		return nil, nil, err
	}

	opts, err := f.resolveOptions(cmd, mf)
	if err != nil {
		return nil, nil, err
	}

	m := opts.NewManager(event.WithScope(newBuiltinScope(cmd.OutOrStdout())))
	if err := mf.Apply(m); err != nil {
		return nil, nil, err
	}
	return m, mf, nil
}
