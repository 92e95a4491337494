package commands

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort    = "Inspect and exercise event manifests"
	MsgVersionShort = "Print version information"
	MsgVersionLong  = "Print detailed version information including commit hash and build date"
	MsgParseShort   = "Parse handler expressions"
	MsgInspectShort = "List the events and actions declared by a manifest"
	MsgTriggerShort = "Apply a manifest and trigger one of its events"

	// Output
	MsgEventsHeader     = "Events"
	MsgNoEvents         = "No events declared."
	MsgNoActions        = "(no actions)"
	MsgUnregistered     = "(unregistered)"
	MsgArgsHeader       = "Args"
	MsgTriggeredFormat  = "Triggered %s (%d actions)"
	MsgGrammarFormat    = "grammar: %s\n"
	MsgDescriptorFormat = "unit=%q type=%q member=%q"

	// Errors
	MsgErrBadArg     = "invalid --arg %q: expected key=value"
	MsgErrArgValue   = "invalid --arg %q: %w"
	MsgErrRenderArgs = "failed to render args: %w"
)

// Long descriptions
const (
	MsgRootLong = `eventmgr loads event manifests (TOML, YAML or HCL), shows how their
handler expressions resolve, and triggers events against a set of
built-in handlers.`

	MsgParseLong = `Parse splits each "unit#Type@member" expression into its parts using the
same grammar the event manager applies to string handlers.`

	MsgTriggerLong = `Trigger applies the manifest to a fresh manager and triggers the event.
Built-in functions: log, incr, print. Built-in type: Counter (incr, reset).
Built-in source units: "e" and "echo" (type Echo, member say).
The resulting args are printed as YAML.`

	MsgTriggerExample = `  # Count how many actions ran
  eventmgr trigger events.toml user.created --arg count=0

  # Bind to events the manifest does not register
  eventmgr trigger events.yaml adhoc --no-strict`
)
