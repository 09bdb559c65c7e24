package cli

// Command descriptions
const (
	MsgRootShort    = "Inspect and manage launcher workflows"
	MsgVersionShort = "Print version information"
	MsgInfoShort    = "Show a workflow's bundle information"
	MsgEnvShort     = "Show the launcher variables in the environment"
	MsgResetShort   = "Delete a workflow's data, cache and settings"
)

// Output
const (
	MsgNoLauncherVars = "No launcher variables set. Run from a workflow script to see them."
	MsgResetDone      = "Reset %s: deleted data, cache and settings\n"
	MsgNoValue        = "-"
	MsgMagicHeader    = "Magic arguments"
)

// Flags
const (
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagReadme  = "Render the workflow's readme"
	MsgFlagMagic   = "List the magic arguments the workflow accepts"
)
