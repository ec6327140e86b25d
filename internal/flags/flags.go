package flags

// Package flags defines canonical CLI flag names shared across commands.
// Keeping these as constants avoids drift between Cobra flag wiring and other
// code paths that reference flags in messages or generated files.
// IMPORTANT: These are flag *names* without leading dashes.
const (
	// Source
	FlagDir  = "dir"
	FlagFrom = "from"
	FlagRef  = "ref"

	// Execution
	FlagCommand  = "command"
	FlagRuntime  = "runtime"
	FlagManager  = "manager"
	FlagValidate = "validate"

	// Output
	FlagSilent  = "silent"
	FlagNoColor = "no-color"
	FlagOut     = "out"
)
