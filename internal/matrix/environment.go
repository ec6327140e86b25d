package matrix

// Selection is the scoped manifest-selection handle passed to per-row work.
// It exists for the duration of one row's work invocation; the binding it
// represents is restored by the Environment on every exit path, including a
// panicking work function.
type Selection interface {
	// ManifestPath is the manifest in effect for this invocation.
	ManifestPath() string

	// Environ returns the process environment with the manifest binding
	// applied, suitable for handing to a subprocess or shell interpreter.
	Environ() []string
}

// Environment is what the engine needs from the surrounding process: the
// current alias listing and a way to run work with a row's manifest selected.
//
// CurrentAliasListing is consulted once per row, never cached across calls,
// so a listing that changes mid-run is picked up. An environment without an
// alias mechanism returns the empty string.
type Environment interface {
	CurrentAliasListing() string

	// WithManifestSelected binds path as the selected manifest, invokes work
	// with a Selection describing the binding, and restores the previous
	// binding before returning — also when work panics.
	WithManifestSelected(path string, work func(Selection) bool) bool
}
