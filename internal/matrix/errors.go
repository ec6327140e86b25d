package matrix

import "errors"

// DependencyMarker is the string a row's manifest must reference to be usable.
// Manifests that forgot to declare matrixci as a dependency would otherwise
// pass validation and then fail in confusing ways inside the test command.
const DependencyMarker = "matrixci"

var (
	// ErrMissingManifest is returned by Row.Validate when the manifest path
	// does not exist.
	ErrMissingManifest = errors.New("manifest file not found")

	// ErrUnusableManifest is returned by Row.Validate when the manifest file
	// exists but does not reference the matrixci dependency.
	ErrUnusableManifest = errors.New("manifest does not reference matrixci")

	// ErrNoCompatibleRuntime is returned by RunEach when not a single row
	// matched the active runtime. This is distinct from every compatible row
	// failing its test command.
	ErrNoCompatibleRuntime = errors.New("no matrix row is compatible with the active runtime")

	// ErrSomeRowsFailed is returned by RunEach when at least one compatible
	// row's work reported failure.
	ErrSomeRowsFailed = errors.New("some matrix rows failed")

	// ErrAliasCycle is returned when an alias table forms a cycle with no
	// self-mapping node. Real version managers are not known to produce such
	// tables; the bound exists so a broken one cannot hang the run.
	ErrAliasCycle = errors.New("alias table contains a cycle")
)
