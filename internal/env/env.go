// Package env implements the process-environment collaborator of the matrix
// engine: runtime version discovery, version-manager alias listings, and the
// scoped manifest-selection binding rows are executed under.
package env

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"matrixci/internal/matrix"
)

// ManifestVar is the environment variable naming the manifest in effect while
// a row's work runs. Tooling invoked by the test command reads it to pick the
// right dependency manifest.
const ManifestVar = "MATRIXCI_MANIFEST"

// RuntimeVar overrides runtime version discovery when set.
const RuntimeVar = "MATRIXCI_RUNTIME"

// ErrNoRuntimeVersion is returned when neither RuntimeVar nor the version
// manager can tell which runtime version is active.
var ErrNoRuntimeVersion = errors.New("cannot determine the active runtime version")

// Env is the concrete matrix.Environment backed by the real process
// environment and an alias-listing collaborator.
type Env struct {
	// Aliases provides the version-manager alias listing. Defaults to
	// probing for the rvm-style manager on PATH.
	Aliases AliasLister
}

var _ matrix.Environment = (*Env)(nil)

func New() *Env {
	return &Env{Aliases: DetectAliasLister()}
}

// CurrentAliasListing queries the alias collaborator. The probe result is
// intentionally not cached: whether the manager is installed, and what it
// lists, may change between calls.
func (e *Env) CurrentAliasListing() string {
	lister := e.Aliases
	if lister == nil {
		lister = DetectAliasLister()
	}
	return lister.AliasListing()
}

// Selection is the scoped manifest binding handed to per-row work.
type Selection struct {
	path string
}

func (s *Selection) ManifestPath() string { return s.path }

// Environ returns the process environment with the manifest binding applied.
// Work that spawns subprocesses should pass this instead of reading ambient
// state, so the binding survives even if the process env is mutated mid-run.
func (s *Selection) Environ() []string {
	environ := os.Environ()
	out := environ[:0]
	for _, entry := range environ {
		if strings.HasPrefix(entry, ManifestVar+"=") {
			continue
		}
		out = append(out, entry)
	}
	return append(out, ManifestVar+"="+s.path)
}

// WithManifestSelected sets ManifestVar to path, runs work with a Selection
// describing the binding, and restores the previous value. Restoration is
// deferred so it also happens when work panics.
func (e *Env) WithManifestSelected(path string, work func(matrix.Selection) bool) bool {
	prev, hadPrev := os.LookupEnv(ManifestVar)
	os.Setenv(ManifestVar, path)
	defer func() {
		if hadPrev {
			os.Setenv(ManifestVar, prev)
		} else {
			os.Unsetenv(ManifestVar)
		}
	}()

	return work(&Selection{path: path})
}

// CurrentRuntimeVersion discovers the runtime version active in this
// environment: the RuntimeVar override if set, otherwise the version manager's
// notion of the current version.
func (e *Env) CurrentRuntimeVersion() (string, error) {
	if v := strings.TrimSpace(os.Getenv(RuntimeVar)); v != "" {
		return v, nil
	}

	lister := e.Aliases
	if lister == nil {
		lister = DetectAliasLister()
	}
	if mgr, ok := lister.(CurrentVersioner); ok {
		if v := mgr.CurrentVersion(); v != "" {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w (set %s or install a version manager)", ErrNoRuntimeVersion, RuntimeVar)
}
