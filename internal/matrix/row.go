package matrix

import (
	"fmt"
	"os"
	"strings"
)

// Row is one compatibility-matrix entry: the runtime version it declares it
// needs paired with the dependency manifest it should be tested under.
// Both are fixed at construction; the only mutable state is the cached result
// of alias resolution.
type Row struct {
	// RequestedVersion is the runtime version this row declares, possibly an
	// alias name rather than a concrete version.
	RequestedVersion string

	// ManifestPath points at the dependency manifest file for this row.
	ManifestPath string

	resolvedVersion string
}

// NewRow constructs a row. Validation is a separate, explicit step (see
// Validate) so loaders can build rows without touching the filesystem.
func NewRow(requestedVersion, manifestPath string) *Row {
	return &Row{
		RequestedVersion: requestedVersion,
		ManifestPath:     manifestPath,
	}
}

// Validate checks that the manifest file exists and references the matrixci
// dependency. It is called eagerly (typically at matrix construction), not on
// every access.
func (r *Row) Validate() error {
	contents, err := os.ReadFile(r.ManifestPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%s: %w", r.ManifestPath, ErrMissingManifest)
		}
		return fmt.Errorf("reading manifest %s: %w", r.ManifestPath, err)
	}
	if !strings.Contains(string(contents), DependencyMarker) {
		return fmt.Errorf("%s: %w", r.ManifestPath, ErrUnusableManifest)
	}
	return nil
}

// IsCompatibleWith reports whether this row's requested version, after alias
// resolution against the supplied listing, equals the active runtime version.
//
// Each call re-resolves and overwrites the cached resolved version: alias
// listings can change between calls and resolution is cheap, so nothing is
// memoized beyond the row's lifetime.
func (r *Row) IsCompatibleWith(activeVersion, aliasListing string) (bool, error) {
	resolved, err := ResolveAlias(r.RequestedVersion, aliasListing)
	if err != nil {
		return false, err
	}
	r.resolvedVersion = resolved
	return resolved == activeVersion, nil
}

// ResolvedVersion returns the concrete version the row last resolved to, or
// the empty string if compatibility has never been checked.
func (r *Row) ResolvedVersion() string {
	return r.resolvedVersion
}

// Label is the human-readable identity of the row used in reports.
func (r *Row) Label() string {
	return fmt.Sprintf("%s @ %s", r.ManifestPath, r.RequestedVersion)
}
