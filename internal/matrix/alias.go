package matrix

import (
	"fmt"
	"regexp"
	"strings"
)

// aliasLinePattern matches one entry of a version-manager alias listing,
// e.g. "latest => 3.2.9". Anything that does not look like an entry
// (headers, warnings, blank lines) is ignored.
var aliasLinePattern = regexp.MustCompile(`^\s*(\S+)\s*=>\s*(\S+)\s*$`)

// maxAliasHops bounds alias-chain resolution. Alias tables are tiny in
// practice; a chain longer than this means the table is cyclic.
const maxAliasHops = 64

// ResolveAlias follows alias indirection in a version-manager listing and
// returns the concrete name the requested version currently refers to.
//
// Resolution rules:
//   - a name with no entry in the listing resolves to itself (not an alias)
//   - an entry whose target is the originally requested name terminates the
//     chain and resolves to that target (direct self-reference)
//   - otherwise the chain is followed link by link, so a floating name like
//     "latest" that points at a pinned alias still reaches the pinned version
//
// Later duplicate entries for the same name overwrite earlier ones.
// A listing that forms a cycle with no self-mapping node yields ErrAliasCycle.
func ResolveAlias(requested, aliasListing string) (string, error) {
	table := parseAliasListing(aliasListing)

	current := requested
	for i := 0; i < maxAliasHops; i++ {
		target, ok := table[current]
		if !ok {
			return current, nil
		}
		if target == requested {
			return target, nil
		}
		current = target
	}
	return "", fmt.Errorf("resolving %q: %w", requested, ErrAliasCycle)
}

func parseAliasListing(listing string) map[string]string {
	table := make(map[string]string)
	for _, line := range strings.Split(listing, "\n") {
		m := aliasLinePattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		table[m[1]] = m[2]
	}
	return table
}
