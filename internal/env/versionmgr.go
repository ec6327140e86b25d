package env

import (
	"os/exec"
	"strings"
)

// AliasLister yields the raw alias listing of the environment's version
// manager. Implementations come in two variants: a manager-backed one when
// the tool is installed, and noAliases when it is not. Callers probe via
// DetectAliasLister once per use rather than caching the capability globally.
type AliasLister interface {
	AliasListing() string
}

// CurrentVersioner is implemented by alias listers that can also report which
// runtime version is currently active.
type CurrentVersioner interface {
	CurrentVersion() string
}

// DefaultManagerTool is the version-manager executable probed for on PATH.
const DefaultManagerTool = "rvm"

// DetectAliasLister probes for the version manager and returns the matching
// AliasLister variant.
func DetectAliasLister() AliasLister {
	return DetectAliasListerTool(DefaultManagerTool)
}

func DetectAliasListerTool(tool string) AliasLister {
	if _, err := exec.LookPath(tool); err != nil {
		return noAliases{}
	}
	return &managerAliases{tool: tool}
}

// managerAliases shells out to the version manager. Output lines look like
// "NAME => TARGET"; parsing is the alias resolver's job, this just fetches
// the text.
type managerAliases struct {
	tool string
}

func (m *managerAliases) AliasListing() string {
	out, err := exec.Command(m.tool, "alias", "list").Output()
	if err != nil {
		// A manager that is installed but cannot list aliases behaves like
		// one with no aliases at all.
		return ""
	}
	return string(out)
}

func (m *managerAliases) CurrentVersion() string {
	out, err := exec.Command(m.tool, "current").Output()
	if err != nil {
		return ""
	}
	return normalizeVersion(string(out))
}

// noAliases is the variant for environments without the version manager.
type noAliases struct{}

func (noAliases) AliasListing() string { return "" }

// normalizeVersion trims manager decoration from a "current" line, e.g.
// "ruby-3.2.9" becomes "3.2.9".
func normalizeVersion(raw string) string {
	v := strings.TrimSpace(raw)
	if v == "" {
		return ""
	}
	// Only the first field matters; some managers append "(default)" etc.
	v = strings.Fields(v)[0]
	if lang, rest, ok := strings.Cut(v, "-"); ok && isAlpha(lang) && startsWithDigit(rest) {
		return rest
	}
	return v
}

func startsWithDigit(s string) bool {
	return s != "" && s[0] >= '0' && s[0] <= '9'
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}
