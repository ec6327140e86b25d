package matrix

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

type summaryKind int

const (
	summaryAllPassed summaryKind = iota
	summarySomeFailed
	summaryNoneCompatible
)

// reporter renders the per-row results table and the terminal summary. It is
// owned by the Matrix and carries no state beyond output configuration; all
// rendering is done by pure helpers so it can be tested without an engine.
type reporter struct {
	w      io.Writer
	silent bool

	bold    *color.Color
	success *color.Color
	failure *color.Color
	skipped *color.Color
}

func newReporter(w io.Writer, colorEnabled, silent bool) *reporter {
	r := &reporter{
		w:       w,
		silent:  silent,
		bold:    color.New(color.Bold),
		success: color.New(color.FgGreen),
		failure: color.New(color.FgRed),
		skipped: color.New(color.FgYellow),
	}
	if !colorEnabled {
		for _, c := range []*color.Color{r.bold, r.success, r.failure, r.skipped} {
			c.DisableColor()
		}
	}
	return r
}

func (r *reporter) outcomeColor(o Outcome) *color.Color {
	switch o {
	case OutcomeSuccess:
		return r.success
	case OutcomeFailed:
		return r.failure
	default:
		return r.skipped
	}
}

func (r *reporter) printResults(results []RowResult) {
	if r.silent {
		return
	}
	r.bold.Fprintln(r.w, "Results:")
	manifestWidth, versionWidth := columnWidths(results)
	for _, res := range results {
		fmt.Fprintf(r.w, "%*s  %*s  ", manifestWidth, res.Row.ManifestPath, versionWidth, res.Row.RequestedVersion)
		r.outcomeColor(res.Outcome).Fprintln(r.w, string(res.Outcome))
	}
}

func (r *reporter) printSummary(kind summaryKind) {
	if r.silent {
		return
	}
	line := renderSummary(kind)
	if kind == summaryAllPassed {
		r.success.Fprintln(r.w, line)
	} else {
		r.failure.Fprintln(r.w, line)
	}
}

func (r *reporter) printOverrideNotes(overrides map[string]string) {
	if r.silent {
		return
	}
	for _, note := range renderOverrideNotes(overrides) {
		r.skipped.Fprintln(r.w, note)
	}
}

// columnWidths returns the widths the manifest and version columns are padded
// to: the widest manifest path and widest requested version across all rows.
func columnWidths(results []RowResult) (manifest, version int) {
	for _, res := range results {
		if n := len(res.Row.ManifestPath); n > manifest {
			manifest = n
		}
		if n := len(res.Row.RequestedVersion); n > version {
			version = n
		}
	}
	return manifest, version
}

func renderSummary(kind summaryKind) string {
	switch kind {
	case summarySomeFailed:
		return "Some rows of the compatibility matrix failed."
	case summaryNoneCompatible:
		return "No row of the compatibility matrix matches the active runtime version."
	default:
		return "All compatible rows of the matrix passed."
	}
}

// renderOverrideNotes explains alias indirection after the summary: one note
// per (active, requested) pair where an alias name, not the concrete version,
// was what the row declared.
func renderOverrideNotes(overrides map[string]string) []string {
	var notes []string
	for active, requested := range overrides {
		if active == requested {
			continue
		}
		notes = append(notes, fmt.Sprintf("version %s is an alias for version %s in this environment.", requested, active))
	}
	return notes
}
