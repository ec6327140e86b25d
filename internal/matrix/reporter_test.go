package matrix

import (
	"bytes"
	"strings"
	"testing"
)

func TestColumnWidths(t *testing.T) {
	results := []RowResult{
		{Row: NewRow("3.3.0", "deps.manifest"), Outcome: OutcomeSuccess},
		{Row: NewRow("latest-stable", "deps-legacy.manifest"), Outcome: OutcomeSkipped},
	}
	manifest, version := columnWidths(results)
	if manifest != len("deps-legacy.manifest") {
		t.Errorf("manifest width = %d, want %d", manifest, len("deps-legacy.manifest"))
	}
	if version != len("latest-stable") {
		t.Errorf("version width = %d, want %d", version, len("latest-stable"))
	}
}

func TestPrintResultsPadsColumns(t *testing.T) {
	var out bytes.Buffer
	r := newReporter(&out, false, false)
	r.printResults([]RowResult{
		{Row: NewRow("3.3.0", "deps.manifest"), Outcome: OutcomeSuccess},
		{Row: NewRow("latest", "deps-legacy.manifest"), Outcome: OutcomeFailed},
	})

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3 (title + 2 rows):\n%s", len(lines), out.String())
	}
	if lines[0] != "Results:" {
		t.Errorf("title = %q", lines[0])
	}
	want1 := "       deps.manifest   3.3.0  SUCCESS"
	want2 := "deps-legacy.manifest  latest  FAILED"
	if lines[1] != want1 {
		t.Errorf("row 1 = %q, want %q", lines[1], want1)
	}
	if lines[2] != want2 {
		t.Errorf("row 2 = %q, want %q", lines[2], want2)
	}
}

func TestRenderSummary(t *testing.T) {
	tests := []struct {
		kind summaryKind
		want string
	}{
		{summaryAllPassed, "All compatible rows of the matrix passed."},
		{summarySomeFailed, "Some rows of the compatibility matrix failed."},
		{summaryNoneCompatible, "No row of the compatibility matrix matches the active runtime version."},
	}
	for _, tt := range tests {
		if got := renderSummary(tt.kind); got != tt.want {
			t.Errorf("renderSummary(%d) = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestRenderOverrideNotes(t *testing.T) {
	notes := renderOverrideNotes(map[string]string{"3.3.0": "latest"})
	if len(notes) != 1 {
		t.Fatalf("got %d notes, want 1", len(notes))
	}
	want := "version latest is an alias for version 3.3.0 in this environment."
	if notes[0] != want {
		t.Errorf("note = %q, want %q", notes[0], want)
	}

	if notes := renderOverrideNotes(map[string]string{"3.3.0": "3.3.0"}); len(notes) != 0 {
		t.Errorf("identical pair must render no note, got %v", notes)
	}
}

func TestSilentReporterWritesNothing(t *testing.T) {
	var out bytes.Buffer
	r := newReporter(&out, true, true)
	r.printResults([]RowResult{{Row: NewRow("3.3.0", "deps.manifest"), Outcome: OutcomeSuccess}})
	r.printSummary(summaryAllPassed)
	r.printOverrideNotes(map[string]string{"3.3.0": "latest"})
	if out.Len() != 0 {
		t.Errorf("silent reporter wrote output:\n%s", out.String())
	}
}
