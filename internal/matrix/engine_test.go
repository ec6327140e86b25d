package matrix

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

type stubSelection struct{ path string }

func (s stubSelection) ManifestPath() string { return s.path }
func (s stubSelection) Environ() []string    { return []string{"MATRIXCI_MANIFEST=" + s.path} }

// stubEnv is a test double for the process-environment collaborator. It
// records which manifests were selected, in order.
type stubEnv struct {
	listing  string
	selected []string
}

func (e *stubEnv) CurrentAliasListing() string { return e.listing }

func (e *stubEnv) WithManifestSelected(path string, work func(Selection) bool) bool {
	e.selected = append(e.selected, path)
	return work(stubSelection{path: path})
}

func mustMatrix(t *testing.T, rows []*Row, active string, env Environment, opts Options) *Matrix {
	t.Helper()
	m, err := New(rows, active, env, opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return m
}

func passAll(*Row, Selection) bool { return true }

func TestRunEachRecordsSuccessAndSkip(t *testing.T) {
	r1 := NewRow("3.3.0", "a.manifest")
	r2 := NewRow("2.7.0", "b.manifest")
	env := &stubEnv{}
	var out bytes.Buffer
	m := mustMatrix(t, []*Row{r1, r2}, "3.3.0", env, Options{Writer: &out})

	if err := m.RunEach(passAll); err != nil {
		t.Fatalf("RunEach: %v", err)
	}

	results := m.Results()
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Row != r1 || results[0].Outcome != OutcomeSuccess {
		t.Errorf("row 1: got %v", results[0])
	}
	if results[1].Row != r2 || results[1].Outcome != OutcomeSkipped {
		t.Errorf("row 2: got %v", results[1])
	}
	if m.CompatibleCount() != 1 {
		t.Errorf("CompatibleCount() = %d, want 1", m.CompatibleCount())
	}
	if len(env.selected) != 1 || env.selected[0] != "a.manifest" {
		t.Errorf("selected manifests = %v, want [a.manifest]", env.selected)
	}
}

func TestRunEachSomeRowsFailed(t *testing.T) {
	r := NewRow("3.3.0", "a.manifest")
	var out bytes.Buffer
	m := mustMatrix(t, []*Row{r}, "3.3.0", &stubEnv{}, Options{Writer: &out})

	err := m.RunEach(func(*Row, Selection) bool { return false })
	if !errors.Is(err, ErrSomeRowsFailed) {
		t.Fatalf("expected ErrSomeRowsFailed, got %v", err)
	}
	if got := m.Results()[0].Outcome; got != OutcomeFailed {
		t.Errorf("outcome = %v, want FAILED", got)
	}
	if !strings.Contains(out.String(), "failed") {
		t.Errorf("report missing failure summary:\n%s", out.String())
	}
}

func TestRunEachNoCompatibleRuntime(t *testing.T) {
	rows := []*Row{NewRow("2.6.0", "a.manifest"), NewRow("2.7.0", "b.manifest")}
	var out bytes.Buffer
	m := mustMatrix(t, rows, "3.3.0", &stubEnv{}, Options{Writer: &out})

	worked := false
	err := m.RunEach(func(*Row, Selection) bool { worked = true; return true })
	if !errors.Is(err, ErrNoCompatibleRuntime) {
		t.Fatalf("expected ErrNoCompatibleRuntime, got %v", err)
	}
	if worked {
		t.Error("work must not run when no row is compatible")
	}

	// The full all-skipped table is still printed before the failure.
	for _, res := range m.Results() {
		if res.Outcome != OutcomeSkipped {
			t.Errorf("outcome = %v, want SKIPPED", res.Outcome)
		}
	}
	for _, want := range []string{"a.manifest", "b.manifest", "SKIPPED"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("report missing %q:\n%s", want, out.String())
		}
	}
}

func TestRunEachPreservesRowOrder(t *testing.T) {
	rows := []*Row{
		NewRow("2.7.0", "skip1.manifest"),
		NewRow("3.3.0", "run1.manifest"),
		NewRow("2.6.0", "skip2.manifest"),
		NewRow("3.3.0", "run2.manifest"),
	}
	m := mustMatrix(t, rows, "3.3.0", &stubEnv{}, Options{Silent: true})
	if err := m.RunEach(passAll); err != nil {
		t.Fatal(err)
	}

	results := m.Results()
	for i, res := range results {
		if res.Row != rows[i] {
			t.Fatalf("result %d is for %s, want %s", i, res.Row.Label(), rows[i].Label())
		}
	}
}

func TestRunEachAliasOverrideNote(t *testing.T) {
	env := &stubEnv{listing: "latest => 3.3.0\n"}
	var out bytes.Buffer
	m := mustMatrix(t, []*Row{NewRow("latest", "a.manifest")}, "3.3.0", env, Options{Writer: &out})

	if err := m.RunEach(passAll); err != nil {
		t.Fatal(err)
	}
	want := "version latest is an alias for version 3.3.0 in this environment."
	if !strings.Contains(out.String(), want) {
		t.Errorf("report missing override note %q:\n%s", want, out.String())
	}
}

func TestRunEachSilentStillFails(t *testing.T) {
	var out bytes.Buffer
	m := mustMatrix(t, []*Row{NewRow("2.7.0", "a.manifest")}, "3.3.0", &stubEnv{}, Options{Silent: true, Writer: &out})

	err := m.RunEach(passAll)
	if !errors.Is(err, ErrNoCompatibleRuntime) {
		t.Fatalf("expected ErrNoCompatibleRuntime, got %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("silent run produced output:\n%s", out.String())
	}
}

func TestRunEachAliasCycleAborts(t *testing.T) {
	env := &stubEnv{listing: "a => b\nb => c\nc => b\n"}
	m := mustMatrix(t, []*Row{NewRow("a", "a.manifest")}, "3.3.0", env, Options{Silent: true})

	err := m.RunEach(passAll)
	if !errors.Is(err, ErrAliasCycle) {
		t.Fatalf("expected ErrAliasCycle, got %v", err)
	}
}

func TestNewValidateOnConstruct(t *testing.T) {
	good := NewRow("3.3.0", writeManifest(t, "matrixci\n"))
	bad := NewRow("3.3.0", filepath.Join(t.TempDir(), "missing.manifest"))

	if _, err := New([]*Row{good}, "3.3.0", &stubEnv{}, Options{ValidateOnConstruct: true, Silent: true}); err != nil {
		t.Fatalf("valid rows must construct, got %v", err)
	}

	_, err := New([]*Row{good, bad}, "3.3.0", &stubEnv{}, Options{ValidateOnConstruct: true, Silent: true})
	if !errors.Is(err, ErrMissingManifest) {
		t.Fatalf("expected ErrMissingManifest, got %v", err)
	}
}
