package matrix

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/sync/errgroup"
)

// Options configures a Matrix.
type Options struct {
	// Silent suppresses all reporter output. Results and aggregates are still
	// computed and the terminal errors are still returned.
	Silent bool

	// Color enables ANSI tinting of the report.
	Color bool

	// ValidateOnConstruct runs every row's Validate during New and fails
	// construction if any row is invalid.
	ValidateOnConstruct bool

	// Writer receives the report. Defaults to os.Stdout.
	Writer io.Writer
}

// Matrix owns an ordered collection of rows and drives one run of the
// compatibility matrix: per-row compatibility checks, caller-supplied work for
// compatible rows inside a scoped manifest selection, outcome aggregation, and
// the summary report.
type Matrix struct {
	rows   []*Row
	active string
	env    Environment

	results         *resultList
	compatibleCount int
	allPassed       bool

	// overrides records, per active runtime version, which row-requested
	// version satisfied it. Feeds the alias-override report note only.
	overrides map[string]string

	reporter *reporter
}

// New builds a Matrix over rows for the given active runtime version.
// The active version is fixed for the life of the matrix; callers discover it
// from the environment (or override it for testing) before construction.
func New(rows []*Row, activeVersion string, env Environment, opts Options) (*Matrix, error) {
	if env == nil {
		return nil, fmt.Errorf("matrix: environment is required")
	}
	w := opts.Writer
	if w == nil {
		w = os.Stdout
	}

	if opts.ValidateOnConstruct {
		// Validation only reads manifest files, so rows can be checked
		// concurrently. Execution itself stays strictly sequential.
		var g errgroup.Group
		for _, row := range rows {
			g.Go(row.Validate)
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	return &Matrix{
		rows:      rows,
		active:    activeVersion,
		env:       env,
		results:   newResultList(),
		overrides: make(map[string]string),
		reporter:  newReporter(w, opts.Color, opts.Silent),
	}, nil
}

// RunEach invokes work once per row that is compatible with the active
// runtime, in row order, each invocation wrapped in the environment's scoped
// manifest selection. Incompatible rows are recorded as skipped.
//
// After all rows, the report is printed and RunEach returns
// ErrNoCompatibleRuntime if no row matched at all, ErrSomeRowsFailed if any
// compatible row's work returned false, or nil.
//
// A panic inside work is not recovered: the manifest selection is torn down
// and the panic propagates with no outcome recorded for that row.
func (m *Matrix) RunEach(work func(*Row, Selection) bool) error {
	m.allPassed = true

	for _, row := range m.rows {
		compatible, err := row.IsCompatibleWith(m.active, m.env.CurrentAliasListing())
		if err != nil {
			return fmt.Errorf("row %s: %w", row.Label(), err)
		}
		if !compatible {
			m.results.record(row, OutcomeSkipped)
			continue
		}

		m.compatibleCount++
		m.overrides[m.active] = row.RequestedVersion

		passed := m.env.WithManifestSelected(row.ManifestPath, func(sel Selection) bool {
			return work(row, sel)
		})
		m.allPassed = m.allPassed && passed
		if passed {
			m.results.record(row, OutcomeSuccess)
		} else {
			m.results.record(row, OutcomeFailed)
		}
	}

	return m.report()
}

// report prints the results table plus summary and maps the aggregates to the
// run's terminal error. The report is always emitted before a failure is
// returned so the summary stays visible on abnormal exits.
func (m *Matrix) report() error {
	results := m.results.all()
	m.reporter.printResults(results)

	var err error
	switch {
	case m.compatibleCount == 0:
		m.reporter.printSummary(summaryNoneCompatible)
		err = ErrNoCompatibleRuntime
	case !m.allPassed:
		m.reporter.printSummary(summarySomeFailed)
		err = ErrSomeRowsFailed
	default:
		m.reporter.printSummary(summaryAllPassed)
	}
	m.reporter.printOverrideNotes(m.overrides)
	return err
}

// Results returns a copy of the per-row outcomes in row order.
func (m *Matrix) Results() []RowResult {
	return m.results.all()
}

// CompatibleCount reports how many rows matched the active runtime during the
// last RunEach.
func (m *Matrix) CompatibleCount() int {
	return m.compatibleCount
}
