package matrix

// Outcome is the terminal state of one matrix row.
type Outcome string

const (
	OutcomeSuccess Outcome = "SUCCESS"
	OutcomeFailed  Outcome = "FAILED"
	OutcomeSkipped Outcome = "SKIPPED"
)

// RowResult pairs a row with its recorded outcome.
type RowResult struct {
	Row     *Row
	Outcome Outcome
}

// resultList is an insertion-ordered row → outcome map. Iteration order is
// the order outcomes were recorded, which RunEach guarantees equals row
// construction order.
type resultList struct {
	entries []RowResult
	index   map[*Row]int
}

func newResultList() *resultList {
	return &resultList{index: make(map[*Row]int)}
}

func (l *resultList) record(row *Row, outcome Outcome) {
	if i, ok := l.index[row]; ok {
		l.entries[i].Outcome = outcome
		return
	}
	l.index[row] = len(l.entries)
	l.entries = append(l.entries, RowResult{Row: row, Outcome: outcome})
}

func (l *resultList) all() []RowResult {
	out := make([]RowResult, len(l.entries))
	copy(out, l.entries)
	return out
}
