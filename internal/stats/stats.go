package stats

import (
	"fmt"
	"strings"

	"collision-sim/internal/material"
	"collision-sim/internal/physics"
)

// DefaultHistory is the number of ticks kept by a Reporter.
const DefaultHistory = 240

// Row is one material's counts for the current tick.
type Row struct {
	Material  material.Material
	Active    int
	Colliding int
}

// Reporter turns AggregateByMaterial results into rows for the bar chart and keeps a rolling
// history of total colliding counts. It never touches the world itself.
type Reporter struct {
	rows    [len(material.All)]Row
	history []int
	next    int
	full    bool
	peak    int
}

// NewReporter keeps the last n totals; n <= 0 uses DefaultHistory.
func NewReporter(n int) *Reporter {
	if n <= 0 {
		n = DefaultHistory
	}
	r := &Reporter{history: make([]int, n)}
	for i, m := range material.All {
		r.rows[i].Material = m
	}
	return r
}

// Record stores one tick's aggregate. Materials missing from agg count as zero.
func (r *Reporter) Record(agg map[material.Material]physics.Counts) {
	total := 0
	for i, m := range material.All {
		c := agg[m]
		r.rows[i].Active = c.Active
		r.rows[i].Colliding = c.Colliding
		total += c.Colliding
	}
	r.history[r.next] = total
	r.next++
	if r.next == len(r.history) {
		r.next = 0
		r.full = true
	}
	if total > r.peak {
		r.peak = total
	}
}

// Rows returns the latest per-material counts in legend order.
func (r *Reporter) Rows() []Row {
	out := make([]Row, len(r.rows))
	copy(out, r.rows[:])
	return out
}

// History returns the recorded totals, oldest first.
func (r *Reporter) History() []int {
	if !r.full {
		return append([]int(nil), r.history[:r.next]...)
	}
	out := make([]int, 0, len(r.history))
	out = append(out, r.history[r.next:]...)
	return append(out, r.history[:r.next]...)
}

// Peak is the largest total seen since the reporter was created or Reset.
func (r *Reporter) Peak() int {
	return r.peak
}

// MaxActive is the largest active count in the latest rows, at least 1, for scaling bars.
func (r *Reporter) MaxActive() int {
	m := 1
	for _, row := range r.rows {
		m = max(m, row.Active)
	}
	return m
}

// Reset clears the history and peak.
func (r *Reporter) Reset() {
	clear(r.history)
	r.next, r.full, r.peak = 0, false, 0
}

// Summary formats rows as "iron 1/2 wood 0/1 ..." (colliding/active).
func Summary(rows []Row) string {
	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s %d/%d", row.Material, row.Colliding, row.Active)
	}
	return b.String()
}
