package report

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/san-kum/schrodinger/internal/analysis"
	"github.com/san-kum/schrodinger/internal/storage"
	"github.com/san-kum/schrodinger/internal/wave"
)

const (
	statusOK   = "✅"
	statusFail = "❌"
	statusNone = "-"
)

// StateRow is one line of a spectrum table. Exact is nil when the
// potential has no closed form.
type StateRow struct {
	Nodes         int
	Energy        float64
	Exact         *float64
	NodeLocations []float64
}

// BracketRow records a bracketing attempt. Expected is NaN when no
// reference energy is known.
type BracketRow struct {
	Target   int
	Expected float64
	Bracket  wave.Bracket
	Err      error
}

// NodeRow records the node count of the wavefunction at a trial energy.
// A negative Expected means no reference count is known.
type NodeRow struct {
	Energy    float64
	Expected  int
	Actual    int
	Locations []float64
}

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetCenterSeparator("|")
	table.SetAutoWrapText(false)
	return table
}

func formatLocations(locs []float64) string {
	parts := make([]string, len(locs))
	for i, x := range locs {
		parts[i] = fmt.Sprintf("%.4f", x)
	}
	return strings.Join(parts, ", ")
}

// SpectrumTable lists solved states, marking each against its exact level
// when |E - exact| <= tol.
func SpectrumTable(w io.Writer, rows []StateRow, tol float64) {
	table := newTable(w, []string{"Nodes", "Energy", "Exact", "Error", "Node Locations", "Status"})
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_CENTER, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER,
	})

	for _, r := range rows {
		exact, diff, status := statusNone, statusNone, statusNone
		if r.Exact != nil {
			d := r.Energy - *r.Exact
			exact = fmt.Sprintf("%.6f", *r.Exact)
			diff = fmt.Sprintf("%.2e", d)
			status = statusFail
			if math.Abs(d) <= tol {
				status = statusOK
			}
		}
		table.Append([]string{
			fmt.Sprintf("%d", r.Nodes),
			fmt.Sprintf("%.8f", r.Energy),
			exact,
			diff,
			formatLocations(r.NodeLocations),
			status,
		})
	}
	table.Render()
}

func BracketTable(w io.Writer, rows []BracketRow) {
	table := newTable(w, []string{"Target Nodes", "Expected E", "Bracket Found", "Status"})
	for _, r := range rows {
		expected, found, status := statusNone, "FAILED", statusFail
		known := !math.IsNaN(r.Expected)
		if known {
			expected = fmt.Sprintf("%.4f", r.Expected)
		}
		if r.Err == nil {
			found = fmt.Sprintf("[%.4f, %.4f]", r.Bracket.Lo, r.Bracket.Hi)
			switch {
			case !known:
				status = statusNone
			case r.Bracket.Contains(r.Expected):
				status = statusOK
			}
		}
		table.Append([]string{fmt.Sprintf("%d", r.Target), expected, found, status})
	}
	table.Render()
}

func NodesTable(w io.Writer, rows []NodeRow) {
	table := newTable(w, []string{"Energy", "Expected Nodes", "Actual Nodes", "Node Locations", "Status"})
	for _, r := range rows {
		expected, status := statusNone, statusNone
		if r.Expected >= 0 {
			expected, status = fmt.Sprintf("%d", r.Expected), statusFail
			if r.Actual == r.Expected {
				status = statusOK
			}
		}
		table.Append([]string{
			fmt.Sprintf("%g", r.Energy),
			expected,
			fmt.Sprintf("%d", r.Actual),
			formatLocations(r.Locations),
			status,
		})
	}
	table.Render()
}

// ScanTable lists the node-count plateaus of a scan with the bracket each
// plateau edge suggests.
func ScanTable(w io.Writer, plateaus []analysis.Plateau, suggestions []analysis.Suggestion) {
	byNodes := make(map[int]wave.Bracket, len(suggestions))
	for _, s := range suggestions {
		byNodes[s.Nodes] = s.Bracket
	}

	table := newTable(w, []string{"Nodes", "E From", "E To", "Samples", "Suggested Bracket"})
	for _, p := range plateaus {
		suggested := statusNone
		if b, ok := byNodes[p.Nodes]; ok && b.Lo == p.EHi {
			suggested = b.String()
		}
		table.Append([]string{
			fmt.Sprintf("%d", p.Nodes),
			fmt.Sprintf("%.6f", p.ELo),
			fmt.Sprintf("%.6f", p.EHi),
			fmt.Sprintf("%d", p.Count),
			suggested,
		})
	}
	table.Render()
}

// SweepTable prints one row per parameter value with its energies.
func SweepTable(w io.Writer, param string, points []analysis.SweepPoint) {
	cols := 0
	for _, p := range points {
		cols = max(cols, len(p.Energies))
	}
	header := []string{param}
	for i := 0; i < cols; i++ {
		header = append(header, fmt.Sprintf("E%d", i))
	}

	table := newTable(w, header)
	for _, p := range points {
		row := []string{fmt.Sprintf("%g", p.Param)}
		for i := 0; i < cols; i++ {
			cell := statusNone
			if i < len(p.Energies) {
				cell = fmt.Sprintf("%.6f", p.Energies[i])
			}
			row = append(row, cell)
		}
		table.Append(row)
	}
	table.Render()
}

// CompareRow is one state solved with one propagation scheme.
type CompareRow struct {
	Scheme  string
	Nodes   int
	Energy  float64
	Exact   *float64
	Elapsed time.Duration
	Err     error
}

func CompareTable(w io.Writer, rows []CompareRow) {
	table := newTable(w, []string{"Scheme", "Nodes", "Energy", "Error", "Time (ms)"})
	for _, r := range rows {
		if r.Err != nil {
			table.Append([]string{r.Scheme, fmt.Sprintf("%d", r.Nodes), "FAILED", r.Err.Error(), statusNone})
			continue
		}
		diff := statusNone
		if r.Exact != nil {
			diff = fmt.Sprintf("%.2e", r.Energy-*r.Exact)
		}
		table.Append([]string{
			r.Scheme,
			fmt.Sprintf("%d", r.Nodes),
			fmt.Sprintf("%.8f", r.Energy),
			diff,
			fmt.Sprintf("%.2f", float64(r.Elapsed.Microseconds())/1000),
		})
	}
	table.Render()
}

func RunsTable(w io.Writer, runs []storage.RunMetadata) {
	table := newTable(w, []string{"ID", "Potential", "Time", "Units", "Scheme", "Points", "Energies"})
	for _, run := range runs {
		energies := make([]string, len(run.States))
		for i, st := range run.States {
			energies[i] = fmt.Sprintf("%.6f", st.Energy)
		}
		table.Append([]string{
			run.ID,
			run.Potential,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Units,
			run.Scheme,
			fmt.Sprintf("%d", run.Grid.Points),
			strings.Join(energies, ", "),
		})
	}
	table.Render()
}
