package analysis

import (
	"github.com/san-kum/schrodinger/internal/shooting"
	"github.com/san-kum/schrodinger/internal/wave"
)

// Plateau is a run of consecutive scan energies sharing one node count.
type Plateau struct {
	Nodes int
	ELo   float64
	EHi   float64
	Count int
}

// Suggestion is a bracket for the state with Nodes nodes: the step where
// the scan leaves that plateau.
type Suggestion struct {
	Nodes   int
	Bracket wave.Bracket
}

// IsMonotone reports whether node counts never decrease along the scan.
func IsMonotone(points []shooting.ScanPoint) bool {
	for i := 1; i < len(points); i++ {
		if points[i].Nodes < points[i-1].Nodes {
			return false
		}
	}
	return true
}

func Plateaus(points []shooting.ScanPoint) []Plateau {
	var out []Plateau
	for _, p := range points {
		if n := len(out); n > 0 && out[n-1].Nodes == p.Nodes {
			out[n-1].EHi = p.Energy
			out[n-1].Count++
			continue
		}
		out = append(out, Plateau{Nodes: p.Nodes, ELo: p.Energy, EHi: p.Energy, Count: 1})
	}
	return out
}

// SuggestBrackets returns one bracket per plateau edge, in energy order.
// Each matches what BracketEigenvalue finds for that plateau's count when
// the count first appears there.
func SuggestBrackets(points []shooting.ScanPoint) []Suggestion {
	var out []Suggestion
	seen := make(map[int]bool)
	for i := 1; i < len(points); i++ {
		prev, cur := points[i-1], points[i]
		if prev.Nodes == cur.Nodes || seen[prev.Nodes] {
			continue
		}
		seen[prev.Nodes] = true
		out = append(out, Suggestion{
			Nodes:   prev.Nodes,
			Bracket: wave.Bracket{Lo: prev.Energy, Hi: cur.Energy},
		})
	}
	return out
}
