package potential

import "fmt"

// DoubleWell is the bistable potential V = A(x² - B)².
// Minima sit at ±sqrt(B) with barrier height A·B² at the origin.
type DoubleWell struct {
	A, B float64
}

func NewDoubleWell() *DoubleWell {
	return &DoubleWell{A: 1.0, B: 1.0}
}

func (d *DoubleWell) Evaluate(x float64) float64 {
	u := x*x - d.B
	return d.A * u * u
}

func (d *DoubleWell) Sample(xs []float64) []float64 { return sample(xs, d.Evaluate) }

func (d *DoubleWell) Barrier() float64 { return d.A * d.B * d.B }

func (d *DoubleWell) Params() map[string]float64 {
	return map[string]float64{"a": d.A, "b": d.B}
}

func (d *DoubleWell) SetParam(name string, v float64) error {
	switch name {
	case "a":
		d.A = v
	case "b":
		d.B = v
	default:
		return fmt.Errorf("%w: doublewell has no %q", ErrUnknownParam, name)
	}
	return nil
}
