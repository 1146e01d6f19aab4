package integrators

import (
	"fmt"
	"sort"

	"github.com/san-kum/schrodinger/internal/wave"
)

type factory func(*wave.Grid, wave.Potential, wave.Units) wave.Propagator

var schemes = map[string]factory{
	"numerov": func(g *wave.Grid, p wave.Potential, u wave.Units) wave.Propagator { return NewNumerov(g, p, u) },
	"stormer": func(g *wave.Grid, p wave.Potential, u wave.Units) wave.Propagator { return NewStormer(g, p, u) },
}

// New builds the named propagation scheme.
func New(name string, g *wave.Grid, pot wave.Potential, units wave.Units) (wave.Propagator, error) {
	fn, ok := schemes[name]
	if !ok {
		return nil, fmt.Errorf("unknown scheme: %s (available: %v)", name, Names())
	}
	return fn(g, pot, units), nil
}

func Names() []string {
	names := make([]string, 0, len(schemes))
	for name := range schemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
