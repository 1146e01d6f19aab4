package potential

import (
	"fmt"
	"sort"

	"github.com/san-kum/schrodinger/internal/wave"
)

type Registry struct {
	potentials map[string]func() wave.Potential
	info       map[string]string
}

func NewRegistry() *Registry {
	r := &Registry{
		potentials: make(map[string]func() wave.Potential),
		info:       make(map[string]string),
	}

	r.Register("harmonic", "V = k·x²", func() wave.Potential { return NewHarmonic() })
	r.Register("hydrogen", "V = -z/r + l(l+1)/(2r²)", func() wave.Potential { return NewHydrogen() })
	r.Register("doublewell", "V = a(x² - b)²", func() wave.Potential { return NewDoubleWell() })
	r.Register("squarewell", "V = -depth for |x| < width/2", func() wave.Potential { return NewSquareWell() })

	return r
}

func (r *Registry) Register(name, description string, fn func() wave.Potential) {
	r.potentials[name] = fn
	r.info[name] = description
}

// Get builds the named potential and applies params on top of its defaults.
func (r *Registry) Get(name string, params map[string]float64) (wave.Potential, error) {
	fn, ok := r.potentials[name]
	if !ok {
		return nil, fmt.Errorf("unknown potential: %s", name)
	}
	p := fn()
	if len(params) == 0 {
		return p, nil
	}

	c, ok := p.(Configurable)
	if !ok {
		return nil, fmt.Errorf("potential %s takes no parameters", name)
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := c.SetParam(k, params[k]); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (r *Registry) Describe(name string) string { return r.info[name] }

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.potentials))
	for name := range r.potentials {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
