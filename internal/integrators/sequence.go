package integrators

import (
	"fmt"
	"iter"
	"sort"

	"github.com/san-kum/eulerlab/internal/dynamo"
)

// Sequence yields x0 followed by successive applications of integ.Step.
// The sequence never ends on its own; consumers stop ranging after the
// number of states they need. Each call starts a fresh run from x0.
func Sequence(integ dynamo.Integrator, x0 dynamo.State, h float64) iter.Seq[dynamo.State] {
	return func(yield func(dynamo.State) bool) {
		x := x0
		for {
			if !yield(x) {
				return
			}
			x = integ.Step(x, h)
		}
	}
}

// Take collects the first n states of seq. n <= 0 yields an empty slice.
func Take(seq iter.Seq[dynamo.State], n int) []dynamo.State {
	if n <= 0 {
		return []dynamo.State{}
	}
	out := make([]dynamo.State, 0, n)
	for x := range seq {
		out = append(out, x)
		if len(out) == n {
			break
		}
	}
	return out
}

var registry = map[string]func() dynamo.Integrator{
	"explicit":   func() dynamo.Integrator { return NewExplicit() },
	"implicit":   func() dynamo.Integrator { return NewImplicit() },
	"symplectic": func() dynamo.Integrator { return NewSymplectic() },
}

func ByName(name string) (dynamo.Integrator, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", dynamo.ErrUnknownMethod, name)
	}
	return fn(), nil
}

// Names returns the registered methods in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
