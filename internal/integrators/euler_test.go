package integrators

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/eulerlab/internal/dynamo"
)

func TestSingleStep(t *testing.T) {
	x := dynamo.State{X: 1.0, V: 0.5}
	h := 0.1

	tests := []struct {
		integ dynamo.Integrator
		want  dynamo.State
	}{
		{NewExplicit(), dynamo.State{X: 1.05, V: 0.4}},
		{NewImplicit(), dynamo.State{X: 1.05 / 1.01, V: 0.4 / 1.01}},
		{NewSymplectic(), dynamo.State{X: 1.05, V: -0.1 + 0.5 - 0.005}},
	}

	for _, tt := range tests {
		t.Run(tt.integ.Name(), func(t *testing.T) {
			got := tt.integ.Step(x, h)
			if math.Abs(got.X-tt.want.X) > 1e-12 || math.Abs(got.V-tt.want.V) > 1e-12 {
				t.Errorf("Step(%v) = %v, want %v", x, got, tt.want)
			}
		})
	}
}

func TestExplicitFollowsDerivative(t *testing.T) {
	x := dynamo.State{X: -0.7, V: 2.5}
	h := 0.2

	got := NewExplicit().Step(x, h)
	want := dynamo.State{X: x.X + h*x.V, V: x.V - h*x.X}
	if got != want {
		t.Errorf("Step(%v) = %v, want %v", x, got, want)
	}
}

func TestSymplecticUsesUpdatedPosition(t *testing.T) {
	x := dynamo.State{X: 0.3, V: -1.2}
	h := 0.05

	got := NewSymplectic().Step(x, h)
	xNew := x.X + h*x.V
	vNew := x.V - h*xNew

	if math.Abs(got.V-vNew) > 1e-14 {
		t.Errorf("velocity should use the new position: got %v, want %v", got.V, vNew)
	}
}

func TestSequenceStartsAtInitialState(t *testing.T) {
	x0 := dynamo.State{X: 0.7, V: -0.2}
	for _, name := range Names() {
		integ, err := ByName(name)
		if err != nil {
			t.Fatalf("ByName(%s): %v", name, err)
		}
		states := Take(Sequence(integ, x0, 0.1), 3)
		if len(states) != 3 {
			t.Fatalf("%s: expected 3 states, got %d", name, len(states))
		}
		if states[0] != x0 {
			t.Errorf("%s: first state %v, want %v", name, states[0], x0)
		}
		if states[1] != integ.Step(x0, 0.1) {
			t.Errorf("%s: second state should be one step from x0", name)
		}
	}
}

func TestSequenceIsRestartable(t *testing.T) {
	seq := Sequence(NewExplicit(), dynamo.State{X: 1}, 0.01)

	a := Take(seq, 50)
	b := Take(seq, 50)

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("state %d differs between runs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestTakeBounds(t *testing.T) {
	seq := Sequence(NewImplicit(), dynamo.State{X: 1}, 0.1)

	if got := Take(seq, 0); len(got) != 0 {
		t.Errorf("Take(0) returned %d states", len(got))
	}
	if got := Take(seq, -4); len(got) != 0 {
		t.Errorf("Take(-4) returned %d states", len(got))
	}
	if got := Take(seq, 1000); len(got) != 1000 {
		t.Errorf("Take(1000) returned %d states", len(got))
	}
}

func TestByNameUnknown(t *testing.T) {
	_, err := ByName("rk4")
	if !errors.Is(err, dynamo.ErrUnknownMethod) {
		t.Errorf("expected ErrUnknownMethod, got %v", err)
	}
}

func TestEnergyBehaviour(t *testing.T) {
	x0 := dynamo.State{X: 1.0, V: 0.0}
	h := 0.01
	steps := 1000

	energy := func(s dynamo.State) float64 { return s.X*s.X + s.V*s.V }

	explicit := Take(Sequence(NewExplicit(), x0, h), steps)
	for i := 1; i < len(explicit); i++ {
		if energy(explicit[i]) <= energy(explicit[i-1]) {
			t.Fatalf("explicit energy should grow monotonically, step %d: %v -> %v",
				i, energy(explicit[i-1]), energy(explicit[i]))
		}
	}
	if last := energy(explicit[steps-1]); last < 1.1 {
		t.Errorf("explicit energy should drift away from 1.0, got %f", last)
	}

	symplectic := Take(Sequence(NewSymplectic(), x0, h), steps)
	for i, s := range symplectic {
		if e := energy(s); math.Abs(e-1.0) > h {
			t.Fatalf("symplectic energy left the 1±h band at step %d: %f", i, e)
		}
	}

	implicit := Take(Sequence(NewImplicit(), x0, h), steps)
	if last := energy(implicit[steps-1]); last > 0.95 {
		t.Errorf("implicit energy should decay, got %f", last)
	}
}
