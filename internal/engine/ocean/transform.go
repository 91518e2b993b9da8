package ocean

import (
	"fmt"

	"golang.org/x/sync/errgroup"
)

// transform is one persistent inverse FFT: its staging input, plan and output.
type transform struct {
	in   []complex128
	plan inversePlan
	out  *Field
}

func newTransform(b Backend, g *Grid) (*transform, error) {
	plan, err := newInversePlan(b, g.M, g.N)
	if err != nil {
		return nil, err
	}
	return &transform{
		in:   make([]complex128, g.M*g.HalfN()),
		plan: plan,
		out:  NewField(g.M, g.N),
	}, nil
}

func (t *transform) run() *Field {
	t.plan.execute(t.out.Data, t.in)
	return t.out
}

// Engine owns the three transform plans (height, X chop, Z chop) for one grid.
// It is built once per settings reset and reused every tick.
type Engine struct {
	grid     *Grid
	backend  Backend
	parallel bool

	height *transform
	chopX  *transform
	chopZ  *transform

	// kx/k and kz/k over the stored half grid, zero where k = 0.
	dirX []float64
	dirZ []float64
}

// NewEngine builds the transform plans for g. Construction fails rather than
// leaving the engine with missing plans.
func NewEngine(g *Grid, backend Backend, parallel bool) (*Engine, error) {
	if g == nil {
		return nil, fmt.Errorf("%w: nil grid", ErrInvalidGrid)
	}

	e := &Engine{grid: g, backend: backend, parallel: parallel}

	var err error
	if e.height, err = newTransform(backend, g); err != nil {
		return nil, fmt.Errorf("height plan: %w", err)
	}
	if e.chopX, err = newTransform(backend, g); err != nil {
		return nil, fmt.Errorf("chop x plan: %w", err)
	}
	if e.chopZ, err = newTransform(backend, g); err != nil {
		return nil, fmt.Errorf("chop z plan: %w", err)
	}

	half := g.HalfN()
	e.dirX = make([]float64, g.M*half)
	e.dirZ = make([]float64, g.M*half)
	for i := 0; i < g.M; i++ {
		for j := 0; j < half; j++ {
			k := g.K(i, j)
			if k == 0 {
				continue
			}
			e.dirX[i*half+j] = g.Kx(i) / k
			e.dirZ[i*half+j] = g.Kz(j) / k
		}
	}

	return e, nil
}

// Backend returns the FFT backend the plans were built with.
func (e *Engine) Backend() Backend {
	return e.backend
}

// TransformHeight inverse-transforms scale·hTilde.
func (e *Engine) TransformHeight(hTilde []complex128, scale float64) *Field {
	s := complex(scale, 0)
	for idx, h := range hTilde[:len(e.height.in)] {
		e.height.in[idx] = s * h
	}
	return e.height.run()
}

// TransformChopX inverse-transforms -i·scale·chopAmount·hTilde·kx/k.
func (e *Engine) TransformChopX(hTilde []complex128, scale, chopAmount float64) *Field {
	return e.chop(e.chopX, e.dirX, hTilde, scale*chopAmount)
}

// TransformChopZ inverse-transforms -i·scale·chopAmount·hTilde·kz/k.
func (e *Engine) TransformChopZ(hTilde []complex128, scale, chopAmount float64) *Field {
	return e.chop(e.chopZ, e.dirZ, hTilde, scale*chopAmount)
}

func (e *Engine) chop(t *transform, dir []float64, hTilde []complex128, amount float64) *Field {
	for idx := range t.in {
		t.in[idx] = complex(0, -amount*dir[idx]) * hTilde[idx]
	}
	return t.run()
}

// Transform runs all three transforms against the same hTilde snapshot. hTilde
// is only read, so with parallel set the transforms run concurrently.
func (e *Engine) Transform(hTilde []complex128, scale, chopAmount float64) *Fields {
	if len(hTilde) < len(e.height.in) {
		panic(fmt.Sprintf("ocean: hTilde has %d cells, want %d", len(hTilde), len(e.height.in)))
	}

	if !e.parallel {
		return &Fields{
			Height: e.TransformHeight(hTilde, scale),
			ChopX:  e.TransformChopX(hTilde, scale, chopAmount),
			ChopZ:  e.TransformChopZ(hTilde, scale, chopAmount),
		}
	}

	var (
		eg     errgroup.Group
		fields Fields
	)
	eg.Go(func() error {
		fields.Height = e.TransformHeight(hTilde, scale)
		return nil
	})
	eg.Go(func() error {
		fields.ChopX = e.TransformChopX(hTilde, scale, chopAmount)
		return nil
	})
	eg.Go(func() error {
		fields.ChopZ = e.TransformChopZ(hTilde, scale, chopAmount)
		return nil
	})
	if err := eg.Wait(); err != nil {
		panic(err)
	}

	return &fields
}
