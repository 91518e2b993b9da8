package ocean

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGrid(t *testing.T, m, n int) *Grid {
	t.Helper()
	g, err := NewGrid(m, n, 0, 0)
	require.NoError(t, err)
	return g
}

func TestPhillipsNoDC(t *testing.T) {
	assert.Equal(t, 0.0, Phillips(DefaultSettings(), 0, 0))
}

func TestPhillipsDampsReflections(t *testing.T) {
	s := DefaultSettings()
	s.WindDirection = 0 // wind along +X

	kx, kz := 0.5, 0.0
	with := Phillips(s, kx, kz)
	against := Phillips(s, -kx, -kz)

	assert.Greater(t, with, 0.0)
	assert.Greater(t, with, against)
	// |cos θ|^2 with cos θ damped by 0.5
	assert.InDelta(t, with*0.25, against, with*1e-12)

	s.ReflectionDamping = 1
	assert.InDelta(t, Phillips(s, kx, kz), Phillips(s, -kx, -kz), 1e-15)
}

func TestPhillipsFormula(t *testing.T) {
	s := DefaultSettings()
	s.WindDirection = 0
	kx, kz := 0.3, 0.4 // |k| = 0.5, cos θ = 0.6

	k2 := 0.25
	L := s.LargestWavelength()
	want := s.Amplitude * math.Exp(-1/(k2*L*L)) * math.Exp(-k2*s.ShortestWavelength*s.ShortestWavelength) *
		math.Pow(0.6, s.WindAlignment) / (k2 * k2)

	assert.InDelta(t, want, Phillips(s, kx, kz), want*1e-12)
}

func TestPhillipsCrossWindIsZero(t *testing.T) {
	s := DefaultSettings()
	s.WindDirection = 0
	assert.Equal(t, 0.0, Phillips(s, 0, 0.7))
}

func TestOmega(t *testing.T) {
	assert.Equal(t, 0.0, Omega(0, 200))

	// Deep water: tanh(k·d) → 1
	k := 0.8
	assert.InDelta(t, math.Sqrt(Gravity*k), Omega(k, 200), 1e-9)

	// Shallow water: tanh(k·d) ≈ k·d, so ω ≈ k·sqrt(g·d)
	assert.InDelta(t, k*math.Sqrt(Gravity*0.001), Omega(k, 0.001), 1e-6)
}

func TestInitializeSpectrumDeterministic(t *testing.T) {
	g := testGrid(t, 16, 16)
	s := DefaultSettings()

	a := InitializeSpectrum(g, s, 42)
	b := InitializeSpectrum(g, s, 42)
	c := InitializeSpectrum(g, s, 43)

	assert.Equal(t, a.H0, b.H0)
	assert.Equal(t, a.H0Minus, b.H0Minus)
	assert.NotEqual(t, a.H0, c.H0)
	assert.Same(t, g, a.Grid())
}

func TestInitializeSpectrumDCIsZero(t *testing.T) {
	sp := InitializeSpectrum(testGrid(t, 8, 8), DefaultSettings(), 7)

	assert.Equal(t, complex128(0), sp.H0[0])
	assert.Equal(t, complex128(0), sp.H0Minus[0])

	for _, tm := range []float64{0, 0.5, 13.25} {
		h := sp.Evolve(tm, nil)
		assert.Equal(t, complex128(0), h[0], "t=%v", tm)
	}
}

func TestInitializeSpectrumPairedDraws(t *testing.T) {
	g := testGrid(t, 8, 8)
	s := DefaultSettings()
	sp := InitializeSpectrum(g, s, 99)

	// h0 and h0⁻ share the same gaussian pair, so h0·sqrt(P(-k)) = h0⁻·sqrt(P(k)).
	for i := 0; i < g.M; i++ {
		for j := 0; j < g.N; j++ {
			idx := i*g.N + j
			pPlus := math.Sqrt(Phillips(s, g.Kx(i), g.Kz(j)))
			pMinus := math.Sqrt(Phillips(s, -g.Kx(i), -g.Kz(j)))

			lhs := sp.H0[idx] * complex(pMinus, 0)
			rhs := sp.H0Minus[idx] * complex(pPlus, 0)
			assert.InDelta(t, 0, cmplx.Abs(lhs-rhs), 1e-9*(1+cmplx.Abs(lhs)), "cell %d,%d", i, j)
		}
	}
}

func TestEvolveAtZero(t *testing.T) {
	g := testGrid(t, 8, 4)
	sp := InitializeSpectrum(g, DefaultSettings(), 5)

	h := sp.Evolve(0, nil)
	half := g.HalfN()
	require.Len(t, h, g.M*half)

	for i := 0; i < g.M; i++ {
		for j := 0; j < half; j++ {
			want := sp.H0[i*g.N+j] + cmplx.Conj(sp.H0Minus[i*g.N+j])
			assert.InDelta(t, 0, cmplx.Abs(want-h[i*half+j]), 1e-15, "cell %d,%d", i, j)
		}
	}
}

func TestEvolveReusesBuffer(t *testing.T) {
	g := testGrid(t, 4, 4)
	sp := InitializeSpectrum(g, DefaultSettings(), 5)

	buf := make([]complex128, g.M*g.HalfN())
	out := sp.Evolve(1.5, buf)
	assert.Equal(t, &buf[0], &out[0])
}

func TestEvolveIsPeriodicInPhase(t *testing.T) {
	g := testGrid(t, 4, 4)
	sp := InitializeSpectrum(g, DefaultSettings(), 11)
	half := g.HalfN()

	// Pick a cell with non-zero ω and step time by one full period.
	i, j := 1, 1
	w := Omega(g.K(i, j), DefaultSettings().Depth)
	require.Greater(t, w, 0.0)

	a := sp.Evolve(0.3, nil)[i*half+j]
	b := sp.Evolve(0.3+2*math.Pi/w, nil)[i*half+j]
	assert.InDelta(t, 0, cmplx.Abs(a-b), 1e-9)
}
