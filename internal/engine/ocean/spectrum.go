package ocean

import (
	"math"
	"math/cmplx"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Phillips evaluates the wind-driven Phillips spectrum at wavevector (kx, kz).
// The DC term is zero.
func Phillips(s Settings, kx, kz float64) float64 {
	k2 := kx*kx + kz*kz
	if k2 == 0 {
		return 0
	}

	wx, wz := s.Wind()
	cosTheta := (wx*kx + wz*kz) / math.Sqrt(k2)
	if cosTheta < 0 {
		cosTheta *= s.ReflectionDamping
	}

	L := s.LargestWavelength()
	l := s.ShortestWavelength
	return s.Amplitude *
		math.Exp(-1/(k2*L*L)) *
		math.Exp(-k2*l*l) *
		math.Pow(math.Abs(cosTheta), s.WindAlignment) /
		(k2 * k2)
}

// Omega is the finite-depth dispersion relation ω(k) = sqrt(g·k·tanh(k·depth)).
func Omega(k, depth float64) float64 {
	return math.Sqrt(Gravity * k * math.Tanh(k*depth))
}

// Spectrum is the frozen base spectrum h0 / h0⁻ of one settings reset,
// together with the per-cell dispersion frequencies used to evolve it.
type Spectrum struct {
	grid *Grid

	// H0 and H0Minus are M×N, row-major (index i*N + j).
	H0      []complex128
	H0Minus []complex128

	// omega is M×HalfN, the stored half of a real-output spectrum.
	omega []float64
}

// InitializeSpectrum draws the base spectrum from a seeded generator. Each
// cell consumes one pair of standard-normal draws which is shared by h0 and
// h0⁻, keeping the two phase-correlated. Equal inputs give bit-identical
// spectra.
func InitializeSpectrum(g *Grid, s Settings, seed uint64) *Spectrum {
	gauss := distuv.Normal{Mu: 0, Sigma: 1, Src: rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)}

	sp := &Spectrum{
		grid:    g,
		H0:      make([]complex128, g.M*g.N),
		H0Minus: make([]complex128, g.M*g.N),
		omega:   make([]float64, g.M*g.HalfN()),
	}

	for i := 0; i < g.M; i++ {
		kx := g.Kx(i)
		for j := 0; j < g.N; j++ {
			kz := g.Kz(j)
			r := complex(gauss.Rand(), gauss.Rand())

			idx := i*g.N + j
			sp.H0[idx] = r * complex(math.Sqrt(Phillips(s, kx, kz)/2), 0)
			sp.H0Minus[idx] = r * complex(math.Sqrt(Phillips(s, -kx, -kz)/2), 0)
		}
	}

	half := g.HalfN()
	for i := 0; i < g.M; i++ {
		for j := 0; j < half; j++ {
			sp.omega[i*half+j] = Omega(g.K(i, j), s.Depth)
		}
	}

	return sp
}

// Grid returns the grid the spectrum was drawn for.
func (sp *Spectrum) Grid() *Grid {
	return sp.grid
}

// Evolve writes hTilde(t) for the non-negative half of the Z axis into dst
// (M×HalfN, row-major) and returns it. dst is allocated when nil or short.
//
//	hTilde = h0·e^{iωt} + conj(h0⁻)·e^{-iωt}
func (sp *Spectrum) Evolve(t float64, dst []complex128) []complex128 {
	g := sp.grid
	half := g.HalfN()
	if len(dst) < g.M*half {
		dst = make([]complex128, g.M*half)
	}

	for i := 0; i < g.M; i++ {
		for j := 0; j < half; j++ {
			sin, cos := math.Sincos(sp.omega[i*half+j] * t)
			fwd := complex(cos, sin)
			back := complex(cos, -sin)

			src := i*g.N + j
			dst[i*half+j] = sp.H0[src]*fwd + cmplx.Conj(sp.H0Minus[src])*back
		}
	}
	return dst
}
