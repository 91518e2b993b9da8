package ocean

import (
	"fmt"
	"math"
)

// Grid holds the wavenumber-space resolution and the physical patch size.
// It is immutable once built.
type Grid struct {
	M, N   int
	Lx, Lz float64

	kx []float64
	kz []float64
}

// NewGrid validates the resolution and precomputes the per-axis wavenumbers.
// M and N must be powers of two no smaller than 2. A zero patch size selects
// unit cell spacing (Lx = M, Lz = N).
func NewGrid(m, n int, lx, lz float64) (*Grid, error) {
	if !isPow2(m) || !isPow2(n) {
		return nil, fmt.Errorf("%w: %dx%d is not a power-of-two resolution", ErrInvalidGrid, m, n)
	}
	if lx == 0 {
		lx = float64(m)
	}
	if lz == 0 {
		lz = float64(n)
	}
	if !positive(lx) || !positive(lz) {
		return nil, fmt.Errorf("%w: patch size %vx%v", ErrInvalidGrid, lx, lz)
	}

	return &Grid{
		M:  m,
		N:  n,
		Lx: lx,
		Lz: lz,
		kx: wavenumbers(m, lx),
		kz: wavenumbers(n, lz),
	}, nil
}

// wavenumbers returns 2π·f/L in standard FFT order: 0, 1, ..., n/2 followed
// by -(n/2-1), ..., -1.
func wavenumbers(n int, length float64) []float64 {
	k := make([]float64, n)
	for i := range k {
		f := i
		if i > n/2 {
			f = i - n
		}
		k[i] = 2 * math.Pi * float64(f) / length
	}
	return k
}

func isPow2(n int) bool {
	return n >= 2 && n&(n-1) == 0
}

// HalfN is the number of stored columns of a real-output spectrum.
func (g *Grid) HalfN() int {
	return g.N/2 + 1
}

// Kx returns the X wavenumber of row i.
func (g *Grid) Kx(i int) float64 { return g.kx[i] }

// Kz returns the Z wavenumber of column j.
func (g *Grid) Kz(j int) float64 { return g.kz[j] }

// K returns the wavenumber magnitude of cell (i, j).
func (g *Grid) K(i, j int) float64 {
	return math.Hypot(g.kx[i], g.kz[j])
}
