package ocean

import (
	"fmt"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/dsp/fourier"
)

// Backend names an inverse FFT implementation.
type Backend string

// Available backends.
const (
	BackendGonum Backend = "gonum"
	BackendDSP   Backend = "dsp"
)

// ParseBackend resolves a configured backend name. Empty selects gonum.
func ParseBackend(name string) (Backend, error) {
	switch Backend(name) {
	case "", BackendGonum:
		return BackendGonum, nil
	case BackendDSP:
		return BackendDSP, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownBackend, name)
}

// inversePlan computes the unnormalized 2D complex-to-real inverse transform
// of an M×HalfN half spectrum into M×N reals. A plan owns its scratch space
// and must not be executed concurrently with itself.
type inversePlan interface {
	execute(dst []float64, src []complex128)
}

func newInversePlan(b Backend, m, n int) (inversePlan, error) {
	switch b {
	case BackendGonum:
		return newGonumPlan(m, n), nil
	case BackendDSP:
		return newDSPPlan(m, n), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, b)
}

// gonumPlan runs complex inverse transforms down each stored column, then a
// real-output inverse transform along each row.
type gonumPlan struct {
	m, n, half int

	cols *fourier.CmplxFFT
	rows *fourier.FFT

	work   []complex128 // M×HalfN intermediate
	colIn  []complex128
	colOut []complex128
	rowIn  []complex128
	rowOut []float64
}

func newGonumPlan(m, n int) *gonumPlan {
	half := n/2 + 1
	return &gonumPlan{
		m:      m,
		n:      n,
		half:   half,
		cols:   fourier.NewCmplxFFT(m),
		rows:   fourier.NewFFT(n),
		work:   make([]complex128, m*half),
		colIn:  make([]complex128, m),
		colOut: make([]complex128, m),
		rowIn:  make([]complex128, half),
		rowOut: make([]float64, n),
	}
}

func (p *gonumPlan) execute(dst []float64, src []complex128) {
	for j := 0; j < p.half; j++ {
		for i := 0; i < p.m; i++ {
			p.colIn[i] = src[i*p.half+j]
		}
		p.cols.Sequence(p.colOut, p.colIn)
		for i := 0; i < p.m; i++ {
			p.work[i*p.half+j] = p.colOut[i]
		}
	}

	for i := 0; i < p.m; i++ {
		copy(p.rowIn, p.work[i*p.half:(i+1)*p.half])
		p.rows.Sequence(p.rowOut, p.rowIn)
		copy(dst[i*p.n:(i+1)*p.n], p.rowOut)
	}
}

// dspPlan expands the half spectrum to a full Hermitian grid and runs a
// normalized complex 2D inverse transform, undoing the normalization.
type dspPlan struct {
	m, n, half int
	full       [][]complex128
}

func newDSPPlan(m, n int) *dspPlan {
	full := make([][]complex128, m)
	for i := range full {
		full[i] = make([]complex128, n)
	}
	return &dspPlan{m: m, n: n, half: n/2 + 1, full: full}
}

func (p *dspPlan) execute(dst []float64, src []complex128) {
	for i := 0; i < p.m; i++ {
		row := p.full[i]
		for j := 0; j < p.half; j++ {
			row[j] = src[i*p.half+j]
		}
		mirror := (p.m - i) % p.m
		for j := p.half; j < p.n; j++ {
			c := src[mirror*p.half+(p.n-j)]
			row[j] = complex(real(c), -imag(c))
		}
	}

	out := fft.IFFT2(p.full)
	norm := float64(p.m * p.n)
	for i := 0; i < p.m; i++ {
		for j := 0; j < p.n; j++ {
			dst[i*p.n+j] = real(out[i][j]) * norm
		}
	}
}
