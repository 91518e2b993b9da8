package ocean

// Field is a real-valued M×N spatial grid, row-major (index i*N + j).
// Indexing wraps, matching the periodicity of the FFT.
type Field struct {
	M, N int
	Data []float64
}

// NewField allocates a zeroed M×N field.
func NewField(m, n int) *Field {
	return &Field{M: m, N: n, Data: make([]float64, m*n)}
}

// At returns the value at (i, j), wrapping both indices.
func (f *Field) At(i, j int) float64 {
	return f.Data[wrap(i, f.M)*f.N+wrap(j, f.N)]
}

// Fields groups the three spatial grids produced in one tick.
type Fields struct {
	Height *Field
	ChopX  *Field
	ChopZ  *Field
}

func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
