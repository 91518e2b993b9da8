package main

import (
	"sort"
	"time"

	"github.com/chewxy/math32"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/Faultbox/acqua/internal/engine/ocean"
)

// foamThreshold is the foam amount above which a vertex counts as white water.
const foamThreshold = 0.5

// SurfaceStats summarises one simulator state.
type SurfaceStats struct {
	MinHeight, MaxHeight float64 // raw height field
	FoamCoverage         float32 // fraction of vertices above foamThreshold
	MeanFoam             float32
	MaxDisplacement      float32 // largest vertex offset from rest
}

// Measure reads the last tick's fields and mesh. It returns zero stats before
// the first tick.
func Measure(sim *ocean.Simulator) SurfaceStats {
	var s SurfaceStats
	f := sim.Fields()
	if f == nil {
		return s
	}
	s.MinHeight = floats.Min(f.Height.Data)
	s.MaxHeight = floats.Max(f.Height.Data)

	verts := sim.Mesh().Vertices
	var foamy int
	var sum float32
	for i := range verts {
		v := &verts[i]
		if v.Foam > foamThreshold {
			foamy++
		}
		sum += v.Foam
		s.MaxDisplacement = math32.Max(s.MaxDisplacement, v.Position.Sub(v.Original).Len())
	}
	if n := len(verts); n > 0 {
		s.FoamCoverage = float32(foamy) / float32(n)
		s.MeanFoam = sum / float32(n)
	}
	return s
}

// LatencyStats summarises per-tick durations in microseconds.
type LatencyStats struct {
	Mean, StdDev float64
	P95, Max     float64
}

// micros converts d to fractional microseconds.
func micros(d time.Duration) float64 {
	return float64(d) / float64(time.Microsecond)
}

// SummarizeLatency sorts a copy of xs.
func SummarizeLatency(xs []float64) LatencyStats {
	if len(xs) == 0 {
		return LatencyStats{}
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)

	var l LatencyStats
	l.Mean, l.StdDev = stat.MeanStdDev(sorted, nil)
	l.P95 = stat.Quantile(0.95, stat.Empirical, sorted, nil)
	l.Max = sorted[len(sorted)-1]
	return l
}
