package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/acqua/internal/config"
	"github.com/Faultbox/acqua/internal/engine/ocean"
)

func TestMeasureBeforeFirstTick(t *testing.T) {
	sim, err := ocean.NewSimulator(smallOpts(), ocean.DefaultSettings(), nil)
	require.NoError(t, err)
	assert.Equal(t, SurfaceStats{}, Measure(sim))
}

func TestMeasureCalmSea(t *testing.T) {
	calm := ocean.DefaultSettings()
	calm.Amplitude = 0
	sim, err := ocean.NewSimulator(smallOpts(), calm, nil)
	require.NoError(t, err)
	sim.Tick(0.1)

	s := Measure(sim)
	assert.Equal(t, 0.0, s.MinHeight)
	assert.Equal(t, 0.0, s.MaxHeight)
	assert.Equal(t, float32(0), s.FoamCoverage)
	assert.Equal(t, float32(0), s.MaxDisplacement)
}

func TestMeasureRoughSea(t *testing.T) {
	sim, err := ocean.NewSimulator(smallOpts(), ocean.DefaultSettings(), nil)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		sim.Tick(0.2)
	}

	s := Measure(sim)
	assert.Less(t, s.MinHeight, s.MaxHeight)
	assert.GreaterOrEqual(t, s.FoamCoverage, float32(0))
	assert.LessOrEqual(t, s.FoamCoverage, float32(1))
	assert.Greater(t, s.MaxDisplacement, float32(0))
}

func TestSummarizeLatency(t *testing.T) {
	assert.Equal(t, LatencyStats{}, SummarizeLatency(nil))

	xs := make([]float64, 0, 100)
	for i := 100; i >= 1; i-- {
		xs = append(xs, float64(i))
	}
	l := SummarizeLatency(xs)
	assert.InDelta(t, 50.5, l.Mean, 1e-9)
	assert.Equal(t, 95.0, l.P95)
	assert.Equal(t, 100.0, l.Max)
	// input left untouched
	assert.Equal(t, 100.0, xs[0])
}

func TestMicrosKeepsFraction(t *testing.T) {
	assert.InDelta(t, 1.5, micros(1500*time.Nanosecond), 1e-12)
	assert.InDelta(t, 0.25, micros(250*time.Nanosecond), 1e-12)
	assert.InDelta(t, 2000.0, micros(2*time.Millisecond), 1e-9)

	s := SummarizeLatency([]float64{micros(300), micros(500)})
	assert.InDelta(t, 0.4, s.Mean, 1e-12)
}

func TestRunRecordsSeed(t *testing.T) {
	cfg := config.Default()
	cfg.Simulation.GridSize = 8
	cfg.Simulation.Tessellation = 1
	cfg.Simulation.Seed = 0

	require.NoError(t, run(cfg, 3, 0.1, 1))
	assert.NotZero(t, cfg.Simulation.Seed)
}

func smallOpts() ocean.Options {
	o := ocean.DefaultOptions()
	o.GridM, o.GridN = 16, 16
	o.Repeat = 1
	o.Seed = 21
	return o
}
