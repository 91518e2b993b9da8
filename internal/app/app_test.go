package app

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/acqua/internal/config"
	"github.com/Faultbox/acqua/internal/engine/component"
	"github.com/Faultbox/acqua/internal/engine/ocean"
)

type countingSink struct{ n int }

func (c *countingSink) UpdateVertexData([]ocean.Vertex) { c.n++ }

func smallConfig() *config.Config {
	cfg := config.Default()
	cfg.Simulation.GridSize = 8
	cfg.Simulation.Tessellation = 2
	cfg.Simulation.Seed = 9
	return cfg
}

func TestOceanComponentThroughRegistry(t *testing.T) {
	reg := component.NewRegistry()
	require.NoError(t, RegisterComponents(reg))
	assert.Equal(t, []string{OceanComponent}, reg.Names())

	relay := &sinkRelay{}
	comp, err := reg.Create(OceanComponent, component.Env{
		Args: map[string]any{ArgConfig: smallConfig(), ArgSink: relay},
	})
	require.NoError(t, err)

	sim, ok := comp.(*ocean.Simulator)
	require.True(t, ok)
	assert.Equal(t, uint64(9), sim.Seed())
	assert.Equal(t, 16*16, sim.Mesh().VertexCount())

	// Uploads before the target is attached are dropped
	comp.Tick(0.1)
	sink := &countingSink{}
	relay.target = sink
	comp.Tick(0.1)
	assert.Equal(t, 1, sink.n)
}

func TestOceanComponentErrors(t *testing.T) {
	reg := component.NewRegistry()
	require.NoError(t, RegisterComponents(reg))

	_, err := reg.Create(OceanComponent, component.Env{})
	assert.Error(t, err)

	cfg := smallConfig()
	cfg.Simulation.Backend = "cufft"
	_, err = reg.Create(OceanComponent, component.Env{Args: map[string]any{ArgConfig: cfg}})
	assert.ErrorIs(t, err, ocean.ErrUnknownBackend)

	cfg = smallConfig()
	cfg.Ocean.Depth = 0
	_, err = reg.Create(OceanComponent, component.Env{Args: map[string]any{ArgConfig: cfg}})
	assert.ErrorIs(t, err, ocean.ErrInvalidSettings)
}

func TestRotateWindWraps(t *testing.T) {
	s := ocean.DefaultSettings()
	s.WindDirection = 0.01
	s = RotateWind(-0.02)(s)
	assert.InDelta(t, 2*math.Pi-0.01, s.WindDirection, 1e-12)

	s = RotateWind(0.02)(s)
	assert.InDelta(t, 0.01, s.WindDirection, 1e-12)
}

func TestEditsKeepSettingsValid(t *testing.T) {
	s := ocean.DefaultSettings()
	for i := 0; i < 20; i++ {
		s = AddWaveSpeed(-1)(s)
		s = AddChop(-0.1)(s)
		s = ScaleAmplitude(0.8)(s)
	}
	assert.Equal(t, 1.0, s.WaveSpeed)
	assert.Equal(t, 0.0, s.ChopAmount)
	assert.Greater(t, s.Amplitude, 0.0)
	assert.NoError(t, s.Validate())
}

func TestEveryBoundEditIsApplicable(t *testing.T) {
	sim, err := ocean.NewSimulator(func() ocean.Options {
		o := ocean.DefaultOptions()
		o.GridM, o.GridN, o.Repeat = 4, 4, 1
		return o
	}(), ocean.DefaultSettings(), nil)
	require.NoError(t, err)

	for key, edit := range settingEdits {
		next := edit(sim.Settings())
		assert.NoError(t, ocean.Apply(sim, next), "key %d", key)
	}
}

func TestStepTimeScale(t *testing.T) {
	assert.Equal(t, float32(2), stepTimeScale(1, 1))
	assert.Equal(t, float32(0.5), stepTimeScale(1, -1))
	assert.Equal(t, float32(4), stepTimeScale(4, 1))
	assert.Equal(t, float32(0.125), stepTimeScale(0.125, -1))
	assert.Equal(t, float32(1), stepTimeScale(1.5, 0))
}
