// Package app wires the window, renderer and ocean simulator into the
// interactive demo loop.
package app

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/acqua/internal/config"
	"github.com/Faultbox/acqua/internal/engine/component"
	"github.com/Faultbox/acqua/internal/engine/ocean"
)

// OceanComponent is the registry name of the ocean simulator.
const OceanComponent = "ocean"

// Factory arguments understood by the ocean component.
const (
	ArgConfig = "config" // *config.Config
	ArgSink   = "sink"   // ocean.VertexSink, optional
)

// RegisterComponents installs the demo's component factories.
func RegisterComponents(reg *component.Registry) error {
	return reg.Register(OceanComponent, newOceanComponent)
}

func newOceanComponent(env component.Env) (component.Component, error) {
	cfg, ok := env.Arg(ArgConfig).(*config.Config)
	if !ok || cfg == nil {
		return nil, fmt.Errorf("missing %q argument", ArgConfig)
	}
	sink, _ := env.Arg(ArgSink).(ocean.VertexSink)

	opts, err := cfg.Simulation.Options()
	if err != nil {
		return nil, err
	}
	sim, err := ocean.NewSimulator(opts, cfg.Ocean.Settings(), sink)
	if err != nil {
		return nil, err
	}
	env.Log.Debug("ocean component created", zap.Uint64("seed", sim.Seed()))
	return sim, nil
}

// sinkRelay forwards vertex uploads to a target set after construction. The
// renderer is sized from the simulator's mesh, so it cannot exist before the
// simulator does.
type sinkRelay struct {
	target ocean.VertexSink
}

func (r *sinkRelay) UpdateVertexData(vertices []ocean.Vertex) {
	if r.target != nil {
		r.target.UpdateVertexData(vertices)
	}
}
