package ocean

import (
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/acqua/internal/logger"
)

// Options fixes the grid, mesh and engine layout of a simulator. Unlike
// Settings they do not change over the simulator's lifetime.
type Options struct {
	GridM, GridN   int
	PatchX, PatchZ float64 // 0 selects unit cell spacing
	Repeat         int     // tessellation multiplier
	Segment        float32 // world distance between vertices
	Seed           uint64
	Backend        Backend
	Parallel       bool // run the three transforms concurrently
	ChopScale      float32
	TimeScale      float32
}

// DefaultOptions returns the stock demo layout.
func DefaultOptions() Options {
	return Options{
		GridM:     128,
		GridN:     128,
		Repeat:    5,
		Segment:   10,
		Backend:   BackendGonum,
		ChopScale: DefaultChopScale,
		TimeScale: 1,
	}
}

// VertexSink receives the whole vertex buffer after every tick. The buffer
// length is constant for the simulator's lifetime and the sink must not
// retain or modify it.
type VertexSink interface {
	UpdateVertexData(vertices []Vertex)
}

// Simulator owns the spectrum, transform plans and mesh of one ocean patch and
// advances them one tick at a time. Tick is not re-entrant.
type Simulator struct {
	opts     Options
	settings Settings
	sink     VertexSink
	log      *zap.Logger

	grid     *Grid
	spectrum *Spectrum
	engine   *Engine
	mesh     *Mesh

	hTilde []complex128
	fields *Fields

	t        float64
	scale    float64
	ticking  atomic.Bool
	lastTick time.Duration
}

// NewSimulator validates opts and settings and builds the first spectrum.
// sink may be nil for headless use.
func NewSimulator(opts Options, settings Settings, sink VertexSink) (*Simulator, error) {
	if opts.Repeat < 1 {
		return nil, fmt.Errorf("%w: tessellation %d", ErrInvalidGrid, opts.Repeat)
	}
	if !positive(float64(opts.Segment)) {
		return nil, fmt.Errorf("%w: segment width %v", ErrInvalidGrid, opts.Segment)
	}
	if opts.TimeScale < 0 {
		return nil, fmt.Errorf("%w: time scale %v", ErrInvalidSettings, opts.TimeScale)
	}

	grid, err := NewGrid(opts.GridM, opts.GridN, opts.PatchX, opts.PatchZ)
	if err != nil {
		return nil, err
	}

	sim := &Simulator{
		opts:  opts,
		sink:  sink,
		log:   logger.Named("ocean"),
		grid:  grid,
		mesh:  NewMesh(grid.M, grid.N, opts.Repeat, opts.Segment),
		scale: 1 / (float64(opts.Repeat) * float64(opts.Segment)),
	}

	if err := sim.Reset(settings); err != nil {
		return nil, err
	}

	sim.log.Info("ocean created",
		zap.Int("m", grid.M),
		zap.Int("n", grid.N),
		zap.Int("repeat", opts.Repeat),
		zap.Int("vertices", sim.mesh.VertexCount()),
		zap.String("backend", string(sim.engine.Backend())),
		zap.Bool("parallel", opts.Parallel),
	)
	return sim, nil
}

// Reset applies new settings: it redraws h0/h0⁻ from the simulator's seed and
// rebuilds the transform plans, and puts the mesh back at rest with no foam.
// Simulation time keeps running. On error the
// previous state is left untouched.
func (s *Simulator) Reset(settings Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	engine, err := NewEngine(s.grid, s.opts.Backend, s.opts.Parallel)
	if err != nil {
		return fmt.Errorf("building transform engine: %w", err)
	}

	s.spectrum = InitializeSpectrum(s.grid, settings, s.opts.Seed)
	s.engine = engine
	s.settings = settings
	s.mesh.Rest()

	s.log.Info("ocean reset",
		zap.Uint64("seed", s.opts.Seed),
		zap.Float64("waveSpeed", settings.WaveSpeed),
		zap.Float64("amplitude", settings.Amplitude),
		zap.Float64("windDirection", settings.WindDirection),
		zap.Float64("depth", settings.Depth),
		zap.Float64("chop", settings.ChopAmount),
	)
	return nil
}

// Reseed changes the random seed and resets with the given settings.
func (s *Simulator) Reseed(seed uint64, settings Settings) error {
	prev := s.opts.Seed
	s.opts.Seed = seed
	if err := s.Reset(settings); err != nil {
		s.opts.Seed = prev
		return err
	}
	return nil
}

// Apply pushes a settings record into the given simulator.
func Apply(sim *Simulator, settings Settings) error {
	return sim.Reset(settings)
}

// Tick evolves the spectrum at the current time, transforms it, rewrites the
// mesh, hands it to the sink and then advances time by dt. A NaN, infinite or
// negative dt is ignored.
func (s *Simulator) Tick(dt float32) {
	if d := float64(dt); math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
		s.log.Warn("invalid tick delta ignored", zap.Float32("dt", dt))
		return
	}
	if !s.ticking.CompareAndSwap(false, true) {
		s.log.Warn("re-entrant tick ignored")
		return
	}
	defer s.ticking.Store(false)

	start := time.Now()

	s.hTilde = s.spectrum.Evolve(s.t, s.hTilde)
	s.fields = s.engine.Transform(s.hTilde, s.scale, s.settings.ChopAmount)
	s.mesh.Synthesize(s.fields, s.surfaceParams())

	if s.sink != nil {
		s.sink.UpdateVertexData(s.mesh.Vertices)
	}

	s.t += float64(dt * s.opts.TimeScale)
	s.lastTick = time.Since(start)
	s.log.Debug("tick", zap.Float64("t", s.t), zap.Duration("took", s.lastTick))
}

func (s *Simulator) surfaceParams() SurfaceParams {
	return SurfaceParams{
		Scale:          s.scale,
		ChopScale:      s.opts.ChopScale,
		FoamSlopeRatio: s.settings.FoamSlopeRatio,
		FoamFade:       float32(s.settings.FoamFadeRate),
		FoamRise:       float32(s.settings.foamRise()),
	}
}

// Settings returns the settings currently in effect.
func (s *Simulator) Settings() Settings { return s.settings }

// Options returns the layout the simulator was built with.
func (s *Simulator) Options() Options { return s.opts }

// Seed returns the seed of the current base spectrum.
func (s *Simulator) Seed() uint64 { return s.opts.Seed }

// Time returns the elapsed simulation time in seconds.
func (s *Simulator) Time() float64 { return s.t }

// SetTime jumps the simulation clock.
func (s *Simulator) SetTime(t float64) { s.t = t }

// Grid returns the simulation grid.
func (s *Simulator) Grid() *Grid { return s.grid }

// Spectrum returns the frozen base spectrum.
func (s *Simulator) Spectrum() *Spectrum { return s.spectrum }

// Mesh returns the owned vertex mesh.
func (s *Simulator) Mesh() *Mesh { return s.mesh }

// Fields returns the spatial fields of the last tick, nil before the first.
func (s *Simulator) Fields() *Fields { return s.fields }

// Scale returns the transform scale 1/(Repeat·Segment).
func (s *Simulator) Scale() float64 { return s.scale }

// LastTickDuration reports how long the previous Tick took.
func (s *Simulator) LastTickDuration() time.Duration { return s.lastTick }
