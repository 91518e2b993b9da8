// Package config handles ocean demo configuration loading and management.
package config

import (
	"math"
	"time"

	"github.com/Faultbox/acqua/internal/engine/ocean"
)

// Config holds all demo settings.
type Config struct {
	Window     WindowConfig     `yaml:"window"`
	Ocean      OceanConfig      `yaml:"ocean"`
	Simulation SimulationConfig `yaml:"simulation"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	ShowFPS    bool `yaml:"show_fps"`
	Wireframe  bool `yaml:"wireframe"`
}

// OceanConfig is the user-editable wave settings record. The wind direction
// is stored in degrees.
type OceanConfig struct {
	WaveSpeed          float64 `yaml:"wave_speed"`
	ShortestWavelength float64 `yaml:"shortest_wavelength"`
	Amplitude          float64 `yaml:"amplitude"`
	WindDirection      float64 `yaml:"wind_direction"`
	WindAlignment      float64 `yaml:"wind_alignment"`
	ReflectionDamping  float64 `yaml:"reflection_damping"`
	Depth              float64 `yaml:"depth"`
	ChopAmount         float64 `yaml:"chop_amount"`
	FoamSlopeRatio     float64 `yaml:"foam_slope_ratio"`
	FoamFadeRate       float64 `yaml:"foam_fade_rate"`
	FoamRiseRate       float64 `yaml:"foam_rise_rate"`
}

// SimulationConfig holds the fixed grid and engine layout.
type SimulationConfig struct {
	GridSize     int     `yaml:"grid_size"`
	PatchSize    float64 `yaml:"patch_size"`
	Tessellation int     `yaml:"tessellation"`
	Segment      float32 `yaml:"segment"`
	Seed         uint64  `yaml:"seed"` // 0 picks a time based seed
	Backend      string  `yaml:"backend"`
	Parallel     bool    `yaml:"parallel"`
	ChopScale    float32 `yaml:"chop_scale"`
	TimeScale    float32 `yaml:"time_scale"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	opts := ocean.DefaultOptions()
	return &Config{
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Ocean: OceanFromSettings(ocean.DefaultSettings()),
		Simulation: SimulationConfig{
			GridSize:     opts.GridM,
			Tessellation: opts.Repeat,
			Segment:      opts.Segment,
			Backend:      string(opts.Backend),
			ChopScale:    opts.ChopScale,
			TimeScale:    opts.TimeScale,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Settings converts the YAML record into simulator settings.
func (c OceanConfig) Settings() ocean.Settings {
	return ocean.Settings{
		WaveSpeed:          c.WaveSpeed,
		ShortestWavelength: c.ShortestWavelength,
		Amplitude:          c.Amplitude,
		WindDirection:      c.WindDirection * math.Pi / 180,
		WindAlignment:      c.WindAlignment,
		ReflectionDamping:  c.ReflectionDamping,
		Depth:              c.Depth,
		ChopAmount:         c.ChopAmount,
		FoamSlopeRatio:     c.FoamSlopeRatio,
		FoamFadeRate:       c.FoamFadeRate,
		FoamRiseRate:       c.FoamRiseRate,
	}
}

// OceanFromSettings is the inverse of OceanConfig.Settings.
func OceanFromSettings(s ocean.Settings) OceanConfig {
	return OceanConfig{
		WaveSpeed:          s.WaveSpeed,
		ShortestWavelength: s.ShortestWavelength,
		Amplitude:          s.Amplitude,
		WindDirection:      s.WindDirection * 180 / math.Pi,
		WindAlignment:      s.WindAlignment,
		ReflectionDamping:  s.ReflectionDamping,
		Depth:              s.Depth,
		ChopAmount:         s.ChopAmount,
		FoamSlopeRatio:     s.FoamSlopeRatio,
		FoamFadeRate:       s.FoamFadeRate,
		FoamRiseRate:       s.FoamRiseRate,
	}
}

// Options converts the simulation section into simulator options. An unknown
// backend name is reported as ocean.ErrUnknownBackend.
func (c SimulationConfig) Options() (ocean.Options, error) {
	backend, err := ocean.ParseBackend(c.Backend)
	if err != nil {
		return ocean.Options{}, err
	}

	seed := c.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	return ocean.Options{
		GridM:     c.GridSize,
		GridN:     c.GridSize,
		PatchX:    c.PatchSize,
		PatchZ:    c.PatchSize,
		Repeat:    c.Tessellation,
		Segment:   c.Segment,
		Seed:      seed,
		Backend:   backend,
		Parallel:  c.Parallel,
		ChopScale: c.ChopScale,
		TimeScale: c.TimeScale,
	}, nil
}
