// Package ocean simulates a wind-driven ocean surface using Tessendorf's
// spectral method.
//
// Each tick the frozen base spectrum is evolved in time, pushed through three
// inverse FFTs (height, X chop, Z chop), and written into a tiled vertex mesh
// together with per-vertex normals and a foam intensity.
package ocean

import (
	"errors"
	"fmt"
	"math"
)

// Gravity is the gravitational acceleration used by the dispersion relation.
const Gravity = 9.81

// Sentinel errors returned by the simulator and its parts.
var (
	ErrInvalidSettings  = errors.New("invalid ocean settings")
	ErrInvalidGrid      = errors.New("invalid ocean grid")
	ErrUnknownBackend   = errors.New("unknown fft backend")
	ErrTopologyMismatch = errors.New("mesh topology does not match grid")
)

// Settings is the flat wave spectrum record. Applying a new record rebuilds
// the base spectrum and the transform plans.
type Settings struct {
	WaveSpeed          float64 // V, wind speed driving the largest waves
	ShortestWavelength float64 // l, waves shorter than this are suppressed
	Amplitude          float64 // A, Phillips spectrum scale
	WindDirection      float64 // W, radians
	WindAlignment      float64 // exponent on |cos θ|
	ReflectionDamping  float64 // multiplier for waves moving against the wind
	Depth              float64
	ChopAmount         float64
	FoamSlopeRatio     float64
	FoamFadeRate       float64
	FoamRiseRate       float64 // 0 means FoamFadeRate
}

// DefaultSettings returns the stock settings of the demo.
func DefaultSettings() Settings {
	return Settings{
		WaveSpeed:          4.0,
		ShortestWavelength: 2.0,
		Amplitude:          1.0,
		WindDirection:      2.0 * math.Pi / 180.0,
		WindAlignment:      2.0,
		ReflectionDamping:  0.5,
		Depth:              200.0,
		ChopAmount:         0.5,
		FoamSlopeRatio:     0.07,
		FoamFadeRate:       0.1,
	}
}

// LargestWavelength returns L = V²/g, the wavelength carrying the most energy.
func (s Settings) LargestWavelength() float64 {
	return s.WaveSpeed * s.WaveSpeed / Gravity
}

// Wind returns the unit wind vector (Wx, Wz).
func (s Settings) Wind() (float64, float64) {
	return math.Cos(s.WindDirection), -math.Sin(s.WindDirection)
}

// foamRise is the per-tick foam increment on detected convergence.
func (s Settings) foamRise() float64 {
	if s.FoamRiseRate > 0 {
		return s.FoamRiseRate
	}
	return s.FoamFadeRate
}

// Validate reports the first out-of-range field. The returned error wraps
// ErrInvalidSettings.
func (s Settings) Validate() error {
	fields := []struct {
		name string
		v    float64
		ok   func(float64) bool
		want string
	}{
		{"waveSpeed", s.WaveSpeed, positive, "> 0"},
		{"shortestWavelength", s.ShortestWavelength, nonNegative, ">= 0"},
		{"amplitude", s.Amplitude, nonNegative, ">= 0"},
		{"windDirection", s.WindDirection, finite, "finite"},
		{"windAlignment", s.WindAlignment, nonNegative, ">= 0"},
		{"reflectionDamping", s.ReflectionDamping, unit, "in [0,1]"},
		{"depth", s.Depth, positive, "> 0"},
		{"chopAmount", s.ChopAmount, nonNegative, ">= 0"},
		{"foamSlopeRatio", s.FoamSlopeRatio, nonNegative, ">= 0"},
		{"foamFadeRate", s.FoamFadeRate, unit, "in [0,1]"},
		{"foamRiseRate", s.FoamRiseRate, unit, "in [0,1]"},
	}
	for _, f := range fields {
		if !f.ok(f.v) {
			return fmt.Errorf("%w: %s = %v, want %s", ErrInvalidSettings, f.name, f.v, f.want)
		}
	}
	return nil
}

func finite(v float64) bool      { return !math.IsNaN(v) && !math.IsInf(v, 0) }
func positive(v float64) bool    { return finite(v) && v > 0 }
func nonNegative(v float64) bool { return finite(v) && v >= 0 }
func unit(v float64) bool        { return finite(v) && v >= 0 && v <= 1 }
