package app

import (
	"math"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/acqua/internal/engine/ocean"
)

// Edit is a single keyboard adjustment to the settings record.
type Edit func(s ocean.Settings) ocean.Settings

const windStep = 5 * math.Pi / 180

// settingEdits maps keys to settings edits. Each applied edit triggers a
// simulator reset.
var settingEdits = map[sdl.Scancode]Edit{
	sdl.SCANCODE_LEFTBRACKET:  RotateWind(-windStep),
	sdl.SCANCODE_RIGHTBRACKET: RotateWind(windStep),
	sdl.SCANCODE_UP:           ScaleAmplitude(1.25),
	sdl.SCANCODE_DOWN:         ScaleAmplitude(0.8),
	sdl.SCANCODE_RIGHT:        AddWaveSpeed(1),
	sdl.SCANCODE_LEFT:         AddWaveSpeed(-1),
	sdl.SCANCODE_C:            AddChop(0.1),
	sdl.SCANCODE_X:            AddChop(-0.1),
}

// RotateWind turns the wind, keeping the angle in [0, 2π).
func RotateWind(delta float64) Edit {
	return func(s ocean.Settings) ocean.Settings {
		s.WindDirection = math.Mod(s.WindDirection+delta, 2*math.Pi)
		if s.WindDirection < 0 {
			s.WindDirection += 2 * math.Pi
		}
		return s
	}
}

// ScaleAmplitude multiplies the spectrum amplitude.
func ScaleAmplitude(f float64) Edit {
	return func(s ocean.Settings) ocean.Settings {
		s.Amplitude *= f
		return s
	}
}

// AddWaveSpeed changes the wind speed, never going below 1 m/s.
func AddWaveSpeed(d float64) Edit {
	return func(s ocean.Settings) ocean.Settings {
		s.WaveSpeed = math.Max(1, s.WaveSpeed+d)
		return s
	}
}

// AddChop changes the horizontal displacement strength, never below zero.
func AddChop(d float64) Edit {
	return func(s ocean.Settings) ocean.Settings {
		s.ChopAmount = math.Max(0, s.ChopAmount+d)
		return s
	}
}

// timeScaleSteps are the speeds cycled by the +/- keys.
var timeScaleSteps = []float32{0.125, 0.25, 0.5, 1, 2, 4}

// stepTimeScale moves to the neighbouring entry of timeScaleSteps.
func stepTimeScale(current float32, dir int) float32 {
	idx := 0
	for i, v := range timeScaleSteps {
		if v <= current {
			idx = i
		}
	}
	idx += dir
	idx = max(0, min(idx, len(timeScaleSteps)-1))
	return timeScaleSteps[idx]
}
