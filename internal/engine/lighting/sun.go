// Package lighting provides lighting utilities for 3D rendering.
package lighting

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Sun places a directional light by compass azimuth and elevation above the
// horizon, both in degrees.
type Sun struct {
	Azimuth   float32
	Elevation float32
}

// Direction returns the unit vector pointing from the surface towards the sun.
// Azimuth 0 points along +Z and increases towards +X.
func (s Sun) Direction() mgl32.Vec3 {
	sa, ca := math32.Sincos(mgl32.DegToRad(s.Azimuth))
	se, ce := math32.Sincos(mgl32.DegToRad(s.Elevation))
	return mgl32.Vec3{ce * sa, se, ce * ca}
}
