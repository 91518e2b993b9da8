package lighting

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSunDirection(t *testing.T) {
	tests := []struct {
		name    string
		sun     Sun
		x, y, z float32
	}{
		{"zenith", Sun{Azimuth: 123, Elevation: 90}, 0, 1, 0},
		{"south horizon", Sun{Azimuth: 0, Elevation: 0}, 0, 0, 1},
		{"east horizon", Sun{Azimuth: 90, Elevation: 0}, 1, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := tt.sun.Direction()
			assert.InDelta(t, tt.x, d.X(), 1e-5)
			assert.InDelta(t, tt.y, d.Y(), 1e-5)
			assert.InDelta(t, tt.z, d.Z(), 1e-5)
			assert.InDelta(t, 1, d.Len(), 1e-5)
		})
	}
}
