package components

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestVectorRoundTrip(t *testing.T) {
	want := mgl32.Vec3{1.5, -2, 0.25}

	var p Position
	p.Set(want)
	if p.Vec() != want {
		t.Errorf("Position round trip = %v, want %v", p.Vec(), want)
	}

	var v Velocity
	v.Set(want)
	if v.Vec() != want {
		t.Errorf("Velocity round trip = %v, want %v", v.Vec(), want)
	}
}
