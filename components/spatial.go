// Package components defines ECS components for the simulation.
package components

import "github.com/go-gl/mathgl/mgl32"

// Position represents a particle's world position.
type Position struct {
	X float32 `inspect:"label,fmt:%.3f"`
	Y float32 `inspect:"label,fmt:%.3f"`
	Z float32 `inspect:"label,fmt:%.3f,dim:3"`
}

// Velocity represents a particle's velocity.
type Velocity struct {
	X float32 `inspect:"label,fmt:%.3f"`
	Y float32 `inspect:"label,fmt:%.3f"`
	Z float32 `inspect:"label,fmt:%.3f,dim:3"`
}

// Vec returns the position as a vector.
func (p Position) Vec() mgl32.Vec3 { return mgl32.Vec3{p.X, p.Y, p.Z} }

// Vec returns the velocity as a vector.
func (v Velocity) Vec() mgl32.Vec3 { return mgl32.Vec3{v.X, v.Y, v.Z} }

// Set copies a vector into the position.
func (p *Position) Set(v mgl32.Vec3) { p.X, p.Y, p.Z = v[0], v[1], v[2] }

// Set copies a vector into the velocity.
func (v *Velocity) Set(u mgl32.Vec3) { v.X, v.Y, v.Z = u[0], u[1], u[2] }
