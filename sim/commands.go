package sim

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/sph/fluid"
)

// ParamGravity edits the vertical gravity component through SetParam and
// NudgeParam alongside the solver parameter names.
const ParamGravity = "gravity"

// Reset discards all particle state and re-seeds with layout. Two resets in a
// row produce identical buffers.
func (s *Simulation) Reset(layout fluid.Layout) {
	s.spawn.Layout = layout
	s.respawn()
	s.collector.RecordReset()
	slog.Info("particles reset", "tick", s.tick, "layout", layout.String(), "particles", s.particles.Len())
}

// SetParam sets a named parameter. A rejected value leaves the state unchanged.
func (s *Simulation) SetParam(name string, v float32) error {
	var err error
	if name == ParamGravity {
		if err = checkGravity(v); err == nil {
			s.gravity[1] = v
		}
	} else {
		err = s.setSolverParam(name, v)
	}
	if err != nil {
		slog.Warn("parameter rejected", "name", name, "value", v, "error", err)
		return err
	}
	s.collector.RecordParamEdit()
	slog.Info("parameter set", "name", name, "value", v)
	return nil
}

// NudgeParam adds delta to a named parameter and returns the new value. A step
// that would make the parameter invalid is ignored.
func (s *Simulation) NudgeParam(name string, delta float32) (float32, error) {
	if name == ParamGravity {
		next := s.gravity[1] + delta
		if checkGravity(next) != nil {
			return s.gravity[1], nil
		}
		s.gravity[1] = next
		s.collector.RecordParamEdit()
		return next, nil
	}

	before := s.params
	v, err := s.params.Nudge(name, delta)
	if err != nil {
		return v, err
	}
	if err := s.checkFit(); err != nil {
		s.params = before
		return s.params.Get(name)
	}
	if s.params != before {
		s.collector.RecordParamEdit()
		slog.Info("parameter nudged", "name", name, "value", v)
	}
	return v, nil
}

// Param returns a named parameter value.
func (s *Simulation) Param(name string) (float32, error) {
	if name == ParamGravity {
		return s.gravity[1], nil
	}
	return s.params.Get(name)
}

func checkGravity(v float32) error {
	if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
		return fmt.Errorf("%w: %s = %v, want finite", fluid.ErrInvalidParam, ParamGravity, v)
	}
	return nil
}

func (s *Simulation) setSolverParam(name string, v float32) error {
	before := s.params
	if err := s.params.Set(name, v); err != nil {
		return err
	}
	if err := s.checkFit(); err != nil {
		s.params = before
		return err
	}
	return nil
}

// checkFit rejects a particle radius the container cannot hold.
func (s *Simulation) checkFit() error {
	for a := 0; a < s.params.Dim; a++ {
		if s.box.Size[a] < 2*s.params.Radius {
			return fmt.Errorf("%w: radius %v does not fit container %v", fluid.ErrInvalidParam, s.params.Radius, s.box.Size)
		}
	}
	return nil
}

// ToggleGravity switches gravity on or off and returns the new state.
func (s *Simulation) ToggleGravity() bool {
	s.gravityOn = !s.gravityOn
	slog.Info("gravity toggled", "on", s.gravityOn)
	return s.gravityOn
}

// SetCursor applies a point force at pos for subsequent ticks. sign > 0 pulls
// particles in, sign < 0 pushes them out.
func (s *Simulation) SetCursor(pos mgl32.Vec3, sign float32) {
	strength := float32(s.cfg.Cursor.Strength)
	if sign < 0 {
		strength = -strength
	}
	if s.params.Dim == 2 {
		pos[2] = 0
	}
	s.cursor = &fluid.CursorForce{
		Position: pos,
		Radius:   float32(s.cfg.Cursor.Radius),
		Strength: strength,
	}
}

// ClearCursor removes the cursor force.
func (s *Simulation) ClearCursor() { s.cursor = nil }

// RotateContainer applies q on top of the current container rotation. It has
// no effect in 2D.
func (s *Simulation) RotateContainer(q mgl32.Quat) {
	if s.params.Dim != 3 {
		return
	}
	s.box.Rotate(q)
}

// ResetContainer restores the configured container orientation.
func (s *Simulation) ResetContainer() {
	s.box.Rotation = s.cfg.Derived.Container.Rotation
}
