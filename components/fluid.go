package components

// Particle ties an entity to its slot in the solver buffers.
type Particle struct {
	Index uint32  `inspect:"label"`
	Speed float32 `inspect:"bar,max:4"`
}

// Fluid mirrors the solver's per-particle field values from the last tick.
type Fluid struct {
	Density      float32 `inspect:"bar,max:30"`
	NearDensity  float32 `inspect:"bar,max:30"`
	Pressure     float32 `inspect:"label,fmt:%.2f"`
	NearPressure float32 `inspect:"label,fmt:%.2f"`
}
