package fluid

// computeDensities fills Density, NearDensity, Pressure and NearPressure
// from predicted positions. A particle always counts itself.
func (s *Solver) computeDensities(p *Particles, params Params) {
	k := s.kernels
	mass := params.Mass
	h := params.SmoothingRadius
	hSq := h * h
	index := s.index

	s.exec.For(p.Len(), func(start, end int) {
		var keys [27]uint32
		for i := start; i < end; i++ {
			pos := p.Predicted[i]
			var density, near float32

			for _, key := range index.NeighborKeys(pos, &keys) {
				for _, e := range index.Bucket(key) {
					sq := p.Predicted[e.Index].Sub(pos).LenSqr()
					if sq > hSq {
						continue
					}
					dist := sqrt32(sq)
					density += k.Density(dist)
					near += k.Near(dist)
				}
			}

			d := mass*density + DensityPadding
			nd := mass*near + DensityPadding
			p.Density[i] = d
			p.NearDensity[i] = nd
			p.Pressure[i] = params.PressureScalar * (d - params.TargetDensity)
			p.NearPressure[i] = params.NearPressureScalar * nd
		}
	})
}
