package sim

import "log/slog"

// flushTelemetry closes the stats window when it is due.
func (s *Simulation) flushTelemetry() {
	if !s.collector.ShouldFlush(s.tick) {
		return
	}

	stats := s.collector.Flush(s.tick, s.particles, s.params)
	perfStats := s.perfCollector.Stats()

	if s.statsCallback != nil {
		s.statsCallback(stats)
	}

	if s.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := s.outputManager.WriteWindow(stats, perfStats); err != nil {
		slog.Error("failed to write stats window", "dir", s.outputManager.Path(""), "error", err)
	}
}
