package telemetry

import (
	"math"
	"testing"
	"time"
)

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	// Simulate a few ticks
	for i := 0; i < 5; i++ {
		pc.StartTick(100)
		pc.StartPhase(PhaseSpatialIndex)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhaseForces)
		time.Sleep(200 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()

	// Verify we got timing data
	if stats.AvgTickDuration <= 0 {
		t.Error("expected positive average tick duration")
	}

	// Verify phases are tracked
	if len(stats.PhaseAvg) == 0 {
		t.Error("expected phase averages to be populated")
	}

	if _, ok := stats.PhaseAvg[PhaseSpatialIndex]; !ok {
		t.Error("expected spatial_index phase to be tracked")
	}

	if _, ok := stats.PhaseAvg[PhaseForces]; !ok {
		t.Error("expected forces phase to be tracked")
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5) // Small window

	// Fill window completely
	for i := 0; i < 10; i++ {
		pc.StartTick(100)
		pc.StartPhase(PhaseSpatialIndex)
		pc.EndTick()
	}

	stats := pc.Stats()

	// Should have data
	if stats.AvgTickDuration <= 0 {
		t.Error("expected positive average tick duration after window filled")
	}

	if stats.TicksPerSecond <= 0 {
		t.Error("expected positive ticks per second")
	}
}

func TestPerfCollector_PhasePercentages(t *testing.T) {
	pc := NewPerfCollector(10)

	// Simulate with uneven phase durations
	for i := 0; i < 5; i++ {
		pc.StartTick(100)
		pc.StartPhase("fast")
		time.Sleep(10 * time.Microsecond)
		pc.StartPhase("slow")
		time.Sleep(100 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()

	fastPct := stats.PhasePct["fast"]
	slowPct := stats.PhasePct["slow"]

	// Slow phase should take more % than fast
	if slowPct <= fastPct {
		t.Errorf("expected slow phase (%v%%) > fast phase (%v%%)", slowPct, fastPct)
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	pc := NewPerfCollector(10)

	stats := pc.Stats()

	// Empty collector should return zero values without panicking
	if stats.AvgTickDuration != 0 {
		t.Error("expected zero avg tick duration for empty collector")
	}

	if stats.PhaseAvg == nil {
		t.Error("expected non-nil PhaseAvg map")
	}

	if stats.PhasePct == nil {
		t.Error("expected non-nil PhasePct map")
	}
}

func TestPerfCollector_FrameTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	// First call establishes baseline
	pc.RecordFrame()
	time.Sleep(16 * time.Millisecond) // ~60fps frame time
	// Second call measures duration
	pc.RecordFrame()

	stats := pc.Stats()

	if stats.FrameDuration < 15*time.Millisecond {
		t.Errorf("expected frame duration >= 15ms, got %v", stats.FrameDuration)
	}

	if stats.FPS <= 0 {
		t.Error("expected positive FPS")
	}

	// With 16ms frames, expect ~60 FPS (allow range 40-80)
	if stats.FPS < 40 || stats.FPS > 80 {
		t.Errorf("expected FPS between 40-80 with 16ms frame time, got %v", stats.FPS)
	}
}

func TestPerfStats_ToCSV(t *testing.T) {
	stats := PerfStats{
		AvgTickDuration: 2 * time.Millisecond,
		PhasePct: map[string]float64{
			PhaseDensity: 40,
			PhaseForces:  35,
			PhaseSync:    5,
		},
	}

	row := stats.ToCSV(120)
	if row.WindowEnd != 120 {
		t.Errorf("window_end = %d, want 120", row.WindowEnd)
	}
	if row.AvgTickUS != 2000 {
		t.Errorf("avg_tick_us = %d, want 2000", row.AvgTickUS)
	}
	if row.DensityPct != 40 || row.ForcesPct != 35 || row.SyncPct != 5 {
		t.Errorf("phase percentages not carried over: %+v", row)
	}
	if row.PredictPct != 0 {
		t.Errorf("missing phase should be zero, got %v", row.PredictPct)
	}
}

func TestPerfCollector_ParticleThroughput(t *testing.T) {
	pc := NewPerfCollector(4)
	for i := 0; i < 3; i++ {
		pc.StartTick(1000)
		pc.StartPhase(PhaseDensity)
		time.Sleep(200 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()
	if stats.NsPerParticle < 200 {
		t.Errorf("ns per particle = %v, want >= 200", stats.NsPerParticle)
	}
	if stats.ParticlesPerSec <= 0 {
		t.Error("expected positive particle throughput")
	}
	want := 1e9 / stats.NsPerParticle
	if math.Abs(stats.ParticlesPerSec-want)/want > 1e-6 {
		t.Errorf("particles/sec = %v, want %v", stats.ParticlesPerSec, want)
	}
}

func TestPerfCollector_EndTickWithoutStart(t *testing.T) {
	pc := NewPerfCollector(4)
	pc.StartPhase(PhaseForces)
	pc.EndTick()
	if stats := pc.Stats(); stats.AvgTickDuration != 0 {
		t.Errorf("unstarted tick recorded: %v", stats.AvgTickDuration)
	}
}
