package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/pthm-cable/sph/config"
)

// Files written into a run directory.
const (
	StatsFile  = "fluid_stats.csv"
	PerfFile   = "phase_perf.csv"
	ConfigFile = "config.yaml"
)

// csvLog appends gocsv rows to one file. The header goes out with the first row.
type csvLog struct {
	name string
	f    *os.File
	rows int
}

func (l *csvLog) append(records any) error {
	var err error
	if l.rows == 0 {
		err = gocsv.Marshal(records, l.f)
	} else {
		err = gocsv.MarshalWithoutHeaders(records, l.f)
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", l.name, err)
	}
	l.rows++
	return nil
}

func (l *csvLog) close() error {
	if l.f == nil {
		return nil
	}
	err := l.f.Close()
	l.f = nil
	return err
}

// OutputManager writes one run directory: a config snapshot, a row of fluid
// stats per window and a matching row of phase timings.
// A nil manager discards everything.
type OutputManager struct {
	dir   string
	stats csvLog
	perf  csvLog
}

// NewOutputManager creates dir and opens the CSV logs in it. It returns nil
// when dir is empty.
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{
		dir:   dir,
		stats: csvLog{name: StatsFile},
		perf:  csvLog{name: PerfFile},
	}
	for _, l := range []*csvLog{&om.stats, &om.perf} {
		f, err := os.Create(om.Path(l.name))
		if err != nil {
			om.Close()
			return nil, fmt.Errorf("creating %s: %w", l.name, err)
		}
		l.f = f
	}
	return om, nil
}

// Path returns the location of a file inside the run directory.
func (om *OutputManager) Path(name string) string {
	if om == nil {
		return ""
	}
	return filepath.Join(om.dir, name)
}

// WriteConfig snapshots cfg as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	if err := cfg.WriteYAML(om.Path(ConfigFile)); err != nil {
		return fmt.Errorf("writing %s: %w", ConfigFile, err)
	}
	return nil
}

// WriteWindow appends the fluid stats of a closed window and the phase
// timings measured over it. Both rows carry stats.WindowEndTick.
func (om *OutputManager) WriteWindow(stats WindowStats, perf PerfStats) error {
	if om == nil {
		return nil
	}
	if err := om.stats.append([]WindowStats{stats}); err != nil {
		return err
	}
	return om.perf.append([]PerfStatsCSV{perf.ToCSV(stats.WindowEndTick)})
}

// Windows returns how many windows have been written.
func (om *OutputManager) Windows() int {
	if om == nil {
		return 0
	}
	return om.stats.rows
}

// Close closes the CSV logs and returns the first error.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	var firstErr error
	for _, l := range []*csvLog{&om.stats, &om.perf} {
		if err := l.close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
