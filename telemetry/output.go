package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/saagar210/OrbitForge/config"
)

// OutputManager streams reconcile and perf windows to CSV files.
type OutputManager struct {
	dir           string
	reconcileFile *os.File
	perfFile      *os.File

	reconcileHeaderWritten bool
	perfHeaderWritten      bool
}

// NewOutputManager creates an output manager and its directory.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	f, err := os.Create(filepath.Join(dir, "reconcile.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating reconcile.csv: %w", err)
	}
	om.reconcileFile = f

	f, err = os.Create(filepath.Join(dir, "perf.csv"))
	if err != nil {
		om.reconcileFile.Close()
		return nil, fmt.Errorf("creating perf.csv: %w", err)
	}
	om.perfFile = f

	return om, nil
}

// WriteConfig saves the active configuration alongside the run's CSVs.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteReconcile appends a window stats record to reconcile.csv.
func (om *OutputManager) WriteReconcile(stats WindowStats) error {
	if om == nil {
		return nil
	}

	records := []WindowStats{stats}
	if !om.reconcileHeaderWritten {
		if err := gocsv.Marshal(records, om.reconcileFile); err != nil {
			return fmt.Errorf("writing reconcile stats: %w", err)
		}
		om.reconcileHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.reconcileFile); err != nil {
			return fmt.Errorf("writing reconcile stats: %w", err)
		}
	}
	return nil
}

// WritePerf appends a loop stats record to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, windowEnd uint64) error {
	if om == nil {
		return nil
	}

	records := []PerfStatsCSV{stats.ToCSV(windowEnd)}
	if !om.perfHeaderWritten {
		if err := gocsv.Marshal(records, om.perfFile); err != nil {
			return fmt.Errorf("writing perf stats: %w", err)
		}
		om.perfHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.perfFile); err != nil {
			return fmt.Errorf("writing perf stats: %w", err)
		}
	}
	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error
	if om.reconcileFile != nil {
		if err := om.reconcileFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if om.perfFile != nil {
		if err := om.perfFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
