// Package storage persists finished runs to disk. Each run gets a
// directory holding metadata.json and trajectory.csv, so runs can be
// listed, re-plotted, and re-exported without re-simulating.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/burnsim/internal/combustion"
	"github.com/san-kum/burnsim/internal/export"
	"github.com/san-kum/burnsim/internal/sim"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata is the queryable record of a stored run; the full time
// series lives beside it in trajectory.csv.
type RunMetadata struct {
	ID               string    `json:"id"`
	Preset           string    `json:"preset,omitempty"`
	Timestamp        time.Time `json:"timestamp"`
	Status           string    `json:"status"`
	Error            string    `json:"error,omitempty"`
	Dt               float64   `json:"dt"`
	BurnTime         float64   `json:"burn_time"`
	Samples          int       `json:"samples"`
	TotalImpulse     float64   `json:"total_impulse"`
	PeakThrust       float64   `json:"peak_thrust"`
	AverageThrust    float64   `json:"average_thrust"`
	AverageIsp       float64   `json:"average_isp"`
	OxidizerConsumed float64   `json:"oxidizer_consumed"`
	FuelConsumed     float64   `json:"fuel_consumed"`
}

// Save writes one run directory and returns its ID.
func (s *Store) Save(preset string, dt float64, res *sim.Result) (string, error) {
	runID := fmt.Sprintf("burn_%d", time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	sum := sim.Summarize(res)
	meta := RunMetadata{
		ID:               runID,
		Preset:           preset,
		Timestamp:        time.Now(),
		Status:           res.Status.String(),
		Dt:               dt,
		BurnTime:         sum.BurnTime,
		Samples:          sum.Samples,
		TotalImpulse:     sum.TotalImpulse,
		PeakThrust:       sum.PeakThrust,
		AverageThrust:    sum.AverageThrust,
		AverageIsp:       sum.AverageIsp,
		OxidizerConsumed: sum.OxidizerConsumed,
		FuelConsumed:     sum.FuelConsumed,
	}
	if res.Err != nil {
		meta.Error = res.Err.Error()
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "trajectory.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := export.WriteCSV(csvFile, res.Trajectory); err != nil {
		return "", err
	}

	return runID, nil
}

// List returns metadata for every stored run, newest first. Directories
// without readable metadata are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadTrajectory reads a stored trajectory.csv back into samples. Only
// the columns the solver wrote are recovered; derived fields absent
// from the file stay zero.
func (s *Store) LoadTrajectory(runID string) (sim.Trajectory, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "trajectory.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return sim.Trajectory{}, nil
	}

	tr := make(sim.Trajectory, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < len(export.Columns) {
			return nil, fmt.Errorf("malformed trajectory row: %d fields", len(record))
		}

		vals := make([]float64, len(export.Columns))
		for i := range vals {
			v, err := strconv.ParseFloat(record[i], 64)
			if err != nil {
				return nil, fmt.Errorf("parse column %q: %w", export.Columns[i], err)
			}
			vals[i] = v
		}

		tr = append(tr, sim.Sample{
			Time:       vals[0],
			PortRadius: vals[2],
			Instant: combustion.Instant{
				Thrust:          vals[1],
				OFRatio:         vals[3],
				OFUndefined:     math.IsNaN(vals[3]),
				OxidizerFlux:    vals[4],
				Isp:             vals[5],
				IspUndefined:    math.IsNaN(vals[5]),
				ChamberPressure: vals[6],
				RegressionRate:  vals[7],
			},
		})
	}
	return tr, nil
}
