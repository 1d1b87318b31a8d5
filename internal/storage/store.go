package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/san-kum/spinflight/internal/config"
	"github.com/san-kum/spinflight/internal/dynamo"
	"github.com/san-kum/spinflight/internal/export"
	"github.com/san-kum/spinflight/internal/sim"
)

const (
	catalogFile = "runs.db"
	samplesFile = "samples.csv"
)

var ErrRunNotFound = errors.New("spinflight: run not found")

// Run is a catalog row. Samples live next to the catalog in
// <baseDir>/<ID>/samples.csv.
type Run struct {
	ID         string    `gorm:"primaryKey"`
	Name       string    `gorm:"index"`
	CreatedAt  time.Time `gorm:"index"`
	Integrator string
	Dt         float64
	Duration   float64
	Samples    int
	Stop       string
	Inputs     datatypes.JSON
	Metrics    datatypes.JSON
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Timestamp  time.Time          `json:"timestamp"`
	Integrator string             `json:"integrator"`
	Dt         float64            `json:"dt"`
	Duration   float64            `json:"duration"`
	Samples    int                `json:"samples"`
	Stop       string             `json:"stop"`
	Inputs     config.Inputs      `json:"inputs"`
	Metrics    map[string]float64 `json:"metrics"`
}

type Store struct {
	baseDir string
	db      *gorm.DB
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	if err := os.MkdirAll(s.baseDir, 0755); err != nil {
		return err
	}
	db, err := gorm.Open(sqlite.Open(filepath.Join(s.baseDir, catalogFile)), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("open catalog: %w", err)
	}
	if err := db.AutoMigrate(&Run{}); err != nil {
		return fmt.Errorf("migrate catalog: %w", err)
	}
	s.db = db
	return nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	s.db = nil
	return sqlDB.Close()
}

func (s *Store) runDir(id string) string {
	return filepath.Join(s.baseDir, id)
}

// Save writes the samples and registers the run in the catalog.
func (s *Store) Save(cfg config.Config, result *sim.Result) (string, error) {
	if s.db == nil {
		return "", fmt.Errorf("store not initialized")
	}

	name := cfg.Name
	if name == "" {
		name = "run"
	}
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", name, now.UnixNano())
	runDir := s.runDir(runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}
	if err := s.writeSamples(runDir, result.Trajectory); err != nil {
		os.RemoveAll(runDir)
		return "", err
	}

	inputs, err := json.Marshal(cfg.Inputs)
	if err != nil {
		return "", err
	}
	metrics, err := json.Marshal(result.Metrics)
	if err != nil {
		return "", err
	}

	run := Run{
		ID:         runID,
		Name:       name,
		CreatedAt:  now,
		Integrator: cfg.Integrator,
		Dt:         cfg.Inputs.TimeStep,
		Duration:   cfg.Inputs.Duration,
		Samples:    result.Trajectory.Len(),
		Stop:       result.Stop.String(),
		Inputs:     datatypes.JSON(inputs),
		Metrics:    datatypes.JSON(metrics),
	}
	if err := s.db.Create(&run).Error; err != nil {
		os.RemoveAll(runDir)
		return "", fmt.Errorf("catalog run: %w", err)
	}
	return runID, nil
}

func (s *Store) writeSamples(runDir string, traj *dynamo.Trajectory) error {
	f, err := os.Create(filepath.Join(runDir, samplesFile))
	if err != nil {
		return err
	}
	defer f.Close()
	if err := export.WriteCSV(f, traj); err != nil {
		return err
	}
	return f.Close()
}

// List returns every cataloged run, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	if s.db == nil {
		return nil, fmt.Errorf("store not initialized")
	}
	var rows []Run
	if err := s.db.Order("created_at desc").Find(&rows).Error; err != nil {
		return nil, err
	}

	runs := make([]RunMetadata, 0, len(rows))
	for _, r := range rows {
		meta, err := r.metadata()
		if err != nil {
			return nil, err
		}
		runs = append(runs, *meta)
	}
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	if s.db == nil {
		return nil, fmt.Errorf("store not initialized")
	}
	var row Run
	err := s.db.First(&row, "id = ?", runID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	if err != nil {
		return nil, err
	}
	return row.metadata()
}

func (s *Store) LoadTrajectory(runID string) (*dynamo.Trajectory, error) {
	f, err := os.Open(filepath.Join(s.runDir(runID), samplesFile))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return export.ReadCSV(f)
}

func (s *Store) Delete(runID string) error {
	if s.db == nil {
		return fmt.Errorf("store not initialized")
	}
	res := s.db.Delete(&Run{}, "id = ?", runID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return os.RemoveAll(s.runDir(runID))
}

func (r Run) metadata() (*RunMetadata, error) {
	meta := &RunMetadata{
		ID:         r.ID,
		Name:       r.Name,
		Timestamp:  r.CreatedAt,
		Integrator: r.Integrator,
		Dt:         r.Dt,
		Duration:   r.Duration,
		Samples:    r.Samples,
		Stop:       r.Stop,
		Metrics:    make(map[string]float64),
	}
	if len(r.Inputs) > 0 {
		if err := json.Unmarshal(r.Inputs, &meta.Inputs); err != nil {
			return nil, fmt.Errorf("run %s inputs: %w", r.ID, err)
		}
	}
	if len(r.Metrics) > 0 {
		if err := json.Unmarshal(r.Metrics, &meta.Metrics); err != nil {
			return nil, fmt.Errorf("run %s metrics: %w", r.ID, err)
		}
	}
	return meta, nil
}
