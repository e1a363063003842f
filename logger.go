package pops

import (
	"fmt"
	"os"

	"github.com/segmentio/ksuid"
)

// StepRecord is one step's compartment snapshot, summed over every
// suitable cell, handed to a StepLogger after RunStep returns.
type StepRecord struct {
	Step                                int
	Date                                Date
	Susceptible, Exposed, Infected, Resistant int
	Died, TotalHosts                   int
}

// StepLogger is the general definition of a logger that records
// per-step simulation output, whether to CSV files or a SQLite
// database.
type StepLogger interface {
	// SetBasePath sets the base path the logger writes under, scoped
	// to a single run by runID.
	SetBasePath(path string, runID ksuid.KSUID)
	// Init prepares the logger's storage (file headers or tables)
	// before the first step is written.
	Init() error
	// WriteStep records one step's compartment totals.
	WriteStep(rec StepRecord) error
	// WriteSpreadRate records one step's spread-rate analytics, if
	// spread-rate tracking is enabled.
	WriteSpreadRate(step int, rate SpreadRateStep) error
	// WriteQuarantine records one step's quarantine-escape analytics,
	// if quarantine tracking is enabled.
	WriteQuarantine(step int, esc QuarantineEscapeStep) error
	// Close releases any resources the logger holds open.
	Close() error
}

// NewRunID mints a run identifier. Every run gets a fresh KSUID so
// that output from concurrent or repeated runs against the same base
// path never collides and sorts chronologically by creation time,
// the same role ksuid.KSUID plays for genotype and node identifiers
// upstream.
func NewRunID() ksuid.KSUID {
	return ksuid.New()
}

// newOutputFile creates path for writing, truncating any existing
// file, and writes header if non-empty.
func newOutputFile(path, header string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	if header != "" {
		if _, err := f.WriteString(header); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}
