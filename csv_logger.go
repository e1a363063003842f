package pops

import (
	"fmt"
	"os"
	"strings"

	"github.com/segmentio/ksuid"
)

// CSVStepLogger is a StepLogger that writes comma-delimited files, one
// per output kind: steps, spread rate, and quarantine escape.
type CSVStepLogger struct {
	stepPath       string
	spreadRatePath string
	quarantinePath string

	stepFile       *os.File
	spreadRateFile *os.File
	quarantineFile *os.File
}

// NewCSVStepLogger creates a logger rooted at basepath, scoped to runID.
func NewCSVStepLogger(basepath string, runID ksuid.KSUID) *CSVStepLogger {
	l := new(CSVStepLogger)
	l.SetBasePath(basepath, runID)
	return l
}

func (l *CSVStepLogger) SetBasePath(basepath string, runID ksuid.KSUID) {
	trimmed := strings.TrimSuffix(basepath, ".")
	l.stepPath = fmt.Sprintf("%s.%s.steps.csv", trimmed, runID.String())
	l.spreadRatePath = fmt.Sprintf("%s.%s.spreadrate.csv", trimmed, runID.String())
	l.quarantinePath = fmt.Sprintf("%s.%s.quarantine.csv", trimmed, runID.String())
}

// Init creates each CSV file and writes its header row.
func (l *CSVStepLogger) Init() error {
	var err error
	l.stepFile, err = newOutputFile(l.stepPath, "step,date,susceptible,exposed,infected,resistant,died,total_hosts\n")
	if err != nil {
		return err
	}
	l.spreadRateFile, err = newOutputFile(l.spreadRatePath, "step,north,south,east,west\n")
	if err != nil {
		return err
	}
	l.quarantineFile, err = newOutputFile(l.quarantinePath, "step,escape,distance,direction\n")
	if err != nil {
		return err
	}
	return nil
}

// WriteStep appends one compartment snapshot row.
func (l *CSVStepLogger) WriteStep(rec StepRecord) error {
	const template = "%d,%s,%d,%d,%d,%d,%d,%d\n"
	row := fmt.Sprintf(template,
		rec.Step, rec.Date.String(),
		rec.Susceptible, rec.Exposed, rec.Infected, rec.Resistant,
		rec.Died, rec.TotalHosts,
	)
	_, err := l.stepFile.WriteString(row)
	return err
}

// WriteSpreadRate appends one spread-rate row.
func (l *CSVStepLogger) WriteSpreadRate(step int, rate SpreadRateStep) error {
	const template = "%d,%g,%g,%g,%g\n"
	row := fmt.Sprintf(template, step, rate.North, rate.South, rate.East, rate.West)
	_, err := l.spreadRateFile.WriteString(row)
	return err
}

// WriteQuarantine appends one quarantine-escape row.
func (l *CSVStepLogger) WriteQuarantine(step int, esc QuarantineEscapeStep) error {
	const template = "%d,%t,%g,%s\n"
	row := fmt.Sprintf(template, step, esc.Escape, esc.Distance, directionName(esc.Direction))
	_, err := l.quarantineFile.WriteString(row)
	return err
}

// Close flushes and closes every open file.
func (l *CSVStepLogger) Close() error {
	for _, f := range []*os.File{l.stepFile, l.spreadRateFile, l.quarantineFile} {
		if f == nil {
			continue
		}
		if err := f.Sync(); err != nil {
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	return nil
}

func directionName(d CompassDirection) string {
	names := [...]string{"None", "N", "NE", "E", "SE", "S", "SW", "W", "NW"}
	if int(d) < 0 || int(d) >= len(names) {
		return "Unknown"
	}
	return names[d]
}
