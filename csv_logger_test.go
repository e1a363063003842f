package pops

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCSVStepLogger_WritesHeaderAndRows(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "run")
	runID := NewRunID()
	l := NewCSVStepLogger(base, runID)
	if err := l.Init(); err != nil {
		t.Fatal(err)
	}

	date, err := ParseDate("2020-01-01")
	if err != nil {
		t.Fatal(err)
	}
	if err := l.WriteStep(StepRecord{Step: 0, Date: date, Susceptible: 90, Infected: 10, TotalHosts: 100}); err != nil {
		t.Fatal(err)
	}
	if err := l.WriteSpreadRate(0, SpreadRateStep{North: 1, South: 2, East: 3, West: 4}); err != nil {
		t.Fatal(err)
	}
	if err := l.WriteQuarantine(0, QuarantineEscapeStep{Escape: true, Direction: DirectionN}); err != nil {
		t.Fatal(err)
	}
	if err := l.Close(); err != nil {
		t.Fatal(err)
	}

	stepBytes, err := os.ReadFile(l.stepPath)
	if err != nil {
		t.Fatal(err)
	}
	content := string(stepBytes)
	if !strings.HasPrefix(content, "step,date,susceptible,exposed,infected,resistant,died,total_hosts\n") {
		t.Errorf("expected the steps file to start with its CSV header, got: %q", content)
	}
	if !strings.Contains(content, "90") || !strings.Contains(content, "10") {
		t.Errorf("expected the written row to contain the recorded compartment counts, got: %q", content)
	}
}

func TestCSVStepLogger_SetBasePathScopesFilenamesByRunID(t *testing.T) {
	l := &CSVStepLogger{}
	id1 := NewRunID()
	id2 := NewRunID()
	l.SetBasePath("/tmp/run", id1)
	path1 := l.stepPath
	l.SetBasePath("/tmp/run", id2)
	path2 := l.stepPath
	if path1 == path2 {
		t.Error("expected distinct run ids to produce distinct step file paths")
	}
}

func TestDirectionName_CoversEveryCompassDirection(t *testing.T) {
	if got := directionName(DirectionNE); got != "NE" {
		t.Errorf("expected directionName(DirectionNE) to be \"NE\", got %q", got)
	}
	if got := directionName(CompassDirection(999)); got != "Unknown" {
		t.Errorf("expected an out-of-range direction to report Unknown, got %q", got)
	}
}
