package pops

import (
	"math"
	"testing"
)

func TestSpreadRate_FirstStepIsAlwaysNaN(t *testing.T) {
	infected := NewRaster[int](10, 10, 30, 30)
	infected.Set(5, 5, 1)
	sr := NewSpreadRate(10, 10, 30, 30)
	sr.Record(infected)
	step := sr.Steps()[0]
	if !math.IsNaN(step.North) || !math.IsNaN(step.South) || !math.IsNaN(step.East) || !math.IsNaN(step.West) {
		t.Errorf("expected every direction NaN on the first recorded step, got %+v", step)
	}
}

func TestSpreadRate_RecordsPositiveRateAsFrontExpands(t *testing.T) {
	infected := NewRaster[int](10, 10, 30, 30)
	infected.Set(5, 5, 1)
	sr := NewSpreadRate(10, 10, 30, 30)
	sr.Record(infected)

	infected.Set(4, 5, 1) // front expands north by one row
	sr.Record(infected)

	step := sr.Steps()[1]
	if step.North <= 0 {
		t.Errorf(InvalidFloatParameterError, "north spread rate after expansion", step.North, "expected a positive rate")
	}
}

func TestSpreadRate_NaNWhenFrontTouchesGridEdgeWithoutMoving(t *testing.T) {
	infected := NewRaster[int](5, 5, 30, 30)
	infected.Set(0, 2, 1) // already at the northern edge
	sr := NewSpreadRate(5, 5, 30, 30)
	sr.Record(infected)
	sr.Record(infected) // no change: bbox.North stays 0
	step := sr.Steps()[1]
	if !math.IsNaN(step.North) {
		t.Errorf(InvalidFloatParameterError, "north spread rate while pinned at the grid edge", step.North, "expected NaN")
	}
}

func TestAverageSpreadRate_SkipsNaNPerDirection(t *testing.T) {
	run1 := NewSpreadRate(10, 10, 30, 30)
	run2 := NewSpreadRate(10, 10, 30, 30)
	infected1 := NewRaster[int](10, 10, 30, 30)
	infected1.Set(5, 5, 1)
	infected2 := NewRaster[int](10, 10, 30, 30)
	infected2.Set(0, 5, 1)

	run1.Record(infected1)
	run2.Record(infected2)
	infected1.Set(4, 5, 1)
	run1.Record(infected1) // run1 has a real north rate on step 1
	run2.Record(infected2) // run2 stays pinned at the northern edge: north rate NaN

	avg, err := AverageSpreadRate([]*SpreadRate{run1, run2})
	if err != nil {
		t.Fatal(err)
	}
	if math.IsNaN(avg[1].North) {
		t.Error("expected averaging to skip the NaN run and still produce a value")
	}
	if avg[1].North != run1.Steps()[1].North {
		t.Errorf(UnequalFloatParameterError, "averaged north rate with one NaN run", run1.Steps()[1].North, avg[1].North)
	}
}

func TestAverageSpreadRate_RejectsMismatchedStepCounts(t *testing.T) {
	run1 := NewSpreadRate(5, 5, 30, 30)
	run2 := NewSpreadRate(5, 5, 30, 30)
	infected := NewRaster[int](5, 5, 30, 30)
	infected.Set(1, 1, 1)
	run1.Record(infected)
	run1.Record(infected)
	run2.Record(infected)
	_, err := AverageSpreadRate([]*SpreadRate{run1, run2})
	if err == nil {
		t.Errorf(ExpectedErrorWhileError, "averaging runs with different step counts")
	}
}

func TestAverageSpreadRate_RejectsZeroRuns(t *testing.T) {
	_, err := AverageSpreadRate(nil)
	if err == nil {
		t.Errorf(ExpectedErrorWhileError, "averaging zero runs")
	}
}
