package pops

import "math"

// SpreadRateStep is the recorded bounding box and four-direction rate
// for one step (§4.7).
type SpreadRateStep struct {
	BBox RasterBBox
	// North, South, East, West are in map units per step. NaN means
	// the infected front has escaped the grid in that direction, or
	// the step had no infected cells.
	North, South, East, West float64
}

// SpreadRate accumulates one SpreadRateStep per call to Record over the
// life of a run (§4.7).
type SpreadRate struct {
	rows, cols   int
	ewRes, nsRes float64
	steps        []SpreadRateStep
}

// NewSpreadRate builds a spread-rate tracker over a grid of the given
// extent and resolution.
func NewSpreadRate(rows, cols int, ewRes, nsRes float64) *SpreadRate {
	return &SpreadRate{rows: rows, cols: cols, ewRes: ewRes, nsRes: nsRes}
}

// Record computes and appends the spread-rate entry for the current
// step given the infected raster. Step 0 (the first recorded step) has
// no predecessor bbox, so it always records NaN rates; this matches
// §4.7's "for step k >= 1" wording, since the very first recorded step
// has no k-1 to subtract.
func (sr *SpreadRate) Record(infected *Raster[int]) {
	bbox := InfectedBBox(infected)
	step := SpreadRateStep{BBox: bbox, North: math.NaN(), South: math.NaN(), East: math.NaN(), West: math.NaN()}

	if len(sr.steps) > 0 && !bbox.IsEmpty() {
		prev := sr.steps[len(sr.steps)-1].BBox
		if !prev.IsEmpty() {
			step.North = float64(prev.North-bbox.North) * sr.nsRes
			step.South = float64(bbox.South-prev.South) * sr.nsRes
			step.East = float64(bbox.East-prev.East) * sr.ewRes
			step.West = float64(prev.West-bbox.West) * sr.ewRes

			if step.North == 0 && bbox.North == 0 {
				step.North = math.NaN()
			}
			if step.South == 0 && bbox.South == sr.rows-1 {
				step.South = math.NaN()
			}
			if step.East == 0 && bbox.East == sr.cols-1 {
				step.East = math.NaN()
			}
			if step.West == 0 && bbox.West == 0 {
				step.West = math.NaN()
			}
		}
	}

	sr.steps = append(sr.steps, step)
}

// Steps returns every recorded step, in order.
func (sr *SpreadRate) Steps() []SpreadRateStep {
	return sr.steps
}

// AverageSpreadRate averages the per-direction rates across one or
// more replicate runs, skipping NaNs independently per direction and
// per step index (§4.7, §8). All runs must have recorded the same
// number of steps.
func AverageSpreadRate(runs []*SpreadRate) ([]SpreadRateStep, error) {
	if len(runs) == 0 {
		return nil, &StatisticsError{Reason: "cannot average spread rate across zero runs"}
	}
	n := len(runs[0].steps)
	for _, r := range runs {
		if len(r.steps) != n {
			return nil, &StatisticsError{Reason: "runs recorded different step counts"}
		}
	}

	out := make([]SpreadRateStep, n)
	for i := 0; i < n; i++ {
		out[i] = SpreadRateStep{
			North: averageSkipNaN(runs, i, func(s SpreadRateStep) float64 { return s.North }),
			South: averageSkipNaN(runs, i, func(s SpreadRateStep) float64 { return s.South }),
			East:  averageSkipNaN(runs, i, func(s SpreadRateStep) float64 { return s.East }),
			West:  averageSkipNaN(runs, i, func(s SpreadRateStep) float64 { return s.West }),
		}
	}
	return out, nil
}

func averageSkipNaN(runs []*SpreadRate, stepIdx int, pick func(SpreadRateStep) float64) float64 {
	var sum float64
	var count int
	for _, r := range runs {
		v := pick(r.steps[stepIdx])
		if math.IsNaN(v) {
			continue
		}
		sum += v
		count++
	}
	if count == 0 {
		return math.NaN()
	}
	return sum / float64(count)
}
