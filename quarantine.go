package pops

import "math"

// QuarantineAreas maps a positive-integer area id to the tight
// bounding box of the cells in the input raster carrying that id
// (§4.7). A cell with area id 0 is unquarantined territory.
type QuarantineAreas struct {
	ids   *Raster[int]
	boxes map[int]RasterBBox
}

// NewQuarantineAreas builds the per-area bounding boxes from an input
// raster of area ids (§6 quarantine-areas raster).
func NewQuarantineAreas(ids *Raster[int]) *QuarantineAreas {
	boxes := make(map[int]RasterBBox)
	north := make(map[int]int)
	south := make(map[int]int)
	east := make(map[int]int)
	west := make(map[int]int)

	for row := 0; row < ids.Rows(); row++ {
		for col := 0; col < ids.Cols(); col++ {
			id := ids.At(row, col)
			if id <= 0 {
				continue
			}
			if _, ok := boxes[id]; !ok {
				north[id], south[id] = row, row
				east[id], west[id] = col, col
				boxes[id] = RasterBBox{}
				continue
			}
			if row < north[id] {
				north[id] = row
			}
			if row > south[id] {
				south[id] = row
			}
			if col > east[id] {
				east[id] = col
			}
			if col < west[id] {
				west[id] = col
			}
		}
	}
	for id := range boxes {
		boxes[id] = RasterBBox{North: north[id], South: south[id], East: east[id], West: west[id]}
	}

	return &QuarantineAreas{ids: ids, boxes: boxes}
}

// AreaAt returns the quarantine area id at (row,col); 0 means
// unquarantined.
func (q *QuarantineAreas) AreaAt(row, col int) int {
	return q.ids.At(row, col)
}

// QuarantineEscapeStep is the recorded escape state for one step
// (§4.7).
type QuarantineEscapeStep struct {
	Escape    bool
	Distance  float64
	Direction CompassDirection
}

// Quarantine tracks, per step, whether any infected cell has escaped
// its quarantine area, and if not, the minimum perpendicular distance
// (and the direction it was measured in) of any infected cell to its
// area's boundary.
type Quarantine struct {
	areas        *QuarantineAreas
	ewRes, nsRes float64
	steps        []QuarantineEscapeStep
}

// NewQuarantine builds a quarantine-escape tracker.
func NewQuarantine(areas *QuarantineAreas, ewRes, nsRes float64) *Quarantine {
	return &Quarantine{areas: areas, ewRes: ewRes, nsRes: nsRes}
}

// Record computes and appends the escape entry for the current step
// given the infected raster (§4.7).
func (q *Quarantine) Record(infected *Raster[int]) {
	for row := 0; row < infected.Rows(); row++ {
		for col := 0; col < infected.Cols(); col++ {
			if infected.At(row, col) <= 0 {
				continue
			}
			if q.areas.AreaAt(row, col) == 0 {
				q.steps = append(q.steps, QuarantineEscapeStep{
					Escape: true, Distance: math.NaN(), Direction: DirectionNone,
				})
				return
			}
		}
	}

	minDist := math.Inf(1)
	minDir := DirectionNone
	found := false

	for row := 0; row < infected.Rows(); row++ {
		for col := 0; col < infected.Cols(); col++ {
			if infected.At(row, col) <= 0 {
				continue
			}
			box := q.areas.boxes[q.areas.AreaAt(row, col)]
			distN := float64(row-box.North) * q.nsRes
			distS := float64(box.South-row) * q.nsRes
			distE := float64(box.East-col) * q.ewRes
			distW := float64(col-box.West) * q.ewRes

			candidates := []struct {
				d float64
				c CompassDirection
			}{
				{distN, DirectionN}, {distS, DirectionS},
				{distE, DirectionE}, {distW, DirectionW},
			}
			for _, cand := range candidates {
				if cand.d < minDist {
					minDist = cand.d
					minDir = cand.c
					found = true
				}
			}
		}
	}

	if !found {
		q.steps = append(q.steps, QuarantineEscapeStep{Escape: false, Distance: math.NaN(), Direction: DirectionNone})
		return
	}
	q.steps = append(q.steps, QuarantineEscapeStep{Escape: false, Distance: minDist, Direction: minDir})
}

// Steps returns every recorded step, in order.
func (q *Quarantine) Steps() []QuarantineEscapeStep {
	return q.steps
}

// EscapeProbability returns the fraction of recorded steps across one
// or more runs in which escape was true.
func EscapeProbability(runs []*Quarantine) (float64, error) {
	if len(runs) == 0 {
		return 0, &StatisticsError{Reason: "cannot compute escape probability across zero runs"}
	}
	var escapes, total int
	for _, r := range runs {
		for _, s := range r.steps {
			total++
			if s.Escape {
				escapes++
			}
		}
	}
	if total == 0 {
		return 0, &StatisticsError{Reason: "no recorded quarantine steps"}
	}
	return float64(escapes) / float64(total), nil
}

// EscapeDistances collects the non-escape distance recorded at stepIdx
// across every run, skipping runs whose step at that index escaped.
func EscapeDistances(runs []*Quarantine, stepIdx int) []float64 {
	var out []float64
	for _, r := range runs {
		if stepIdx >= len(r.steps) {
			continue
		}
		s := r.steps[stepIdx]
		if s.Escape || math.IsNaN(s.Distance) {
			continue
		}
		out = append(out, s.Distance)
	}
	return out
}
