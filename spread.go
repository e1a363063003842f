package pops

import (
	"math"
	"math/rand"
)

// SoilPool is the optional soil-reservoir pool: a per-cell count of
// dispersers buried rather than dispersed this step, released back
// into local establishment attempts at the same cell later in the same
// SpreadAction.Run call (§4.5, §SPEC_FULL
// supplemented feature: original_source/include/pops/soils.hpp).
type SoilPool struct {
	buried       *Raster[int]
	soilFraction float64
}

// NewSoilPool attaches a soil reservoir over a grid of the given
// extent, depositing soilFraction of each cell's generated dispersers
// per step.
func NewSoilPool(rows, cols int, ewRes, nsRes, soilFraction float64) *SoilPool {
	return &SoilPool{
		buried:       NewRaster[int](rows, cols, ewRes, nsRes),
		soilFraction: soilFraction,
	}
}

// Deposit buries n dispersers at (row,col).
func (s *SoilPool) Deposit(row, col, n int) {
	s.buried.Add(row, col, n)
}

// Withdraw removes and returns every disperser currently buried at
// (row,col).
func (s *SoilPool) Withdraw(row, col int) int {
	n := s.buried.At(row, col)
	s.buried.Set(row, col, 0)
	return n
}

// SpreadAction generates dispersers at every suitable cell and routes
// them through a Kernel into the HostPool (§4.5).
type SpreadAction struct {
	Hosts                 *HostPool
	Kernel                Kernel
	Dispersers            *Raster[int]
	EstablishedDispersers *Raster[int]
	OutsideDispersers     []Cell
	Soil                  *SoilPool
}

// NewSpreadAction wires the per-step disperser buffers to a host pool
// and a kernel. Dispersers and EstablishedDispersers are overwritten
// every call to Run (§6).
func NewSpreadAction(hosts *HostPool, kernel Kernel, dispersers, established *Raster[int], soil *SoilPool) *SpreadAction {
	return &SpreadAction{
		Hosts: hosts, Kernel: kernel,
		Dispersers: dispersers, EstablishedDispersers: established,
		Soil: soil,
	}
}

// Run executes one spread step (§4.5 steps 1-3) over every suitable
// cell of the host pool.
func (a *SpreadAction) Run(env *Environment, g *rand.Rand) {
	rows, cols := a.Dispersers.Rows(), a.Dispersers.Cols()
	for _, cell := range a.Hosts.SuitableCells() {
		row, col := cell.Row, cell.Col
		n := a.Hosts.DispersersFrom(row, col, env, g)

		if a.Soil != nil && n > 0 {
			buried := int(math.Round(a.Soil.soilFraction * float64(n)))
			if buried > n {
				buried = n
			}
			n -= buried
			a.Soil.Deposit(row, col, buried)
		}

		a.Dispersers.Set(row, col, n)
		a.EstablishedDispersers.Set(row, col, n)

		for k := 0; k < n; k++ {
			r, c := a.Kernel.Disperse(g, row, col)
			if r < 0 || r >= rows || c < 0 || c >= cols {
				a.OutsideDispersers = append(a.OutsideDispersers, Cell{Row: r, Col: c})
				a.EstablishedDispersers.Add(row, col, -1)
				continue
			}
			if !a.Hosts.DisperserTo(r, c, env, g) {
				a.EstablishedDispersers.Add(row, col, -1)
			}
		}

		if a.Soil != nil {
			if buried := a.Soil.Withdraw(row, col); buried > 0 {
				for k := 0; k < buried; k++ {
					a.Hosts.DisperserTo(row, col, env, g)
				}
			}
		}
	}
}

// OverpopulationMove is the optional overpopulation-driven emigration
// action (§4.5). A source cell whose infected fraction meets or
// exceeds OverpopulationPercentage emits
// floor(LeavingPercentage*I) pests through a dedicated kernel. The
// move is materialized in two passes (gather, then commit) so targets
// cannot cascade within a single step (§9 Design Notes).
type OverpopulationMove struct {
	OverpopulationPercentage float64
	LeavingPercentage        float64
	Kernel                   Kernel
}

type overpopulationMove struct {
	fromRow, fromCol, toRow, toCol, n int
}

// Run performs the gather-then-commit overpopulation move over every
// suitable cell.
func (m *OverpopulationMove) Run(hosts *HostPool, g *rand.Rand) {
	rows := hosts.rows
	cols := hosts.cols
	var moves []overpopulationMove

	for _, cell := range hosts.SuitableCells() {
		row, col := cell.Row, cell.Col
		total := hosts.TotalHosts(row, col)
		if total == 0 {
			continue
		}
		infected := hosts.I.At(row, col)
		if float64(infected)/float64(total) < m.OverpopulationPercentage {
			continue
		}
		n := int(math.Floor(m.LeavingPercentage * float64(infected)))
		if n <= 0 {
			continue
		}
		targets := make(map[Cell]int)
		for i := 0; i < n; i++ {
			r, c := m.Kernel.Disperse(g, row, col)
			if r < 0 || r >= rows || c < 0 || c >= cols {
				continue
			}
			targets[Cell{Row: r, Col: c}]++
		}
		for target, count := range targets {
			moves = append(moves, overpopulationMove{
				fromRow: row, fromCol: col,
				toRow: target.Row, toCol: target.Col,
				n: count,
			})
		}
	}

	for _, mv := range moves {
		taken := hosts.PestFrom(mv.fromRow, mv.fromCol, mv.n)
		if taken > 0 {
			hosts.PestsTo(mv.toRow, mv.toCol, taken)
		}
	}
}
