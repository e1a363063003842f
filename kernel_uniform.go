package pops

import "math/rand"

// UniformKernel samples row and col independently and uniformly over
// the grid extent (§4.4).
type UniformKernel struct {
	Rows, Cols int
}

func NewUniformKernel(rows, cols int) *UniformKernel {
	return &UniformKernel{Rows: rows, Cols: cols}
}

func (k *UniformKernel) Disperse(g *rand.Rand, row, col int) (int, int) {
	return g.Intn(k.Rows), g.Intn(k.Cols)
}

func (k *UniformKernel) IsCellEligible(row, col int) bool {
	return true
}

// DeterministicNeighborKernel fixes a compass direction at
// construction and adds its (drow,dcol) offset on every call (§4.4).
type DeterministicNeighborKernel struct {
	Direction CompassDirection
}

func NewDeterministicNeighborKernel(dir CompassDirection) *DeterministicNeighborKernel {
	return &DeterministicNeighborKernel{Direction: dir}
}

func (k *DeterministicNeighborKernel) Disperse(g *rand.Rand, row, col int) (int, int) {
	dr, dc := k.Direction.neighborOffset()
	return row + dr, col + dc
}

func (k *DeterministicNeighborKernel) IsCellEligible(row, col int) bool {
	return true
}
