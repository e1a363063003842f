package pops

import "math/rand"

// NetworkKernel routes a disperser along a random walk over a Network
// graph, consuming an abstract travel-time budget sampled uniformly
// between MinTime and MaxTime (§4.4). It is eligible only at cells
// that snap to a network node.
type NetworkKernel struct {
	Net              *Network
	MinTime, MaxTime float64
}

// NewNetworkKernel builds a network kernel over net.
func NewNetworkKernel(net *Network, minTime, maxTime float64) *NetworkKernel {
	return &NetworkKernel{Net: net, MinTime: minTime, MaxTime: maxTime}
}

func (k *NetworkKernel) IsCellEligible(row, col int) bool {
	_, ok := k.Net.NodeAt(Cell{Row: row, Col: col})
	return ok
}

// Disperse performs the random walk described in §4.4: sample
// t ~ U(min,max), then repeatedly pick a uniformly random neighbor of
// the current node and walk its polyline, subtracting one unit of
// travel time per cell, until t <= 0.
func (k *NetworkKernel) Disperse(g *rand.Rand, row, col int) (int, int) {
	startID, ok := k.Net.NodeAt(Cell{Row: row, Col: col})
	if !ok {
		panic((&NetworkError{Reason: "network kernel called from a cell with no start node"}).Error())
	}
	t := k.MinTime + g.Float64()*(k.MaxTime-k.MinTime)
	currentID := startID
	currentCell := Cell{Row: row, Col: col}
	for t > 0 {
		neighbors := k.Net.Neighbors(currentID)
		if len(neighbors) == 0 {
			return currentCell.Row, currentCell.Col
		}
		nextID := neighbors[g.Intn(len(neighbors))]
		seg, ok := k.Net.SegmentBetween(currentID, nextID)
		if !ok || len(seg.Polyline) == 0 {
			currentID = nextID
			continue
		}
		polyline := seg.Polyline
		if seg.From != currentID {
			polyline = reverseCells(polyline)
		}
		for _, cell := range polyline {
			t -= 1.0
			currentCell = cell
			if t <= 0 {
				return currentCell.Row, currentCell.Col
			}
		}
		currentID = nextID
	}
	return currentCell.Row, currentCell.Col
}

func reverseCells(cells []Cell) []Cell {
	out := make([]Cell, len(cells))
	for i, c := range cells {
		out[len(cells)-1-i] = c
	}
	return out
}
