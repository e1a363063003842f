package pops

import "math/rand"

// Movement is one scheduled host relocation: n_hosts drawn from
// (rowFrom,colFrom) and moved to (rowTo,colTo) on the step at Step
// (§4.3 move_hosts_from_to, §6 movements table).
type Movement struct {
	Step                           int
	RowFrom, ColFrom, RowTo, ColTo int
	NHosts                         int
}

// Movements replays a movements table against a host pool. The table
// is expected sorted by Step; Apply advances a stateful high-water
// mark rather than re-scanning from the start each call, so unsorted
// input produces undefined results (§9 Design Notes).
type Movements struct {
	table     []Movement
	lastIndex int
}

// NewMovements wraps a caller-provided, step-sorted movements table.
func NewMovements(table []Movement) *Movements {
	return &Movements{table: table}
}

// Apply executes every movement table entry whose Step equals
// stepIndex, in table order.
func (m *Movements) Apply(hosts *HostPool, stepIndex int, g *rand.Rand) {
	for m.lastIndex < len(m.table) && m.table[m.lastIndex].Step == stepIndex {
		mv := m.table[m.lastIndex]
		hosts.MoveHostsFromTo(mv.RowFrom, mv.ColFrom, mv.RowTo, mv.ColTo, mv.NHosts, g)
		m.lastIndex++
	}
}
