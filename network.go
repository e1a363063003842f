package pops

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/lvlath/core"
)

// NetworkNode is a node in the network graph: an integer id snapped to
// one grid cell (§3 Network graph).
type NetworkNode struct {
	ID   int
	Cell Cell
}

// NetworkSegment is the polyline of intermediate cells connecting two
// nodes.
type NetworkSegment struct {
	From, To int
	Polyline []Cell
}

// Network is the graph of nodes and segments the network kernel walks
// (§3, §4.4). Storage and edge bookkeeping are delegated to
// github.com/katalvlaran/lvlath/core.Graph; the polylines and the
// row/col snapping that PoPS needs on top of a bare weighted graph are
// kept alongside it.
type Network struct {
	graph *core.Graph

	bbox         BBox
	ewRes, nsRes float64

	nodes      map[int]NetworkNode
	cellToNode map[Cell]int
	segments   map[[2]int]NetworkSegment

	allowEmpty bool
}

// NewNetwork creates an empty network over the given bounding box and
// resolution (§3 Network graph, §6 Network input format).
func NewNetwork(bbox BBox, ewRes, nsRes float64, allowEmpty bool) *Network {
	return &Network{
		graph:      core.NewGraph(core.WithWeighted(), core.WithDirected(false)),
		bbox:       bbox,
		ewRes:      ewRes,
		nsRes:      nsRes,
		nodes:      make(map[int]NetworkNode),
		cellToNode: make(map[Cell]int),
		segments:   make(map[[2]int]NetworkSegment),
		allowEmpty: allowEmpty,
	}
}

// snap converts a map-unit coordinate to a grid cell under the
// network's bounding box and resolution.
func (n *Network) snap(x, y float64) Cell {
	row := int((n.bbox.North - y) / n.nsRes)
	col := int((x - n.bbox.West) / n.ewRes)
	return Cell{Row: row, Col: col}
}

func nodeKey(id string) int {
	v, _ := strconv.Atoi(id)
	return v
}

// LoadNodes parses the node CSV stream: "id,x,y" per line. Ids must be
// positive integers (§7 kind 4); points outside bbox are skipped
// silently (§6).
func (n *Network) LoadNodes(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := strings.Split(line, ",")
		if len(parts) != 3 {
			continue
		}
		id, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return &NetworkError{Reason: "node id is not an integer: " + parts[0]}
		}
		if id < 1 {
			return &NetworkError{Reason: "node id must be >= 1"}
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return &NetworkError{Reason: "node x is not a float: " + parts[1]}
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
		if err != nil {
			return &NetworkError{Reason: "node y is not a float: " + parts[2]}
		}
		if !n.bbox.Contains(x, y) {
			continue
		}
		cell := n.snap(x, y)
		n.nodes[id] = NetworkNode{ID: id, Cell: cell}
		n.cellToNode[cell] = id
		_ = n.graph.AddVertex(strconv.Itoa(id))
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	if len(n.nodes) == 0 && !n.allowEmpty {
		return &NetworkError{Reason: "no nodes found inside bounding box"}
	}
	return nil
}

// LoadSegments parses the segment CSV stream:
// "node_id_1,node_id_2,x1;y1;x2;y2;...;xn;yn". Segments whose
// endpoints are not both within the loaded node set are skipped (§6).
func (n *Network) LoadSegments(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, ",", 3)
		if len(parts) != 3 {
			continue
		}
		from, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
		to, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err1 != nil || err2 != nil {
			continue
		}
		if _, ok := n.nodes[from]; !ok {
			continue
		}
		if _, ok := n.nodes[to]; !ok {
			continue
		}
		coords := strings.Split(strings.TrimSpace(parts[2]), ";")
		polyline := make([]Cell, 0, len(coords)/2)
		for i := 0; i+1 < len(coords); i += 2 {
			x, errX := strconv.ParseFloat(strings.TrimSpace(coords[i]), 64)
			y, errY := strconv.ParseFloat(strings.TrimSpace(coords[i+1]), 64)
			if errX != nil || errY != nil {
				continue
			}
			polyline = append(polyline, n.snap(x, y))
		}
		weight := float64(len(polyline))
		if weight == 0 {
			weight = 1
		}
		_, _ = n.graph.AddEdge(strconv.Itoa(from), strconv.Itoa(to), weight)
		key := segmentKey(from, to)
		n.segments[key] = NetworkSegment{From: from, To: to, Polyline: polyline}
	}
	return scanner.Err()
}

func segmentKey(a, b int) [2]int {
	if a < b {
		return [2]int{a, b}
	}
	return [2]int{b, a}
}

// NodeAt reports the node id at cell, if any.
func (n *Network) NodeAt(cell Cell) (int, bool) {
	id, ok := n.cellToNode[cell]
	return id, ok
}

// Neighbors returns the neighboring node ids of id, queried from the
// underlying graph rather than a side-table.
func (n *Network) Neighbors(id int) []int {
	ids, err := n.graph.NeighborIDs(strconv.Itoa(id))
	if err != nil {
		return nil
	}
	out := make([]int, 0, len(ids))
	for _, s := range ids {
		if v, err := strconv.Atoi(s); err == nil {
			out = append(out, v)
		}
	}
	return out
}

// SegmentBetween returns the polyline segment connecting a and b, if
// one was loaded.
func (n *Network) SegmentBetween(a, b int) (NetworkSegment, bool) {
	seg, ok := n.segments[segmentKey(a, b)]
	return seg, ok
}

// Empty reports whether the network has no nodes.
func (n *Network) Empty() bool {
	return len(n.nodes) == 0
}
