package pops

import "math"

// BBox holds the four geographic bounds used by the network subsystem
// to snap coordinates to cells and to validate that nodes fall within
// the modeled landscape.
type BBox struct {
	North, South, East, West float64
}

// Contains reports whether (x,y) falls within the bounding box,
// inclusive of its edges.
func (b BBox) Contains(x, y float64) bool {
	return x >= b.West && x <= b.East && y <= b.North && y >= b.South
}

// Valid reports whether the box encloses a non-degenerate area.
func (b BBox) Valid() bool {
	return b.North > b.South && b.East > b.West
}

// RasterBBox is the tight bounding box of a set of cells, expressed in
// row/col space. An empty RasterBBox (no cells) is represented as
// (-1,-1,-1,-1) per §4.7.
type RasterBBox struct {
	North, South, East, West int
}

// EmptyRasterBBox is the sentinel value used when no cell satisfies the
// predicate bounding the box.
var EmptyRasterBBox = RasterBBox{-1, -1, -1, -1}

// IsEmpty reports whether b is the empty-bbox sentinel.
func (b RasterBBox) IsEmpty() bool {
	return b == EmptyRasterBBox
}

// InfectedBBox computes the tight bounding box (in row/col space) of
// every cell with I(i,j) > 0. Rows decrease northward (row 0 is the
// northernmost row); North/South here are row indices and East/West
// are column indices.
func InfectedBBox(infected *Raster[int]) RasterBBox {
	north, south := math.MaxInt, -1
	east, west := -1, math.MaxInt
	found := false
	for row := 0; row < infected.Rows(); row++ {
		for col := 0; col < infected.Cols(); col++ {
			if infected.At(row, col) <= 0 {
				continue
			}
			found = true
			if row < north {
				north = row
			}
			if row > south {
				south = row
			}
			if col > east {
				east = col
			}
			if col < west {
				west = col
			}
		}
	}
	if !found {
		return EmptyRasterBBox
	}
	return RasterBBox{North: north, South: south, East: east, West: west}
}
