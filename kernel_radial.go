package pops

import (
	"math"
	"math/rand"
)

// RadialKernel samples a (distance, angle) pair from a RadialDistribution
// and a Von Mises wind direction, and converts the polar offset into a
// row/col delta using the grid resolution (§4.4). It is eligible at
// every cell.
type RadialKernel struct {
	Distribution RadialDistribution
	WindDirRad   float64
	Kappa        float64
	EWRes, NSRes float64
}

// NewRadialKernel builds a radial kernel. When dir is DirectionNone,
// kappa is forced to 0 so the Von Mises angle degenerates to uniform
// on [0, 2*pi) (§4.4).
func NewRadialKernel(dist RadialDistribution, dir CompassDirection, kappa, ewRes, nsRes float64) *RadialKernel {
	k := kappa
	if dir == DirectionNone {
		k = 0
	}
	return &RadialKernel{
		Distribution: dist,
		WindDirRad:   dir.radians(),
		Kappa:        k,
		EWRes:        ewRes, NSRes: nsRes,
	}
}

func (k *RadialKernel) Disperse(g *rand.Rand, row, col int) (int, int) {
	distance := math.Abs(k.Distribution.Sample(g))
	angle := VonMisesAngle(g, k.WindDirRad, k.Kappa)
	rowOut := row - int(math.Round(distance*math.Cos(angle)/k.NSRes))
	colOut := col + int(math.Round(distance*math.Sin(angle)/k.EWRes))
	return rowOut, colOut
}

func (k *RadialKernel) IsCellEligible(row, col int) bool {
	return true
}
