package pops

import "math/rand"

// NaturalAnthropogenicKernel composes a natural and an anthropogenic
// sub-kernel behind a Bernoulli selector (§4.4). Each call routes to
// natural when anthropogenic dispersal is disabled, when the
// anthropogenic kernel is not eligible at the source, or when the
// Bernoulli(p_natural) draw succeeds; otherwise it routes to
// anthropogenic.
type NaturalAnthropogenicKernel struct {
	Natural, Anthropogenic Kernel
	UseAnthropogenic       bool
	PNatural               float64
}

// NewNaturalAnthropogenicKernel composes natural and anthropogenic
// into a selector. If UseAnthropogenic is false, every call routes to
// natural regardless of PNatural.
func NewNaturalAnthropogenicKernel(natural, anthropogenic Kernel, useAnthropogenic bool, pNatural float64) *NaturalAnthropogenicKernel {
	return &NaturalAnthropogenicKernel{
		Natural: natural, Anthropogenic: anthropogenic,
		UseAnthropogenic: useAnthropogenic, PNatural: pNatural,
	}
}

func (k *NaturalAnthropogenicKernel) Disperse(g *rand.Rand, row, col int) (int, int) {
	if !k.UseAnthropogenic || !k.Anthropogenic.IsCellEligible(row, col) || bernoulli(g, k.PNatural) {
		return k.Natural.Disperse(g, row, col)
	}
	return k.Anthropogenic.Disperse(g, row, col)
}

func (k *NaturalAnthropogenicKernel) IsCellEligible(row, col int) bool {
	return k.Natural.IsCellEligible(row, col) || (k.UseAnthropogenic && k.Anthropogenic.IsCellEligible(row, col))
}
