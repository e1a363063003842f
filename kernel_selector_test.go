package pops

import (
	"math/rand"
	"testing"
)

type fakeKernel struct {
	row, col int
	eligible bool
}

func (k fakeKernel) Disperse(g *rand.Rand, row, col int) (int, int) { return k.row, k.col }
func (k fakeKernel) IsCellEligible(row, col int) bool               { return k.eligible }

func TestNaturalAnthropogenicKernel_RoutesToNaturalWhenAnthropogenicDisabled(t *testing.T) {
	natural := fakeKernel{row: 1, col: 1, eligible: true}
	anthro := fakeKernel{row: 9, col: 9, eligible: true}
	k := NewNaturalAnthropogenicKernel(natural, anthro, false, 0)
	g := rand.New(rand.NewSource(1))
	row, col := k.Disperse(g, 0, 0)
	if row != 1 || col != 1 {
		t.Errorf("expected routing to natural when anthropogenic dispersal is disabled, got (%d,%d)", row, col)
	}
}

func TestNaturalAnthropogenicKernel_RoutesToNaturalWhenAnthropogenicIneligible(t *testing.T) {
	natural := fakeKernel{row: 1, col: 1, eligible: true}
	anthro := fakeKernel{row: 9, col: 9, eligible: false}
	k := NewNaturalAnthropogenicKernel(natural, anthro, true, 0)
	g := rand.New(rand.NewSource(1))
	row, col := k.Disperse(g, 0, 0)
	if row != 1 || col != 1 {
		t.Errorf("expected routing to natural when the anthropogenic kernel is ineligible at the source, got (%d,%d)", row, col)
	}
}

func TestNaturalAnthropogenicKernel_RoutesToAnthropogenicWhenPNaturalIsZero(t *testing.T) {
	natural := fakeKernel{row: 1, col: 1, eligible: true}
	anthro := fakeKernel{row: 9, col: 9, eligible: true}
	k := NewNaturalAnthropogenicKernel(natural, anthro, true, 0)
	g := rand.New(rand.NewSource(1))
	row, col := k.Disperse(g, 0, 0)
	if row != 9 || col != 9 {
		t.Errorf("expected routing to anthropogenic when p_natural is 0, got (%d,%d)", row, col)
	}
}

func TestNaturalAnthropogenicKernel_IsCellEligibleIsEitherSubKernel(t *testing.T) {
	k := NewNaturalAnthropogenicKernel(fakeKernel{eligible: false}, fakeKernel{eligible: true}, true, 0.5)
	if !k.IsCellEligible(0, 0) {
		t.Error("expected eligibility when only the anthropogenic sub-kernel is eligible")
	}
	k2 := NewNaturalAnthropogenicKernel(fakeKernel{eligible: false}, fakeKernel{eligible: true}, false, 0.5)
	if k2.IsCellEligible(0, 0) {
		t.Error("expected ineligibility when anthropogenic is disabled and natural is ineligible")
	}
}
