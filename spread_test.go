package pops

import (
	"math/rand"
	"testing"
)

func TestSpreadAction_Run_DispersesIntoNeighboringCell(t *testing.T) {
	hp := newOverpopulationTestHostPool(t) // susceptible hosts available on every cell
	hp.AddDisperserAt(0, 0)

	dispersers := NewRaster[int](2, 2, 30, 30)
	established := NewRaster[int](2, 2, 30, 30)
	kernel := NewDeterministicNeighborKernel(DirectionE)
	action := NewSpreadAction(hp, kernel, dispersers, established, nil)

	env := NewEnvironment(nil, nil, nil)
	g := rand.New(rand.NewSource(1))
	action.Run(env, g)

	if got := hp.I.At(0, 1); got != 1 {
		t.Errorf(UnequalIntParameterError, "infected count at the target cell after a deterministic east dispersal", 1, got)
	}
}

func TestSpreadAction_Run_TracksOutsideDispersers(t *testing.T) {
	hp, _, _, _, _ := newTestHostPool(t, ModelSI)
	hp.AddDisperserAt(0, 0)

	dispersers := NewRaster[int](2, 2, 30, 30)
	established := NewRaster[int](2, 2, 30, 30)
	kernel := NewDeterministicNeighborKernel(DirectionW) // moves to col -1, outside the grid
	action := NewSpreadAction(hp, kernel, dispersers, established, nil)

	env := NewEnvironment(nil, nil, nil)
	g := rand.New(rand.NewSource(1))
	action.Run(env, g)

	if len(action.OutsideDispersers) == 0 {
		t.Error("expected dispersers sent off the west edge of the grid to be tracked as outside dispersers")
	}
}

func TestSpreadAction_Run_SoilPoolBuriesAndReleasesDispersers(t *testing.T) {
	hp, _, _, _, _ := newTestHostPool(t, ModelSI)
	hp.AddDisperserAt(0, 0)
	hp.AddDisperserAt(0, 0)

	dispersers := NewRaster[int](2, 2, 30, 30)
	established := NewRaster[int](2, 2, 30, 30)
	kernel := NewDeterministicNeighborKernel(DirectionNone) // disperses onto its own cell
	soil := NewSoilPool(2, 2, 30, 30, 1.0)                  // every disperser buried and later released
	action := NewSpreadAction(hp, kernel, dispersers, established, soil)

	env := NewEnvironment(nil, nil, nil)
	g := rand.New(rand.NewSource(1))
	action.Run(env, g)

	if got := soil.Withdraw(0, 0); got != 0 {
		t.Errorf(UnequalIntParameterError, "soil pool balance after Run already withdrew buried dispersers", 0, got)
	}
}

func newOverpopulationTestHostPool(t *testing.T) *HostPool {
	t.Helper()
	s := NewRaster[int](2, 2, 30, 30)
	i := NewRaster[int](2, 2, 30, 30)
	r := NewRaster[int](2, 2, 30, 30)
	total := NewRaster[int](2, 2, 30, 30)
	for row := 0; row < 2; row++ {
		for col := 0; col < 2; col++ {
			s.Set(row, col, 100)
			total.Set(row, col, 100)
		}
	}
	hp, err := NewHostPool(HostPoolConfig{
		ModelType: ModelSI, ReproductiveRate: 1, Competency: 1,
		EstablishmentProbability: 1,
	}, s, i, r, total)
	if err != nil {
		t.Fatal(err)
	}
	return hp
}

func TestOverpopulationMove_Run_EmigratesFromOverpopulatedCell(t *testing.T) {
	hp := newOverpopulationTestHostPool(t)
	for n := 0; n < 10; n++ {
		hp.AddDisperserAt(0, 0)
	}
	move := &OverpopulationMove{
		OverpopulationPercentage: 0.05,
		LeavingPercentage:        0.5,
		Kernel:                   NewDeterministicNeighborKernel(DirectionE),
	}
	g := rand.New(rand.NewSource(1))
	before := hp.I.At(0, 0)
	move.Run(hp, g)
	after := hp.I.At(0, 0)
	if after >= before {
		t.Errorf("expected overpopulation movement to reduce the source cell's infected count below %d, got %d", before, after)
	}
	if got := hp.I.At(0, 1); got == 0 {
		t.Error("expected the emigrating pests to arrive at the eastward neighbor")
	}
}

func TestOverpopulationMove_Run_SkipsCellsBelowThreshold(t *testing.T) {
	hp, _, _, _, _ := newTestHostPool(t, ModelSI)
	hp.AddDisperserAt(0, 0) // 1 infected out of 100 total: 1%
	move := &OverpopulationMove{
		OverpopulationPercentage: 0.5,
		LeavingPercentage:        0.5,
		Kernel:                   NewDeterministicNeighborKernel(DirectionE),
	}
	g := rand.New(rand.NewSource(1))
	move.Run(hp, g)
	if got := hp.I.At(0, 0); got != 1 {
		t.Errorf(UnequalIntParameterError, "infected count below the overpopulation threshold", 1, got)
	}
}
