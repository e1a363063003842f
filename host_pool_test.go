package pops

import (
	"math/rand"
	"testing"
)

func newTestHostPool(t *testing.T, modelType ModelType) (*HostPool, *Raster[int], *Raster[int], *Raster[int], *Raster[int]) {
	t.Helper()
	s := NewRaster[int](2, 2, 30, 30)
	i := NewRaster[int](2, 2, 30, 30)
	r := NewRaster[int](2, 2, 30, 30)
	total := NewRaster[int](2, 2, 30, 30)
	s.Set(0, 0, 100)
	total.Set(0, 0, 100)
	hp, err := NewHostPool(HostPoolConfig{
		ModelType:                modelType,
		LatencyPeriodSteps:       2,
		MortalityCohortLen:       5,
		ReproductiveRate:         1,
		Competency:               1,
		GenerateStochasticity:    false,
		EstablishmentStochasticity: false,
		EstablishmentProbability: 1,
	}, s, i, r, total)
	if err != nil {
		t.Fatal(err)
	}
	return hp, s, i, r, total
}

func TestHostPool_TotalHostsInvariant(t *testing.T) {
	hp, _, _, _, _ := newTestHostPool(t, ModelSI)
	hp.AddDisperserAt(0, 0)
	if got := hp.TotalHosts(0, 0); got != 100 {
		t.Errorf(UnequalIntParameterError, "total hosts after disperser arrival", 100, got)
	}
	if got := hp.I.At(0, 0); got != 1 {
		t.Errorf(UnequalIntParameterError, "infected count", 1, got)
	}
}

func TestHostPool_DisperserTo_SEI_GoesToExposed(t *testing.T) {
	hp, _, _, _, _ := newTestHostPool(t, ModelSEI)
	env := NewEnvironment(nil, nil, nil)
	g := rand.New(rand.NewSource(1))
	ok := hp.DisperserTo(0, 0, env, g)
	if !ok {
		t.Fatal("expected establishment to succeed with establishment_probability=1 and stochasticity off")
	}
	if got := hp.ExposedTotal(0, 0); got != 1 {
		t.Errorf(UnequalIntParameterError, "exposed total", 1, got)
	}
	if got := hp.I.At(0, 0); got != 0 {
		t.Errorf(UnequalIntParameterError, "infected count", 0, got)
	}
}

func TestHostPool_StepForward_AgesExposedIntoInfected(t *testing.T) {
	hp, _, _, _, _ := newTestHostPool(t, ModelSEI)
	env := NewEnvironment(nil, nil, nil)
	g := rand.New(rand.NewSource(1))
	hp.DisperserTo(0, 0, env, g)
	// latency period is 2: aged-out happens once stepIndex >= 2, after
	// two rotations have walked this cohort down to slot 0.
	hp.StepForward(0)
	hp.StepForward(1)
	if got := hp.I.At(0, 0); got != 0 {
		t.Fatalf(UnequalIntParameterError, "infected count before latency elapses", 0, got)
	}
	hp.StepForward(2)
	if got := hp.I.At(0, 0); got != 1 {
		t.Errorf(UnequalIntParameterError, "infected count after latency elapses", 1, got)
	}
}

func TestHostPool_ApplyMortalityAt_KillsOldestCohort(t *testing.T) {
	hp, _, _, _, _ := newTestHostPool(t, ModelSI)
	hp.AddDisperserAt(0, 0)
	hp.AddDisperserAt(0, 0)
	hp.StepForwardMortality()
	hp.StepForwardMortality()
	hp.StepForwardMortality()
	hp.StepForwardMortality()
	hp.ApplyMortalityAt(0, 0, 0.5, 0)
	if got := hp.Died(0, 0); got != 2 {
		t.Errorf(UnequalIntParameterError, "died count", 2, got)
	}
	if got := hp.I.At(0, 0); got != 0 {
		t.Errorf(UnequalIntParameterError, "infected count after mortality", 0, got)
	}
}

func TestHostPool_MoveHostsFromTo_AppendsNewSuitableCell(t *testing.T) {
	hp, _, _, _, _ := newTestHostPool(t, ModelSI)
	hp.AddDisperserAt(0, 0)
	before := len(hp.SuitableCells())
	g := rand.New(rand.NewSource(3))
	hp.MoveHostsFromTo(0, 0, 1, 1, 1, g)
	after := len(hp.SuitableCells())
	if after != before+1 {
		t.Errorf(UnequalIntParameterError, "suitable cell count after move", before+1, after)
	}
}
