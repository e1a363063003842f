package pops

import (
	"math/rand"
	"testing"
)

func TestApplyLethalTemperaturePurgeAt_KillsInfectedAndTalliesDied(t *testing.T) {
	hp, _, _, _, _ := newTestHostPool(t, ModelSI)
	hp.AddDisperserAt(0, 0) // S=99, I=1

	hp.ApplyLethalTemperaturePurgeAt(0, 0)

	if got := hp.I.At(0, 0); got != 0 {
		t.Errorf(UnequalIntParameterError, "infected count after lethal purge", 0, got)
	}
	if got := hp.Died(0, 0); got != 1 {
		t.Errorf(UnequalIntParameterError, "died count after lethal purge", 1, got)
	}
	if got := hp.S.At(0, 0); got != 99 {
		t.Errorf(UnequalIntParameterError, "susceptible count untouched by lethal purge", 99, got)
	}
}

func TestApplyLethalTemperaturePurgeAt_ClearsExposedCohorts(t *testing.T) {
	hp, _, _, _, _ := newTestHostPool(t, ModelSEI)
	env := NewEnvironment(nil, nil, nil)
	g := rand.New(rand.NewSource(1))
	hp.DisperserTo(0, 0, env, g)
	if got := hp.ExposedTotal(0, 0); got != 1 {
		t.Fatalf(UnequalIntParameterError, "exposed total before purge", 1, got)
	}

	hp.ApplyLethalTemperaturePurgeAt(0, 0)

	if got := hp.ExposedTotal(0, 0); got != 0 {
		t.Errorf(UnequalIntParameterError, "exposed total after lethal purge", 0, got)
	}
}

func TestApplyLethalTemperaturePurgeAt_ClearsMortalityCohortForPurgedInfected(t *testing.T) {
	hp, _, _, _, _ := newTestHostPool(t, ModelSI)
	hp.AddDisperserAt(0, 0)
	hp.StepForwardMortality()

	hp.ApplyLethalTemperaturePurgeAt(0, 0)
	hp.ApplyMortalityAt(0, 0, 1.0, 0)

	if got := hp.Died(0, 0); got != 1 {
		t.Errorf(UnequalIntParameterError, "died count after purge clears the mortality cohort", 1, got)
	}
}

func TestApplyLethalTemperaturePurgeAt_NoopOnEmptyCell(t *testing.T) {
	hp, _, _, _, _ := newTestHostPool(t, ModelSI)
	hp.ApplyLethalTemperaturePurgeAt(1, 1)
	if got := hp.Died(1, 1); got != 0 {
		t.Errorf(UnequalIntParameterError, "died count on an empty cell", 0, got)
	}
}
