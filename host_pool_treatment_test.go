package pops

import (
	"math/rand"
	"testing"
)

func TestRemoveSusceptible_PermanentlyRemovesHosts(t *testing.T) {
	hp, _, _, _, _ := newTestHostPool(t, ModelSI)
	hp.RemoveSusceptible(0, 0, 10)
	if got := hp.S.At(0, 0); got != 90 {
		t.Errorf(UnequalIntParameterError, "susceptible count after permanent removal", 90, got)
	}
	if got := hp.TotalHosts(0, 0); got != 90 {
		t.Errorf(UnequalIntParameterError, "total hosts after permanently removing susceptible hosts", 90, got)
	}
}

func TestMoveSusceptibleToResistant_MovesWithoutChangingTotal(t *testing.T) {
	hp, _, _, _, _ := newTestHostPool(t, ModelSI)
	hp.MoveSusceptibleToResistant(0, 0, 10)
	if got := hp.S.At(0, 0); got != 90 {
		t.Errorf(UnequalIntParameterError, "susceptible count after moving to resistant", 90, got)
	}
	if got := hp.R.At(0, 0); got != 10 {
		t.Errorf(UnequalIntParameterError, "resistant count after moving from susceptible", 10, got)
	}
	if got := hp.TotalHosts(0, 0); got != 100 {
		t.Errorf(UnequalIntParameterError, "total hosts after an S->R move", 100, got)
	}
}

func TestMoveInfectedToResistant_MovesAndPreservesTotal(t *testing.T) {
	hp, _, _, _, _ := newTestHostPool(t, ModelSI)
	hp.AddDisperserAt(0, 0) // S=99, I=1
	g := rand.New(rand.NewSource(1))
	hp.MoveInfectedToResistant(0, 0, 1, g)
	if got := hp.I.At(0, 0); got != 0 {
		t.Errorf(UnequalIntParameterError, "infected count after moving to resistant", 0, got)
	}
	if got := hp.R.At(0, 0); got != 1 {
		t.Errorf(UnequalIntParameterError, "resistant count after moving from infected", 1, got)
	}
}

func TestMoveAllResistantToSusceptible_ReturnsEveryResistantHost(t *testing.T) {
	hp, _, _, _, _ := newTestHostPool(t, ModelSI)
	hp.MoveSusceptibleToResistant(0, 0, 25)
	moved := hp.MoveAllResistantToSusceptible(0, 0)
	if moved != 25 {
		t.Errorf(UnequalIntParameterError, "hosts returned by MoveAllResistantToSusceptible", 25, moved)
	}
	if got := hp.R.At(0, 0); got != 0 {
		t.Errorf(UnequalIntParameterError, "resistant count after moving everything back to susceptible", 0, got)
	}
	if got := hp.S.At(0, 0); got != 100 {
		t.Errorf(UnequalIntParameterError, "susceptible count after moving everything back", 100, got)
	}
}

func TestMoveAllResistantToSusceptible_NoopWhenResistantIsEmpty(t *testing.T) {
	hp, _, _, _, _ := newTestHostPool(t, ModelSI)
	if moved := hp.MoveAllResistantToSusceptible(0, 0); moved != 0 {
		t.Errorf(UnequalIntParameterError, "hosts returned from an empty resistant compartment", 0, moved)
	}
}

func TestRemoveExposedPermanently_DrainsWithoutReturningToSusceptible(t *testing.T) {
	hp, _, _, _, _ := newTestHostPool(t, ModelSEI)
	env := NewEnvironment(nil, nil, nil)
	g := rand.New(rand.NewSource(1))
	hp.DisperserTo(0, 0, env, g)
	if got := hp.ExposedTotal(0, 0); got != 1 {
		t.Fatalf(UnequalIntParameterError, "exposed total before draining", 1, got)
	}
	susceptibleBefore := hp.S.At(0, 0)
	hp.RemoveExposedPermanently(0, 0, 1, g)
	if got := hp.ExposedTotal(0, 0); got != 0 {
		t.Errorf(UnequalIntParameterError, "exposed total after permanent removal", 0, got)
	}
	if got := hp.S.At(0, 0); got != susceptibleBefore {
		t.Errorf(UnequalIntParameterError, "susceptible count unaffected by permanent exposed removal", susceptibleBefore, got)
	}
}
