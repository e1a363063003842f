package pops

import "fmt"

// Model is the per-step driver: it owns every subsystem a run needs
// and executes one step's fixed control-flow order (§2): lethal-
// temperature purge, host movement, spread (generate+disperse),
// overpopulation move, treatments apply/expire, mortality, spread-rate
// compute, quarantine compute. Each action is gated by its own
// schedule mask for the step.
type Model struct {
	Hosts      *HostPool
	Spread     *SpreadAction
	Overpop    *OverpopulationMove // nil disables overpopulation movement
	Treatments *Treatments         // nil disables treatments
	Movements  *Movements          // nil disables scheduled host movement

	SpreadRateTracker *SpreadRate // nil disables spread-rate analytics
	QuarantineTracker *Quarantine // nil disables quarantine-escape analytics

	Scheduler  *Scheduler
	Generators GeneratorProvider

	WeatherSeries  []*Raster[float64] // indexed by WeatherStepIdx; nil entry/slice disables weather
	LethalSeries   []*Raster[float64] // indexed by step; nil disables lethal temperature lookups
	SurvivalSeries []*Raster[float64] // indexed by step; nil disables survival-rate lookups
	WeatherStepIdx []int              // length NumSteps(), from Scheduler.WeatherTable

	UseLethalTemperature       bool
	LethalTemperatureThreshold float64
	LethalMask                 []bool

	UseMortality      bool
	MortalityRate     float64
	MortalityTimeLag  int
	MortalityMask     []bool

	SpreadMask     []bool
	SpreadRateMask []bool
	QuarantineMask []bool
}

func maskAt(mask []bool, step int) bool {
	if mask == nil {
		return true
	}
	return mask[step]
}

// environmentForStep builds the Environment view for stepIndex from
// whichever series are configured.
func (m *Model) environmentForStep(stepIndex int) *Environment {
	var weather, lethal, survival *Raster[float64]
	if m.WeatherSeries != nil && m.WeatherStepIdx != nil {
		weather = m.WeatherSeries[m.WeatherStepIdx[stepIndex]]
	}
	if m.LethalSeries != nil && stepIndex < len(m.LethalSeries) {
		lethal = m.LethalSeries[stepIndex]
	}
	if m.SurvivalSeries != nil && stepIndex < len(m.SurvivalSeries) {
		survival = m.SurvivalSeries[stepIndex]
	}
	return NewEnvironment(weather, lethal, survival)
}

// RunStep executes the control flow of §2 for one scheduled step.
func (m *Model) RunStep(stepIndex int) error {
	if stepIndex < 0 || stepIndex >= m.Scheduler.NumSteps() {
		return fmt.Errorf(InvalidIntParameterError, "step index", stepIndex, "out of range")
	}

	env := m.environmentForStep(stepIndex)
	m.Hosts.ResetDied()

	if m.UseLethalTemperature && maskAt(m.LethalMask, stepIndex) {
		for _, cell := range m.Hosts.SuitableCells() {
			lt, ok := env.LethalTemperature(cell.Row, cell.Col)
			if ok && lt <= m.LethalTemperatureThreshold {
				m.Hosts.ApplyLethalTemperaturePurgeAt(cell.Row, cell.Col)
			}
		}
	}

	if m.Movements != nil {
		m.Movements.Apply(m.Hosts, stepIndex, m.Generators.Generator(ConcernMovement))
	}

	if maskAt(m.SpreadMask, stepIndex) {
		m.Spread.Run(env, m.Generators.Generator(ConcernGeneral))
	}

	if m.Overpop != nil {
		m.Overpop.Run(m.Hosts, m.Generators.Generator(ConcernOverpopulation))
	}

	if m.Treatments != nil {
		m.Treatments.Apply(m.Hosts, stepIndex, m.Generators.Generator(ConcernGeneral))
	}

	if m.UseMortality && maskAt(m.MortalityMask, stepIndex) {
		for _, cell := range m.Hosts.SuitableCells() {
			m.Hosts.ApplyMortalityAt(cell.Row, cell.Col, m.MortalityRate, m.MortalityTimeLag)
		}
		m.Hosts.StepForwardMortality()
	}

	m.Hosts.StepForward(stepIndex)

	if m.SpreadRateTracker != nil && maskAt(m.SpreadRateMask, stepIndex) {
		m.SpreadRateTracker.Record(m.Hosts.I)
	}

	if m.QuarantineTracker != nil && maskAt(m.QuarantineMask, stepIndex) {
		m.QuarantineTracker.Record(m.Hosts.I)
	}

	return nil
}

// Run executes every scheduled step in order, stopping early if
// RunStep returns an error (step index range checks only; runtime
// invariant violations panic per §7 propagation policy).
func (m *Model) Run() error {
	for i := 0; i < m.Scheduler.NumSteps(); i++ {
		if err := m.RunStep(i); err != nil {
			return err
		}
	}
	return nil
}

// Snapshot sums every compartment across the whole host pool grid for
// stepIndex, for handing to a StepLogger after RunStep returns.
func (m *Model) Snapshot(stepIndex int) StepRecord {
	hp := m.Hosts
	rec := StepRecord{Step: stepIndex, Date: m.Scheduler.Steps()[stepIndex].EndDate}
	for row := 0; row < hp.rows; row++ {
		for col := 0; col < hp.cols; col++ {
			rec.Susceptible += hp.S.At(row, col)
			rec.Exposed += hp.ExposedTotal(row, col)
			rec.Infected += hp.I.At(row, col)
			rec.Resistant += hp.R.At(row, col)
			rec.Died += hp.Died(row, col)
			rec.TotalHosts += hp.TotalHosts(row, col)
		}
	}
	return rec
}
