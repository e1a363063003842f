package pops

import (
	"fmt"
	"math"
	"math/rand"
)

// ModelType selects the compartment model a HostPool enforces.
type ModelType int

const (
	ModelSI ModelType = iota
	ModelSEI
)

func (m ModelType) String() string {
	switch m {
	case ModelSI:
		return "SI"
	case ModelSEI:
		return "SEI"
	default:
		return "Unknown"
	}
}

// HostPool holds the S/E/I/R compartment arrays with cohort-structured
// exposed and mortality vectors for every cell, and implements every
// local state mutation in §4.3. All compartment rasters are owned by
// the caller; HostPool mutates them in place (§5).
type HostPool struct {
	rows, cols int

	S, I, R    *Raster[int]
	totalHosts *Raster[int]
	totalPop   *Raster[int]
	died       *Raster[int]

	exposed   []cohortRing // length rows*cols, each length latencyPeriod+1
	mortality []cohortRing // length rows*cols, each length mortalityCohortLen

	latencyPeriod int
	modelType     ModelType

	reproductiveRate float64
	competency       float64

	generateStochasticity      bool
	establishmentStochasticity bool
	establishmentProbability   float64

	suitable []Cell
}

// HostPoolConfig carries the construction-time parameters of a
// HostPool.
type HostPoolConfig struct {
	ModelType                  ModelType
	LatencyPeriodSteps         int // SEI only
	MortalityCohortLen         int // length of each M ring; 0 disables mortality cohorts
	ReproductiveRate           float64
	Competency                 float64
	GenerateStochasticity      bool
	EstablishmentStochasticity bool
	EstablishmentProbability   float64
}

// NewHostPool builds a HostPool over caller-owned S, I, R, and
// total-population rasters. total_hosts is derived and kept in sync
// with I2. The exposed vector length is fixed at
// LatencyPeriodSteps+1 across every cell (I4); the mortality vector
// length is MortalityCohortLen for every cell (0 when mortality is
// unused).
func NewHostPool(cfg HostPoolConfig, s, i, r, totalPop *Raster[int]) (*HostPool, error) {
	if cfg.ModelType == ModelSEI && cfg.LatencyPeriodSteps < 0 {
		return nil, &ConfigError{Field: "latency_period_steps", Reason: "must be >= 0 for SEI model"}
	}
	rows, cols := s.Rows(), s.Cols()
	hp := &HostPool{
		rows: rows, cols: cols,
		S: s, I: i, R: r, totalPop: totalPop,
		totalHosts:                 NewRaster[int](rows, cols, s.EWRes(), s.NSRes()),
		died:                       NewRaster[int](rows, cols, s.EWRes(), s.NSRes()),
		latencyPeriod:              cfg.LatencyPeriodSteps,
		modelType:                  cfg.ModelType,
		reproductiveRate:           cfg.ReproductiveRate,
		competency:                 cfg.Competency,
		generateStochasticity:      cfg.GenerateStochasticity,
		establishmentStochasticity: cfg.EstablishmentStochasticity,
		establishmentProbability:   cfg.EstablishmentProbability,
	}
	expLen := cfg.LatencyPeriodSteps + 1
	hp.exposed = make([]cohortRing, rows*cols)
	hp.mortality = make([]cohortRing, rows*cols)
	for idx := range hp.exposed {
		hp.exposed[idx] = newCohortRing(expLen)
		if cfg.MortalityCohortLen > 0 {
			hp.mortality[idx] = newCohortRing(cfg.MortalityCohortLen)
		}
	}
	hp.recomputeTotals()
	hp.suitable = FindSuitableCells(hp.totalHosts)
	return hp, nil
}

func (hp *HostPool) cellIndex(row, col int) int {
	return row*hp.cols + col
}

func (hp *HostPool) exposedSum(row, col int) int {
	return hp.exposed[hp.cellIndex(row, col)].Sum()
}

func (hp *HostPool) recomputeTotals() {
	for row := 0; row < hp.rows; row++ {
		for col := 0; col < hp.cols; col++ {
			hp.refreshTotal(row, col)
		}
	}
}

// refreshTotal enforces I2: total_hosts(i,j) = S + sum(E) + I + R.
func (hp *HostPool) refreshTotal(row, col int) {
	total := hp.S.At(row, col) + hp.exposedSum(row, col) + hp.I.At(row, col) + hp.R.At(row, col)
	hp.totalHosts.Set(row, col, total)
}

// SuitableCells returns the cached suitable-cells index (§4.1).
func (hp *HostPool) SuitableCells() []Cell {
	return hp.suitable
}

// appendSuitableIfNew appends (row,col) to the suitable-cells index if
// it is not already present; used after movement lands hosts in a
// previously empty cell (§3 Lifecycle, §4.1).
func (hp *HostPool) appendSuitableIfNew(row, col int) {
	if hp.totalHosts.At(row, col) > 0 {
		for _, c := range hp.suitable {
			if c.Row == row && c.Col == col {
				return
			}
		}
		hp.suitable = append(hp.suitable, Cell{row, col})
	}
}

func (hp *HostPool) checkNonNegative(row, col int, quantity string, value int) {
	if value < 0 {
		panic((&InvariantError{
			Row: row, Col: col, HasCell: true,
			Quantity: quantity, Value: float64(value), Bound: 0, Comparison: ">=",
		}).Error())
	}
}

// DisperserTo attempts to establish a disperser arriving at (row,col).
// Returns false immediately if S(row,col)=0. Otherwise it computes
// p = [S/total_population] * weather * competency, draws u (or uses
// 1-establishment_probability when stochasticity is off), and commits
// the disperser via AddDisperserAt when u < p (§4.3).
func (hp *HostPool) DisperserTo(row, col int, env *Environment, g *rand.Rand) bool {
	s := hp.S.At(row, col)
	if s == 0 {
		return false
	}
	totalPop := hp.totalPop.At(row, col)
	if totalPop == 0 {
		return false
	}
	p := (float64(s) / float64(totalPop)) * env.Weather(row, col) * hp.competency
	var u float64
	if hp.establishmentStochasticity {
		u = g.Float64()
	} else {
		u = 1 - hp.establishmentProbability
	}
	if u < p {
		hp.AddDisperserAt(row, col)
		return true
	}
	return false
}

// AddDisperserAt commits a successful disperser arrival. SI: S-=1,
// I+=1, and the disperser is added to the newest mortality cohort. SEI:
// S-=1, newest exposed cohort +=1. Any other model type is an error
// (§4.3, §7 kind 2).
func (hp *HostPool) AddDisperserAt(row, col int) {
	switch hp.modelType {
	case ModelSI:
		hp.S.Add(row, col, -1)
		hp.I.Add(row, col, 1)
		idx := hp.cellIndex(row, col)
		if hp.mortality[idx].Len() > 0 {
			hp.mortality[idx].AddTail(1)
		}
	case ModelSEI:
		hp.S.Add(row, col, -1)
		idx := hp.cellIndex(row, col)
		hp.exposed[idx].AddTail(1)
	default:
		panic(fmt.Sprintf(InvalidStringParameterError, "model type", hp.modelType.String(), "unrecognized model type"))
	}
	hp.checkNonNegative(row, col, "S", hp.S.At(row, col))
	hp.refreshTotal(row, col)
	hp.appendSuitableIfNew(row, col)
}

// DispersersFrom returns the number of dispersers generated at
// (row,col) this step. Returns 0 immediately if I(row,col)=0.
// lambda = reproductive_rate * weather * competency. With generation
// stochasticity, returns sum_{k=1..I} Poisson(lambda); otherwise
// floor(lambda * I) (§4.3).
func (hp *HostPool) DispersersFrom(row, col int, env *Environment, g *rand.Rand) int {
	infected := hp.I.At(row, col)
	if infected == 0 {
		return 0
	}
	lambda := hp.reproductiveRate * env.Weather(row, col) * hp.competency
	if hp.generateStochasticity {
		total := 0
		for k := 0; k < infected; k++ {
			total += poissonSample(g, lambda)
		}
		return total
	}
	return int(math.Floor(lambda * float64(infected)))
}

// RemoveInfectedAt moves n hosts from I back to S (I-=n, S+=n),
// decrementing the mortality cohorts proportionally via a
// hypergeometric draw without replacement (§4.3).
func (hp *HostPool) RemoveInfectedAt(row, col, n int, g *rand.Rand) {
	if n <= 0 {
		return
	}
	idx := hp.cellIndex(row, col)
	hp.mortality[idx].DrawWithoutReplacement(g, n)
	hp.I.Add(row, col, -n)
	hp.S.Add(row, col, n)
	hp.checkNonNegative(row, col, "I", hp.I.At(row, col))
	hp.refreshTotal(row, col)
}

// RemoveExposedAt moves n hosts out of the exposed cohorts back to S,
// drawn across cohorts the same way as RemoveInfectedAt (§4.3).
func (hp *HostPool) RemoveExposedAt(row, col, n int, g *rand.Rand) {
	if n <= 0 {
		return
	}
	idx := hp.cellIndex(row, col)
	hp.exposed[idx].DrawWithoutReplacement(g, n)
	hp.S.Add(row, col, n)
	hp.checkNonNegative(row, col, "S", hp.S.At(row, col))
	hp.refreshTotal(row, col)
}

// ApplyMortalityAt kills hosts out of the mortality cohorts: all of
// M_0 plus floor(rate*M_k) for k=1..K where K=len(M)-lag-1. Killed
// hosts are added to died and subtracted from I and total_hosts. A
// per-cohort kill that would exceed I or total_hosts at the moment of
// subtraction is a fatal invariant violation (§4.3).
func (hp *HostPool) ApplyMortalityAt(row, col int, rate float64, lag int) {
	idx := hp.cellIndex(row, col)
	m := &hp.mortality[idx]
	k := m.Len() - lag - 1
	if k < 0 {
		return
	}
	killedTotal := 0
	for cohort := 0; cohort <= k; cohort++ {
		var killed int
		if cohort == 0 {
			killed = m.Oldest()
			m.SetOldest(0)
		} else {
			killed = int(math.Floor(rate * float64(m.At(cohort))))
			m.Set(cohort, m.At(cohort)-killed)
		}
		if killed == 0 {
			continue
		}
		if killed > hp.I.At(row, col) {
			panic((&InvariantError{
				Row: row, Col: col, HasCell: true,
				Quantity: "mortality kill count", Value: float64(killed),
				Bound: float64(hp.I.At(row, col)), Comparison: "<=",
			}).Error())
		}
		hp.I.Add(row, col, -killed)
		hp.died.Add(row, col, killed)
		killedTotal += killed
	}
	if killedTotal > 0 {
		hp.refreshTotal(row, col)
	}
}

// StepForwardMortality rotates every cell's mortality cohort left by
// one (§3 Lifecycle, §4.3).
func (hp *HostPool) StepForwardMortality() {
	for i := range hp.mortality {
		if hp.mortality[i].Len() > 0 {
			hp.mortality[i].RotateLeft()
		}
	}
}

// StepForward advances the SEI latency clock. When stepIndex >=
// latency_period, E_0 ages into I (and into the newest mortality
// cohort) at every cell before the exposed cohorts rotate left
// (§4.3).
func (hp *HostPool) StepForward(stepIndex int) {
	if hp.modelType != ModelSEI {
		return
	}
	for row := 0; row < hp.rows; row++ {
		for col := 0; col < hp.cols; col++ {
			idx := hp.cellIndex(row, col)
			if stepIndex >= hp.latencyPeriod {
				aged := hp.exposed[idx].Oldest()
				if aged > 0 {
					hp.I.Add(row, col, aged)
					if hp.mortality[idx].Len() > 0 {
						hp.mortality[idx].AddTail(aged)
					}
					hp.exposed[idx].SetOldest(0)
				}
			}
			hp.exposed[idx].RotateLeft()
			hp.refreshTotal(row, col)
		}
	}
}

// PestsTo moves n pests into (row,col) from an overpopulation move,
// clamped so S never goes negative beyond available susceptibles.
func (hp *HostPool) PestsTo(row, col, n int) int {
	available := hp.S.At(row, col)
	if n > available {
		n = available
	}
	if n <= 0 {
		return 0
	}
	hp.S.Add(row, col, -n)
	hp.I.Add(row, col, n)
	idx := hp.cellIndex(row, col)
	if hp.mortality[idx].Len() > 0 {
		hp.mortality[idx].AddTail(n)
	}
	hp.refreshTotal(row, col)
	hp.appendSuitableIfNew(row, col)
	return n
}

// PestFrom removes n infected pests from (row,col), returning the
// destination-bound count (used to source overpopulation movement).
func (hp *HostPool) PestFrom(row, col, n int) int {
	infected := hp.I.At(row, col)
	if n > infected {
		n = infected
	}
	if n <= 0 {
		return 0
	}
	hp.I.Add(row, col, -n)
	hp.S.Add(row, col, n)
	hp.refreshTotal(row, col)
	return n
}

// hostCategory enumerates the four compartment categories a whole-host
// move draws across.
type hostCategory int

const (
	categoryI hostCategory = iota
	categoryS
	categoryE
	categoryR
)

// MoveHostsFromTo draws n hosts from the union of I+S+E+R at src via a
// categorical sample (hypergeometric over the four categories, then a
// further hypergeometric draw across cohorts within E), decrements at
// src, and increments the matching compartments at dst. If dst is not
// already in the suitable-cells index, it is appended (§4.3).
func (hp *HostPool) MoveHostsFromTo(srcRow, srcCol, dstRow, dstCol, n int, g *rand.Rand) {
	if n <= 0 {
		return
	}
	srcIdx := hp.cellIndex(srcRow, srcCol)
	counts := map[hostCategory]int{
		categoryI: hp.I.At(srcRow, srcCol),
		categoryS: hp.S.At(srcRow, srcCol),
		categoryE: hp.exposedSum(srcRow, srcCol),
		categoryR: hp.R.At(srcRow, srcCol),
	}
	total := counts[categoryI] + counts[categoryS] + counts[categoryE] + counts[categoryR]
	if n > total {
		n = total
	}
	order := []hostCategory{categoryI, categoryS, categoryE, categoryR}
	owner := make([]hostCategory, 0, total)
	for _, cat := range order {
		for i := 0; i < counts[cat]; i++ {
			owner = append(owner, cat)
		}
	}
	drawn := map[hostCategory]int{}
	for i := 0; i < n; i++ {
		x := g.Intn(len(owner))
		drawn[owner[x]]++
		owner = append(owner[:x], owner[x+1:]...)
	}
	if c := drawn[categoryI]; c > 0 {
		hp.I.Add(srcRow, srcCol, -c)
		hp.I.Add(dstRow, dstCol, c)
	}
	if c := drawn[categoryS]; c > 0 {
		hp.S.Add(srcRow, srcCol, -c)
		hp.S.Add(dstRow, dstCol, c)
	}
	if c := drawn[categoryR]; c > 0 {
		hp.R.Add(srcRow, srcCol, -c)
		hp.R.Add(dstRow, dstCol, c)
	}
	if c := drawn[categoryE]; c > 0 {
		removedPerCohort := hp.exposed[srcIdx].DrawWithoutReplacement(g, c)
		dstIdx := hp.cellIndex(dstRow, dstCol)
		for cohort, moved := range removedPerCohort {
			if moved > 0 {
				hp.exposed[dstIdx].Set(cohort, hp.exposed[dstIdx].At(cohort)+moved)
			}
		}
	}
	hp.refreshTotal(srcRow, srcCol)
	hp.refreshTotal(dstRow, dstCol)
	hp.appendSuitableIfNew(dstRow, dstCol)
}

// TotalHosts returns total_hosts(row,col) = S + sum(E) + I + R (I2).
func (hp *HostPool) TotalHosts(row, col int) int {
	return hp.totalHosts.At(row, col)
}

// Died returns the died-this-step count at (row,col).
func (hp *HostPool) Died(row, col int) int {
	return hp.died.At(row, col)
}

// ResetDied zeroes the died-this-step counters, called by
// Model.RunStep at the start of every step.
func (hp *HostPool) ResetDied() {
	hp.died.Fill(0)
}
