package pops

import (
	"io"
	"strings"

	"github.com/pkg/errors"
)

// RunInputs carries the in-memory, caller-owned data a run needs on
// top of a validated Config: the initial compartment rasters, the
// optional time series, and the optional movements/treatments/network
// inputs that §6 says arrive outside TOML.
type RunInputs struct {
	S, I, R, TotalPop *Raster[int]

	WeatherSeries  []*Raster[float64]
	LethalSeries   []*Raster[float64]
	SurvivalSeries []*Raster[float64]

	Dispersers          *Raster[int]
	EstablishedDisperse *Raster[int]

	Movements       []Movement
	QuarantineAreas *Raster[int]

	NetworkNodes    io.Reader
	NetworkSegments io.Reader

	Treatments []*Treatment
}

// NewModelFromConfig assembles a fully wired Model from a validated
// Config and a RunInputs bundle. It mirrors LoadEvoEpiConfig's
// boundary: parsing and validation happen first, and the constructor
// only ever wires already-valid pieces together, panicking if handed
// an unvalidated Config (§7 kind 2).
func NewModelFromConfig(cfg *Config, in RunInputs) (*Model, error) {
	if !cfg.validated {
		panic("NewModelFromConfig: Config has not been validated")
	}

	start, err := ParseDate(cfg.Schedule.DateStart)
	if err != nil {
		return nil, err
	}
	end, err := ParseDate(cfg.Schedule.DateEnd)
	if err != nil {
		return nil, err
	}
	unit, err := parseStepUnit(cfg.Schedule.StepUnit)
	if err != nil {
		return nil, err
	}
	scheduler, err := NewScheduler(start, end, unit, cfg.Schedule.StepNumUnits)
	if err != nil {
		return nil, err
	}

	var generators GeneratorProvider
	if cfg.General.IsolatedGenerators {
		generators = NewIsolatedStreamProvider(cfg.General.RandomSeed)
	} else {
		generators = NewSingleStreamProvider(cfg.General.RandomSeed)
	}

	mortalityCohortLen := 0
	if cfg.Mortality.Use {
		mortalityCohortLen = int(1.0/cfg.Mortality.Rate) + cfg.Mortality.TimeLag + 1
	}
	hosts, err := NewHostPool(HostPoolConfig{
		ModelType:                  cfg.General.modelType(),
		LatencyPeriodSteps:         cfg.General.LatencyPeriodSteps,
		MortalityCohortLen:         mortalityCohortLen,
		ReproductiveRate:           cfg.General.ReproductiveRate,
		Competency:                 cfg.General.Competency,
		GenerateStochasticity:      cfg.Stochasticity.Generate,
		EstablishmentStochasticity: cfg.Stochasticity.Establishment,
		EstablishmentProbability:   cfg.Stochasticity.EstablishmentProb,
	}, in.S, in.I, in.R, in.TotalPop)
	if err != nil {
		return nil, err
	}

	rows, cols := cfg.General.Rows, cfg.General.Cols
	ewRes, nsRes := cfg.General.EWRes, cfg.General.NSRes

	dispersers := in.Dispersers
	if dispersers == nil {
		dispersers = NewRaster[int](rows, cols, ewRes, nsRes)
	}
	established := in.EstablishedDisperse
	if established == nil {
		established = NewRaster[int](rows, cols, ewRes, nsRes)
	}

	naturalKernel, err := BuildKernel(cfg.NaturalKernel, cfg.Stochasticity.Dispersal, ewRes, nsRes, cfg.Stochasticity.DispersalPercentage, rows, cols, dispersers)
	if err != nil {
		return nil, errors.Wrap(err, "building natural kernel")
	}

	var dispersalKernel Kernel = naturalKernel
	if cfg.AnthroKernel.Use {
		anthroKernel, err := BuildKernel(cfg.AnthroKernel.Kernel, cfg.Stochasticity.Dispersal, ewRes, nsRes, cfg.Stochasticity.DispersalPercentage, rows, cols, dispersers)
		if err != nil {
			return nil, errors.Wrap(err, "building anthropogenic kernel")
		}
		dispersalKernel = NewNaturalAnthropogenicKernel(naturalKernel, anthroKernel, true, cfg.AnthroKernel.PercentNaturalDisperal)
	}

	var network *Network
	if cfg.Network.Movement {
		bbox := BBox{North: cfg.General.BBoxNorth, South: cfg.General.BBoxSouth, East: cfg.General.BBoxEast, West: cfg.General.BBoxWest}
		network = NewNetwork(bbox, ewRes, nsRes, cfg.Network.AllowEmpty)
		if err := network.LoadNodes(in.NetworkNodes); err != nil {
			return nil, errors.Wrap(err, "loading network nodes")
		}
		if err := network.LoadSegments(in.NetworkSegments); err != nil {
			return nil, errors.Wrap(err, "loading network segments")
		}
		networkKernel := NewNetworkKernel(network, cfg.Network.MinTime, cfg.Network.MaxTime)
		dispersalKernel = NewNaturalAnthropogenicKernel(dispersalKernel, networkKernel, true, cfg.AnthroKernel.PercentNaturalDisperal)
	}

	var soil *SoilPool
	if cfg.Soil.DispersersToSoilsPercentage > 0 {
		soil = NewSoilPool(rows, cols, ewRes, nsRes, cfg.Soil.DispersersToSoilsPercentage)
	}
	spread := NewSpreadAction(hosts, dispersalKernel, dispersers, established, soil)

	var overpop *OverpopulationMove
	if cfg.Overpopulation.Use {
		overpopScale := cfg.NaturalKernel.Scale * cfg.Overpopulation.LeavingScaleCoefficient
		overpopCfg := cfg.NaturalKernel
		overpopCfg.Scale = overpopScale
		overpopKernel, err := BuildKernel(overpopCfg, cfg.Stochasticity.Dispersal, ewRes, nsRes, cfg.Stochasticity.DispersalPercentage, rows, cols, dispersers)
		if err != nil {
			return nil, errors.Wrap(err, "building overpopulation kernel")
		}
		overpop = &OverpopulationMove{
			OverpopulationPercentage: cfg.Overpopulation.OverpopulationPercentage,
			LeavingPercentage:        cfg.Overpopulation.LeavingPercentage,
			Kernel:                   overpopKernel,
		}
	}

	var treatments *Treatments
	if cfg.Treatments.Use && len(in.Treatments) > 0 {
		treatments = NewTreatments()
		for _, t := range in.Treatments {
			treatments.Add(t)
		}
	}

	var movements *Movements
	if cfg.Movements.Use && len(in.Movements) > 0 {
		movements = NewMovements(in.Movements)
	}

	var spreadRateTracker *SpreadRate
	var spreadRateMask []bool
	if cfg.SpreadRate.Use {
		spreadRateTracker = NewSpreadRate(rows, cols, ewRes, nsRes)
		spreadRateMask = frequencyMask(scheduler, cfg.SpreadRate.Frequency, cfg.SpreadRate.FrequencyN)
	}

	var quarantineTracker *Quarantine
	var quarantineMask []bool
	if cfg.Quarantine.Use && in.QuarantineAreas != nil {
		areas := NewQuarantineAreas(in.QuarantineAreas)
		quarantineTracker = NewQuarantine(areas, ewRes, nsRes)
		quarantineMask = frequencyMask(scheduler, cfg.Quarantine.Frequency, cfg.Quarantine.FrequencyN)
	}

	var lethalMask []bool
	if cfg.LethalTemp.Use {
		lethalMask = scheduler.ScheduleYearly(cfg.LethalTemp.Month, 1)
	}

	var mortalityMask []bool
	if cfg.Mortality.Use {
		mortalityMask = frequencyMask(scheduler, cfg.Mortality.Frequency, cfg.Mortality.FrequencyN)
	}

	spreadMask := scheduler.ScheduleSpread(Season{StartMonth: cfg.Schedule.SeasonStartMonth, EndMonth: cfg.Schedule.SeasonEndMonth})

	var weatherStepIdx []int
	if cfg.Weather.Use {
		weatherStepIdx = scheduler.WeatherTable(cfg.Weather.Size)
	}

	return &Model{
		Hosts:      hosts,
		Spread:     spread,
		Overpop:    overpop,
		Treatments: treatments,
		Movements:  movements,

		SpreadRateTracker: spreadRateTracker,
		QuarantineTracker: quarantineTracker,

		Scheduler:  scheduler,
		Generators: generators,

		WeatherSeries:  in.WeatherSeries,
		LethalSeries:   in.LethalSeries,
		SurvivalSeries: in.SurvivalSeries,
		WeatherStepIdx: weatherStepIdx,

		UseLethalTemperature:       cfg.LethalTemp.Use,
		LethalTemperatureThreshold: cfg.LethalTemp.Temperature,
		LethalMask:                 lethalMask,

		UseMortality:     cfg.Mortality.Use,
		MortalityRate:    cfg.Mortality.Rate,
		MortalityTimeLag: cfg.Mortality.TimeLag,
		MortalityMask:    mortalityMask,

		SpreadMask:     spreadMask,
		SpreadRateMask: spreadRateMask,
		QuarantineMask: quarantineMask,
	}, nil
}

// frequencyMask resolves one of the three parameterless frequency
// kinds (every_n, monthly, end_of_year) accepted by validateFrequency
// into a schedule mask. "yearly" never reaches here: mortality,
// quarantine, and spread-rate frequencies don't carry a month/day
// pair, unlike lethal temperature and survival rate (§6).
func frequencyMask(s *Scheduler, frequency string, n uint) []bool {
	switch {
	case strings.EqualFold(frequency, "every_n"):
		return s.ScheduleEveryN(n)
	case strings.EqualFold(frequency, "end_of_year"):
		return s.ScheduleEndOfYear()
	default:
		return s.ScheduleMonthly()
	}
}
