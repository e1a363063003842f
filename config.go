package pops

import (
	"strings"

	"github.com/pkg/errors"
)

// Config is the top-level TOML document a run is built from. Each
// nested section mirrors one row of §6's recognized-options list and
// validates itself independently, the way EvoEpiConfig's sections each
// carry their own Validate (evoepi_config.go).
type Config struct {
	General        GeneralConfig        `toml:"general"`
	Stochasticity  StochasticityConfig  `toml:"stochasticity"`
	Weather        WeatherConfig        `toml:"weather"`
	LethalTemp     LethalTempConfig     `toml:"lethal_temperature"`
	SurvivalRate   SurvivalRateConfig   `toml:"survival_rate"`
	NaturalKernel  KernelConfig         `toml:"natural_kernel"`
	AnthroKernel   AnthroKernelConfig   `toml:"anthropogenic_kernel"`
	Network        NetworkConfig        `toml:"network"`
	Treatments     TreatmentsConfig     `toml:"treatments"`
	Mortality      MortalityConfig      `toml:"mortality"`
	Quarantine     QuarantineConfig     `toml:"quarantine"`
	Movements      MovementsConfig      `toml:"movements"`
	Overpopulation OverpopulationConfig `toml:"overpopulation"`
	Soil           SoilConfig           `toml:"soil"`
	Output         OutputConfig         `toml:"output"`
	SpreadRate     SpreadRateConfig     `toml:"spread_rate"`
	Schedule       ScheduleConfig       `toml:"schedule"`

	validated bool
}

// GeneralConfig carries the grid, generator seed, and compartment
// model selection.
type GeneralConfig struct {
	RandomSeed         int64   `toml:"random_seed"`
	Rows               int     `toml:"rows"`
	Cols               int     `toml:"cols"`
	EWRes              float64 `toml:"ew_res"`
	NSRes              float64 `toml:"ns_res"`
	BBoxNorth          float64 `toml:"bbox_north"`
	BBoxSouth          float64 `toml:"bbox_south"`
	BBoxEast           float64 `toml:"bbox_east"`
	BBoxWest           float64 `toml:"bbox_west"`
	ModelType          string  `toml:"model_type"` // SI, SEI
	LatencyPeriodSteps int     `toml:"latency_period_steps"`
	ReproductiveRate   float64 `toml:"reproductive_rate"`
	Competency         float64 `toml:"competency"`
	IsolatedGenerators bool    `toml:"isolated_generators"`
}

func (c *GeneralConfig) Validate() error {
	if c.Rows < 1 || c.Cols < 1 {
		return &ConfigError{Field: "general.rows/cols", Reason: "must both be >= 1"}
	}
	if c.EWRes <= 0 || c.NSRes <= 0 {
		return &ConfigError{Field: "general.ew_res/ns_res", Reason: "must both be > 0"}
	}
	switch strings.ToLower(c.ModelType) {
	case "si", "sei":
	default:
		return &ConfigError{Field: "general.model_type", Reason: "must be one of si, sei"}
	}
	if strings.ToLower(c.ModelType) == "sei" && c.LatencyPeriodSteps < 0 {
		return &ConfigError{Field: "general.latency_period_steps", Reason: "must be >= 0 for SEI"}
	}
	return nil
}

func (c *GeneralConfig) modelType() ModelType {
	if strings.ToLower(c.ModelType) == "sei" {
		return ModelSEI
	}
	return ModelSI
}

// StochasticityConfig toggles the four independent stochasticity
// switches and the deterministic establishment fallback probability.
type StochasticityConfig struct {
	Generate             bool    `toml:"generate_stochasticity"`
	Establishment        bool    `toml:"establishment_stochasticity"`
	Movement             bool    `toml:"movement_stochasticity"`
	Dispersal            bool    `toml:"dispersal_stochasticity"`
	EstablishmentProb    float64 `toml:"establishment_probability"`
	DispersalPercentage  float64 `toml:"dispersal_percentage"` // default 0.99
}

func (c *StochasticityConfig) Validate() error {
	if c.EstablishmentProb < 0 || c.EstablishmentProb > 1 {
		return &ConfigError{Field: "stochasticity.establishment_probability", Reason: "must be in [0,1]"}
	}
	if c.DispersalPercentage <= 0 || c.DispersalPercentage > 1 {
		return &ConfigError{Field: "stochasticity.dispersal_percentage", Reason: "must be in (0,1]"}
	}
	return nil
}

// WeatherConfig controls the optional weather coefficient series.
type WeatherConfig struct {
	Use  bool   `toml:"use_weather"`
	Size int    `toml:"weather_size"`
	Type string `toml:"weather_type"` // probabilistic, deterministic
}

func (c *WeatherConfig) Validate() error {
	if !c.Use {
		return nil
	}
	if c.Size < 1 {
		return &ConfigError{Field: "weather.weather_size", Reason: "must be >= 1 when weather is enabled"}
	}
	switch strings.ToLower(c.Type) {
	case "probabilistic", "deterministic":
	default:
		return &ConfigError{Field: "weather.weather_type", Reason: "must be one of probabilistic, deterministic"}
	}
	return nil
}

// LethalTempConfig controls the optional lethal-temperature purge.
type LethalTempConfig struct {
	Use         bool    `toml:"use_lethal_temperature"`
	Temperature float64 `toml:"lethal_temperature"`
	Month       int     `toml:"lethal_temperature_month"`
}

func (c *LethalTempConfig) Validate() error {
	if !c.Use {
		return nil
	}
	if c.Month < 1 || c.Month > 12 {
		return &ConfigError{Field: "lethal_temperature.lethal_temperature_month", Reason: "must be in [1,12]"}
	}
	return nil
}

// SurvivalRateConfig controls the optional annual survival-rate check.
type SurvivalRateConfig struct {
	Use   bool `toml:"use_survival_rate"`
	Month int  `toml:"survival_rate_month"`
	Day   int  `toml:"survival_rate_day"`
}

func (c *SurvivalRateConfig) Validate() error {
	if !c.Use {
		return nil
	}
	if c.Month < 1 || c.Month > 12 {
		return &ConfigError{Field: "survival_rate.survival_rate_month", Reason: "must be in [1,12]"}
	}
	if c.Day < 1 || c.Day > 31 {
		return &ConfigError{Field: "survival_rate.survival_rate_day", Reason: "must be in [1,31]"}
	}
	return nil
}

// KernelConfig describes one radial/deterministic kernel's parameters,
// shared by the natural kernel and (embedded) the anthropogenic
// kernel.
type KernelConfig struct {
	Type      string  `toml:"type"`
	Scale     float64 `toml:"scale"`
	Direction string  `toml:"direction"` // N,NE,E,SE,S,SW,W,NW,None
	Kappa     float64 `toml:"kappa"`
	Shape     float64 `toml:"shape"` // second distribution parameter: Weibull k, LogNormal sigma, PowerLaw alpha, Gamma alpha, ExponentialPower beta
}

func (c *KernelConfig) Validate(field string) error {
	if _, err := ParseKernelType(c.Type); err != nil {
		return &ConfigError{Field: field + ".type", Reason: err.Error()}
	}
	if _, err := ParseCompassDirection(c.Direction); err != nil {
		return &ConfigError{Field: field + ".direction", Reason: err.Error()}
	}
	return nil
}

// AnthroKernelConfig wraps KernelConfig with the anthropogenic-only
// enable switch and mixing percentage.
type AnthroKernelConfig struct {
	Use                   bool   `toml:"use_anthropogenic_kernel"`
	PercentNaturalDisperal float64 `toml:"percent_natural_dispersal"`
	Kernel                KernelConfig `toml:"kernel"`
}

func (c *AnthroKernelConfig) Validate() error {
	if !c.Use {
		return nil
	}
	if c.PercentNaturalDisperal < 0 || c.PercentNaturalDisperal > 1 {
		return &ConfigError{Field: "anthropogenic_kernel.percent_natural_dispersal", Reason: "must be in [0,1]"}
	}
	return c.Kernel.Validate("anthropogenic_kernel.kernel")
}

// NetworkConfig controls the optional network dispersal kernel.
type NetworkConfig struct {
	Movement   bool    `toml:"network_movement"`
	MinTime    float64 `toml:"network_min_time"`
	MaxTime    float64 `toml:"network_max_time"`
	NodesPath  string  `toml:"nodes_path"`
	SegmentsPath string `toml:"segments_path"`
	AllowEmpty bool    `toml:"allow_empty"`
}

func (c *NetworkConfig) Validate() error {
	if !c.Movement {
		return nil
	}
	if c.MaxTime < c.MinTime {
		return &ConfigError{Field: "network.network_max_time", Reason: "must be >= network_min_time"}
	}
	return nil
}

// TreatmentsConfig is just the use_X switch; the treatment definitions
// themselves arrive as caller-provided in-memory rasters per §6, not
// through TOML.
type TreatmentsConfig struct {
	Use bool `toml:"use_treatments"`
}

// MortalityConfig controls the scheduled mortality action.
type MortalityConfig struct {
	Use         bool    `toml:"use_mortality"`
	Frequency   string  `toml:"mortality_frequency"` // every_n, monthly, end_of_year
	FrequencyN  uint    `toml:"mortality_frequency_n"`
	Rate        float64 `toml:"mortality_rate"`
	TimeLag     int     `toml:"mortality_time_lag"`
}

func (c *MortalityConfig) Validate() error {
	if !c.Use {
		return nil
	}
	if c.Rate < 0 || c.Rate > 1 {
		return &ConfigError{Field: "mortality.mortality_rate", Reason: "must be in [0,1]"}
	}
	if c.TimeLag < 0 {
		return &ConfigError{Field: "mortality.mortality_time_lag", Reason: "must be >= 0"}
	}
	return validateFrequency("mortality.mortality_frequency", c.Frequency, c.FrequencyN)
}

// QuarantineConfig controls the scheduled quarantine-escape analytics.
type QuarantineConfig struct {
	Use         bool   `toml:"use_quarantine"`
	Frequency   string `toml:"quarantine_frequency"`
	FrequencyN  uint   `toml:"quarantine_frequency_n"`
	AreasPath   string `toml:"areas_path"`
}

func (c *QuarantineConfig) Validate() error {
	if !c.Use {
		return nil
	}
	return validateFrequency("quarantine.quarantine_frequency", c.Frequency, c.FrequencyN)
}

// MovementsConfig controls the optional scheduled movements table. The
// table itself (row_from,col_from,row_to,col_to,n_hosts,step) arrives
// as caller-provided in-memory data per §6, not through TOML.
type MovementsConfig struct {
	Use bool `toml:"use_movements"`
}

// OverpopulationConfig controls the optional overpopulation-driven
// emigration action.
type OverpopulationConfig struct {
	Use                      bool    `toml:"use_overpopulation_movements"`
	OverpopulationPercentage float64 `toml:"overpopulation_percentage"`
	LeavingPercentage        float64 `toml:"leaving_percentage"`
	LeavingScaleCoefficient  float64 `toml:"leaving_scale_coefficient"`
}

func (c *OverpopulationConfig) Validate() error {
	if !c.Use {
		return nil
	}
	if c.OverpopulationPercentage <= 0 || c.OverpopulationPercentage > 1 {
		return &ConfigError{Field: "overpopulation.overpopulation_percentage", Reason: "must be in (0,1]"}
	}
	if c.LeavingPercentage <= 0 || c.LeavingPercentage > 1 {
		return &ConfigError{Field: "overpopulation.leaving_percentage", Reason: "must be in (0,1]"}
	}
	return nil
}

// SoilConfig controls the optional soil-reservoir pool.
type SoilConfig struct {
	DispersersToSoilsPercentage float64 `toml:"dispersers_to_soils_percentage"`
}

func (c *SoilConfig) Validate() error {
	if c.DispersersToSoilsPercentage < 0 || c.DispersersToSoilsPercentage > 1 {
		return &ConfigError{Field: "soil.dispersers_to_soils_percentage", Reason: "must be in [0,1]"}
	}
	return nil
}

// OutputConfig controls how often the caller is expected to snapshot
// state; the engine itself never writes output, per §6.
type OutputConfig struct {
	Frequency  string `toml:"output_frequency"`
	FrequencyN uint   `toml:"output_frequency_n"`
}

// SpreadRateConfig controls the scheduled spread-rate analytics.
type SpreadRateConfig struct {
	Use        bool   `toml:"use_spreadrates"`
	Frequency  string `toml:"spreadrate_frequency"`
	FrequencyN uint   `toml:"spreadrate_frequency_n"`
}

func (c *SpreadRateConfig) Validate() error {
	if !c.Use {
		return nil
	}
	return validateFrequency("spread_rate.spreadrate_frequency", c.Frequency, c.FrequencyN)
}

// ScheduleConfig carries the date range and step unit the Scheduler is
// built from.
type ScheduleConfig struct {
	DateStart        string `toml:"date_start"`
	DateEnd          string `toml:"date_end"`
	StepUnit         string `toml:"step_unit"` // Day, Week, Month
	StepNumUnits     uint   `toml:"step_num_units"`
	SeasonStartMonth int    `toml:"season_start_month"`
	SeasonEndMonth   int    `toml:"season_end_month"`
}

func (c *ScheduleConfig) Validate() error {
	if _, err := ParseDate(c.DateStart); err != nil {
		return &ConfigError{Field: "schedule.date_start", Reason: err.Error()}
	}
	if _, err := ParseDate(c.DateEnd); err != nil {
		return &ConfigError{Field: "schedule.date_end", Reason: err.Error()}
	}
	if _, err := parseStepUnit(c.StepUnit); err != nil {
		return &ConfigError{Field: "schedule.step_unit", Reason: err.Error()}
	}
	if c.StepNumUnits == 0 {
		return &ConfigError{Field: "schedule.step_num_units", Reason: "must be >= 1"}
	}
	if c.SeasonStartMonth < 1 || c.SeasonStartMonth > 12 || c.SeasonEndMonth < 1 || c.SeasonEndMonth > 12 {
		return &ConfigError{Field: "schedule.season_start_month/season_end_month", Reason: "must be in [1,12]"}
	}
	return nil
}

// validateFrequency accepts the three schedule derivations that take
// no extra parameters beyond the scheduler itself (every_n, monthly,
// end_of_year). "yearly" is deliberately excluded here: it needs a
// (month,day) pair, which only LethalTempConfig and SurvivalRateConfig
// carry.
func validateFrequency(field, frequency string, n uint) error {
	switch strings.ToLower(frequency) {
	case "every_n":
		if n == 0 {
			return &ConfigError{Field: field + "_n", Reason: "must be >= 1 when frequency is every_n"}
		}
	case "monthly", "end_of_year":
	default:
		return &ConfigError{Field: field, Reason: "must be one of every_n, monthly, end_of_year"}
	}
	return nil
}

func parseStepUnit(s string) (StepUnit, error) {
	switch strings.ToLower(s) {
	case "day":
		return UnitDay, nil
	case "week":
		return UnitWeek, nil
	case "month":
		return UnitMonth, nil
	}
	return 0, &ConfigError{Field: "step_unit", Reason: "must be one of Day, Week, Month"}
}

// Validate checks every section and the cross-field constraints §7
// kind 1 calls out explicitly: a use_X flag set without the matching
// companion data, and latency_period_steps disagreeing with the
// chosen model.
func (c *Config) Validate() error {
	sections := []interface{ Validate() error }{
		&c.General, &c.Stochasticity, &c.Weather, &c.LethalTemp,
		&c.SurvivalRate, &c.AnthroKernel, &c.Network, &c.Mortality,
		&c.Quarantine, &c.Overpopulation, &c.Soil, &c.SpreadRate, &c.Schedule,
	}
	for _, s := range sections {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	if err := c.NaturalKernel.Validate("natural_kernel"); err != nil {
		return err
	}
	if c.Network.Movement && (c.Network.NodesPath == "" || c.Network.SegmentsPath == "") {
		return errors.Wrap(&ConfigError{
			Field: "network", Reason: "network_movement requires both nodes_path and segments_path",
		}, "validating network configuration")
	}
	if c.Quarantine.Use && c.Quarantine.AreasPath == "" {
		return &ConfigError{Field: "quarantine.areas_path", Reason: "required when use_quarantine is set"}
	}
	c.validated = true
	return nil
}
