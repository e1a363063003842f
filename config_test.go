package pops

import "testing"

func TestConfig_Validate_AcceptsMinimalConfig(t *testing.T) {
	cfg := minimalValidConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestConfig_Validate_RejectsNetworkMovementWithoutPaths(t *testing.T) {
	cfg := minimalValidConfig()
	cfg.Network.Movement = true
	if err := cfg.Validate(); err == nil {
		t.Errorf(ExpectedErrorWhileError, "validating network_movement without nodes_path/segments_path")
	}
}

func TestConfig_Validate_RejectsQuarantineWithoutAreasPath(t *testing.T) {
	cfg := minimalValidConfig()
	cfg.Quarantine.Use = true
	cfg.Quarantine.Frequency = "monthly"
	if err := cfg.Validate(); err == nil {
		t.Errorf(ExpectedErrorWhileError, "validating use_quarantine without areas_path")
	}
}

func TestConfig_Validate_RejectsBadModelType(t *testing.T) {
	cfg := minimalValidConfig()
	cfg.General.ModelType = "SIR"
	if err := cfg.Validate(); err == nil {
		t.Errorf(ExpectedErrorWhileError, "validating an unrecognized model_type")
	}
}

func TestConfig_Validate_RejectsBadKernelType(t *testing.T) {
	cfg := minimalValidConfig()
	cfg.NaturalKernel.Type = "Bogus"
	if err := cfg.Validate(); err == nil {
		t.Errorf(ExpectedErrorWhileError, "validating an unrecognized natural_kernel.type")
	}
}

func TestConfig_Validate_RejectsEveryNFrequencyWithZeroN(t *testing.T) {
	cfg := minimalValidConfig()
	cfg.Mortality.Use = true
	cfg.Mortality.Rate = 0.1
	cfg.Mortality.Frequency = "every_n"
	cfg.Mortality.FrequencyN = 0
	if err := cfg.Validate(); err == nil {
		t.Errorf(ExpectedErrorWhileError, "validating mortality_frequency every_n with mortality_frequency_n=0")
	}
}

func TestConfig_Validate_AcceptsEveryNFrequencyWithPositiveN(t *testing.T) {
	cfg := minimalValidConfig()
	cfg.Mortality.Use = true
	cfg.Mortality.Rate = 0.1
	cfg.Mortality.Frequency = "every_n"
	cfg.Mortality.FrequencyN = 7
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected validation error with a positive mortality_frequency_n: %v", err)
	}
}

func TestConfig_Validate_RejectsYearlyFrequencyOnMortality(t *testing.T) {
	cfg := minimalValidConfig()
	cfg.Mortality.Use = true
	cfg.Mortality.Rate = 0.1
	cfg.Mortality.Frequency = "yearly"
	if err := cfg.Validate(); err == nil {
		t.Errorf(ExpectedErrorWhileError, "validating mortality_frequency=yearly, which mortality does not support")
	}
}

func TestConfig_Validate_RejectsMalformedScheduleDate(t *testing.T) {
	cfg := minimalValidConfig()
	cfg.Schedule.DateStart = "not-a-date"
	if err := cfg.Validate(); err == nil {
		t.Errorf(ExpectedErrorWhileError, "validating a malformed schedule.date_start")
	}
}

func TestParseStepUnit_RejectsUnknownUnit(t *testing.T) {
	if _, err := parseStepUnit("Fortnight"); err == nil {
		t.Errorf(ExpectedErrorWhileError, "parsing an unrecognized step unit")
	}
}
