package pops

import "fmt"

// Format-string constants used with fmt.Errorf / t.Errorf throughout the
// module, in the same register as the original contagiongo errors.go.
const (
	InvalidFloatParameterError  = "invalid %s %f, %s"
	InvalidIntParameterError    = "invalid %s %d, %s"
	InvalidStringParameterError = "invalid %s %s, %s"

	UnequalFloatParameterError  = "expected %s %f, instead got %f"
	UnequalIntParameterError    = "expected %s %d, instead got %d"
	UnequalStringParameterError = "expected %s %s, instead got %s"
	UnexpectedErrorWhileError   = "encountered error while %s: %s"
	ExpectedErrorWhileError     = "expected an error while %s, instead got none"

	IntKeyNotFoundError = "key %d not found"
	IntKeyExistsError   = "key %d already exists"
)

// ConfigError marks §7 kind 1: a Config value is internally
// inconsistent (impossible dates, a use_X flag set without its
// companion schedule, latency_period disagreeing with the exposed
// vector length, ...). Construction of the offending component must
// abort the run.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Reason)
}

// InvariantError marks §7 kind 2: a runtime invariant (I1-I7, P1-P5)
// was violated. It names the cell when the violation is cell-specific,
// the quantity involved, and its comparison with the offending bound,
// per §7's user-visible failure behavior.
type InvariantError struct {
	Row, Col   int
	HasCell    bool
	Quantity   string
	Value      float64
	Bound      float64
	Comparison string // e.g. "<=", ">="
}

func (e *InvariantError) Error() string {
	if e.HasCell {
		return fmt.Sprintf("invariant violation at (%d,%d): %s = %g violates %s %g",
			e.Row, e.Col, e.Quantity, e.Value, e.Comparison, e.Bound)
	}
	return fmt.Sprintf("invariant violation: %s = %g violates %s %g",
		e.Quantity, e.Value, e.Comparison, e.Bound)
}

// UnsupportedKernelError marks §7 kind 3: a kernel was asked to
// service a KernelType it does not implement (e.g. the radial kernel
// asked to resolve Network).
type UnsupportedKernelError struct {
	Kernel string
	Type   KernelType
}

func (e *UnsupportedKernelError) Error() string {
	return fmt.Sprintf("kernel %s does not support kernel type %s", e.Kernel, e.Type)
}

// NetworkError marks §7 kind 4: a node id below 1, an empty node set
// inside bbox without allow_empty, or a missing start node for a
// network-kernel call.
type NetworkError struct {
	Reason string
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %s", e.Reason)
}

// ScheduleNotBuiltError marks §7 kind 5: a schedule mask was read
// before the owning Scheduler finished construction.
type ScheduleNotBuiltError struct{}

func (e *ScheduleNotBuiltError) Error() string {
	return "schedule accessed before scheduler was finalized"
}

// StatisticsError marks §7 kind 6: an aggregation was attempted across
// zero runs.
type StatisticsError struct {
	Reason string
}

func (e *StatisticsError) Error() string {
	return fmt.Sprintf("statistics error: %s", e.Reason)
}
