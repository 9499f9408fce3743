package qparams

import "fmt"

// enum is a sealed marker for the closed enumerations in this package.
// Only OverflowFix, QuantizationMode, StatisticsType, and AggregatorType
// implement it. primitive returns the declared wire value of the constant,
// which is the authoritative representation in serialized output.
type enum interface {
	primitive() any
}

// OverflowFix controls the overflow (saturation) issue fix for 8-bit
// quantization on SSE/AVX-2/AVX-512 instruction sets.
type OverflowFix string

const (
	// OverflowFixEnable quantizes all Convolution and MatMul weights using
	// half of the 8-bit quantization range.
	OverflowFixEnable OverflowFix = "enable"

	// OverflowFixFirstLayer applies the half-range fix only to the first
	// Convolutions of each model input. This is the default.
	OverflowFixFirstLayer OverflowFix = "first_layer_only"

	// OverflowFixDisable quantizes all weights using the full 8-bit range.
	OverflowFixDisable OverflowFix = "disable"
)

// ValidOverflowFixes defines the allowed overflow fix modes.
var ValidOverflowFixes = map[OverflowFix]bool{
	OverflowFixEnable:     true,
	OverflowFixFirstLayer: true,
	OverflowFixDisable:    true,
}

// Valid reports whether the mode is one of the declared constants.
func (f OverflowFix) Valid() bool { return ValidOverflowFixes[f] }

func (f OverflowFix) primitive() any { return string(f) }

// ParseOverflowFix converts a wire string to an OverflowFix.
func ParseOverflowFix(s string) (OverflowFix, error) {
	f := OverflowFix(s)
	if !f.Valid() {
		return "", fmt.Errorf("unknown overflow fix mode %q", s)
	}
	return f, nil
}

// QuantizationMode selects the quantization scheme for a quantizer group.
type QuantizationMode string

const (
	ModeSymmetric  QuantizationMode = "symmetric"
	ModeAsymmetric QuantizationMode = "asymmetric"
)

// ValidQuantizationModes defines the allowed quantization modes.
var ValidQuantizationModes = map[QuantizationMode]bool{
	ModeSymmetric:  true,
	ModeAsymmetric: true,
}

// Valid reports whether the mode is one of the declared constants.
func (m QuantizationMode) Valid() bool { return ValidQuantizationModes[m] }

func (m QuantizationMode) primitive() any { return string(m) }

// ParseQuantizationMode converts a wire string to a QuantizationMode.
func ParseQuantizationMode(s string) (QuantizationMode, error) {
	m := QuantizationMode(s)
	if !m.Valid() {
		return "", fmt.Errorf("unknown quantization mode %q", s)
	}
	return m, nil
}

// StatisticsType identifies the per-batch statistic a range estimator
// collects before aggregation.
type StatisticsType string

const (
	StatisticsMin         StatisticsType = "min"
	StatisticsMax         StatisticsType = "max"
	StatisticsAbsMax      StatisticsType = "abs_max"
	StatisticsQuantile    StatisticsType = "quantile"
	StatisticsAbsQuantile StatisticsType = "abs_quantile"
)

// ValidStatisticsTypes defines the allowed statistic kinds.
var ValidStatisticsTypes = map[StatisticsType]bool{
	StatisticsMin:         true,
	StatisticsMax:         true,
	StatisticsAbsMax:      true,
	StatisticsQuantile:    true,
	StatisticsAbsQuantile: true,
}

// Valid reports whether the statistic kind is one of the declared constants.
func (s StatisticsType) Valid() bool { return ValidStatisticsTypes[s] }

func (s StatisticsType) primitive() any { return string(s) }

// ParseStatisticsType converts a wire string to a StatisticsType.
func ParseStatisticsType(s string) (StatisticsType, error) {
	t := StatisticsType(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown statistics type %q", s)
	}
	return t, nil
}

// AggregatorType identifies how collected statistics are aggregated across
// calibration batches into a single range bound.
type AggregatorType string

const (
	AggregatorMin              AggregatorType = "min"
	AggregatorMax              AggregatorType = "max"
	AggregatorMean             AggregatorType = "mean"
	AggregatorMedian           AggregatorType = "median"
	AggregatorMeanNoOutliers   AggregatorType = "mean_no_outliers"
	AggregatorMedianNoOutliers AggregatorType = "median_no_outliers"
)

// ValidAggregatorTypes defines the allowed aggregator kinds.
var ValidAggregatorTypes = map[AggregatorType]bool{
	AggregatorMin:              true,
	AggregatorMax:              true,
	AggregatorMean:             true,
	AggregatorMedian:           true,
	AggregatorMeanNoOutliers:   true,
	AggregatorMedianNoOutliers: true,
}

// Valid reports whether the aggregator kind is one of the declared constants.
func (a AggregatorType) Valid() bool { return ValidAggregatorTypes[a] }

func (a AggregatorType) primitive() any { return string(a) }

// ParseAggregatorType converts a wire string to an AggregatorType.
func ParseAggregatorType(s string) (AggregatorType, error) {
	a := AggregatorType(s)
	if !a.Valid() {
		return "", fmt.Errorf("unknown aggregator type %q", s)
	}
	return a, nil
}
