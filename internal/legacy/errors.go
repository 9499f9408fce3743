package legacy

import (
	"errors"
	"fmt"

	"github.com/quantize-tools/quantcfg/internal/qparams"
)

// UnsupportedFieldError reports a field whose value has no representation
// in the legacy format. The configuration is rejected rather than silently
// translated without the field, since dropping it could silently alter
// quantization accuracy.
type UnsupportedFieldError struct {
	// Algorithm names the parameter group, e.g. "quantization",
	// "range_estimator", "bias_correction".
	Algorithm string

	// Field is the wire name of the offending field.
	Field string

	// Value is the rejected value.
	Value any
}

// Error implements the error interface.
func (e *UnsupportedFieldError) Error() string {
	return fmt.Sprintf("%s parameter %q is not supported in the legacy format (value %v)",
		e.Algorithm, e.Field, e.Value)
}

// IsUnsupportedField reports whether err is an UnsupportedFieldError.
// Uses errors.As to handle wrapped errors.
func IsUnsupportedField(err error) bool {
	var fe *UnsupportedFieldError
	return errors.As(err, &fe)
}

// UnsupportedEstimatorError reports a range-estimator (statistic,
// aggregator) pairing that matches none of the recognized legacy presets.
type UnsupportedEstimatorError struct {
	// Group is the target quantizer group, "activations" or "weights".
	Group string

	MinStatistics *qparams.StatisticsType
	MinAggregator *qparams.AggregatorType
	MaxStatistics *qparams.StatisticsType
	MaxAggregator *qparams.AggregatorType
}

// Error implements the error interface, naming the unsupported combination.
func (e *UnsupportedEstimatorError) Error() string {
	return fmt.Sprintf(
		"%s range estimator combination min=(%s, %s) max=(%s, %s) matches no legacy preset",
		e.Group,
		enumOrUnset(e.MinStatistics), enumOrUnset(e.MinAggregator),
		enumOrUnset(e.MaxStatistics), enumOrUnset(e.MaxAggregator))
}

// IsUnsupportedEstimator reports whether err is an UnsupportedEstimatorError.
// Uses errors.As to handle wrapped errors.
func IsUnsupportedEstimator(err error) bool {
	var ee *UnsupportedEstimatorError
	return errors.As(err, &ee)
}

func enumOrUnset[T ~string](p *T) string {
	if p == nil {
		return "<unset>"
	}
	return string(*p)
}
