package legacy

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quantize-tools/quantcfg/internal/qparams"
	"github.com/quantize-tools/quantcfg/internal/testutil"
)

func TestUnsupportedFieldErrorMessage(t *testing.T) {
	err := &UnsupportedFieldError{
		Algorithm: "quantization",
		Field:     "narrow_range",
		Value:     true,
	}
	assert.Equal(t,
		`quantization parameter "narrow_range" is not supported in the legacy format (value true)`,
		err.Error())
}

func TestIsUnsupportedFieldWrapped(t *testing.T) {
	base := &UnsupportedFieldError{Algorithm: "bias_correction", Field: "threshold", Value: 2.0}
	wrapped := fmt.Errorf("translating config: %w", base)

	assert.True(t, IsUnsupportedField(wrapped))
	assert.False(t, IsUnsupportedField(errors.New("translating config: threshold")))
	assert.False(t, IsUnsupportedField(nil))
}

func TestUnsupportedEstimatorErrorMessage(t *testing.T) {
	err := &UnsupportedEstimatorError{
		Group:         "weights",
		MinStatistics: testutil.Ptr(qparams.StatisticsAbsMax),
		MinAggregator: testutil.Ptr(qparams.AggregatorMedian),
		MaxStatistics: testutil.Ptr(qparams.StatisticsMax),
		MaxAggregator: testutil.Ptr(qparams.AggregatorMax),
	}
	assert.Equal(t,
		"weights range estimator combination min=(abs_max, median) max=(max, max) matches no legacy preset",
		err.Error())
}

func TestUnsupportedEstimatorErrorUnsetSides(t *testing.T) {
	err := &UnsupportedEstimatorError{
		Group:         "activations",
		MinStatistics: testutil.Ptr(qparams.StatisticsMin),
	}
	assert.Equal(t,
		"activations range estimator combination min=(min, <unset>) max=(<unset>, <unset>) matches no legacy preset",
		err.Error())
}

func TestIsUnsupportedEstimatorWrapped(t *testing.T) {
	base := &UnsupportedEstimatorError{Group: "activations"}
	wrapped := fmt.Errorf("translating config: %w", base)

	assert.True(t, IsUnsupportedEstimator(wrapped))
	assert.False(t, IsUnsupportedEstimator(&UnsupportedFieldError{Field: "clipping_value"}))
	assert.False(t, IsUnsupportedEstimator(nil))
}
