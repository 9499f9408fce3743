package qparams

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverflowFixValues(t *testing.T) {
	assert.Equal(t, "enable", string(OverflowFixEnable))
	assert.Equal(t, "first_layer_only", string(OverflowFixFirstLayer))
	assert.Equal(t, "disable", string(OverflowFixDisable))
}

func TestParseOverflowFix(t *testing.T) {
	fix, err := ParseOverflowFix("first_layer_only")
	require.NoError(t, err)
	assert.Equal(t, OverflowFixFirstLayer, fix)

	_, err = ParseOverflowFix("first_layer")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "first_layer")
}

func TestParseQuantizationMode(t *testing.T) {
	mode, err := ParseQuantizationMode("symmetric")
	require.NoError(t, err)
	assert.Equal(t, ModeSymmetric, mode)

	_, err = ParseQuantizationMode("SYMMETRIC")
	require.Error(t, err)
}

func TestParseStatisticsType(t *testing.T) {
	for _, s := range []string{"min", "max", "abs_max", "quantile", "abs_quantile"} {
		st, err := ParseStatisticsType(s)
		require.NoError(t, err, "statistics type %s should parse", s)
		assert.True(t, st.Valid())
	}

	_, err := ParseStatisticsType("percentile")
	require.Error(t, err)
}

func TestParseAggregatorType(t *testing.T) {
	for _, s := range []string{"min", "max", "mean", "median", "mean_no_outliers", "median_no_outliers"} {
		at, err := ParseAggregatorType(s)
		require.NoError(t, err, "aggregator type %s should parse", s)
		assert.True(t, at.Valid())
	}

	_, err := ParseAggregatorType("avg")
	require.Error(t, err)
}

func TestEnumPrimitivesAreStrings(t *testing.T) {
	// ToMap relies on primitive() producing plain strings, not the typed
	// constants.
	assert.Equal(t, "enable", OverflowFixEnable.primitive())
	assert.Equal(t, "asymmetric", ModeAsymmetric.primitive())
	assert.Equal(t, "quantile", StatisticsQuantile.primitive())
	assert.Equal(t, "mean", AggregatorMean.primitive())

	assert.IsType(t, "", OverflowFixEnable.primitive())
}

func TestZeroValuesAreInvalid(t *testing.T) {
	assert.False(t, OverflowFix("").Valid())
	assert.False(t, QuantizationMode("").Valid())
	assert.False(t, StatisticsType("").Valid())
	assert.False(t, AggregatorType("").Valid())
}
