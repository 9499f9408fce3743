// Package testutil provides shared fixtures for quantcfg tests.
package testutil

import "github.com/quantize-tools/quantcfg/internal/qparams"

// Ptr returns a pointer to v, for populating optional parameter fields in
// test fixtures.
func Ptr[T any](v T) *T {
	return &v
}

// FullConfig returns a configuration with every legacy-representable knob
// explicitly set: mixed_min_max activations estimator, mean_percentile
// weights estimator, per-group quantizer overrides and disabled bias
// correction. It translates without error.
func FullConfig() *qparams.AdvancedQuantizationParams {
	p := qparams.NewAdvancedQuantizationParams()
	p.OverflowFix = qparams.OverflowFixEnable
	p.QuantizeOutputs = true
	p.InplaceStatistics = false
	p.DisableBiasCorrection = true

	p.ActivationsQuantizationParams = qparams.QuantizationParams{
		NumBits:           Ptr(8),
		Mode:              Ptr(qparams.ModeSymmetric),
		SignednessToForce: Ptr(true),
		PerChannel:        Ptr(false),
	}
	p.WeightsQuantizationParams = qparams.QuantizationParams{
		NumBits:    Ptr(8),
		Mode:       Ptr(qparams.ModeAsymmetric),
		PerChannel: Ptr(true),
	}

	p.ActivationsRangeEstimatorParams = MixedMinMaxEstimator()
	p.WeightsRangeEstimatorParams = MeanPercentileEstimator(0.01)

	p.BackendParams = map[string]any{"device": "CPU"}
	return p
}

// MixedMinMaxEstimator returns the estimator classified as the
// mixed_min_max legacy preset.
func MixedMinMaxEstimator() qparams.RangeEstimatorParams {
	return qparams.RangeEstimatorParams{
		Min: qparams.StatisticsCollectorParams{
			StatisticsType: Ptr(qparams.StatisticsMin),
			AggregatorType: Ptr(qparams.AggregatorMin),
		},
		Max: qparams.StatisticsCollectorParams{
			StatisticsType: Ptr(qparams.StatisticsMax),
			AggregatorType: Ptr(qparams.AggregatorMax),
		},
	}
}

// MeanMinMaxEstimator returns the estimator classified as the mean_min_max
// legacy preset.
func MeanMinMaxEstimator() qparams.RangeEstimatorParams {
	return qparams.RangeEstimatorParams{
		Min: qparams.StatisticsCollectorParams{
			StatisticsType: Ptr(qparams.StatisticsMin),
			AggregatorType: Ptr(qparams.AggregatorMean),
		},
		Max: qparams.StatisticsCollectorParams{
			StatisticsType: Ptr(qparams.StatisticsMax),
			AggregatorType: Ptr(qparams.AggregatorMean),
		},
	}
}

// MeanPercentileEstimator returns the estimator classified as the
// mean_percentile legacy preset, with the given outlier probability on
// both sides.
func MeanPercentileEstimator(outlierProb float64) qparams.RangeEstimatorParams {
	return qparams.RangeEstimatorParams{
		Min: qparams.StatisticsCollectorParams{
			StatisticsType:      Ptr(qparams.StatisticsQuantile),
			AggregatorType:      Ptr(qparams.AggregatorMean),
			QuantileOutlierProb: Ptr(outlierProb),
		},
		Max: qparams.StatisticsCollectorParams{
			StatisticsType:      Ptr(qparams.StatisticsQuantile),
			AggregatorType:      Ptr(qparams.AggregatorMean),
			QuantileOutlierProb: Ptr(outlierProb),
		},
	}
}
