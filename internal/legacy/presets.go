package legacy

import "github.com/quantize-tools/quantcfg/internal/qparams"

// Legacy range initializer preset names. The legacy pipeline recognizes
// exactly these three; whether the surrounding pipeline defines more is
// unconfirmed, so anything outside this table is rejected.
const (
	PresetMixedMinMax    = "mixed_min_max"
	PresetMeanMinMax     = "mean_min_max"
	PresetMeanPercentile = "mean_percentile"
)

// presetKey is the joint classification key for one range estimator: the
// (statistic, aggregator) pair of the min side and of the max side.
type presetKey struct {
	MinStatistics qparams.StatisticsType
	MinAggregator qparams.AggregatorType
	MaxStatistics qparams.StatisticsType
	MaxAggregator qparams.AggregatorType
}

// rangePresets is the total decision table mapping estimator configurations
// to legacy presets. A lookup miss means the combination has no legacy
// representation. The table is keyed on full tuples rather than cascading
// conditionals so the preset test can enumerate every pairing.
var rangePresets = map[presetKey]string{
	{
		MinStatistics: qparams.StatisticsMin, MinAggregator: qparams.AggregatorMin,
		MaxStatistics: qparams.StatisticsMax, MaxAggregator: qparams.AggregatorMax,
	}: PresetMixedMinMax,
	{
		MinStatistics: qparams.StatisticsMin, MinAggregator: qparams.AggregatorMean,
		MaxStatistics: qparams.StatisticsMax, MaxAggregator: qparams.AggregatorMean,
	}: PresetMeanMinMax,
	{
		MinStatistics: qparams.StatisticsQuantile, MinAggregator: qparams.AggregatorMean,
		MaxStatistics: qparams.StatisticsQuantile, MaxAggregator: qparams.AggregatorMean,
	}: PresetMeanPercentile,
}
