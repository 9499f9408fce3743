package legacy

import "github.com/quantize-tools/quantcfg/internal/qparams"

// Legacy dictionary keys.
const (
	keyOverflowFix       = "overflow_fix"
	keyQuantizeOutputs   = "quantize_outputs"
	keyBatchnormAdapt    = "batchnorm_adaptation"
	keyBNAdaptSamples    = "num_bn_adaptation_samples"
	keyActivations       = "activations"
	keyWeights           = "weights"
	keyInitializer       = "initializer"
	keyRange             = "range"
	keyType              = "type"
	keyParams            = "params"
	keyMinPercentile     = "min_percentile"
	keyMaxPercentile     = "max_percentile"
	keyTargetGroup       = "target_quantizer_group"
	keyTargetScopes      = "target_scopes"
	matchAllTargetScopes = "{re}.*"
)

// Translate maps an advanced quantization configuration onto the flat
// legacy dictionary. The mapping is deterministic; translation fails fast
// on any value the legacy schema cannot represent and returns no partial
// result. BackendParams are deliberately never merged into the output.
func Translate(p *qparams.AdvancedQuantizationParams) (map[string]any, error) {
	if !p.OverflowFix.Valid() {
		return nil, &UnsupportedFieldError{
			Algorithm: "quantization",
			Field:     "overflow_fix",
			Value:     string(p.OverflowFix),
		}
	}

	if p.BiasCorrectionParams.ApplyForAllNodes {
		return nil, &UnsupportedFieldError{
			Algorithm: "bias_correction",
			Field:     "apply_for_all_nodes",
			Value:     true,
		}
	}
	if p.BiasCorrectionParams.Threshold != nil {
		return nil, &UnsupportedFieldError{
			Algorithm: "bias_correction",
			Field:     "threshold",
			Value:     *p.BiasCorrectionParams.Threshold,
		}
	}

	result := map[string]any{
		keyOverflowFix:     string(p.OverflowFix),
		keyQuantizeOutputs: p.QuantizeOutputs,
	}

	// Absence of the key means "leave bias correction alone"; an explicit
	// enable directive does not exist in the legacy schema.
	if p.DisableBiasCorrection {
		result[keyBatchnormAdapt] = map[string]any{keyBNAdaptSamples: 0}
	}

	activations, err := quantizationSection(p.ActivationsQuantizationParams)
	if err != nil {
		return nil, err
	}
	if len(activations) > 0 {
		result[keyActivations] = activations
	}

	weights, err := quantizationSection(p.WeightsQuantizationParams)
	if err != nil {
		return nil, err
	}
	if len(weights) > 0 {
		result[keyWeights] = weights
	}

	activationsRange, err := estimatorSection(keyActivations, p.ActivationsRangeEstimatorParams)
	if err != nil {
		return nil, err
	}
	weightsRange, err := estimatorSection(keyWeights, p.WeightsRangeEstimatorParams)
	if err != nil {
		return nil, err
	}
	if len(activationsRange) > 0 || len(weightsRange) > 0 {
		activationsRange[keyTargetGroup] = keyActivations
		activationsRange[keyTargetScopes] = matchAllTargetScopes
		weightsRange[keyTargetGroup] = keyWeights
		weightsRange[keyTargetScopes] = matchAllTargetScopes
		result[keyInitializer] = map[string]any{
			keyRange: []any{activationsRange, weightsRange},
		}
	}

	return result, nil
}

// quantizationSection renames the explicitly-set quantizer fields to their
// legacy spellings. An empty map means the caller must omit the section.
func quantizationSection(p qparams.QuantizationParams) (map[string]any, error) {
	if p.NarrowRange != nil {
		return nil, &UnsupportedFieldError{
			Algorithm: "quantization",
			Field:     "narrow_range",
			Value:     *p.NarrowRange,
		}
	}

	section := map[string]any{}
	if p.NumBits != nil {
		section["bits"] = *p.NumBits
	}
	if p.Mode != nil {
		section["mode"] = string(*p.Mode)
	}
	if p.SignednessToForce != nil {
		section["signed"] = *p.SignednessToForce
	}
	if p.PerChannel != nil {
		section["per_channel"] = *p.PerChannel
	}
	return section, nil
}

// estimatorSection classifies a range estimator into a legacy preset.
// A fully-unset estimator yields an empty section: unset means "inherit the
// pipeline default", so emitting nothing loses no information. Anything
// partially set or outside the preset table is rejected.
func estimatorSection(group string, re qparams.RangeEstimatorParams) (map[string]any, error) {
	// clipping_value has no legacy spelling on either side; check before
	// classification so the error names the real problem.
	if re.Min.ClippingValue != nil || re.Max.ClippingValue != nil {
		value := re.Min.ClippingValue
		if value == nil {
			value = re.Max.ClippingValue
		}
		return nil, &UnsupportedFieldError{
			Algorithm: "range_estimator",
			Field:     "clipping_value",
			Value:     *value,
		}
	}

	if collectorUnset(re.Min) && collectorUnset(re.Max) {
		return map[string]any{}, nil
	}

	if re.Min.StatisticsType == nil || re.Min.AggregatorType == nil ||
		re.Max.StatisticsType == nil || re.Max.AggregatorType == nil {
		return nil, unsupportedEstimator(group, re)
	}

	preset, ok := rangePresets[presetKey{
		MinStatistics: *re.Min.StatisticsType,
		MinAggregator: *re.Min.AggregatorType,
		MaxStatistics: *re.Max.StatisticsType,
		MaxAggregator: *re.Max.AggregatorType,
	}]
	if !ok {
		return nil, unsupportedEstimator(group, re)
	}

	section := map[string]any{keyType: preset}
	if preset == PresetMeanPercentile {
		section[keyParams] = map[string]any{
			keyMinPercentile: 1 - outlierProb(re.Min),
			keyMaxPercentile: 1 - outlierProb(re.Max),
		}
	}
	return section, nil
}

func collectorUnset(c qparams.StatisticsCollectorParams) bool {
	return c.StatisticsType == nil && c.AggregatorType == nil &&
		c.ClippingValue == nil && c.QuantileOutlierProb == nil
}

func outlierProb(c qparams.StatisticsCollectorParams) float64 {
	if c.QuantileOutlierProb == nil {
		return qparams.DefaultQuantileOutlierProb
	}
	return *c.QuantileOutlierProb
}

func unsupportedEstimator(group string, re qparams.RangeEstimatorParams) error {
	return &UnsupportedEstimatorError{
		Group:         group,
		MinStatistics: re.Min.StatisticsType,
		MinAggregator: re.Min.AggregatorType,
		MaxStatistics: re.Max.StatisticsType,
		MaxAggregator: re.Max.AggregatorType,
	}
}
