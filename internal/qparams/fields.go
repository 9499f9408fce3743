package qparams

// Field is one declared parameter of a group. Name is the wire name used in
// serialized output. Value is nil when the field is unset; for enumerated
// fields it holds the raw enum constant, not the primitive. Group is non-nil
// when the field is itself a nested parameter group.
type Field struct {
	Name  string
	Value any
	Group Group
}

// Group is implemented by every parameter struct. ParamFields returns the
// declared field list in declaration order. The explicit list replaces
// runtime field introspection: adding a struct field without declaring it
// here keeps it invisible to Changes and ToMap, which the package tests
// guard against.
type Group interface {
	ParamFields() []Field
}

// optional boxes a pointer field for a Field entry: nil stays nil instead of
// becoming a typed non-nil interface value.
func optional[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

// ParamFields declares the fields of a quantizer parameter group.
func (p QuantizationParams) ParamFields() []Field {
	return []Field{
		{Name: "num_bits", Value: optional(p.NumBits)},
		{Name: "mode", Value: optional(p.Mode)},
		{Name: "signedness_to_force", Value: optional(p.SignednessToForce)},
		{Name: "per_channel", Value: optional(p.PerChannel)},
		{Name: "narrow_range", Value: optional(p.NarrowRange)},
	}
}

// ParamFields declares the fields of one statistics collector side.
func (p StatisticsCollectorParams) ParamFields() []Field {
	return []Field{
		{Name: "statistics_type", Value: optional(p.StatisticsType)},
		{Name: "aggregator_type", Value: optional(p.AggregatorType)},
		{Name: "clipping_value", Value: optional(p.ClippingValue)},
		{Name: "quantile_outlier_prob", Value: optional(p.QuantileOutlierProb)},
	}
}

// ParamFields declares the min and max collector sides.
func (p RangeEstimatorParams) ParamFields() []Field {
	return []Field{
		{Name: "min", Value: p.Min, Group: p.Min},
		{Name: "max", Value: p.Max, Group: p.Max},
	}
}

// ParamFields declares the bias correction fields. ApplyForAllNodes is not
// optional, so it is always present.
func (p BiasCorrectionParams) ParamFields() []Field {
	return []Field{
		{Name: "apply_for_all_nodes", Value: p.ApplyForAllNodes},
		{Name: "threshold", Value: optional(p.Threshold)},
	}
}

// ParamFields declares the aggregate root fields.
func (p AdvancedQuantizationParams) ParamFields() []Field {
	var backend any
	if p.BackendParams != nil {
		backend = p.BackendParams
	}
	return []Field{
		{Name: "overflow_fix", Value: p.OverflowFix},
		{Name: "quantize_outputs", Value: p.QuantizeOutputs},
		{Name: "inplace_statistics", Value: p.InplaceStatistics},
		{Name: "disable_bias_correction", Value: p.DisableBiasCorrection},
		{Name: "activations_quantization_params", Value: p.ActivationsQuantizationParams, Group: p.ActivationsQuantizationParams},
		{Name: "weights_quantization_params", Value: p.WeightsQuantizationParams, Group: p.WeightsQuantizationParams},
		{Name: "activations_range_estimator_params", Value: p.ActivationsRangeEstimatorParams, Group: p.ActivationsRangeEstimatorParams},
		{Name: "weights_range_estimator_params", Value: p.WeightsRangeEstimatorParams, Group: p.WeightsRangeEstimatorParams},
		{Name: "bias_correction_params", Value: p.BiasCorrectionParams, Group: p.BiasCorrectionParams},
		{Name: "backend_params", Value: backend},
	}
}
