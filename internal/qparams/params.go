package qparams

// DefaultQuantileOutlierProb is the outlier probability assumed for
// quantile statistics when the collector leaves it unset.
const DefaultQuantileOutlierProb = 1e-4

// QuantizationParams holds per-group quantizer tuning knobs for weights or
// activations. Every field is independently optional; nil means the
// surrounding pipeline picks its own default, not that a literal default
// applies here.
type QuantizationParams struct {
	// NumBits is the quantization bit width.
	NumBits *int

	// Mode selects symmetric or asymmetric quantization.
	Mode *QuantizationMode

	// SignednessToForce forces signed (true) or unsigned (false) quantizers.
	SignednessToForce *bool

	// PerChannel selects per-channel (true) or per-tensor (false) scales.
	PerChannel *bool

	// NarrowRange drops one quantization level so the range is symmetric
	// around zero, e.g. [-2^(n-1)+1; 2^(n-1)-1] for signed quantizers.
	NarrowRange *bool
}

// StatisticsCollectorParams configures one side (min or max) of a range
// estimator.
type StatisticsCollectorParams struct {
	// StatisticsType is the per-batch statistic to collect.
	StatisticsType *StatisticsType

	// AggregatorType aggregates the collected statistics across batches.
	AggregatorType *AggregatorType

	// ClippingValue clips observed values before statistics are collected.
	ClippingValue *float64

	// QuantileOutlierProb is the outlier probability used by quantile
	// statistics. DefaultQuantileOutlierProb applies when unset.
	QuantileOutlierProb *float64
}

// RangeEstimatorParams derives the [min, max] calibration range of a
// quantizer group from observed statistics.
type RangeEstimatorParams struct {
	Min StatisticsCollectorParams
	Max StatisticsCollectorParams
}

// BiasCorrectionParams holds tuning knobs for the bias correction algorithm.
type BiasCorrectionParams struct {
	// ApplyForAllNodes extends the correction to nodes without a bias.
	ApplyForAllNodes bool

	// Threshold is the maximum bias correction magnitude; corrections above
	// it are skipped.
	Threshold *float64
}

// AdvancedQuantizationParams is the aggregate configuration root for one
// quantization run. Build it with NewAdvancedQuantizationParams to get the
// documented defaults, then set overrides. Construction never fails and
// performs no cross-field validation; validation belongs to the consumer
// that knows what its target schema can express.
type AdvancedQuantizationParams struct {
	// OverflowFix controls the 8-bit saturation fix. Defaults to
	// OverflowFixFirstLayer.
	OverflowFix OverflowFix

	// QuantizeOutputs inserts quantizers right before each model output.
	QuantizeOutputs bool

	// InplaceStatistics computes quantizer statistics with backend graph
	// operations instead of the reference implementation. Defaults to true.
	InplaceStatistics bool

	// DisableBiasCorrection turns the bias correction step off entirely.
	DisableBiasCorrection bool

	ActivationsQuantizationParams QuantizationParams
	WeightsQuantizationParams     QuantizationParams

	ActivationsRangeEstimatorParams RangeEstimatorParams
	WeightsRangeEstimatorParams     RangeEstimatorParams

	BiasCorrectionParams BiasCorrectionParams

	// BackendParams carries backend-specific key/value options. It is
	// passed through to the modern pipeline verbatim and deliberately never
	// folded into the legacy format.
	BackendParams map[string]any
}

// NewAdvancedQuantizationParams returns an aggregate root with the
// documented literal defaults applied. All optional fields start unset.
func NewAdvancedQuantizationParams() *AdvancedQuantizationParams {
	return &AdvancedQuantizationParams{
		OverflowFix:       OverflowFixFirstLayer,
		InplaceStatistics: true,
	}
}
