package config

import (
	"fmt"

	"github.com/quantize-tools/quantcfg/internal/qparams"
)

// Document is the on-disk shape of a configuration. Every field is a
// pointer so that "absent" is distinguishable from an explicit zero; absent
// fields keep the model defaults.
type Document struct {
	OverflowFix           *string `yaml:"overflow_fix" json:"overflow_fix,omitempty"`
	QuantizeOutputs       *bool   `yaml:"quantize_outputs" json:"quantize_outputs,omitempty"`
	InplaceStatistics     *bool   `yaml:"inplace_statistics" json:"inplace_statistics,omitempty"`
	DisableBiasCorrection *bool   `yaml:"disable_bias_correction" json:"disable_bias_correction,omitempty"`

	ActivationsQuantization *QuantizationDoc `yaml:"activations_quantization_params" json:"activations_quantization_params,omitempty"`
	WeightsQuantization     *QuantizationDoc `yaml:"weights_quantization_params" json:"weights_quantization_params,omitempty"`

	ActivationsRangeEstimator *RangeEstimatorDoc `yaml:"activations_range_estimator_params" json:"activations_range_estimator_params,omitempty"`
	WeightsRangeEstimator     *RangeEstimatorDoc `yaml:"weights_range_estimator_params" json:"weights_range_estimator_params,omitempty"`

	BiasCorrection *BiasCorrectionDoc `yaml:"bias_correction_params" json:"bias_correction_params,omitempty"`

	BackendParams map[string]any `yaml:"backend_params" json:"backend_params,omitempty"`
}

// QuantizationDoc mirrors qparams.QuantizationParams with wire-typed fields.
type QuantizationDoc struct {
	NumBits           *int    `yaml:"num_bits" json:"num_bits,omitempty"`
	Mode              *string `yaml:"mode" json:"mode,omitempty"`
	SignednessToForce *bool   `yaml:"signedness_to_force" json:"signedness_to_force,omitempty"`
	PerChannel        *bool   `yaml:"per_channel" json:"per_channel,omitempty"`
	NarrowRange       *bool   `yaml:"narrow_range" json:"narrow_range,omitempty"`
}

// RangeEstimatorDoc mirrors qparams.RangeEstimatorParams.
type RangeEstimatorDoc struct {
	Min *CollectorDoc `yaml:"min" json:"min,omitempty"`
	Max *CollectorDoc `yaml:"max" json:"max,omitempty"`
}

// CollectorDoc mirrors qparams.StatisticsCollectorParams.
type CollectorDoc struct {
	StatisticsType      *string  `yaml:"statistics_type" json:"statistics_type,omitempty"`
	AggregatorType      *string  `yaml:"aggregator_type" json:"aggregator_type,omitempty"`
	ClippingValue       *float64 `yaml:"clipping_value" json:"clipping_value,omitempty"`
	QuantileOutlierProb *float64 `yaml:"quantile_outlier_prob" json:"quantile_outlier_prob,omitempty"`
}

// BiasCorrectionDoc mirrors qparams.BiasCorrectionParams.
type BiasCorrectionDoc struct {
	ApplyForAllNodes *bool    `yaml:"apply_for_all_nodes" json:"apply_for_all_nodes,omitempty"`
	Threshold        *float64 `yaml:"threshold" json:"threshold,omitempty"`
}

// Build layers the document's overrides onto a freshly-defaulted parameter
// model. Enum spellings are validated here; structural validation happened
// at decode time.
func (d *Document) Build() (*qparams.AdvancedQuantizationParams, error) {
	p := qparams.NewAdvancedQuantizationParams()

	if d.OverflowFix != nil {
		fix, err := qparams.ParseOverflowFix(*d.OverflowFix)
		if err != nil {
			return nil, &LoadError{Code: ErrCodeInvalidEnum, Message: err.Error()}
		}
		p.OverflowFix = fix
	}
	if d.QuantizeOutputs != nil {
		p.QuantizeOutputs = *d.QuantizeOutputs
	}
	if d.InplaceStatistics != nil {
		p.InplaceStatistics = *d.InplaceStatistics
	}
	if d.DisableBiasCorrection != nil {
		p.DisableBiasCorrection = *d.DisableBiasCorrection
	}

	if err := applyQuantization(&p.ActivationsQuantizationParams, d.ActivationsQuantization, "activations"); err != nil {
		return nil, err
	}
	if err := applyQuantization(&p.WeightsQuantizationParams, d.WeightsQuantization, "weights"); err != nil {
		return nil, err
	}

	if err := applyRangeEstimator(&p.ActivationsRangeEstimatorParams, d.ActivationsRangeEstimator, "activations"); err != nil {
		return nil, err
	}
	if err := applyRangeEstimator(&p.WeightsRangeEstimatorParams, d.WeightsRangeEstimator, "weights"); err != nil {
		return nil, err
	}

	if d.BiasCorrection != nil {
		if d.BiasCorrection.ApplyForAllNodes != nil {
			p.BiasCorrectionParams.ApplyForAllNodes = *d.BiasCorrection.ApplyForAllNodes
		}
		p.BiasCorrectionParams.Threshold = d.BiasCorrection.Threshold
	}

	if len(d.BackendParams) > 0 {
		p.BackendParams = d.BackendParams
	}

	return p, nil
}

func applyQuantization(dst *qparams.QuantizationParams, doc *QuantizationDoc, group string) error {
	if doc == nil {
		return nil
	}
	dst.NumBits = doc.NumBits
	if doc.Mode != nil {
		mode, err := qparams.ParseQuantizationMode(*doc.Mode)
		if err != nil {
			return &LoadError{
				Code:    ErrCodeInvalidEnum,
				Message: fmt.Sprintf("%s quantization: %v", group, err),
			}
		}
		dst.Mode = &mode
	}
	dst.SignednessToForce = doc.SignednessToForce
	dst.PerChannel = doc.PerChannel
	dst.NarrowRange = doc.NarrowRange
	return nil
}

func applyRangeEstimator(dst *qparams.RangeEstimatorParams, doc *RangeEstimatorDoc, group string) error {
	if doc == nil {
		return nil
	}
	if err := applyCollector(&dst.Min, doc.Min, group+".min"); err != nil {
		return err
	}
	return applyCollector(&dst.Max, doc.Max, group+".max")
}

func applyCollector(dst *qparams.StatisticsCollectorParams, doc *CollectorDoc, side string) error {
	if doc == nil {
		return nil
	}
	if doc.StatisticsType != nil {
		st, err := qparams.ParseStatisticsType(*doc.StatisticsType)
		if err != nil {
			return &LoadError{
				Code:    ErrCodeInvalidEnum,
				Message: fmt.Sprintf("%s: %v", side, err),
			}
		}
		dst.StatisticsType = &st
	}
	if doc.AggregatorType != nil {
		at, err := qparams.ParseAggregatorType(*doc.AggregatorType)
		if err != nil {
			return &LoadError{
				Code:    ErrCodeInvalidEnum,
				Message: fmt.Sprintf("%s: %v", side, err),
			}
		}
		dst.AggregatorType = &at
	}
	dst.ClippingValue = doc.ClippingValue
	dst.QuantileOutlierProb = doc.QuantileOutlierProb
	return nil
}
