// Package legacy folds an advanced quantization configuration into the flat
// dictionary schema consumed by the legacy quantization pipeline.
//
// The legacy schema cannot express every option of the nested model.
// Translation therefore never drops information silently: any value without
// a legacy representation fails with UnsupportedFieldError, and any
// range-estimator (statistic, aggregator) pairing outside the closed preset
// table fails with UnsupportedEstimatorError. Translation is atomic; on any
// failure no partial dictionary is returned.
//
// All failures are deterministic validation failures. Retrying a fixed
// configuration cannot change the outcome, so nothing here is retried.
package legacy
