// Package config builds advanced quantization configurations from layered
// sources: documented defaults first, then overrides read from a YAML or
// CUE document. CUE documents are unified against an embedded schema before
// decoding, so unknown fields and invalid enum spellings are rejected with
// source positions. YAML decoding is strict for the same reason.
//
// The loader only fills the parameter model; it performs no cross-field
// validation. Whether a combination is expressible is decided by whichever
// pipeline consumes the model, e.g. the legacy translator.
package config
