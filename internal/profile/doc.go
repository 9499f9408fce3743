// Package profile provides SQLite-backed storage for named quantization
// configuration profiles.
//
// A profile is an append-only sequence of immutable revisions. Saving under
// an existing name creates a new revision; nothing is updated in place, so
// a run can always be traced back to the exact configuration it used.
// Revisions are identified by UUIDv7 and ordered by a per-name sequence
// number rather than wall-clock timestamps.
//
// Documents are persisted as JSON produced from the serialized parameter
// tree (qparams.ToMap), with map keys in sorted order for stable diffs.
package profile
