package qparams

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func TestChangesEmptyForDefaultGroup(t *testing.T) {
	assert.Empty(t, Changes(QuantizationParams{}))
	assert.Empty(t, Changes(StatisticsCollectorParams{}))
}

func TestChangesExactlySetFields(t *testing.T) {
	p := QuantizationParams{
		NumBits:    ptr(8),
		PerChannel: ptr(false),
	}

	changes := Changes(p)
	assert.Equal(t, map[string]any{
		"num_bits":    8,
		"per_channel": false,
	}, changes)
}

func TestChangesKeepsRawEnumValues(t *testing.T) {
	p := QuantizationParams{Mode: ptr(ModeSymmetric)}

	changes := Changes(p)
	// No coercion: the raw constant, not its primitive string.
	assert.Equal(t, ModeSymmetric, changes["mode"])
	assert.IsType(t, QuantizationMode(""), changes["mode"])
}

func TestChangesFalseIsNotUnset(t *testing.T) {
	// An explicit false must survive: unset and false are different states.
	p := QuantizationParams{SignednessToForce: ptr(false)}

	changes := Changes(p)
	assert.Equal(t, map[string]any{"signedness_to_force": false}, changes)
}

func TestChangesNonOptionalFieldsAlwaysPresent(t *testing.T) {
	changes := Changes(BiasCorrectionParams{})
	assert.Equal(t, map[string]any{"apply_for_all_nodes": false}, changes)
}

func TestChangesDoesNotRecurse(t *testing.T) {
	re := RangeEstimatorParams{
		Min: StatisticsCollectorParams{StatisticsType: ptr(StatisticsMin)},
	}

	changes := Changes(re)
	// Nested groups pass through verbatim as structs.
	assert.IsType(t, StatisticsCollectorParams{}, changes["min"])
	assert.IsType(t, StatisticsCollectorParams{}, changes["max"])
}

func TestChangesIdempotent(t *testing.T) {
	p := QuantizationParams{NumBits: ptr(4), NarrowRange: ptr(true)}
	assert.Equal(t, Changes(p), Changes(p))
}
