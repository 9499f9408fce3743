package qparams

// ToMap converts a parameter-group tree into a plain nested mapping.
// Nested groups recurse into nested maps, enumerated values resolve to
// their declared primitive representation, and every other value passes
// through unchanged (including nil for unset fields). The resolved
// primitive is the final, authoritative value for an enumerated field;
// nothing overwrites it with the raw constant afterwards. Pure, stateless,
// and restartable.
func ToMap(g Group) map[string]any {
	if g == nil {
		return map[string]any{}
	}

	result := map[string]any{}
	for _, f := range g.ParamFields() {
		if f.Group != nil {
			result[f.Name] = ToMap(f.Group)
			continue
		}
		if e, ok := f.Value.(enum); ok {
			result[f.Name] = e.primitive()
			continue
		}
		result[f.Name] = f.Value
	}
	return result
}
