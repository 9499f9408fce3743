package qparams

// Changes returns the explicitly-set fields of a parameter group as a flat
// mapping from wire name to raw value. Unset fields are omitted entirely.
// Values are passed through verbatim: enum constants stay enum constants and
// nested groups stay structs; there is no coercion and no recursion. Pure
// and idempotent, intended for diagnostics ("what did the user override?").
func Changes(g Group) map[string]any {
	changes := map[string]any{}
	for _, f := range g.ParamFields() {
		if f.Value == nil {
			continue
		}
		changes[f.Name] = f.Value
	}
	return changes
}
