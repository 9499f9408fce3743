// Package qparams provides the advanced quantization parameter model.
//
// This package contains value types only. All other internal packages
// import qparams; qparams imports nothing internal. This keeps the
// parameter model the foundational layer with no circular dependencies.
//
// Key design constraints:
//   - Optional fields are pointers; nil means "unset", never a literal default
//   - Enumerations are closed typed strings with declared primitive values
//   - Field traversal uses declared field lists (ParamFields), never reflection
//   - Instances are frozen snapshots for one quantization run; consumers
//     must not mutate them after reading
package qparams
