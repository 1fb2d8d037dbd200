// Package fds is the typed domain model of an FDS fire simulation input.
//
// A Model is decoded once from a structured document (JSON or YAML, with
// the snake_case field names exported by the FDS tooling) and is read-only
// afterwards. Child records do not point back at their model. Derived
// concepts that need a cross-lookup, such as whether a vent carries a flow
// or which obstructions are burners, are methods on *Model that take the
// child as an argument.
//
// # Burners
//
// A vent or obstruction is a burner when any surface it references has a
// positive HRRPUA or MLRPUA. Burner is a two-variant sum type; the variant
// decides which surface and which face area feed the heat release.
//
// # Units
//
// Lengths are in m, HRRPUA in kW/m², MLRPUA in kg/m²/s, heats of
// combustion in kJ/kg, temperatures in K for TMP_FRONT as exported, and
// volume flows in m³/s. Peak heat release values are reported in W.
package fds
