// Package verify runs verification rules against an FDS model and,
// optionally, the realised output of a simulation.
//
// A rule is tagged with the stage it needs:
//
//   - StageInput rules see only the model and always run.
//   - StageOutput rules see only the realised output.
//   - StageInputOutput rules cross-check the model against the output.
//
// Rules that need output are skipped, not failed, when no OutputSource is
// given or when the source reports ErrNoOutputData. Every rule returns
// zero or more Results; the Engine stamps each with the rule's id and
// keeps rule order, then rule-internal order.
//
// Problems found in the model are Results, never Go errors. An error
// returned by a rule aborts the run.
//
// The standard rule catalogue lives in the rules subpackage.
package verify
