// Package combustion implements the closed-form fire approximations used to
// verify a model: the capped t-squared heat release curve, classification
// against standard growth rates, stoichiometric heat of combustion, and the
// comparison of a realised HRR series against its specification.
//
// # Units
//
// HrrSpec peaks are in W. Realised HRR series, as written by the solver, are
// in kW. Growth-rate coefficients (alpha) are compared in kW/s². Heats of
// combustion are in kJ/kg.
package combustion
