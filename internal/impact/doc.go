// Package impact implements the impact-vector algebra shared by the textile
// and food engines: the closed set of impact codes, the always-total Vector,
// impact definitions and the PEF/Ecoscore composite scores.
//
// Vectors are plain arrays, so every operation is referentially transparent
// and safe to use from concurrent simulations without coordination.
package impact
