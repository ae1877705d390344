package neuron

import "gonum.org/v1/gonum/floats"

// Dot returns Σ a[i]*b[i], both slices must have the same length. gonum
// selects its assembly kernel for the platform.
var Dot = floats.Dot
