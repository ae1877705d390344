// Package trainer drives repeated training epochs of a network over a fixed
// set of examples until one of the configured stopping conditions holds,
// and reports the run as a Montage.
package trainer
