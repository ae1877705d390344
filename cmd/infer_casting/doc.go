// Package main provides a demo program ranking a fresh audition with a model
// saved by train_casting.
package main
