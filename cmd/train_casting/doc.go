// Package main provides a demo program that learns a director's casting taste.
// A simulated director casts several rounds of auditions, every decision is
// fed to a suitability engine, and after each round the engine proposes the
// weight changes it learned for confirmation.
package main
