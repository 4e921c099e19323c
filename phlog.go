// Package phlog provides a session recorder for serial bench pH meters.
//
// Example usage:
//
//	cfg := phlog.DefaultConfig()
//	cfg.Port = "/dev/ttyUSB0"
//	cfg.OutputDir = "/data/runs"
//	cfg.OutputFile = "titration-01"
//	rec, err := phlog.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := rec.Start(context.Background()); err != nil {
//	    log.Fatal(err)
//	}
//	// ... run until shutdown signal ...
//	if err := rec.Stop(); err != nil {
//	    log.Printf("shutdown error: %v", err)
//	}
//
// This package is a thin facade over pkg/phlog, which carries the full
// API: options, events, and plugin support.
package phlog

import (
	phlogpkg "github.com/bench-labs/phlog/pkg/phlog"
)

// Config holds the configuration for a pH recorder.
// Use DefaultConfig() to get a Config with sensible defaults.
type Config = phlogpkg.Config

// Recorder is a pH meter session recorder.
// Use New() to create an instance, then Start() to begin ingesting.
type Recorder = phlogpkg.Recorder

// Option configures optional behavior of a Recorder.
type Option = phlogpkg.Option

// Sample is one parsed pH reading.
type Sample = phlogpkg.Sample

// State represents the lifecycle state of a Recorder.
type State = phlogpkg.State

// New creates a new Recorder with the given configuration.
func New(cfg Config, opts ...Option) (*Recorder, error) {
	return phlogpkg.New(cfg, opts...)
}

// DefaultConfig returns a Config with sensible default values.
// At minimum, set Port before calling New.
func DefaultConfig() Config {
	return phlogpkg.DefaultConfig()
}

// ListPorts enumerates the serial ports present on this machine.
func ListPorts() ([]string, error) {
	return phlogpkg.ListPorts()
}
