// Package domain contains the core domain entities and value objects for phlog.
//
// This package represents the innermost layer of the architecture. It has no
// dependencies on infrastructure concerns (serial I/O, file system, logging)
// and contains only pure business logic.
//
// # Entities
//
//   - [Sample]: A single parsed pH observation (timestamp, elapsed minutes, value)
//   - [Session]: The ordered, append-only series of samples between a start and a reset
//   - [Settings]: Operator settings persisted across runs (last-used port)
//
// # Design Principles
//
// Domain entities are:
//   - Free of infrastructure dependencies
//   - Focused on business rules and invariants
//   - Testable without mocks or external systems
package domain
