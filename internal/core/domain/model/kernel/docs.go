// Package kernel contains shared value objects used across the domain model.
//
// The kernel provides the building blocks that all aggregates depend on:
// identifiers (UUID) and monetary amounts (Money). Value objects here are
// immutable, validated on construction, and safe for concurrent use.
package kernel
