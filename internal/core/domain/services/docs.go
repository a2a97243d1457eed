// Package services provides domain services that operate across many orders
// in the marketplace. It implements business logic that doesn't naturally
// belong to a single aggregate root.
//
// The package includes:
//   - MetricsAggregator: A domain service computing operational KPIs over a
//     set of order records
//
// Domain services stay pure: they receive their inputs as values and never
// perform I/O, so the computed figures are reproducible for any given input.
package services
