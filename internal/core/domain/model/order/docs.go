// Package order contains the order aggregate and its lifecycle state machine.
//
// An order moves through a fixed linear progression of fulfillment stages:
//
//	placed -> confirmed -> preparing -> ready -> picked-up -> in-transit -> delivered
//
// with cancelled as a terminal status reachable from any non-terminal stage.
// The aggregate enforces that every order passes through every stage exactly
// once, so downstream consumers (the tracking timeline, the ETA display, the
// metrics aggregator) can assume monotonic progress.
//
// The package also derives presentation data from the lifecycle: the tracking
// timeline (one milestone per stage with completion flags and timestamps),
// the progress percentage, and the shared status display metadata table.
package order
