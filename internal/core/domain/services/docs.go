// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the fulfillment system. It implements
// workflows that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - AllocationCoordinator: A domain service pairing order line progress with
//     the matching inventory ledger movements
//
// Domain services coordinate between aggregates. The coordinator itself works
// purely in memory; command handlers make its outcomes durable by persisting
// both aggregates inside one unit of work.
package services
