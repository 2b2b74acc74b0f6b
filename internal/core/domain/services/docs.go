// Package services provides domain services that orchestrate business
// operations across multiple aggregates in the marketplace.
//
// The package includes:
//   - Dispatcher: books idle pickers and riders onto orders with a pluggable
//     selection policy
//   - CatalogSnapshotter: freezes live catalog values into immutable order
//     line items at placement time
//
// Domain services coordinate between aggregates, implementing business logic
// that spans multiple bounded contexts following Domain-Driven Design
// principles.
package services
