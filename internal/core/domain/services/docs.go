// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the order flow system. It implements complex
// business workflows that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - TransitionEngine: validates status edges and classifies them for audit
//   - PreparationTracker: fulfillment progress and missing-items determination
//   - BulkConsolidator: consolidation and proportional distribution for bulk orders
//
// Domain services coordinate between aggregates, implementing business logic that
// spans multiple bounded contexts following Domain-Driven Design principles.
package services
