// Package kernel provides core domain primitives and utilities for the order flow system.
// It implements fundamental building blocks following Domain-Driven Design principles
// that are used throughout the domain model.
//
// The package includes:
//   - UUID: A value object for unique identifiers with validation and comparison capabilities
//   - Quantity: A non-negative decimal amount with exact arithmetic for item quantities
//   - ProductKey: A typed composite key identifying a product line within an order
//   - Actor: The identity of the operator performing a mutating operation
//
// These primitives enforce domain invariants and validation rules, ensuring that
// domain objects are always in a valid state. They are designed to be immutable
// and thread-safe, making them suitable for concurrent use.
//
// The package follows Domain-Driven Design best practices, providing rich domain
// behavior and encapsulation of implementation details.
package kernel
