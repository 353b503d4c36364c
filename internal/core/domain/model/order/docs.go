// Package order contains the Order aggregate and its value objects: the
// lifecycle Status state machine with an explicit legal-transition table, the
// order Kind (normal, bulk batch, bulk sub), and the Item product line with
// requested, prepared and purchased quantities.
//
// The aggregate enforces encapsulation through private fields and factory
// constructors, and carries an optimistic-concurrency version counter that
// the persistence layer checks on every update.
package order
