// Package event contains the append-only audit trail entry for order
// lifecycle transitions and its classification Type. Events are written
// best-effort after the order mutation commits: a failed audit write is
// reported but never rolls back or blocks the mutation it describes.
package event
