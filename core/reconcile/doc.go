// Package reconcile provides the generic engine that applies change events
// (Added, Updated, Rediscovered, Removed) to entity rows and their revision
// history.
//
// # Architecture
//
// The engine is adapter-driven:
//
//  1. Engine: loads entity payloads in bulk, resolves icons, writes one
//     revision per language and delegates the row mutation to the adapter.
//     Per-id failures are isolated so one bad entity never loses a batch.
//
//  2. Adapter: entity-kind-specific persistence. Every kind (items, skins)
//     follows the same structural pattern; adapters only map the kind's
//     table, denormalized fields and current-revision pointer columns.
//
// The engine trusts the producer's change classification: every Updated batch
// writes fresh revisions whether or not content changed, and Removed only
// flips the removed flag. Operations are idempotent with respect to
// at-least-once delivery: re-running Added surfaces ErrDuplicateEntity
// instead of overwriting, and Rediscovered/Removed soft-skip unknown ids.
//
// # Creating Adapters
//
// To support a new entity kind, implement the Adapter interface with the
// kind's model and register job handlers for it. See feature/items for a
// complete example.
package reconcile
