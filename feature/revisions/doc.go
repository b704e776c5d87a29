// Package revisions stores the append-only history of entity snapshots.
//
// A Revision is one entity's API payload in one language at one build. The
// package exposes create only; history is never rewritten. Builds number the
// observed API snapshots, with id 0 reserved as the "no build yet" sentinel.
package revisions
