// Package items persists item entities and handles their reconciliation jobs.
package items
