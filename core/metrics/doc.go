// Package metrics exposes prometheus instrumentation for the job worker.
package metrics
