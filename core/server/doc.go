// Package server provides the internal status HTTP server running alongside
// the worker loop: health check, recent job state and prometheus metrics.
//
// All failure visibility of the pipeline goes through job status and error
// fields; this server is how an external dashboard or retry scheduler reads
// them.
package server
