// Package storage provides the object storage client for the icon mirror
// bucket.
//
// The Client interface is kept to the operations the mirror needs so tests
// can substitute a mock (see mocks).
package storage
