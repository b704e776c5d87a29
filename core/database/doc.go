// Package database provides the MySQL connection used by the worker.
//
// The connection is configured with explicit connect/read/write timeouts so a
// broken database never hangs a worker, and with GORM error translation
// enabled so duplicate-key violations surface as gorm.ErrDuplicatedKey.
package database
