// Package database provides connection pool management for the tick
// store used by the recorder.
package database
