// Package model defines the shared data types of the dashboard's data plane.
//
// Conventions:
//   - Prices: integer hundredths of a cent ($1.00 = 10,000)
//   - Timestamps: int64 microseconds since Unix epoch
//   - IDs: string for symbols and watchlists, uuid.UUID for ticks and lots
package model
