// Package record persists live stream ticks to the tick store.
//
// The recorder accepts decoded ticks through Enqueue, buffers them in a
// growable queue, and batch-inserts on size or interval, whichever
// comes first. Duplicate ticks (same symbol and venue timestamp) are
// dropped at the database with ON CONFLICT DO NOTHING.
package record
