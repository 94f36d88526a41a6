// Package store holds the shared append-only record store.
//
// # Concurrency Model
//
// The store sits between producer goroutines (ingestion pipelines) and the
// consumer (the UI loop):
//
//	Producers (pipelines):          Consumer (UI):
//	┌────────────────┐            ┌──────────────────┐
//	│ extract line   │            │ store.Get(i)     │
//	│      ↓         │            │ store.Len()      │
//	│ store.Append() │───────────→│ store.ToggleMark │
//	└────────────────┘  (mutex)   └──────────────────┘
//
// Append is the only write path used by producers and is serialized by a
// mutex, so there is exactly one logical writer at a time and indices match
// arrival order. Field updates and mark toggles originate only from the
// consumer, after a record is visible, so they never race ingestion writes to
// the same record.
//
// Get is O(1) random access; scrolling a large store never scans.
package store
