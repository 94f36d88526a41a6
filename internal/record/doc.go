// Package record defines the Record type shared by the ingestion, store, and
// query layers.
//
// A Record pairs the raw log line with an ordered list of extracted fields.
// Field order matters for display (columns follow extraction order) so fields
// live in a slice with a map index for O(1) lookup, rather than a bare map.
//
// Original and Index are immutable once the record is appended to a store.
// Field mutation (Set, Unset) and mark changes happen only on the consuming
// side after the record is visible, never concurrently with ingestion.
package record
