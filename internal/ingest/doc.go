// Package ingest normalizes heterogeneous inputs into one abstraction: a
// sequence of raw lines arriving over time, each turned into a record and
// appended to the shared store.
//
// # Sources
//
// Three source kinds are supported:
//
//   - An existing file: LoadFile bulk-loads its current contents, then Tail
//     follows growth via fsnotify (with a polling fallback). Files ending in
//     .zst are decompressed on load and cannot be tailed.
//   - A byte stream: Stream reads stdin or piped input line by line.
//   - A subprocess: RunCommand spawns argv and runs one pipeline per output
//     stream, ending with a synthetic EXIT record.
//
// # Ordering
//
// Bulk loading distributes extraction across a worker pool but reassembles
// results by line index before appending, so store order always equals file
// order. Streaming paths are strictly sequential. Multiple simultaneous
// sources each run their own pipeline and interleave in the store by arrival
// time.
//
// # Failure model
//
// A source becoming unreadable terminates only that source's loop; the error
// is returned to the caller, which logs it and leaves other sources running.
// Invalid UTF-8 is decoded lossily and counted, never fatal. A tailed path
// that briefly disappears during rotation is waited out, not treated as an
// error. A tailed file shrinking below the read offset is either reread from
// the start or stopped with ErrTruncated, depending on configuration; a stale
// seek past the new end of file never happens.
//
// # Provenance
//
// Every record is stamped with a generated source id plus filename and
// line_number fields before the extractor chain runs.
package ingest
