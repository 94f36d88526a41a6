// Package app wires the pieces together: rules from config, one ingestion
// pipeline per source, the shared record store, the filtered view, and the
// viewer on top.
//
// Run compiles every extractor chain and named filter before any line is
// read, so a bad rule is a startup failure, never a mid-run surprise. It then
// starts one goroutine per source and hands the terminal to the viewer. All
// producers append through a single locked appender, which keeps store order
// and the filtered view consistent; the viewer only ever reads and toggles
// marks.
//
// Input selection: explicit paths are bulk-loaded and, with Follow, tailed;
// an Exec command streams its stdout and stderr as two sources; otherwise
// stdin is streamed.
package app
