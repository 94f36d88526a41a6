// Package extract turns raw log lines into named fields.
//
// # Extractors
//
// An extractor is a pure function of (line, spec): it emits zero or more
// key/value pairs and never fails per line — a non-matching line simply
// contributes nothing. Supported specs:
//
//   - "logfmt"                      whitespace-separated key=value tokens
//   - "pattern <template>"          literal/slot template, e.g. "<ip> - <user> ..."
//   - "regex <re>"                  named capture groups become fields
//   - "csv"                         first line is the header row
//   - "json"                        one field per top-level object key
//   - "journal"                     journalctl short output
//   - "autodatetime"                heuristic timestamp scan of the raw line
//   - "transform <field> <format>"  normalize a field in place
//
// Malformed specs (bad regex, unterminated template slot, unknown kind) are
// configuration errors raised when the chain is compiled, before any line is
// processed.
//
// # Chains and Merging
//
// A rule lists extractors in order; Chain runs them all against the same
// record. Under the default FirstWins policy a key set by an earlier
// extractor is never overwritten by a later one, so a rule can list fallback
// extractors (two timestamp regexes for different formats) in preference
// order. LastWins restores overwrite semantics for rules that want it.
//
// Regexes and compiled templates are memoized in the recache.Cache handed to
// NewChain, shared with the filter engine.
package extract
