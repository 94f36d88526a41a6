// Package config handles loading and parsing tailspect rules files.
//
// # Overview
//
// A rules file is a TOML document binding file-name patterns to extraction
// rules: which extractors to run, in which order, how their results merge,
// plus named filters and display columns a rule ships ready-made.
//
// # Rules Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/tailspect/rules.toml (default)
//  3. If the rules file doesn't exist, fall back to the built-in default rule
//
// The built-in default rule matches every file and runs logfmt extraction
// followed by automatic timestamp detection, so the tool works on common log
// formats without any configuration.
//
// # TOML Format
//
// Example rules.toml:
//
//	reload_on_truncate = true
//
//	[[rules]]
//	name = "nginx access"
//	file_patterns = ["*access.log*"]
//	extractors = [
//	  'pattern <ip> - <user> [<timestamp>] "<method> <url> <protocol>" <status> <bytes>',
//	  "transform timestamp iso8601",
//	]
//
//	[[rules.filters]]
//	name = "errors"
//	expression = "status >= 400"
//	highlight = "white red"
//
//	[[rules]]
//	name = "fallback"
//	file_patterns = ["*"]
//	extractors = ["logfmt", "autodatetime"]
//
// # Rule Selection
//
// RuleFor picks the first rule whose file pattern matches the input path.
// Patterns without a path separator match against the base name only;
// patterns containing a separator match against the whole path. When nothing
// matches, the last rule in the file applies, so a catch-all rule belongs at
// the bottom.
//
// # Validation
//
// Load rejects rules files with unnamed rules, unknown merge policies (only
// "first" and "last" are accepted), malformed glob patterns, and filters
// without an expression. Extractor specs and filter expressions themselves
// are compiled by the caller before ingestion starts, so every configuration
// error surfaces before a single line is read.
//
// # Path Expansion
//
// The rules file path may be absolute, relative, or tilde-prefixed; tilde
// expansion and conversion to an absolute path are performed automatically.
//
// Missing rules files are NOT an error - the default rule is used instead.
// All other failures (unreadable file, TOML parse errors, validation errors)
// are returned from Load.
package config
