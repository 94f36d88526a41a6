// Package recache provides a process-wide cache of compiled regular
// expressions.
//
// The pattern-template compiler, the regex extractor, and the filter engine
// all compile regexes from rule and expression text. Identical specs repeat
// across rules and across recompiled filters, so compilation results
// (including failures) are memoized by source pattern. The cache is bounded;
// past capacity a random entry is evicted.
//
// A single Cache is created at startup and handed to each component rather
// than held in package state, keeping components independently testable.
package recache
