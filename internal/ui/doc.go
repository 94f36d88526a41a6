// Package ui is the interactive viewer: a scrollable record list over the
// shared store with a filter/search input line, mark toggling, and match
// navigation.
//
// The model never blocks on ingestion. A short tick re-renders from whatever
// the store currently holds, so a live stream appears as it arrives and an
// idle source costs nothing but the tick.
//
// Keys: j/k or arrows move, g/G jump to the ends, / edits the filter, s edits
// the search expression, n/N step through matches, m toggles a mark on the
// selected record, M jumps to the next marked record, digits activate a
// rule's named filters, esc clears filter and search, q quits.
//
// A draft that fails to compile keeps the input line open with the error
// shown; the active filter keeps applying until a draft compiles.
package ui
