// Package view layers filtering and searching over the record store.
//
// The Engine owns the filtered view: store indices matching the active
// predicate, or the identity sequence when no filter is active. The view is
// rebuilt wholesale when a filter is applied (an O(n) pass, acceptable on
// filter change) and extended incrementally as records arrive, so a live
// stream never triggers a rescan.
//
// Search shares the compiled-predicate machinery and adds a cursor:
// SearchNext and SearchPrev walk store order and wrap at the ends; zero
// matches leave the cursor where it was and report false rather than failing.
//
// The Editor is the small state machine behind the input line: Idle until an
// edit begins, Editing while a draft is typed. Committing compiles the draft;
// a compile error keeps the editor in Editing with the error attached and the
// previously active predicate continues to be applied untouched.
package view
