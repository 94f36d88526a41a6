package view

import (
	"github.com/tailspect/tailspect/internal/query"
	"github.com/tailspect/tailspect/internal/recache"
)

// EditorState is the mode of the expression input line.
type EditorState int

const (
	// Idle means no edit in progress; the active predicate is whatever was
	// last committed.
	Idle EditorState = iota
	// Editing means a draft is being typed. A failed commit stays in
	// Editing with the error attached; the previous predicate is
	// untouched until a draft compiles.
	Editing
)

// Editor is the edit-mode state machine for filter and search input.
type Editor struct {
	state EditorState
	draft string
	err   error
}

// State returns the current mode.
func (ed *Editor) State() EditorState { return ed.state }

// Draft returns the text being edited.
func (ed *Editor) Draft() string { return ed.draft }

// Err returns the compile error from the last failed commit, nil otherwise.
func (ed *Editor) Err() error { return ed.err }

// Begin enters Editing with an initial draft, usually the source of the
// currently active predicate.
func (ed *Editor) Begin(initial string) {
	ed.state = Editing
	ed.draft = initial
	ed.err = nil
}

// SetDraft replaces the draft text while editing.
func (ed *Editor) SetDraft(text string) {
	if ed.state != Editing {
		return
	}
	ed.draft = text
}

// Commit compiles the draft. On success the editor returns to Idle and hands
// back the new predicate. On failure it stays in Editing with the error
// recorded and returns nil, leaving the caller's active predicate alone.
func (ed *Editor) Commit(cache *recache.Cache) (*query.Filter, bool) {
	if ed.state != Editing {
		return nil, false
	}
	f, err := query.Compile(ed.draft, cache)
	if err != nil {
		ed.err = err
		return nil, false
	}
	ed.state = Idle
	ed.err = nil
	return f, true
}

// Cancel discards the draft and returns to Idle; the previously active
// predicate is untouched.
func (ed *Editor) Cancel() {
	ed.state = Idle
	ed.draft = ""
	ed.err = nil
}
