package store

import (
	"fmt"

	"github.com/freecbt/journal/internal/thought"
)

// ParseError describes one unreadable record: the key it lives under, the
// raw string as stored, and what went wrong. Listings surface it as a
// distinct "failed to parse" item — still deletable, still viewable raw —
// instead of silently dropping the row or aborting the whole read.
type ParseError struct {
	ID  string
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse thought %s: %v", e.ID, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Result is one record's outcome in a batch read: either a decoded thought
// or the ParseError that stopped it. Exactly one field is set.
type Result struct {
	Thought *thought.Thought
	Err     *ParseError
}

// OK reports whether the record decoded.
func (r Result) OK() bool { return r.Err == nil }
