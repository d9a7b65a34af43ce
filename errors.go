package staticpub

import (
	"errors"
	"fmt"
)

// Sentinel kinds for the pipeline error taxonomy. Typed errors below wrap
// these so callers can branch with errors.Is without caring about the
// concrete struct.
var (
	ErrParse      = errors.New("frontmatter parse error")
	ErrValidation = errors.New("frontmatter validation error")
	ErrNotFound   = errors.New("post not found")
	ErrIO         = errors.New("i/o error")
)

// ParseError reports a missing or malformed frontmatter block.
type ParseError struct {
	ID  string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("post %q: malformed frontmatter: %v", e.ID, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrParse }

// ValidationError reports a required frontmatter field that is absent or of
// the wrong shape.
type ValidationError struct {
	ID     string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("post %q: invalid frontmatter field %q: %s", e.ID, e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NotFoundError reports a post id with no matching source folder.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("post %q: not found", e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// IOError reports a filesystem failure while reading sources or publishing
// assets. Always fatal to the surrounding build.
type IOError struct {
	ID  string
	Op  string
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("post %q: %s: %v", e.ID, e.Op, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

func (e *IOError) Is(target error) bool { return target == ErrIO }
