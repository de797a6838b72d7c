package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for skippable conditions. A crate hitting one of these is
// excluded from the rest of the run; the run itself continues.
var (
	ErrManifestMissing  = errors.New("manifest missing")
	ErrMalformedVersion = errors.New("malformed version")
	ErrNoRepository     = errors.New("no downstream repository")
	ErrNoImageReference = errors.New("no image reference")
	ErrAlreadyCurrent   = errors.New("already at current version")
)

// SkipsCrate reports whether err is a per-crate skip condition rather than
// a fatal update failure.
func SkipsCrate(err error) bool {
	return errors.Is(err, ErrManifestMissing) || errors.Is(err, ErrMalformedVersion)
}

// SkipsPropagation reports whether err means this crate simply has nothing
// to propagate.
func SkipsPropagation(err error) bool {
	return errors.Is(err, ErrNoRepository) ||
		errors.Is(err, ErrNoImageReference) ||
		errors.Is(err, ErrAlreadyCurrent)
}

// UpdateError is a fatal per-crate update failure. The working tree may be
// left with uncommitted or unpushed state; that is accepted, not rolled
// back.
type UpdateError struct {
	Crate string
	Stage string // "write", "commit", "tag", "push", ...
	Err   error
}

func (e *UpdateError) Error() string {
	return fmt.Sprintf("update %s: %s: %v", e.Crate, e.Stage, e.Err)
}

func (e *UpdateError) Unwrap() error {
	return e.Err
}

// PropagationError is a failed downstream propagation. It aborts only the
// one crate's propagation.
type PropagationError struct {
	Crate string
	Repo  string
	Stage string
	Err   error
}

func (e *PropagationError) Error() string {
	return fmt.Sprintf("propagate %s to %s: %s: %v", e.Crate, e.Repo, e.Stage, e.Err)
}

func (e *PropagationError) Unwrap() error {
	return e.Err
}
