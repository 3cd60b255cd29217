package fs

import "fmt"

// FilesystemError reports a failed directory listing. The previous snapshot
// stays on screen; the caller surfaces exactly one message per failure.
type FilesystemError struct {
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("cannot read %s: %v", e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error { return e.Err }

// MoveError reports a failed move of Source to Dest.
type MoveError struct {
	Source string
	Dest   string
	Err    error
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("cannot move %s to %s: %v", e.Source, e.Dest, e.Err)
}

func (e *MoveError) Unwrap() error { return e.Err }

// ReplaceError reports a failed replacement of Dest with Source.
type ReplaceError struct {
	Source string
	Dest   string
	Err    error
}

func (e *ReplaceError) Error() string {
	return fmt.Sprintf("cannot replace %s with %s: %v", e.Dest, e.Source, e.Err)
}

func (e *ReplaceError) Unwrap() error { return e.Err }
