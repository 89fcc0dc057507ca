package fs

import (
	"errors"
	"fmt"
)

var (
	// ErrFrontmatterMissing indicates a document does not start with the opening marker line.
	ErrFrontmatterMissing = errors.New("missing frontmatter")
	// ErrFrontmatterInvalid indicates frontmatter is unterminated or malformed.
	ErrFrontmatterInvalid = errors.New("invalid frontmatter")
)

// FileSystemError reports a path that is missing or cannot be read or listed.
type FileSystemError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileSystemError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileSystemError) Unwrap() error { return e.Err }

// ParseError reports a document whose frontmatter cannot be split or decoded.
// Path is empty when the input did not come from a file.
type ParseError struct {
	Path   string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("parse frontmatter: %s", e.Reason)
	}
	return fmt.Sprintf("parse frontmatter %s: %s", e.Path, e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Err }

func missingFrontmatter(reason string) *ParseError {
	return &ParseError{Reason: reason, Err: ErrFrontmatterMissing}
}

func invalidFrontmatter(reason string) *ParseError {
	return &ParseError{Reason: reason, Err: ErrFrontmatterInvalid}
}
