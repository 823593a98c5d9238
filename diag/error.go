// Package diag implements the error-kind taxonomy from spec.md section 7
// and the stage-tagged, colorized diagnostic that main.go prints on abort,
// in the shape of the teacher's own oops(stage, err) / self.err(stage, f,
// args...) helpers.
package diag

import "fmt"

type Kind int

const (
	Catalog Kind = iota
	Parse
	Plan
	Type
	IO
)

func (k Kind) String() string {
	switch k {
	case Catalog:
		return "catalog"
	case Parse:
		return "parse"
	case Plan:
		return "plan"
	case Type:
		return "type"
	case IO:
		return "io"
	default:
		return "unknown"
	}
}

// stageError is the error value every abort path returns; it carries enough
// to print "ERROR [stage] message" the way the teacher's main.go does, plus
// the kind so callers (tests, in particular) can assert on it without
// string-matching the message.
type stageError struct {
	kind  Kind
	stage string
	msg   string
}

func (e *stageError) Error() string {
	return fmt.Sprintf("[%s] %s", e.stage, e.msg)
}

func (e *stageError) Kind() Kind { return e.kind }

// Errorf mirrors the teacher's Plan.err(stage, f, args...): format a message
// and tag it with a stage name and error kind.
func Errorf(kind Kind, stage string, f string, args ...interface{}) error {
	return &stageError{kind: kind, stage: stage, msg: fmt.Sprintf(f, args...)}
}

// KindOf extracts the Kind from an error produced by Errorf, defaulting to
// IO for anything else (an unexpected error is always something that broke
// while touching the filesystem or an external collaborator).
func KindOf(err error) Kind {
	if se, ok := err.(*stageError); ok {
		return se.kind
	}
	return IO
}
