// Package errs defines the error kinds produced by the brush-clipping and
// meshing pipeline.
package errs

import "fmt"

// Kind classifies an Error so callers can branch on it with errors.As
// without string-matching messages.
type Kind int

const (
	// MalformedInput means the map tokenizer hit a structural problem in
	// the source text. Non-recoverable for the affected entity; the parser
	// resumes at the next line.
	MalformedInput Kind = iota

	// DegenerateBrush means faces collapsed to nothing after clipping even
	// though some vertex survived (fewer than four non-parallel planes, or
	// planes that together don't bound a consistent solid). Warning only;
	// the brush contributes no geometry.
	DegenerateBrush

	// InvariantViolation means the clipper observed more than two open-chain
	// endpoints on a face closure, or a third attach to an edge. Fatal for
	// the brush being processed.
	InvariantViolation

	// EmptyPolytope means every vertex of a brush became clipped (an empty
	// intersection), or a brush's surviving faces all failed to produce a
	// triangulatable ring. Warning only.
	EmptyPolytope
)

func (k Kind) String() string {
	switch k {
	case MalformedInput:
		return "MalformedInput"
	case DegenerateBrush:
		return "DegenerateBrush"
	case InvariantViolation:
		return "InvariantViolation"
	case EmptyPolytope:
		return "EmptyPolytope"
	default:
		return "Unknown"
	}
}

// Error is the single error type returned by this module's packages. Offset
// is meaningful only for MalformedInput; BrushIndex is meaningful for
// DegenerateBrush, InvariantViolation, and EmptyPolytope.
type Error struct {
	Kind       Kind
	Message    string
	Offset     int
	BrushIndex int
}

func (e *Error) Error() string {
	switch e.Kind {
	case MalformedInput:
		return fmt.Sprintf("%s at offset %d: %s", e.Kind, e.Offset, e.Message)
	case InvariantViolation, DegenerateBrush, EmptyPolytope:
		return fmt.Sprintf("%s in brush %d: %s", e.Kind, e.BrushIndex, e.Message)
	default:
		return e.Message
	}
}

// Is reports whether target is an *Error with the same Kind, so callers can
// write errors.Is(err, &errs.Error{Kind: errs.EmptyPolytope}).
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return other.Kind == e.Kind
}

// Malformed builds a MalformedInput error at the given byte offset.
func Malformed(offset int, format string, args ...any) *Error {
	return &Error{Kind: MalformedInput, Offset: offset, Message: fmt.Sprintf(format, args...)}
}

// Degenerate builds a DegenerateBrush warning for the given brush index.
func Degenerate(brushIndex int, format string, args ...any) *Error {
	return &Error{Kind: DegenerateBrush, BrushIndex: brushIndex, Message: fmt.Sprintf(format, args...)}
}

// Invariant builds an InvariantViolation error for the given brush index.
func Invariant(brushIndex int, format string, args ...any) *Error {
	return &Error{Kind: InvariantViolation, BrushIndex: brushIndex, Message: fmt.Sprintf(format, args...)}
}

// Empty builds an EmptyPolytope warning for the given brush index.
func Empty(brushIndex int, format string, args ...any) *Error {
	return &Error{Kind: EmptyPolytope, BrushIndex: brushIndex, Message: fmt.Sprintf(format, args...)}
}
