// ABOUTME: Kind-tagged errors shared across the retrieval and generation pipeline
// ABOUTME: Lets the transport boundary log the specific failure while returning a generic response
package fault

import (
	"errors"
	"fmt"
)

// Kind classifies a failure by the collaborator or contract that produced it.
type Kind int

const (
	// KindUnknown is the zero value; errors without a kind report it.
	KindUnknown Kind = iota
	// KindValidation marks bad caller input (e.g. non-positive top_k).
	KindValidation
	// KindEmbedding marks an embedding backend failure.
	KindEmbedding
	// KindIndex marks a vector index failure or misconfiguration.
	KindIndex
	// KindModel marks a chat model failure, including malformed tool payloads.
	KindModel
	// KindTool marks a failed or unrecognized tool invocation.
	KindTool
)

// String returns a short label for logging.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindEmbedding:
		return "embedding"
	case KindIndex:
		return "index"
	case KindModel:
		return "model"
	case KindTool:
		return "tool"
	default:
		return "unknown"
	}
}

// Error is a kind-tagged error. Check kinds with errors.As or KindOf.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a kind-tagged error with a formatted message.
func New(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap tags an underlying error with a kind and message.
// Returns nil if err is nil.
func Wrap(kind Kind, err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

// KindOf returns the kind of the first *Error in err's chain,
// or KindUnknown if there is none.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindUnknown
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
