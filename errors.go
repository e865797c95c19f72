package reportdoc

import (
	"errors"
	"fmt"

	"github.com/tsawler/reportdoc/docx"
)

var (
	// ErrIO matches every failure to write the output document.
	ErrIO = errors.New("reportdoc: i/o error")
	// ErrSerialization matches every failure to encode the document.
	ErrSerialization = errors.New("reportdoc: serialization error")
	// ErrInvalidOption is returned for a rejected builder option.
	ErrInvalidOption = errors.New("reportdoc: invalid option")
)

// IOError records a failed filesystem operation on the output path.
// The underlying error stays reachable, so errors.Is(err, fs.ErrExist) and
// errors.Is(err, fs.ErrPermission) work as usual.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("reportdoc: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("reportdoc: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Is reports whether target is ErrIO.
func (e *IOError) Is(target error) bool { return target == ErrIO }

// SerializationError records a failure to encode the document package.
type SerializationError struct {
	Part string // package part, or "document" when not part specific
	Err  error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("reportdoc: encoding %s: %v", e.Part, e.Err)
}

func (e *SerializationError) Unwrap() error { return e.Err }

// Is reports whether target is ErrSerialization.
func (e *SerializationError) Is(target error) bool { return target == ErrSerialization }

// newSerializationError wraps an encoder failure, keeping the part name
// when the docx package reports one.
func newSerializationError(err error) *SerializationError {
	part := "document"
	var encErr *docx.EncodeError
	if errors.As(err, &encErr) {
		part = encErr.Part
	}
	return &SerializationError{Part: part, Err: err}
}
