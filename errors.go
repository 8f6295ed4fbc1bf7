package vendorboot

import (
	"errors"
	"fmt"
	"io"

	"github.com/hashicorp/errwrap"
)

// Kind classifies the step an Error came from.
type Kind int

// Error kinds
const (
	KindUnknown Kind = iota
	KindUsage
	KindOpen
	KindFormat
	KindSeek
	KindRead
	KindWrite
)

var kindNames = map[Kind]string{
	KindUnknown: "unknown error",
	KindUsage:   "usage error",
	KindOpen:    "open error",
	KindFormat:  "format error",
	KindSeek:    "seek error",
	KindRead:    "read error",
	KindWrite:   "write error",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

// Format errors that callers may want to test for with errors.Is.
var (
	ErrBadMagic     = errors.New("magic doesn't match")
	ErrZeroPageSize = errors.New("page size is zero")
	ErrEmptySegment = errors.New("segment is empty")
	ErrUnsupported  = errors.New("compression is not supported")
)

// Error is returned by every failing step of an extraction.
type Error struct {
	Kind Kind
	// Op names the failing step, e.g. "reading ramdisk".
	Op string
	// Err is the underlying reason.
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// WrappedErrors implements errwrap.Wrapper: the operation, then the reason.
func (e *Error) WrappedErrors() []error {
	return []error{errors.New(e.Op), e.Err}
}

var _ errwrap.Wrapper = (*Error)(nil)

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return KindUnknown
}

// GetErrors returns the operation and reason wrapped in one error.
func GetErrors(err error) []string {
	if err == nil {
		return []string{}
	}

	if w, ok := err.(errwrap.Wrapper); ok {
		wrapped := w.WrappedErrors()
		if len(wrapped) == 2 {
			return []string{wrapped[0].Error(), wrapped[1].Error()}
		}
	}

	return []string{"processing image", err.Error()}
}

func eMsg(kind Kind, err error, msg string) error {
	return &Error{Kind: kind, Op: msg, Err: err}
}

func eFormat(err error, msg string) error {
	return eMsg(KindFormat, err, msg)
}

func errEmpty(segment string) error {
	return fmt.Errorf("%s %w", segment, ErrEmptySegment)
}

// ioReason distinguishes running out of input (or a short write) from a
// lower-level fault.
func ioReason(err error) error {
	if errors.Is(err, io.ErrShortWrite) {
		return errwrap.Wrapf("short write: {{err}}", err)
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return errwrap.Wrapf("end of file reached: {{err}}", err)
	}

	return errwrap.Wrapf("I/O error occurred: {{err}}", err)
}
