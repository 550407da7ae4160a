// Package errs defines the error taxonomy surfaced at every package
// boundary in this module: IO, Protocol, ServerException, Unsupported, and
// InvalidInput, per §7. Each is a distinct type so callers can
// branch on error class with errors.As instead of string matching.
package errs

import (
	"errors"
	"fmt"
)

// IOError wraps a transport-level failure: socket errors, DNS failure, TLS
// handshake failure, timeouts. The session must be considered closed.
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string { return fmt.Sprintf("chconn: io: %s: %v", e.Op, e.Err) }
func (e *IOError) Unwrap() error { return e.Err }

// IO constructs an IOError.
func IO(op string, err error) error {
	return &IOError{Op: op, Err: err}
}

// ProtocolError marks stream desynchronization, unknown packet types,
// truncated payloads, invalid type-name parses, unsupported
// key_serialization_version, unsupported compression methods, or checksum
// mismatches. The connection is unrecoverable and must be closed.
type ProtocolError struct {
	Msg string
}

func (e *ProtocolError) Error() string { return "chconn: protocol: " + e.Msg }

// Protocol constructs a ProtocolError.
func Protocol(format string, args ...any) error {
	return &ProtocolError{Msg: fmt.Sprintf(format, args...)}
}

// ServerException mirrors a server-originated Exception packet, including
// its optional nested exception chain.
type ServerException struct {
	Code       int32
	Name       string
	Message    string
	StackTrace string
	Nested     *ServerException
}

func (e *ServerException) Error() string {
	if e.Nested != nil {
		return fmt.Sprintf("chconn: server exception %d, %s: %s (nested: %v)", e.Code, e.Name, e.Message, e.Nested)
	}

	return fmt.Sprintf("chconn: server exception %d, %s: %s", e.Code, e.Name, e.Message)
}

// Unwrap exposes the nested exception so errors.As/errors.Is can traverse
// the chain the server sent.
func (e *ServerException) Unwrap() error {
	if e.Nested == nil {
		return nil
	}

	return e.Nested
}

// UnsupportedError marks a recognized-but-unimplemented feature: an
// AggregateFunction column, or a logical type not enumerated in §3.
type UnsupportedError struct {
	Msg string
}

func (e *UnsupportedError) Error() string { return "chconn: unsupported: " + e.Msg }

// Unsupported constructs an UnsupportedError.
func Unsupported(format string, args ...any) error {
	return &UnsupportedError{Msg: fmt.Sprintf(format, args...)}
}

// InvalidInputError marks a caller-supplied value the protocol or type
// system rejects: invalid type nesting, a Decimal value outside its
// precision's range, a row-count mismatch across columns in a block.
type InvalidInputError struct {
	Msg string
}

func (e *InvalidInputError) Error() string { return "chconn: invalid input: " + e.Msg }

// InvalidInput constructs an InvalidInputError.
func InvalidInput(format string, args ...any) error {
	return &InvalidInputError{Msg: fmt.Sprintf(format, args...)}
}

// IsProtocol reports whether err is, or wraps, a ProtocolError.
func IsProtocol(err error) bool {
	var p *ProtocolError
	return errors.As(err, &p)
}

// IsUnsupported reports whether err is, or wraps, an UnsupportedError.
func IsUnsupported(err error) bool {
	var u *UnsupportedError
	return errors.As(err, &u)
}

// IsInvalidInput reports whether err is, or wraps, an InvalidInputError.
func IsInvalidInput(err error) bool {
	var i *InvalidInputError
	return errors.As(err, &i)
}
