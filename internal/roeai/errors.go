package roeai

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Kind classifies agent call failures. Callers branch on the kind instead of
// inspecting error strings.
type Kind string

const (
	KindMissingCredentials Kind = "missing_credentials"
	KindNotFound           Kind = "not_found"
	KindTransport          Kind = "transport"
	KindDecode             Kind = "decode"
	KindSchemaMismatch     Kind = "schema_mismatch"
)

type Error struct {
	Kind Kind
	Msg  string
	// Raw holds the decoded agent value for schema mismatches so it can be
	// surfaced for manual inspection.
	Raw json.RawMessage
	Err error
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

func MissingCredentials(role string) *Error {
	return &Error{Kind: KindMissingCredentials, Msg: fmt.Sprintf("agent id or bearer token not configured for %s role", role)}
}

func NotFound(path string) *Error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf("file not found at %s", path)}
}

func Transport(msg string, err error) *Error {
	return &Error{Kind: KindTransport, Msg: msg, Err: err}
}

func Decode(msg string, err error) *Error {
	return &Error{Kind: KindDecode, Msg: msg, Err: err}
}

func SchemaMismatch(msg string, raw json.RawMessage) *Error {
	return &Error{Kind: KindSchemaMismatch, Msg: msg, Raw: raw}
}

// AsError unwraps err into a *Error when possible.
func AsError(err error) (*Error, bool) {
	var agentErr *Error
	if errors.As(err, &agentErr) {
		return agentErr, true
	}
	return nil, false
}

// IsKind reports whether err is an agent error of the given kind.
func IsKind(err error, kind Kind) bool {
	agentErr, ok := AsError(err)
	return ok && agentErr.Kind == kind
}
