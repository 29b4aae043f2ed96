package ingest

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindUnauthenticated    Kind = "UNAUTHENTICATED"
	KindBadRequest         Kind = "BAD_REQUEST"
	KindPayloadTooLarge    Kind = "PAYLOAD_TOO_LARGE"
	KindStorageUnavailable Kind = "STORAGE_UNAVAILABLE"
	KindPersistence        Kind = "PERSISTENCE_ERROR"
)

// Error is what the pipeline surfaces. Message is safe to show to callers; Err is for logs only.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func NewError(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf reports the pipeline kind carried by err, if any.
func KindOf(err error) (Kind, bool) {
	var ie *Error
	if errors.As(err, &ie) {
		return ie.Kind, true
	}
	return "", false
}
