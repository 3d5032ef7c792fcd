package catalog

import (
	"errors"
	"fmt"
	"net/http"

	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

// Kind is the closed set of failures the catalog reports to callers.
type Kind int

const (
	KindNotFound Kind = iota + 1
	KindUnprocessable
	KindBadRequest
	KindMethodNotAllowed
)

// Status maps a kind to its HTTP status code.
func (k Kind) Status() int {
	switch k {
	case KindNotFound:
		return http.StatusNotFound
	case KindUnprocessable:
		return http.StatusUnprocessableEntity
	case KindBadRequest:
		return http.StatusBadRequest
	case KindMethodNotAllowed:
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}

// Message is the user-visible text for a kind.
func (k Kind) Message() string {
	switch k {
	case KindNotFound:
		return httperrors.MsgNotFound
	case KindUnprocessable:
		return httperrors.MsgUnprocessable
	case KindBadRequest:
		return httperrors.MsgBadRequest
	case KindMethodNotAllowed:
		return httperrors.MsgMethodNotAllowed
	default:
		return httperrors.MsgInternalError
	}
}

func (k Kind) String() string {
	return k.Message()
}

// Error is a classified catalog failure. Detail is for logs only; clients
// see Kind.Message.
type Error struct {
	Kind   Kind
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return e.Kind.Message()
	}
	return e.Kind.Message() + ": " + e.Detail
}

// Is matches any *Error of the same kind, so errors.Is(err, ErrNotFound)
// works regardless of detail.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrNotFound         = &Error{Kind: KindNotFound}
	ErrUnprocessable    = &Error{Kind: KindUnprocessable}
	ErrBadRequest       = &Error{Kind: KindBadRequest}
	ErrMethodNotAllowed = &Error{Kind: KindMethodNotAllowed}
)

// ErrStoreNotFound is returned by Store lookups that match no row.
var ErrStoreNotFound = errors.New("catalog: record not found")

// KindOf returns the kind of a classified error, or 0 for anything else.
func KindOf(err error) Kind {
	var cerr *Error
	if errors.As(err, &cerr) {
		return cerr.Kind
	}
	return 0
}

func notFound(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Detail: fmt.Sprintf(format, args...)}
}

func unprocessable(format string, args ...any) error {
	return &Error{Kind: KindUnprocessable, Detail: fmt.Sprintf(format, args...)}
}

func badRequest(format string, args ...any) error {
	return &Error{Kind: KindBadRequest, Detail: fmt.Sprintf(format, args...)}
}
