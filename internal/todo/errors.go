package todo

import "errors"

// Kind classifies store errors.
type Kind int

const (
	// KindValidation marks bad input, such as an empty title.
	KindValidation Kind = iota + 1
	// KindNotFound marks a lookup for an id that no todo has.
	KindNotFound
)

// String returns a human-readable representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not found"
	default:
		return "unknown"
	}
}

// Messages returned to API clients. They are part of the public contract.
const (
	MsgInvalidTitle     = "Please Enter a valid todo"
	MsgInvalidQuery     = "Please Enter a valid search query"
	MsgNotFound         = "Todo item does not exist"
	MsgCompleteNotFound = "Todo does not exist"
	MsgDeleteNotFound   = "Todo item does not exist for given id"
)

// Error is returned by Store operations. Error() is the literal client-facing message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches any *Error of the same kind, so errors.Is(err, ErrNotFound)
// holds for every not-found message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is. Their messages are never shown to clients.
var (
	ErrValidation = &Error{Kind: KindValidation, Message: "validation error"}
	ErrNotFound   = &Error{Kind: KindNotFound, Message: "not found"}
)

// KindOf returns the Kind of err, or 0 if err is not a store error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func validationError(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func notFoundError(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// NewValidationError returns a validation error carrying msg.
func NewValidationError(msg string) error {
	return validationError(msg)
}
