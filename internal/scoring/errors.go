package scoring

import "errors"

// Kind classifies a submission failure so callers can map it to a display
// state without inspecting messages.
type Kind int

const (
	// KindValidation means the description was too short; no request was made.
	KindValidation Kind = iota
	// KindTransport means the request itself failed (DNS, refused, deadline).
	KindTransport
	// KindHTTP means the backend answered with a non-success status.
	KindHTTP
	// KindDecode means the response body never yielded a usable score object.
	KindDecode
	// KindSemantic means a structurally valid reply that represents no result,
	// such as the zero-score "unable to simulate" case.
	KindSemantic
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindTransport:
		return "transport"
	case KindHTTP:
		return "http"
	case KindDecode:
		return "decode"
	case KindSemantic:
		return "semantic"
	default:
		return "unknown"
	}
}

// User-facing messages. Raw backend bodies and internal causes stay in logs.
const (
	msgValidation = "Please provide more information. Fill out more form fields or speak longer during the voice conversation."
	msgTransport  = "Could not reach the scoring service. Please check your connection and try again."
	msgHTTP       = "An error occurred processing your request. Please try again."
	msgDecode     = "Failed to process the scoring response. Please try again."
	msgSemantic   = "Your profile data was not received correctly. Please try again."
)

// Error is a typed submission failure. Message is safe to show to the end
// user; the wrapped cause is diagnostic only.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Kind.String() + ": " + e.Err.Error()
	}
	return e.Kind.String() + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// NewError builds a submission error of the given kind with its canonical
// user-facing message, wrapping the diagnostic cause.
func NewError(kind Kind, err error) *Error {
	return &Error{Kind: kind, Message: defaultMessage(kind), Err: err}
}

func defaultMessage(kind Kind) string {
	switch kind {
	case KindValidation:
		return msgValidation
	case KindTransport:
		return msgTransport
	case KindDecode:
		return msgDecode
	case KindSemantic:
		return msgSemantic
	default:
		return msgHTTP
	}
}

// KindOf returns the failure kind of err, or (0, false) when err is not a
// submission error.
func KindOf(err error) (Kind, bool) {
	var subErr *Error
	if errors.As(err, &subErr) {
		return subErr.Kind, true
	}
	return 0, false
}

// UserMessage returns the displayable message for err, falling back to a
// generic one for unexpected error values.
func UserMessage(err error) string {
	var subErr *Error
	if errors.As(err, &subErr) && subErr.Message != "" {
		return subErr.Message
	}
	return msgHTTP
}
