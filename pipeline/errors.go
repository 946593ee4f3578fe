package pipeline

// ErrorKind classifies a pipeline failure.
type ErrorKind int

const (
	// KindValidation covers locally detected bad input: empty source,
	// compile attempted before any analysis. Never reaches the service.
	KindValidation ErrorKind = iota
	// KindService covers a service response with success=false.
	KindService
	// KindTransport covers requests that could not complete at all.
	KindTransport
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindService:
		return "service"
	case KindTransport:
		return "transport"
	}
	return "unknown"
}

// Error is the single user-visible error form. All three kinds are
// caught at the failing operation and surfaced as one message; nothing
// propagates past the controller boundary.
type Error struct {
	Kind    ErrorKind
	Phase   string // "analyze" or "compile"
	Message string
	Err     error // underlying cause, when any
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// genericMessage is the last-resort fallback when a failing service
// response carries neither detail nor error text.
func genericMessage(phase string) string {
	if phase == "compile" {
		return "Compilation failed"
	}
	return "Analysis failed"
}

// ServiceFailure builds a service error from a failed response, taking
// the message from detail, falling back to error, falling back to the
// phase-generic message.
func ServiceFailure(phase, detail, errText string) *Error {
	msg := detail
	if msg == "" {
		msg = errText
	}
	if msg == "" {
		msg = genericMessage(phase)
	}
	return &Error{Kind: KindService, Phase: phase, Message: msg}
}

// TransportFailure wraps a request that never completed.
func TransportFailure(phase string, err error) *Error {
	return &Error{Kind: KindTransport, Phase: phase, Message: err.Error(), Err: err}
}

func validationFailure(phase, msg string) *Error {
	return &Error{Kind: KindValidation, Phase: phase, Message: msg}
}
