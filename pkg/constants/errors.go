package constants

import "errors"

// ErrorKind is the closed taxonomy every transport failure is classified into.
// A kind is itself an error so callers can use errors.Is against it.
type ErrorKind int

const (
	// UnreachableServer means no HTTP status was obtained: DNS, connect, TLS,
	// timeout or cancellation.
	UnreachableServer ErrorKind = iota + 1
	// WrongCredentials is returned for every non-2xx status, not only 401/403.
	WrongCredentials
	// MalformedResponse means the status was 2xx but the body was unreadable or
	// did not decode into the expected schema.
	MalformedResponse
)

var errorKindNames = map[ErrorKind]string{
	UnreachableServer: "unreachable server",
	WrongCredentials:  "wrong credentials",
	MalformedResponse: "malformed response",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return "unknown error kind"
}

func (k ErrorKind) Error() string {
	return "etapi: " + k.String()
}

// Errors raised before any request leaves the client.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrEmptyID         = errors.New("entity id is empty")
	ErrNoBaseURL       = errors.New("base url not set")
	ErrUnknownToken    = errors.New("unknown wire token")
	ErrMissingField    = errors.New("missing required field")
)
