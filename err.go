package etapi

import (
	"github.com/etapi-go/etapi.go/pkg/connection"
	"github.com/etapi-go/etapi.go/pkg/constants"
)

// ErrorKind is the closed set of transport failure kinds.
type ErrorKind = constants.ErrorKind

// RequestError carries the kind, the operation and, when it could be read,
// the raw response body.
type RequestError = connection.RequestError

// The three failure kinds. They are errors themselves, for use with errors.Is.
const (
	ErrUnreachableServer = constants.UnreachableServer
	ErrWrongCredentials  = constants.WrongCredentials
	ErrMalformedResponse = constants.MalformedResponse
)

// ErrInvalidArgument is wrapped by errors for arguments rejected before any
// request is sent.
var ErrInvalidArgument = constants.ErrInvalidArgument

// KindOf returns the failure kind of err, or false if err did not come
// from a round trip.
func KindOf(err error) (ErrorKind, bool) {
	return connection.KindOf(err)
}
