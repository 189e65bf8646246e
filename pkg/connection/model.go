package connection

import (
	"errors"
	"fmt"
	"strings"

	"github.com/etapi-go/etapi.go/pkg/constants"
)

// Request describes one call. Op names the client operation for logs and
// errors; Query must already be encoded.
type Request struct {
	Op     string
	Method string
	Path   string
	Query  string
	Body   any
}

// RequestError is a failed round trip, classified into exactly one
// constants.ErrorKind. errors.Is matches it against its kind.
type RequestError struct {
	Kind       constants.ErrorKind
	Op         string
	Method     string
	Path       string
	StatusCode int
	// Body is the response text, nil when it could not be read.
	Body *string
	Err  error
}

func (e *RequestError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s %s: %s", e.Op, e.Method, e.Path, e.Kind)
	if e.StatusCode != 0 {
		fmt.Fprintf(&sb, " (status %d)", e.StatusCode)
	}
	if e.Err != nil {
		fmt.Fprintf(&sb, ": %v", e.Err)
	}
	return sb.String()
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

func (e *RequestError) Is(target error) bool {
	kind, ok := target.(constants.ErrorKind)
	return ok && kind == e.Kind
}

// RawBody returns the response text for diagnostics.
func (e *RequestError) RawBody() (string, bool) {
	if e.Body == nil {
		return "", false
	}
	return *e.Body, true
}

// KindOf reports the kind of a transport failure anywhere in err's chain.
func KindOf(err error) (constants.ErrorKind, bool) {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Kind, true
	}
	return 0, false
}
