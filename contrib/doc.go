// Package contrib provides additional tools built on the ETAPI client.
//
// Everything here is outside the core client's compatibility guarantees and
// may change without following semantic versioning.
//
// [github.com/etapi-go/etapi.go/contrib/etapictl] is a command-line client
// for logging in, reading, writing and searching notes.
// [github.com/etapi-go/etapi.go/contrib/testenv] has test helpers that run
// against an in-process fake server or a live one.
package contrib
