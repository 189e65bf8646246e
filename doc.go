// The [etapi] package is a client for a note server's external REST API (ETAPI).
//
// # Sessions
//
// Every call goes through a [Session], which holds the server's base URL and an
// auth token. [Login] exchanges a password for a token at /auth/login;
// [FromToken] wraps a token issued earlier (e.g. from the server's options
// page) without touching the network. [FromEnv] does the same with
// ETAPI_URL and ETAPI_TOKEN.
//
// The token is attached verbatim as the Authorization header of every
// request. It is never refreshed: an expired token shows up as
// [ErrWrongCredentials] on the next call and the caller logs in again.
//
// # Operations
//
// [Session.CreateNote], [Session.GetNote], [Session.PatchNote],
// [Session.DeleteNote] and [Session.SearchNotes] cover notes. Branches and
// attributes can be read, and attributes created and deleted, with the
// corresponding methods. Each call is exactly one round trip; nothing is
// retried or cached.
//
// # Errors
//
// A call that reaches the transport fails with exactly one of three kinds:
//
//   - [ErrUnreachableServer]: no HTTP status was obtained.
//   - [ErrWrongCredentials]: the server answered with any non-2xx status.
//     This includes "not found" and server errors, not only auth failures.
//   - [ErrMalformedResponse]: a 2xx answer whose body was not text or did not
//     match the expected schema. The raw body is available through
//     [RequestError.RawBody] for diagnostics.
//
// Use [errors.Is] or [KindOf] to branch on the kind. Arguments that fail local
// validation (an empty id, a note without a title) are rejected before any
// request is sent with an error wrapping [ErrInvalidArgument].
//
// # Data Models
//
// Notes, branches and attributes live in [github.com/etapi-go/etapi.go/pkg/models].
// Closed enumerations (note type, attribute type) map to their wire tokens
// through explicit tables and unknown tokens fail decoding.
//
// # Search
//
// [github.com/etapi-go/etapi.go/pkg/search] builds search options and encodes
// them. The query-string form is used by default; [WithSearchVariant] selects
// the JSON-body form older servers accept.
package etapi
