// Package search describes note searches and encodes them for the server.
//
// An [Options] value is the structured form of a search. [Options.QueryString]
// renders it for the query-string endpoint (GET /etapi/notes) and
// [Options.MarshalJSON] renders it for the older JSON-body endpoint
// (POST /etapi/notes). Both encodings emit fields in a fixed order and leave
// out unset flags and options entirely instead of writing false or null.
package search
