package search

import (
	"bytes"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
)

// Variant selects how a search travels to the server.
type Variant int

const (
	// QueryStringVariant sends GET /etapi/notes?search=...
	QueryStringVariant Variant = iota
	// JSONBodyVariant sends POST /etapi/notes with a JSON body, as older servers expect.
	JSONBodyVariant
)

func (v Variant) String() string {
	switch v {
	case QueryStringVariant:
		return "query"
	case JSONBodyVariant:
		return "body"
	default:
		return "Variant(" + strconv.Itoa(int(v)) + ")"
	}
}

// ParseVariant accepts the names returned by Variant.String.
func ParseVariant(s string) (Variant, bool) {
	switch s {
	case "query", "":
		return QueryStringVariant, true
	case "body":
		return JSONBodyVariant, true
	default:
		return 0, false
	}
}

type param struct {
	key   string
	value string
}

// params lists the fields to send, in wire order. Unset flags and options
// are absent rather than false.
func (o Options) params() []param {
	ps := []param{{"search", `"` + o.Search + `"`}}
	if o.FastSearch {
		ps = append(ps, param{"fastSearch", "true"})
	}
	if o.IncludeArchivedNotes {
		ps = append(ps, param{"includeArchivedNotes", "true"})
	}
	if !o.AncestorNoteID.IsZero() {
		ps = append(ps, param{"ancestorNoteId", o.AncestorNoteID.String()})
	}
	if o.AncestorDepth != nil {
		ps = append(ps, param{"ancestorDepth", o.AncestorDepth.String()})
	}
	if o.OrderBy != "" {
		ps = append(ps, param{"orderBy", o.OrderBy})
	}
	if o.OrderDirection != nil {
		ps = append(ps, param{"orderDirection", o.OrderDirection.String()})
	}
	if o.Limit != nil {
		ps = append(ps, param{"limit", strconv.FormatUint(uint64(*o.Limit), 10)})
	}
	if o.Debug {
		ps = append(ps, param{"debug", "true"})
	}
	return ps
}

// QueryString renders the search as the server's query string, unescaped.
// The result is deterministic: same Options, same string.
func (o Options) QueryString() string {
	return o.join(func(s string) string { return s })
}

// EncodedQueryString is QueryString with each value percent-encoded so it
// can be put on a request line. Field order is unchanged.
func (o Options) EncodedQueryString() string {
	return o.join(url.QueryEscape)
}

func (o Options) join(escape func(string) string) string {
	var sb strings.Builder
	for i, p := range o.params() {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(p.key)
		sb.WriteByte('=')
		sb.WriteString(escape(p.value))
	}
	return sb.String()
}

// MarshalJSON renders the JSON body variant. Keys follow the query-string
// order; the search text is sent as-is since the JSON string already
// delimits it.
func (o Options) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	write := func(key string, value any) error {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return err
		}
		v, err := json.Marshal(value)
		if err != nil {
			return err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
		return nil
	}

	fields := []struct {
		key   string
		value any
		set   bool
	}{
		{"search", o.Search, true},
		{"fastSearch", true, o.FastSearch},
		{"includeArchivedNotes", true, o.IncludeArchivedNotes},
		{"ancestorNoteId", o.AncestorNoteID.String(), !o.AncestorNoteID.IsZero()},
		{"ancestorDepth", depthString(o.AncestorDepth), o.AncestorDepth != nil},
		{"orderBy", o.OrderBy, o.OrderBy != ""},
		{"orderDirection", directionString(o.OrderDirection), o.OrderDirection != nil},
		{"limit", limitValue(o.Limit), o.Limit != nil},
		{"debug", true, o.Debug},
	}
	for _, f := range fields {
		if !f.set {
			continue
		}
		if err := write(f.key, f.value); err != nil {
			return nil, err
		}
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func depthString(d *Depth) string {
	if d == nil {
		return ""
	}
	return d.String()
}

func directionString(d *OrderDirection) string {
	if d == nil {
		return ""
	}
	return d.String()
}

func limitValue(n *uint) uint {
	if n == nil {
		return 0
	}
	return *n
}
