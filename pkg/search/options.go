package search

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/etapi-go/etapi.go/pkg/constants"
	"github.com/etapi-go/etapi.go/pkg/models"
)

// Options is a structured note search. Only Search is required; every other
// field is left out of the request when it holds its zero value.
type Options struct {
	// Search is the query text, wrapped in quotes on the wire.
	Search string
	// FastSearch skips the note content scan.
	FastSearch bool
	// IncludeArchivedNotes also matches archived notes.
	IncludeArchivedNotes bool
	// AncestorNoteID restricts results to the subtree below this note.
	AncestorNoteID models.EntityID
	// AncestorDepth bounds how deep below the ancestor a match may be.
	AncestorDepth *Depth
	// OrderBy is a note property or label, e.g. "title" or "#publicationDate".
	OrderBy        string
	OrderDirection *OrderDirection
	Limit          *uint
	// Debug asks the server for a debugInfo block in the response.
	Debug bool
}

// New returns Options searching for query with everything else unset.
func New(query string) Options {
	return Options{Search: query}
}

func (o Options) Fast() Options {
	o.FastSearch = true
	return o
}

func (o Options) WithArchived() Options {
	o.IncludeArchivedNotes = true
	return o
}

// Within scopes the search to the subtree of ancestor. depth may be nil.
func (o Options) Within(ancestor models.EntityID, depth *Depth) Options {
	o.AncestorNoteID = ancestor
	o.AncestorDepth = depth
	return o
}

func (o Options) OrderedBy(field string, direction OrderDirection) Options {
	o.OrderBy = field
	o.OrderDirection = &direction
	return o
}

func (o Options) Limited(n uint) Options {
	o.Limit = &n
	return o
}

func (o Options) WithDebug() Options {
	o.Debug = true
	return o
}

func (o Options) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Search, validation.Required),
		validation.Field(&o.AncestorNoteID, validation.Skip.When(o.AncestorNoteID.IsZero())),
		validation.Field(&o.AncestorDepth, validation.When(o.AncestorNoteID.IsZero(), validation.Nil)),
		validation.Field(&o.OrderDirection),
	)
}

// OrderDirection is the sort direction applied by the server.
type OrderDirection int

const (
	Ascending OrderDirection = iota + 1
	Descending
)

// The descending token is "dec", not "desc". Servers depend on it.
var orderDirectionTokens = map[OrderDirection]string{
	Ascending:  "asc",
	Descending: "dec",
}

func ParseOrderDirection(token string) (OrderDirection, error) {
	for d, t := range orderDirectionTokens {
		if t == token {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: order direction %q", constants.ErrUnknownToken, token)
}

func (d OrderDirection) String() string {
	if token, ok := orderDirectionTokens[d]; ok {
		return token
	}
	return fmt.Sprintf("OrderDirection(%d)", int(d))
}

func (d OrderDirection) Validate() error {
	if _, ok := orderDirectionTokens[d]; !ok {
		return fmt.Errorf("%w: order direction %d", constants.ErrUnknownToken, int(d))
	}
	return nil
}
