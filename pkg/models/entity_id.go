package models

import (
	"fmt"

	"github.com/etapi-go/etapi.go/internal/rand"
	"github.com/etapi-go/etapi.go/pkg/constants"
)

// GeneratedIDLength is the length of identifiers produced by NewEntityID.
const GeneratedIDLength = 12

// EntityID names a note, branch or attribute. Existence and uniqueness are
// the server's business; locally an id is only checked for shape.
type EntityID string

// Well-known note ids that always exist on the server.
const (
	RootNoteID   EntityID = "root"
	HiddenNoteID EntityID = "_hidden"
)

// NewEntityID returns a random base62 id suitable for a client-assigned note.
func NewEntityID() EntityID {
	return EntityID(rand.String(GeneratedIDLength))
}

// ParseEntityID validates s and returns it as an EntityID.
func ParseEntityID(s string) (EntityID, error) {
	id := EntityID(s)
	if err := id.Validate(); err != nil {
		return "", err
	}
	return id, nil
}

// Validate accepts non-empty ids made of ASCII letters, digits and '_'.
// Branch ids use the "parent_child" form, so '_' is allowed anywhere.
func (id EntityID) Validate() error {
	if id == "" {
		return constants.ErrEmptyID
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
		default:
			return fmt.Errorf("invalid character %q in entity id %q", r, string(id))
		}
	}
	return nil
}

func (id EntityID) String() string {
	return string(id)
}

func (id EntityID) IsZero() bool {
	return id == ""
}
