package models

import (
	"encoding/json"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Note is the server's view of a note. The parent/child id lists are
// projections of the branch graph; they are never recomputed locally.
type Note struct {
	NoteID          EntityID      `json:"noteId"`
	Title           string        `json:"title"`
	Type            NoteType      `json:"type"`
	Mime            string        `json:"mime"`
	IsProtected     bool          `json:"isProtected"`
	Attributes      []Attribute   `json:"attributes"`
	ParentNoteIDs   []EntityID    `json:"parentNoteIds"`
	ChildNoteIDs    []EntityID    `json:"childNoteIds"`
	ParentBranchIDs []EntityID    `json:"parentBranchIds"`
	ChildBranchIDs  []EntityID    `json:"childBranchIds"`
	DateCreated     LocalDateTime `json:"dateCreated"`
	DateModified    LocalDateTime `json:"dateModified"`
	UTCDateCreated  UTCDateTime   `json:"utcDateCreated"`
	UTCDateModified UTCDateTime   `json:"utcDateModified"`
}

// Validate checks the fields a patch needs to be routed and accepted.
func (n Note) Validate() error {
	return validation.ValidateStruct(&n,
		validation.Field(&n.NoteID, validation.Required),
		validation.Field(&n.Type, validation.Required),
	)
}

// Labels returns the owned attributes of type label.
func (n Note) Labels() []Attribute {
	return n.attributesOf(AttributeTypeLabel)
}

// Relations returns the owned attributes of type relation.
func (n Note) Relations() []Attribute {
	return n.attributesOf(AttributeTypeRelation)
}

func (n Note) attributesOf(t AttributeType) []Attribute {
	var out []Attribute
	for _, a := range n.Attributes {
		if a.Type != nil && *a.Type == t {
			out = append(out, a)
		}
	}
	return out
}

func (n *Note) UnmarshalJSON(data []byte) error {
	if err := requireKeys(data, "note", "noteId", "title", "type"); err != nil {
		return err
	}
	type alias Note
	return json.Unmarshal(data, (*alias)(n))
}
