package models

import (
	"encoding/json"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Attribute is a label or relation owned by a note. AttributeID is empty
// until the server assigns one, and Type may be nil on creation payloads
// before the server classifies it.
type Attribute struct {
	AttributeID     EntityID       `json:"attributeId,omitempty"`
	NoteID          EntityID       `json:"noteId"`
	Type            *AttributeType `json:"type,omitempty"`
	Name            string         `json:"name"`
	Value           string         `json:"value"`
	Position        int            `json:"position"`
	IsInheritable   bool           `json:"isInheritable"`
	UTCDateModified UTCDateTime    `json:"utcDateModified,omitempty"`
}

// NewLabel returns a label attribute for noteID.
func NewLabel(noteID EntityID, name, value string) Attribute {
	t := AttributeTypeLabel
	return Attribute{NoteID: noteID, Type: &t, Name: name, Value: value}
}

// NewRelation returns a relation from noteID to targetNoteID.
func NewRelation(noteID EntityID, name string, targetNoteID EntityID) Attribute {
	t := AttributeTypeRelation
	return Attribute{NoteID: noteID, Type: &t, Name: name, Value: targetNoteID.String()}
}

func (a Attribute) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.AttributeID, validation.Skip.When(a.AttributeID.IsZero())),
		validation.Field(&a.NoteID, validation.Required),
		validation.Field(&a.Type),
		validation.Field(&a.Name, validation.Required),
		validation.Field(&a.Position, validation.Min(0)),
	)
}

func (a *Attribute) UnmarshalJSON(data []byte) error {
	if err := requireKeys(data, "attribute", "noteId", "name"); err != nil {
		return err
	}
	type alias Attribute
	return json.Unmarshal(data, (*alias)(a))
}
