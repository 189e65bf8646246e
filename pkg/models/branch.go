package models

import (
	"encoding/json"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Branch places a note at one position under one parent. A note cloned into
// several places has one branch per place.
type Branch struct {
	BranchID        EntityID    `json:"branchId"`
	NoteID          EntityID    `json:"noteId"`
	ParentNoteID    EntityID    `json:"parentNoteId"`
	Prefix          string      `json:"prefix"`
	NotePosition    int         `json:"notePosition"`
	IsExpanded      bool        `json:"isExpanded"`
	UTCDateModified UTCDateTime `json:"utcDateModified,omitempty"`
}

func (b Branch) Validate() error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.BranchID, validation.Required),
		validation.Field(&b.NoteID, validation.Required),
		validation.Field(&b.ParentNoteID, validation.Required),
		validation.Field(&b.NotePosition, validation.Min(0)),
	)
}

func (b *Branch) UnmarshalJSON(data []byte) error {
	if err := requireKeys(data, "branch", "branchId", "noteId", "parentNoteId"); err != nil {
		return err
	}
	type alias Branch
	return json.Unmarshal(data, (*alias)(b))
}
