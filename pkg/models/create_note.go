package models

import (
	"encoding/json"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CreateNoteRequest creates a note and the branch placing it under ParentNoteID.
// Optional wire fields are omitted when unset. NoteID is left to the server
// unless the caller assigns one, see WithClientID.
type CreateNoteRequest struct {
	ParentNoteID EntityID `json:"parentNoteId"`
	Title        string   `json:"title"`
	Type         NoteType `json:"type"`
	Mime         string   `json:"mime,omitempty"`
	Content      string   `json:"content"`
	NotePosition *int     `json:"notePosition,omitempty"`
	Prefix       *string  `json:"prefix,omitempty"`
	IsExpanded   bool     `json:"isExpanded"`
	NoteID       EntityID `json:"noteId,omitempty"`
}

func NewCreateNoteRequest(parent EntityID, title string, noteType NoteType, content string) CreateNoteRequest {
	return CreateNoteRequest{
		ParentNoteID: parent,
		Title:        title,
		Type:         noteType,
		Content:      content,
	}
}

// WithClientID assigns a locally generated note id if none is set yet.
func (r CreateNoteRequest) WithClientID() CreateNoteRequest {
	if r.NoteID.IsZero() {
		r.NoteID = NewEntityID()
	}
	return r
}

func (r CreateNoteRequest) WithPosition(position int) CreateNoteRequest {
	r.NotePosition = &position
	return r
}

func (r CreateNoteRequest) WithPrefix(prefix string) CreateNoteRequest {
	r.Prefix = &prefix
	return r
}

func (r CreateNoteRequest) WithMime(mime string) CreateNoteRequest {
	r.Mime = mime
	return r
}

// needsMime reports whether the server insists on an explicit mime type.
func (r CreateNoteRequest) needsMime() bool {
	switch r.Type {
	case NoteTypeCode, NoteTypeFile, NoteTypeImage:
		return true
	default:
		return false
	}
}

func (r CreateNoteRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ParentNoteID, validation.Required),
		validation.Field(&r.Title, validation.Required),
		validation.Field(&r.Type, validation.Required),
		validation.Field(&r.Mime, validation.When(r.needsMime(), validation.Required)),
		validation.Field(&r.NotePosition, validation.Min(0)),
		validation.Field(&r.NoteID, validation.Skip.When(r.NoteID.IsZero())),
	)
}

// CreateNoteResponse pairs the new note with the branch that places it.
type CreateNoteResponse struct {
	Note   Note   `json:"note"`
	Branch Branch `json:"branch"`
}

func (r *CreateNoteResponse) UnmarshalJSON(data []byte) error {
	if err := requireKeys(data, "create note response", "note", "branch"); err != nil {
		return err
	}
	type alias CreateNoteResponse
	return json.Unmarshal(data, (*alias)(r))
}
