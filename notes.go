package etapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/etapi-go/etapi.go/pkg/connection"
	"github.com/etapi-go/etapi.go/pkg/constants"
	"github.com/etapi-go/etapi.go/pkg/models"
)

// CreateNote creates a note and the branch placing it under req.ParentNoteID.
func (s *Session) CreateNote(ctx context.Context, req models.CreateNoteRequest) (*models.CreateNoteResponse, error) {
	const op = "createNote"
	if err := req.Validate(); err != nil {
		return nil, invalidArgument(op, err)
	}

	var resp models.CreateNoteResponse
	err := s.conn.Send(ctx, connection.Request{
		Op:     op,
		Method: http.MethodPost,
		Path:   constants.CreateNotePath,
		Body:   req,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetNote fetches a note by id. A missing note is a non-2xx answer and so
// fails with ErrWrongCredentials.
func (s *Session) GetNote(ctx context.Context, id models.EntityID) (*models.Note, error) {
	const op = "getNote"
	if err := id.Validate(); err != nil {
		return nil, invalidArgument(op, err)
	}

	var note models.Note
	err := s.conn.Send(ctx, connection.Request{
		Op:     op,
		Method: http.MethodGet,
		Path:   notePath(id),
	}, &note)
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// PatchNote sends the whole note to the server, which merges the fields it
// allows to change, and returns the note as stored.
func (s *Session) PatchNote(ctx context.Context, note models.Note) (*models.Note, error) {
	const op = "patchNote"
	if err := note.Validate(); err != nil {
		return nil, invalidArgument(op, err)
	}

	var updated models.Note
	err := s.conn.Send(ctx, connection.Request{
		Op:     op,
		Method: http.MethodPatch,
		Path:   notePath(note.NoteID),
		Body:   note,
	}, &updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteNote deletes a note. Any 2xx answer with a text body counts as
// success; the body itself is not inspected.
func (s *Session) DeleteNote(ctx context.Context, id models.EntityID) error {
	const op = "deleteNote"
	if err := id.Validate(); err != nil {
		return invalidArgument(op, err)
	}

	return s.conn.Send(ctx, connection.Request{
		Op:     op,
		Method: http.MethodDelete,
		Path:   notePath(id),
	}, nil)
}

func notePath(id models.EntityID) string {
	return constants.NotesPath + "/" + id.String()
}

func invalidArgument(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, constants.ErrInvalidArgument, err)
}
