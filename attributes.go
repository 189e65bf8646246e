package etapi

import (
	"context"
	"net/http"

	"github.com/etapi-go/etapi.go/pkg/connection"
	"github.com/etapi-go/etapi.go/pkg/constants"
	"github.com/etapi-go/etapi.go/pkg/models"
)

func (s *Session) GetAttribute(ctx context.Context, id models.EntityID) (*models.Attribute, error) {
	const op = "getAttribute"
	if err := id.Validate(); err != nil {
		return nil, invalidArgument(op, err)
	}

	var attr models.Attribute
	err := s.conn.Send(ctx, connection.Request{
		Op:     op,
		Method: http.MethodGet,
		Path:   constants.AttributesPath + "/" + id.String(),
	}, &attr)
	if err != nil {
		return nil, err
	}
	return &attr, nil
}

// CreateAttribute adds a label or relation to attr.NoteID and returns it with
// the id the server assigned.
func (s *Session) CreateAttribute(ctx context.Context, attr models.Attribute) (*models.Attribute, error) {
	const op = "createAttribute"
	if err := attr.Validate(); err != nil {
		return nil, invalidArgument(op, err)
	}

	var created models.Attribute
	err := s.conn.Send(ctx, connection.Request{
		Op:     op,
		Method: http.MethodPost,
		Path:   constants.AttributesPath,
		Body:   attr,
	}, &created)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// DeleteAttribute follows the same success rule as DeleteNote.
func (s *Session) DeleteAttribute(ctx context.Context, id models.EntityID) error {
	const op = "deleteAttribute"
	if err := id.Validate(); err != nil {
		return invalidArgument(op, err)
	}

	return s.conn.Send(ctx, connection.Request{
		Op:     op,
		Method: http.MethodDelete,
		Path:   constants.AttributesPath + "/" + id.String(),
	}, nil)
}

func (s *Session) GetBranch(ctx context.Context, id models.EntityID) (*models.Branch, error) {
	const op = "getBranch"
	if err := id.Validate(); err != nil {
		return nil, invalidArgument(op, err)
	}

	var branch models.Branch
	err := s.conn.Send(ctx, connection.Request{
		Op:     op,
		Method: http.MethodGet,
		Path:   constants.BranchesPath + "/" + id.String(),
	}, &branch)
	if err != nil {
		return nil, err
	}
	return &branch, nil
}
