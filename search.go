package etapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/etapi-go/etapi.go/pkg/connection"
	"github.com/etapi-go/etapi.go/pkg/constants"
	"github.com/etapi-go/etapi.go/pkg/search"
)

// SearchNotes runs a search. Results keep the server's order.
func (s *Session) SearchNotes(ctx context.Context, opts search.Options) (*search.Response, error) {
	const op = "searchNotes"
	if err := opts.Validate(); err != nil {
		return nil, invalidArgument(op, err)
	}

	req := connection.Request{Op: op, Path: constants.NotesPath}
	switch s.searchVariant {
	case search.QueryStringVariant:
		req.Method = http.MethodGet
		req.Query = opts.EncodedQueryString()
	case search.JSONBodyVariant:
		req.Method = http.MethodPost
		req.Body = opts
	default:
		return nil, invalidArgument(op, fmt.Errorf("search variant %s", s.searchVariant))
	}

	var resp search.Response
	if err := s.conn.Send(ctx, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
