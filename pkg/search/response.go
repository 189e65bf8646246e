package search

import (
	"encoding/json"
	"fmt"

	"github.com/etapi-go/etapi.go/pkg/constants"
	"github.com/etapi-go/etapi.go/pkg/models"
)

// Response holds the matching notes in the order the server returned them.
// DebugInfo is only populated when Options.Debug was set.
type Response struct {
	Results   []models.Note   `json:"results"`
	DebugInfo json.RawMessage `json:"debugInfo,omitempty"`
}

func (r *Response) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	raw, ok := fields["results"]
	if !ok || string(raw) == "null" {
		return fmt.Errorf("%w: search response.results", constants.ErrMissingField)
	}
	type alias Response
	return json.Unmarshal(data, (*alias)(r))
}

// NoteIDs returns the ids of the results, keeping their order.
func (r Response) NoteIDs() []models.EntityID {
	ids := make([]models.EntityID, 0, len(r.Results))
	for _, n := range r.Results {
		ids = append(ids, n.NoteID)
	}
	return ids
}
