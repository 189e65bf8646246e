package search

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/etapi-go/etapi.go/pkg/constants"
	"github.com/etapi-go/etapi.go/pkg/models"
)

func TestResponse_keeps_server_order(t *testing.T) {
	body := `{"results":[
		{"noteId":"z","title":"Zeta","type":"text"},
		{"noteId":"a","title":"Alpha","type":"book"},
		{"noteId":"m","title":"Mu","type":"noteMap"}
	],"debugInfo":{"executionTime":3}}`

	var resp Response
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	assert.Equal(t, []models.EntityID{"z", "a", "m"}, resp.NoteIDs())
	assert.JSONEq(t, `{"executionTime":3}`, string(resp.DebugInfo))
}

func TestResponse_failures(t *testing.T) {
	var resp Response
	require.ErrorIs(t, json.Unmarshal([]byte(`{"debugInfo":{}}`), &resp), constants.ErrMissingField)
	require.ErrorIs(t, json.Unmarshal([]byte(`{"results":null}`), &resp), constants.ErrMissingField)
	require.ErrorIs(t, json.Unmarshal([]byte(`{"results":[{"noteId":"a","title":"A","type":"spreadsheet"}]}`), &resp), constants.ErrUnknownToken)
}

func TestResponse_empty(t *testing.T) {
	var resp Response
	require.NoError(t, json.Unmarshal([]byte(`{"results":[]}`), &resp))
	assert.Empty(t, resp.Results)
	assert.Empty(t, resp.NoteIDs())
}
