package fakeetapi

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/etapi-go/etapi.go/pkg/models"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s := NewServer("secret")
	s.Start()
	t.Cleanup(s.Close)
	return s
}

func do(t *testing.T, s *Server, method, path, token, body string) (int, string) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, s.URL()+path, r)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(b)
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)

	status, body := do(t, s, http.MethodPost, "/auth/login", "", `{"password":"secret"}`)
	assert.Equal(t, http.StatusCreated, status)
	var resp models.LoginResponse
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	assert.Equal(t, s.Token, resp.AuthToken)
	assert.NotEmpty(t, resp.AuthToken)

	status, _ = do(t, s, http.MethodPost, "/auth/login", "", `{"password":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestRequiresToken(t *testing.T) {
	s := newTestServer(t)

	status, body := do(t, s, http.MethodGet, "/etapi/notes/root", "", "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Contains(t, body, "NOT_AUTHENTICATED")

	status, _ = do(t, s, http.MethodGet, "/etapi/notes/root", "Bearer "+s.Token, "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body = do(t, s, http.MethodGet, "/etapi/notes/root", s.Token, "")
	assert.Equal(t, http.StatusOK, status)
	var root models.Note
	require.NoError(t, json.Unmarshal([]byte(body), &root))
	assert.Equal(t, models.RootNoteID, root.NoteID)
}

func TestCreateGetDelete(t *testing.T) {
	s := newTestServer(t)

	status, body := do(t, s, http.MethodPost, "/etapi/create-note", s.Token,
		`{"parentNoteId":"root","title":"Diagram","type":"mermaid","content":"graph TD"}`)
	require.Equal(t, http.StatusCreated, status)
	var created models.CreateNoteResponse
	require.NoError(t, json.Unmarshal([]byte(body), &created))
	assert.Equal(t, models.NoteTypeMermaid, created.Note.Type)
	assert.Equal(t, "root_"+created.Note.NoteID.String(), created.Branch.BranchID.String())

	root, ok := s.Note(models.RootNoteID)
	require.True(t, ok)
	assert.Contains(t, root.ChildNoteIDs, created.Note.NoteID)

	status, _ = do(t, s, http.MethodGet, "/etapi/branches/"+created.Branch.BranchID.String(), s.Token, "")
	assert.Equal(t, http.StatusOK, status)

	status, _ = do(t, s, http.MethodDelete, "/etapi/notes/"+created.Note.NoteID.String(), s.Token, "")
	assert.Equal(t, http.StatusNoContent, status)

	status, _ = do(t, s, http.MethodGet, "/etapi/notes/"+created.Note.NoteID.String(), s.Token, "")
	assert.Equal(t, http.StatusNotFound, status)
	root, _ = s.Note(models.RootNoteID)
	assert.NotContains(t, root.ChildNoteIDs, created.Note.NoteID)
}

func TestCreateRejectsUnknownParent(t *testing.T) {
	s := newTestServer(t)
	status, body := do(t, s, http.MethodPost, "/etapi/create-note", s.Token,
		`{"parentNoteId":"missing","title":"x","type":"text","content":""}`)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, body, "PARENT_NOTE_NOT_FOUND")
}

func TestSearch(t *testing.T) {
	s := newTestServer(t)
	s.AddNote(models.RootNoteID, models.Note{Title: "beta task", Type: models.NoteTypeText})
	s.AddNote(models.RootNoteID, models.Note{Title: "alpha task", Type: models.NoteTypeText})
	s.AddNote(models.RootNoteID, models.Note{Title: "unrelated", Type: models.NoteTypeText})

	titles := func(body string) []string {
		var resp struct {
			Results []models.Note `json:"results"`
		}
		require.NoError(t, json.Unmarshal([]byte(body), &resp))
		var out []string
		for _, n := range resp.Results {
			out = append(out, n.Title)
		}
		return out
	}

	status, body := do(t, s, http.MethodGet, `/etapi/notes?search=%22task%22`, s.Token, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []string{"beta task", "alpha task"}, titles(body))

	_, body = do(t, s, http.MethodGet, `/etapi/notes?search=%22task%22&orderBy=title&orderDirection=dec&limit=1`, s.Token, "")
	assert.Equal(t, []string{"beta task"}, titles(body))

	_, body = do(t, s, http.MethodPost, "/etapi/notes", s.Token, `{"search":"task","orderBy":"title"}`)
	assert.Equal(t, []string{"alpha task", "beta task"}, titles(body))

	status, _ = do(t, s, http.MethodGet, "/etapi/notes", s.Token, "")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestSearchWithinAncestor(t *testing.T) {
	s := newTestServer(t)
	folder := s.AddNote(models.RootNoteID, models.Note{Title: "folder", Type: models.NoteTypeBook})
	s.AddNote(folder.NoteID, models.Note{Title: "inside", Type: models.NoteTypeText})
	s.AddNote(models.RootNoteID, models.Note{Title: "outside", Type: models.NoteTypeText})

	_, body := do(t, s, http.MethodGet, "/etapi/notes?search=%22side%22&ancestorNoteId="+folder.NoteID.String(), s.Token, "")
	assert.Contains(t, body, `"inside"`)
	assert.NotContains(t, body, `"outside"`)
}

func TestAttributes(t *testing.T) {
	s := newTestServer(t)

	status, body := do(t, s, http.MethodPost, "/etapi/attributes", s.Token,
		`{"noteId":"root","type":"label","name":"todo","value":"soon"}`)
	require.Equal(t, http.StatusCreated, status)
	var a models.Attribute
	require.NoError(t, json.Unmarshal([]byte(body), &a))
	require.False(t, a.AttributeID.IsZero())

	root, _ := s.Note(models.RootNoteID)
	require.Len(t, root.Attributes, 1)

	status, _ = do(t, s, http.MethodGet, "/etapi/attributes/"+a.AttributeID.String(), s.Token, "")
	assert.Equal(t, http.StatusOK, status)

	status, _ = do(t, s, http.MethodDelete, "/etapi/attributes/"+a.AttributeID.String(), s.Token, "")
	assert.Equal(t, http.StatusNoContent, status)
	root, _ = s.Note(models.RootNoteID)
	assert.Empty(t, root.Attributes)
}

func TestFailureInjection(t *testing.T) {
	s := newTestServer(t)
	route := Route{Method: http.MethodGet, Path: "/etapi/notes/{noteId}"}

	s.Fail(route, FailureConfig{Type: FailureStatus, Status: http.StatusTeapot, Body: "short and stout"})
	status, body := do(t, s, http.MethodGet, "/etapi/notes/root", s.Token, "")
	assert.Equal(t, http.StatusTeapot, status)
	assert.Equal(t, "short and stout", body)

	s.Fail(route, FailureConfig{Type: FailureMalformedBody, Body: "{not json"})
	status, body = do(t, s, http.MethodGet, "/etapi/notes/root", s.Token, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "{not json", body)

	s.Fail(route, FailureConfig{Type: FailureInvalidUTF8})
	_, body = do(t, s, http.MethodGet, "/etapi/notes/root", s.Token, "")
	assert.Equal(t, "\xff\xfe\xfd", body)

	s.Fail(route, FailureConfig{Type: FailureDropConnection})
	req, err := http.NewRequest(http.MethodGet, s.URL()+"/etapi/notes/root", nil)
	require.NoError(t, err)
	_, err = http.DefaultClient.Do(req)
	assert.Error(t, err)
}

func TestRecordsRequests(t *testing.T) {
	s := newTestServer(t)
	do(t, s, http.MethodGet, "/etapi/notes?search=%22x%22", s.Token, "")

	last, ok := s.LastRequest()
	require.True(t, ok)
	assert.Equal(t, http.MethodGet, last.Method)
	assert.Equal(t, "/etapi/notes", last.Path)
	assert.Equal(t, "search=%22x%22", last.RawQuery)
	assert.Equal(t, s.Token, last.Authorization)
	assert.Len(t, s.Requests(), 1)
}
