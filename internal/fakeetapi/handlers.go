package fakeetapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/etapi-go/etapi.go/pkg/models"
)

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}
	if req.Password != s.Password {
		writeError(w, http.StatusUnauthorized, "WRONG_PASSWORD", "Wrong password.")
		return
	}
	s.mu.Lock()
	token := s.Token
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, models.LoginResponse{AuthToken: token})
}

func (s *Server) handleAppInfo(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, models.AppInfo{
		AppVersion:             "0.63.7",
		DBVersion:              228,
		SyncVersion:            32,
		BuildDate:              "2024-01-01T00:00:00Z",
		BuildRevision:          "fakeetapi",
		DataDirectory:          "/tmp/fakeetapi",
		ClipperProtocolVersion: "1.0",
		UTCDateTime:            models.NewUTCDateTime(time.Now()),
	})
}

func (s *Server) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	var req models.CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "PROPERTY_VALIDATION_ERROR", err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.notes[req.ParentNoteID]; !ok {
		writeError(w, http.StatusNotFound, "PARENT_NOTE_NOT_FOUND", "Parent note '"+req.ParentNoteID.String()+"' not found.")
		return
	}
	if !req.NoteID.IsZero() {
		if _, exists := s.notes[req.NoteID]; exists {
			writeError(w, http.StatusBadRequest, "NOTE_ALREADY_EXISTS", "Note '"+req.NoteID.String()+"' already exists.")
			return
		}
	}

	mime := req.Mime
	if mime == "" {
		mime = defaultMime(req.Type)
	}
	note := &models.Note{
		NoteID: req.NoteID,
		Title:  req.Title,
		Type:   req.Type,
		Mime:   mime,
	}
	branch := s.insertNote(req.ParentNoteID, note, derefString(req.Prefix), req.NotePosition, req.IsExpanded)
	writeJSON(w, http.StatusCreated, models.CreateNoteResponse{Note: *note, Branch: branch})
}

// insertNote stores n as a child of parent and returns the new branch.
// Callers hold s.mu.
func (s *Server) insertNote(parent models.EntityID, n *models.Note, prefix string, position *int, expanded bool) models.Branch {
	now := time.Now()
	if n.NoteID.IsZero() {
		n.NoteID = newID()
	}
	n.Attributes = []models.Attribute{}
	n.ChildNoteIDs = []models.EntityID{}
	n.ChildBranchIDs = []models.EntityID{}
	n.DateCreated = localDateTime(now)
	n.DateModified = n.DateCreated
	n.UTCDateCreated = models.NewUTCDateTime(now)
	n.UTCDateModified = n.UTCDateCreated

	branch := models.Branch{
		BranchID:        models.EntityID(parent.String() + "_" + n.NoteID.String()),
		NoteID:          n.NoteID,
		ParentNoteID:    parent,
		Prefix:          prefix,
		IsExpanded:      expanded,
		UTCDateModified: n.UTCDateCreated,
	}
	p := s.notes[parent]
	if position != nil {
		branch.NotePosition = *position
	} else {
		branch.NotePosition = (len(p.ChildNoteIDs) + 1) * 10
	}

	n.ParentNoteIDs = []models.EntityID{parent}
	n.ParentBranchIDs = []models.EntityID{branch.BranchID}
	p.ChildNoteIDs = append(p.ChildNoteIDs, n.NoteID)
	p.ChildBranchIDs = append(p.ChildBranchIDs, branch.BranchID)

	s.notes[n.NoteID] = n
	s.order = append(s.order, n.NoteID)
	s.branches[branch.BranchID] = &branch
	return branch
}

func (s *Server) handleGetNote(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.lookupNote(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, n)
}

func (s *Server) handlePatchNote(w http.ResponseWriter, r *http.Request) {
	var patch struct {
		Title *string          `json:"title"`
		Type  *models.NoteType `json:"type"`
		Mime  *string          `json:"mime"`
	}
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.lookupNote(w, r)
	if !ok {
		return
	}
	if patch.Title != nil {
		n.Title = *patch.Title
	}
	if patch.Type != nil {
		n.Type = *patch.Type
	}
	if patch.Mime != nil {
		n.Mime = *patch.Mime
	}
	now := time.Now()
	n.DateModified = localDateTime(now)
	n.UTCDateModified = models.NewUTCDateTime(now)
	writeJSON(w, http.StatusOK, n)
}

func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.lookupNote(w, r)
	if !ok {
		return
	}
	s.deleteSubtree(n.NoteID)
	w.WriteHeader(http.StatusNoContent)
}

// deleteSubtree removes id, its descendants, their branches and their
// attributes. Callers hold s.mu.
func (s *Server) deleteSubtree(id models.EntityID) {
	n, ok := s.notes[id]
	if !ok {
		return
	}
	for _, child := range slices.Clone(n.ChildNoteIDs) {
		s.deleteSubtree(child)
	}
	for _, parent := range n.ParentNoteIDs {
		if p, ok := s.notes[parent]; ok {
			p.ChildNoteIDs = slices.DeleteFunc(p.ChildNoteIDs, func(c models.EntityID) bool { return c == id })
			p.ChildBranchIDs = slices.DeleteFunc(p.ChildBranchIDs, func(b models.EntityID) bool {
				return s.branches[b] != nil && s.branches[b].NoteID == id
			})
		}
	}
	for _, b := range n.ParentBranchIDs {
		delete(s.branches, b)
	}
	for _, a := range n.Attributes {
		delete(s.attributes, a.AttributeID)
	}
	delete(s.notes, id)
	s.order = slices.DeleteFunc(s.order, func(o models.EntityID) bool { return o == id })
}

// lookupNote resolves {noteId} or writes a 404. Callers hold s.mu.
func (s *Server) lookupNote(w http.ResponseWriter, r *http.Request) (*models.Note, bool) {
	id := models.EntityID(r.PathValue("noteId"))
	n, ok := s.notes[id]
	if !ok {
		writeError(w, http.StatusNotFound, "NOTE_NOT_FOUND", "Note '"+id.String()+"' not found.")
		return nil, false
	}
	return n, true
}

func (s *Server) handleGetBranch(w http.ResponseWriter, r *http.Request) {
	id := models.EntityID(r.PathValue("branchId"))
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.branches[id]
	if !ok {
		writeError(w, http.StatusNotFound, "BRANCH_NOT_FOUND", "Branch '"+id.String()+"' not found.")
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (s *Server) handleCreateAttribute(w http.ResponseWriter, r *http.Request) {
	var a models.Attribute
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}
	if err := a.Validate(); err != nil || a.Type == nil {
		writeError(w, http.StatusBadRequest, "PROPERTY_VALIDATION_ERROR", "invalid attribute")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.notes[a.NoteID]
	if !ok {
		writeError(w, http.StatusNotFound, "NOTE_NOT_FOUND", "Note '"+a.NoteID.String()+"' not found.")
		return
	}
	if a.AttributeID.IsZero() {
		a.AttributeID = newID()
	}
	a.UTCDateModified = models.NewUTCDateTime(time.Now())
	n.Attributes = append(n.Attributes, a)
	s.attributes[a.AttributeID] = &a
	writeJSON(w, http.StatusCreated, a)
}

func (s *Server) handleGetAttribute(w http.ResponseWriter, r *http.Request) {
	id := models.EntityID(r.PathValue("attributeId"))
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.attributes[id]
	if !ok {
		writeError(w, http.StatusNotFound, "ATTRIBUTE_NOT_FOUND", "Attribute '"+id.String()+"' not found.")
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleDeleteAttribute(w http.ResponseWriter, r *http.Request) {
	id := models.EntityID(r.PathValue("attributeId"))
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.attributes[id]
	if !ok {
		writeError(w, http.StatusNotFound, "ATTRIBUTE_NOT_FOUND", "Attribute '"+id.String()+"' not found.")
		return
	}
	if n, ok := s.notes[a.NoteID]; ok {
		n.Attributes = slices.DeleteFunc(n.Attributes, func(x models.Attribute) bool { return x.AttributeID == id })
	}
	delete(s.attributes, id)
	w.WriteHeader(http.StatusNoContent)
}

// searchParams mirrors both search encodings.
type searchParams struct {
	Search               string          `json:"search"`
	FastSearch           bool            `json:"fastSearch"`
	IncludeArchivedNotes bool            `json:"includeArchivedNotes"`
	AncestorNoteID       models.EntityID `json:"ancestorNoteId"`
	AncestorDepth        string          `json:"ancestorDepth"`
	OrderBy              string          `json:"orderBy"`
	OrderDirection       string          `json:"orderDirection"`
	Limit                *int            `json:"limit"`
	Debug                bool            `json:"debug"`
}

func (s *Server) handleSearchQuery(w http.ResponseWriter, r *http.Request) {
	p, err := searchParamsFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "SEARCH_QUERY_PARAM_MANDATORY", err.Error())
		return
	}
	s.search(w, p)
}

func (s *Server) handleSearchBody(w http.ResponseWriter, r *http.Request) {
	var p searchParams
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}
	s.search(w, p)
}

var errMissingSearch = errors.New("'search' query parameter is mandatory")

func searchParamsFromQuery(q url.Values) (searchParams, error) {
	if !q.Has("search") {
		return searchParams{}, errMissingSearch
	}
	p := searchParams{
		Search:               strings.Trim(q.Get("search"), `"`),
		FastSearch:           q.Get("fastSearch") == "true",
		IncludeArchivedNotes: q.Get("includeArchivedNotes") == "true",
		AncestorNoteID:       models.EntityID(q.Get("ancestorNoteId")),
		AncestorDepth:        q.Get("ancestorDepth"),
		OrderBy:              q.Get("orderBy"),
		OrderDirection:       q.Get("orderDirection"),
		Debug:                q.Get("debug") == "true",
	}
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return searchParams{}, err
		}
		p.Limit = &n
	}
	return p, nil
}

// search matches notes whose title contains the search text, ignoring
// case. The root note never matches.
func (s *Server) search(w http.ResponseWriter, p searchParams) {
	s.mu.Lock()
	defer s.mu.Unlock()

	needle := strings.ToLower(p.Search)
	results := []models.Note{}
	for _, id := range s.order {
		n := s.notes[id]
		if !strings.Contains(strings.ToLower(n.Title), needle) {
			continue
		}
		if !p.AncestorNoteID.IsZero() && !s.isDescendant(id, p.AncestorNoteID) {
			continue
		}
		results = append(results, *n)
	}

	if p.OrderBy == "title" {
		slices.SortStableFunc(results, func(a, b models.Note) int { return strings.Compare(a.Title, b.Title) })
	}
	if p.OrderDirection == "dec" {
		slices.Reverse(results)
	}
	if p.Limit != nil && *p.Limit >= 0 && *p.Limit < len(results) {
		results = results[:*p.Limit]
	}

	resp := map[string]any{"results": results}
	if p.Debug {
		resp["debugInfo"] = map[string]any{"search": p.Search, "matched": len(results)}
	}
	writeJSON(w, http.StatusOK, resp)
}

// isDescendant reports whether ancestor is a strict ancestor of id.
// Callers hold s.mu.
func (s *Server) isDescendant(id, ancestor models.EntityID) bool {
	seen := map[models.EntityID]bool{}
	queue := slices.Clone(s.notes[id].ParentNoteIDs)
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == ancestor {
			return true
		}
		if seen[cur] {
			continue
		}
		seen[cur] = true
		if n, ok := s.notes[cur]; ok {
			queue = append(queue, n.ParentNoteIDs...)
		}
	}
	return false
}

func defaultMime(t models.NoteType) string {
	switch t {
	case models.NoteTypeCode:
		return "text/plain"
	case models.NoteTypeMermaid:
		return "text/mermaid"
	default:
		return "text/html"
	}
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
