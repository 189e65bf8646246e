package etapictl

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	etapi "github.com/etapi-go/etapi.go"
	"github.com/etapi-go/etapi.go/internal/fakeetapi"
	"github.com/etapi-go/etapi.go/pkg/constants"
	"github.com/etapi-go/etapi.go/pkg/models"
	"github.com/etapi-go/etapi.go/pkg/search"
)

type AppTestSuite struct {
	suite.Suite
	ctx    context.Context
	server *fakeetapi.Server
	out    *bytes.Buffer
	logs   *bytes.Buffer
	app    *App
}

func TestAppTestSuite(t *testing.T) {
	suite.Run(t, new(AppTestSuite))
}

func (s *AppTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.server = fakeetapi.NewServer("pw")
	s.server.Start()
	s.out = new(bytes.Buffer)
	s.logs = new(bytes.Buffer)

	cfg := NewConfig()
	cfg.URL = s.server.URL()
	cfg.Token = s.server.Token
	cfg.Verbose = true

	app, err := NewApp(cfg, s.out, s.logs)
	s.Require().NoError(err)
	s.app = app
}

func (s *AppTestSuite) TearDownTest() {
	s.Require().NoError(s.app.Close())
	s.server.Close()
}

func (s *AppTestSuite) TestLogin() {
	s.app.Config.Token = ""
	s.Require().NoError(s.app.Login(s.ctx, "pw"))
	s.Equal(s.server.Token+"\n", s.out.String())
	s.Equal(s.server.Token, s.app.Config.Token)
	s.NotContains(s.logs.String(), s.server.Token)

	err := s.app.Login(s.ctx, "wrong")
	s.ErrorIs(err, etapi.ErrWrongCredentials)
}

func (s *AppTestSuite) TestLogsCarryRunID() {
	s.Require().NoError(s.app.Info(s.ctx))
	s.Contains(s.logs.String(), `"run":"`+s.app.RunID+`"`)
	s.Contains(s.out.String(), "version")
}

func (s *AppTestSuite) TestCreateGetPatchDelete() {
	s.app.JSON = true
	s.Require().NoError(s.app.Create(s.ctx, CreateArgs{
		Parent:  "root",
		Title:   "script",
		Type:    "code",
		Mime:    "application/javascript",
		Content: "console.log(1)",
		Prefix:  "js",
	}))
	var created models.CreateNoteResponse
	s.Require().NoError(json.Unmarshal(s.out.Bytes(), &created))
	s.Equal(models.NoteTypeCode, created.Note.Type)
	s.Equal("js", created.Branch.Prefix)
	id := created.Note.NoteID.String()

	s.out.Reset()
	s.app.JSON = false
	s.Require().NoError(s.app.Patch(s.ctx, PatchArgs{ID: id, Title: "renamed"}))
	s.Contains(s.out.String(), "renamed")

	s.out.Reset()
	s.Require().NoError(s.app.Get(s.ctx, id))
	s.Contains(s.out.String(), "renamed")
	s.Contains(s.out.String(), "code")

	s.Require().NoError(s.app.Delete(s.ctx, id))
	s.ErrorIs(s.app.Get(s.ctx, id), etapi.ErrWrongCredentials)
}

func (s *AppTestSuite) TestCreateRejectsUnknownType() {
	err := s.app.Create(s.ctx, CreateArgs{Parent: "root", Title: "x", Type: "spreadsheet"})
	s.ErrorIs(err, constants.ErrUnknownToken)
}

func (s *AppTestSuite) TestSearch() {
	for _, title := range []string{"meeting b", "meeting a", "errand"} {
		s.Require().NoError(s.app.Create(s.ctx, CreateArgs{Parent: "root", Title: title, Type: "text"}))
	}
	s.out.Reset()

	s.Require().NoError(s.app.Search(s.ctx, SearchArgs{Query: "meeting", OrderBy: "title"}))
	lines := strings.Split(strings.TrimSpace(s.out.String()), "\n")
	s.Require().Len(lines, 2)
	s.Contains(lines[0], "meeting a")
	s.Contains(lines[1], "meeting b")

	last, _ := s.server.LastRequest()
	s.Contains(last.RawQuery, "orderDirection=asc")
}

func (s *AppTestSuite) TestSaveTokenKeepsOtherSettings() {
	path := filepath.Join(s.T().TempDir(), "config.yaml")
	s.Require().NoError(WriteConfigFile(path, &Config{URL: "http://saved", SearchVariant: "body"}))

	s.app.Config.Token = "fresh"
	s.Require().NoError(s.app.SaveToken(path))

	stored, err := ReadConfigFile(path)
	s.Require().NoError(err)
	s.Equal("fresh", stored.Token)
	s.Equal("http://saved", stored.URL)
	s.Equal("body", stored.SearchVariant)
}

func TestSearchArgsOptions(t *testing.T) {
	limit := uint(5)
	opts, err := SearchArgs{
		Query:          "x",
		Fast:           true,
		Ancestor:       "root",
		Depth:          "eq1",
		OrderBy:        "title",
		OrderDirection: "dec",
		Limit:          &limit,
	}.Options()
	require.NoError(t, err)
	assert.Equal(t,
		`search="x"&fastSearch=true&ancestorNoteId=root&ancestorDepth=eq1&orderBy=title&orderDirection=dec&limit=5`,
		opts.QueryString())

	_, err = SearchArgs{Query: "x", Depth: "zz9"}.Options()
	assert.ErrorIs(t, err, constants.ErrUnknownToken)

	_, err = SearchArgs{Query: "x", OrderBy: "title", OrderDirection: "sideways"}.Options()
	assert.Error(t, err)

	opts, err = SearchArgs{Query: "x"}.Options()
	require.NoError(t, err)
	assert.Equal(t, search.New("x"), opts)
}
