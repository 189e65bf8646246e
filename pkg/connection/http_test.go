package connection

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"

	"github.com/etapi-go/etapi.go/pkg/constants"
	"github.com/etapi-go/etapi.go/pkg/logger"
	"github.com/etapi-go/etapi.go/pkg/models"
)

type RoundTripFunc func(req *http.Request) (*http.Response, error)

func (f RoundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// NewTestClient returns *http.Client with Transport replaced to avoid making real calls
func NewTestClient(fn RoundTripFunc) *http.Client {
	return &http.Client{
		Transport: fn,
	}
}

func respond(status int, body string) RoundTripFunc {
	return func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: status,
			Body:       io.NopCloser(strings.NewReader(body)),
			// Must be set to non-nil value or it panics
			Header:  make(http.Header),
			Request: req,
		}, nil
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("connection reset mid-body")
}

type HTTPTestSuite struct {
	suite.Suite
	ctx context.Context
}

func TestHttpTestSuite(t *testing.T) {
	suite.Run(t, new(HTTPTestSuite))
}

func (s *HTTPTestSuite) SetupTest() {
	s.ctx = context.Background()
}

func (s *HTTPTestSuite) newConn(token string, fn RoundTripFunc) *HTTPConnection {
	return NewHTTPConnection(NewConnectionParams{
		BaseURL:    "http://notes.test/",
		Token:      token,
		HTTPClient: NewTestClient(fn),
	})
}

func (s *HTTPTestSuite) TestAttachesTokenVerbatim() {
	var seen *http.Request
	con := s.newConn("abc123", func(req *http.Request) (*http.Response, error) {
		seen = req
		return respond(200, `{"noteId":"root","title":"root","type":"text"}`)(req)
	})

	var note models.Note
	err := con.Send(s.ctx, Request{Op: "getNote", Method: http.MethodGet, Path: "/etapi/notes/root"}, &note)
	s.Require().NoError(err)
	s.Equal("abc123", seen.Header.Get("Authorization"))
	s.Equal("http://notes.test/etapi/notes/root", seen.URL.String())
	s.Empty(seen.Header.Get("Content-Type"))
	s.Equal(models.EntityID("root"), note.NoteID)
}

func (s *HTTPTestSuite) TestNoTokenNoHeader() {
	con := s.newConn("", func(req *http.Request) (*http.Response, error) {
		_, ok := req.Header["Authorization"]
		s.False(ok)
		return respond(200, `{"authToken":"t"}`)(req)
	})

	var resp models.LoginResponse
	err := con.Send(s.ctx, Request{Op: "login", Method: http.MethodPost, Path: "/auth/login", Body: models.LoginRequest{Password: "pw"}}, &resp)
	s.Require().NoError(err)
	s.Equal("t", resp.AuthToken)
}

func (s *HTTPTestSuite) TestEncodesBodyAndQuery() {
	con := s.newConn("tok", func(req *http.Request) (*http.Response, error) {
		s.Equal(http.MethodPost, req.Method)
		s.Equal("application/json", req.Header.Get("Content-Type"))
		s.Equal("a=1&b=2", req.URL.RawQuery)
		data, err := io.ReadAll(req.Body)
		s.Require().NoError(err)
		s.JSONEq(`{"password":"secret"}`, string(data))
		return respond(201, `{}`)(req)
	})

	err := con.Send(s.ctx, Request{Op: "x", Method: http.MethodPost, Path: "/p", Query: "a=1&b=2", Body: models.LoginRequest{Password: "secret"}}, nil)
	s.Require().NoError(err)
}

func (s *HTTPTestSuite) TestNon2xxIsWrongCredentials() {
	for _, status := range []int{301, 400, 401, 403, 404, 500, 503} {
		con := s.newConn("tok", respond(status, `{"status":404,"code":"NOTE_NOT_FOUND","message":"Note 'x' not found"}`))

		var note models.Note
		err := con.Send(s.ctx, Request{Op: "getNote", Method: http.MethodGet, Path: "/etapi/notes/x"}, &note)
		s.Require().Error(err)
		s.ErrorIs(err, constants.WrongCredentials)
		s.NotErrorIs(err, constants.MalformedResponse)

		var reqErr *RequestError
		s.Require().ErrorAs(err, &reqErr)
		s.Equal(status, reqErr.StatusCode)
		s.Equal("getNote", reqErr.Op)
		body, ok := reqErr.RawBody()
		s.True(ok)
		s.Contains(body, "NOTE_NOT_FOUND")
	}
}

func (s *HTTPTestSuite) TestTransportFailureIsUnreachable() {
	con := s.newConn("tok", func(req *http.Request) (*http.Response, error) {
		return nil, errors.New("dial tcp: connection refused")
	})

	err := con.Send(s.ctx, Request{Op: "deleteNote", Method: http.MethodDelete, Path: "/etapi/notes/x"}, nil)
	s.Require().Error(err)
	s.ErrorIs(err, constants.UnreachableServer)

	kind, ok := KindOf(err)
	s.True(ok)
	s.Equal(constants.UnreachableServer, kind)
	s.Contains(err.Error(), "connection refused")
}

func (s *HTTPTestSuite) TestCancelledContextIsUnreachable() {
	con := s.newConn("tok", func(req *http.Request) (*http.Response, error) {
		return nil, req.Context().Err()
	})

	ctx, cancel := context.WithCancel(s.ctx)
	cancel()
	err := con.Send(ctx, Request{Op: "getNote", Method: http.MethodGet, Path: "/etapi/notes/x"}, nil)
	s.ErrorIs(err, constants.UnreachableServer)
	s.ErrorIs(err, context.Canceled)
}

func (s *HTTPTestSuite) TestUndecodableBodyIsMalformed() {
	testcases := []string{
		`<html>502 Bad Gateway</html>`,
		`{"title":"no id","type":"text"}`,
		`{"noteId":"n","title":"t","type":"spreadsheet"}`,
		``,
	}
	for _, body := range testcases {
		con := s.newConn("tok", respond(200, body))

		var note models.Note
		err := con.Send(s.ctx, Request{Op: "getNote", Method: http.MethodGet, Path: "/etapi/notes/n"}, &note)
		s.Require().Error(err, body)
		s.ErrorIs(err, constants.MalformedResponse)

		var reqErr *RequestError
		s.Require().ErrorAs(err, &reqErr)
		raw, ok := reqErr.RawBody()
		s.True(ok)
		s.Equal(body, raw)
	}
}

func (s *HTTPTestSuite) TestUnreadableBodyIsMalformedWithoutBody() {
	readFails := func(req *http.Request) (*http.Response, error) {
		return &http.Response{StatusCode: 200, Body: io.NopCloser(failingReader{}), Header: make(http.Header)}, nil
	}
	notText := respond(200, string([]byte{0xff, 0xfe, 0xfd}))

	for _, fn := range []RoundTripFunc{readFails, notText} {
		con := s.newConn("tok", fn)

		err := con.Send(s.ctx, Request{Op: "deleteNote", Method: http.MethodDelete, Path: "/etapi/notes/n"}, nil)
		s.Require().Error(err)
		s.ErrorIs(err, constants.MalformedResponse)

		var reqErr *RequestError
		s.Require().ErrorAs(err, &reqErr)
		_, ok := reqErr.RawBody()
		s.False(ok)
	}
}

func (s *HTTPTestSuite) TestNilResultAcceptsAnyText() {
	con := s.newConn("tok", respond(204, ""))
	s.NoError(con.Send(s.ctx, Request{Op: "deleteNote", Method: http.MethodDelete, Path: "/etapi/notes/n"}, nil))

	con = s.newConn("tok", respond(200, "not json at all"))
	s.NoError(con.Send(s.ctx, Request{Op: "deleteNote", Method: http.MethodDelete, Path: "/etapi/notes/n"}, nil))
}

func (s *HTTPTestSuite) TestWithTokenCopies() {
	base := s.newConn("", respond(200, "{}"))
	authed := base.WithToken("abc")

	s.Empty(base.Token())
	s.Equal("abc", authed.Token())
	s.Equal(base.BaseURL(), authed.BaseURL())
	s.Equal("http://notes.test", authed.BaseURL())
}

func (s *HTTPTestSuite) TestBaseURLValidation() {
	called := false
	client := NewTestClient(func(req *http.Request) (*http.Response, error) {
		called = true
		return respond(200, "{}")(req)
	})

	con := NewHTTPConnection(NewConnectionParams{HTTPClient: client})
	s.ErrorIs(con.Validate(), constants.ErrNoBaseURL)

	for _, bad := range []string{"notes.example", "ftp://notes.example", "http://", "://x"} {
		con := NewHTTPConnection(NewConnectionParams{BaseURL: bad, HTTPClient: client})
		s.ErrorIs(con.Validate(), constants.ErrInvalidArgument, bad)

		err := con.Send(s.ctx, Request{Op: "getNote", Method: http.MethodGet, Path: "/etapi/notes/root"}, nil)
		s.ErrorIs(err, constants.UnreachableServer, bad)
		s.ErrorIs(err, constants.ErrInvalidArgument, bad)
	}
	s.False(called)
}

func (s *HTTPTestSuite) TestLogsWithoutToken() {
	buf := bytes.NewBuffer(nil)
	l, err := logger.New().FromBuffer(buf).WithLevel(zerolog.DebugLevel).Make()
	s.Require().NoError(err)

	con := NewHTTPConnection(NewConnectionParams{
		BaseURL:    "https://notes.test",
		Token:      "super-secret-token",
		HTTPClient: NewTestClient(respond(200, `{"appVersion":"0.63"}`)),
		Logger:     l,
	})

	var info models.AppInfo
	s.Require().NoError(con.Send(s.ctx, Request{Op: "appInfo", Method: http.MethodGet, Path: "/etapi/app-info"}, &info))

	s.Contains(buf.String(), `"op":"appInfo"`)
	s.Contains(buf.String(), `"status":200`)
	s.NotContains(buf.String(), "super-secret-token")
}
