package etapi

import (
	"context"
	"net/http"

	"github.com/etapi-go/etapi.go/pkg/connection"
	"github.com/etapi-go/etapi.go/pkg/constants"
	"github.com/etapi-go/etapi.go/pkg/models"
	"github.com/etapi-go/etapi.go/pkg/search"
)

// Session is an authenticated handle on one server. Its token is fixed at
// construction, so a Session may be shared between goroutines as long as its
// HTTP client allows concurrent use (the default one does).
type Session struct {
	conn          connection.Connection
	searchVariant search.Variant
}

// Login posts password to the server's login endpoint and returns a Session
// carrying the issued token.
//
// A non-2xx answer fails with ErrWrongCredentials, an unreachable server
// with ErrUnreachableServer, and a 2xx answer without a non-empty authToken
// with ErrMalformedResponse.
func Login(ctx context.Context, password, baseURL string, opts ...Option) (*Session, error) {
	cfg := newConfig(opts)
	anonymous := newConnection("", baseURL, cfg)

	var resp models.LoginResponse
	err := anonymous.Send(ctx, connection.Request{
		Op:     "login",
		Method: http.MethodPost,
		Path:   constants.LoginPath,
		Body:   models.LoginRequest{Password: password},
	}, &resp)
	if err != nil {
		return nil, err
	}

	return &Session{
		conn:          anonymous.WithToken(resp.AuthToken),
		searchVariant: cfg.searchVariant,
	}, nil
}

// FromToken returns a Session using a token issued earlier. No request is
// made; an invalid token or base URL surfaces on the first call.
func FromToken(token, baseURL string, opts ...Option) *Session {
	cfg := newConfig(opts)
	return &Session{conn: newConnection(token, baseURL, cfg), searchVariant: cfg.searchVariant}
}

// FromEnv is FromToken with the token and base URL read from ETAPI_TOKEN and
// ETAPI_URL. The URL defaults to a local server.
func FromEnv(opts ...Option) *Session {
	return FromToken(
		GetEnvOrDefault(constants.EnvToken, ""),
		GetEnvOrDefault(constants.EnvURL, constants.DefaultServerURL),
		opts...,
	)
}

func newConnection(token, baseURL string, cfg config) *connection.HTTPConnection {
	conn := connection.NewHTTPConnection(connection.NewConnectionParams{
		BaseURL:    baseURL,
		Token:      token,
		HTTPClient: cfg.httpClient,
		Logger:     cfg.logger,
	})
	if cfg.timeout > 0 {
		if cfg.httpClient != nil {
			// Copy so the caller's client keeps its own timeout.
			client := *cfg.httpClient
			conn.SetHTTPClient(&client)
		}
		conn.SetTimeout(cfg.timeout)
	}

	return conn
}

// Token returns the token attached to every request.
func (s *Session) Token() string {
	return s.conn.Token()
}

func (s *Session) BaseURL() string {
	return s.conn.BaseURL()
}

// AppInfo fetches the server's version information. It is the cheapest way
// to check that the token is accepted.
func (s *Session) AppInfo(ctx context.Context) (*models.AppInfo, error) {
	var info models.AppInfo
	err := s.conn.Send(ctx, connection.Request{
		Op:     "appInfo",
		Method: http.MethodGet,
		Path:   constants.AppInfoPath,
	}, &info)
	if err != nil {
		return nil, err
	}
	return &info, nil
}
