package connection

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/etapi-go/etapi.go/internal/codec"
	"github.com/etapi-go/etapi.go/pkg/constants"
	"github.com/etapi-go/etapi.go/pkg/logger"
)

var errInvalidUTF8 = errors.New("response body is not valid UTF-8")

// HTTPConnection sends ETAPI requests and attaches the auth token, when it
// has one, to every request as the literal Authorization header value.
// The token never changes after construction; use WithToken to derive a
// connection with another one.
type HTTPConnection struct {
	baseURL     string
	token       string
	httpClient  *http.Client
	marshaler   codec.Marshaler
	unmarshaler codec.Unmarshaler
	logger      logger.Logger
}

// NewHTTPConnection never fails. A bad base URL is reported by Validate and,
// like any other failure to reach the server, as UnreachableServer by Send.
func NewHTTPConnection(p NewConnectionParams) *HTTPConnection {
	con := HTTPConnection{
		baseURL:     strings.TrimRight(p.BaseURL, "/"),
		token:       p.Token,
		httpClient:  p.HTTPClient,
		marshaler:   p.Marshaler,
		unmarshaler: p.Unmarshaler,
		logger:      p.Logger,
	}

	if con.httpClient == nil {
		con.httpClient = &http.Client{
			Timeout: constants.DefaultTimeout, // Set a default timeout to avoid hanging requests
		}
	}
	if con.marshaler == nil {
		con.marshaler = codec.JSON{}
	}
	if con.unmarshaler == nil {
		con.unmarshaler = codec.JSON{}
	}
	if con.logger == nil {
		con.logger = logger.Nop()
	}

	return &con
}

// Validate checks that the base URL is an absolute http(s) URL.
func (h *HTTPConnection) Validate() error {
	if h.baseURL == "" {
		return fmt.Errorf("%w: %w", constants.ErrInvalidArgument, constants.ErrNoBaseURL)
	}
	u, err := url.Parse(h.baseURL)
	if err != nil {
		return fmt.Errorf("%w: base url: %w", constants.ErrInvalidArgument, err)
	}
	if u.Scheme != constants.HTTPScheme && u.Scheme != constants.HTTPSecureScheme {
		return fmt.Errorf("%w: base url %q must use http or https", constants.ErrInvalidArgument, h.baseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: base url %q has no host", constants.ErrInvalidArgument, h.baseURL)
	}
	return nil
}

// WithToken returns a copy of the connection that authenticates with token.
func (h *HTTPConnection) WithToken(token string) *HTTPConnection {
	con := *h
	con.token = token
	return &con
}

func (h *HTTPConnection) BaseURL() string {
	return h.baseURL
}

func (h *HTTPConnection) Token() string {
	return h.token
}

func (h *HTTPConnection) SetTimeout(timeout time.Duration) *HTTPConnection {
	h.httpClient.Timeout = timeout
	return h
}

func (h *HTTPConnection) SetHTTPClient(client *http.Client) *HTTPConnection {
	h.httpClient = client
	return h
}

func (h *HTTPConnection) Send(ctx context.Context, r Request, res any) error {
	start := time.Now()
	status, err := h.roundTrip(ctx, r, res)
	if err != nil {
		var reqErr *RequestError
		if errors.As(err, &reqErr) {
			reqErr.Op, reqErr.Method, reqErr.Path = r.Op, r.Method, r.Path
		}
		h.logger.Warn("etapi request failed", "op", r.Op, "method", r.Method, "path", r.Path,
			"status", status, "duration", time.Since(start), "err", err)
		return err
	}

	h.logger.Debug("etapi request", "op", r.Op, "method", r.Method, "path", r.Path,
		"status", status, "duration", time.Since(start))
	return nil
}

func (h *HTTPConnection) roundTrip(ctx context.Context, r Request, res any) (int, error) {
	if err := h.Validate(); err != nil {
		return 0, &RequestError{Kind: constants.UnreachableServer, Err: err}
	}

	httpReq, err := h.newRequest(ctx, r)
	if err != nil {
		return 0, err
	}

	respData, status, err := h.MakeRequest(httpReq)
	if err != nil || res == nil {
		return status, err
	}

	if err := h.unmarshaler.Unmarshal(respData, res); err != nil {
		body := string(respData)
		return status, &RequestError{Kind: constants.MalformedResponse, StatusCode: status, Body: &body, Err: err}
	}
	return status, nil
}

func (h *HTTPConnection) newRequest(ctx context.Context, r Request) (*http.Request, error) {
	target := h.baseURL + r.Path
	if r.Query != "" {
		target += "?" + r.Query
	}

	var body io.Reader = http.NoBody
	if r.Body != nil {
		data, err := h.marshaler.Marshal(r.Body)
		if err != nil {
			return nil, fmt.Errorf("%s: encode request: %w", r.Op, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, target, body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", constants.ErrInvalidArgument, r.Op, err)
	}
	req.Header.Set("Accept", constants.ContentTypeJSON)
	if r.Body != nil {
		req.Header.Set("Content-Type", constants.ContentTypeJSON)
	}
	if h.token != "" {
		req.Header.Set(constants.AuthHeader, h.token)
	}
	return req, nil
}

// MakeRequest executes req and returns the body of a 2xx response along
// with the status code. Failures come back as *RequestError:
// UnreachableServer without a status, WrongCredentials for any non-2xx
// status, MalformedResponse when a 2xx body cannot be read as text.
func (h *HTTPConnection) MakeRequest(req *http.Request) ([]byte, int, error) {
	resp, err := h.httpClient.Do(req)
	if err != nil {
		return nil, 0, &RequestError{Kind: constants.UnreachableServer, Err: err}
	}
	defer resp.Body.Close()

	respBytes, readErr := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		reqErr := &RequestError{Kind: constants.WrongCredentials, StatusCode: resp.StatusCode}
		if readErr == nil && utf8.Valid(respBytes) {
			body := string(respBytes)
			reqErr.Body = &body
		}
		return nil, resp.StatusCode, reqErr
	}

	if readErr != nil {
		return nil, resp.StatusCode, &RequestError{Kind: constants.MalformedResponse, StatusCode: resp.StatusCode, Err: readErr}
	}
	if !utf8.Valid(respBytes) {
		return nil, resp.StatusCode, &RequestError{Kind: constants.MalformedResponse, StatusCode: resp.StatusCode, Err: errInvalidUTF8}
	}

	return respBytes, resp.StatusCode, nil
}
