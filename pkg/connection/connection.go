package connection

import (
	"context"
	"net/http"

	"github.com/etapi-go/etapi.go/internal/codec"
	"github.com/etapi-go/etapi.go/pkg/logger"
)

// Connection executes ETAPI round trips against one server with one token.
// In Send, res receives the decoded body; a nil res only requires the body
// to be readable as text.
type Connection interface {
	Send(ctx context.Context, req Request, res any) error
	BaseURL() string
	Token() string
}

var _ Connection = (*HTTPConnection)(nil)

type NewConnectionParams struct {
	BaseURL     string
	Token       string
	HTTPClient  *http.Client
	Marshaler   codec.Marshaler
	Unmarshaler codec.Unmarshaler
	Logger      logger.Logger
}
