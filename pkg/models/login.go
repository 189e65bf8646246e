package models

import (
	"encoding/json"
	"fmt"

	"github.com/etapi-go/etapi.go/pkg/constants"
)

type LoginRequest struct {
	Password string `json:"password"`
}

type LoginResponse struct {
	AuthToken string `json:"authToken"`
}

func (r *LoginResponse) UnmarshalJSON(data []byte) error {
	if err := requireKeys(data, "login response", "authToken"); err != nil {
		return err
	}
	type alias LoginResponse
	if err := json.Unmarshal(data, (*alias)(r)); err != nil {
		return err
	}
	// An empty token would silently turn into requests without credentials.
	if r.AuthToken == "" {
		return fmt.Errorf("%w: login response.authToken is empty", constants.ErrMissingField)
	}
	return nil
}

// AppInfo describes the running server.
type AppInfo struct {
	AppVersion             string      `json:"appVersion"`
	DBVersion              int         `json:"dbVersion"`
	SyncVersion            int         `json:"syncVersion"`
	BuildDate              string      `json:"buildDate"`
	BuildRevision          string      `json:"buildRevision"`
	DataDirectory          string      `json:"dataDirectory"`
	ClipperProtocolVersion string      `json:"clipperProtocolVersion"`
	UTCDateTime            UTCDateTime `json:"utcDateTime"`
}

func (a *AppInfo) UnmarshalJSON(data []byte) error {
	if err := requireKeys(data, "app info", "appVersion"); err != nil {
		return err
	}
	type alias AppInfo
	return json.Unmarshal(data, (*alias)(a))
}
