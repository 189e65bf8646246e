package constants

import "time"

var (
	HTTPScheme       = "http"
	HTTPSecureScheme = "https"
)

// Endpoint paths relative to the server base URL.
const (
	LoginPath        = "/auth/login"
	CreateNotePath   = "/etapi/create-note"
	NotesPath        = "/etapi/notes"
	BranchesPath     = "/etapi/branches"
	AttributesPath   = "/etapi/attributes"
	AppInfoPath      = "/etapi/app-info"
	AuthHeader       = "Authorization"
	ContentTypeJSON  = "application/json"
	DefaultTimeout   = 30 * time.Second
	EnvURL           = "ETAPI_URL"
	EnvToken         = "ETAPI_TOKEN"
	DefaultServerURL = "http://localhost:8080"
)
