// Package testenv provides helpers for testing code built on the ETAPI
// client.
//
// By default a session talks to an in-process fake server. Setting
// ETAPI_TEST_URL and ETAPI_TEST_PASSWORD runs the same tests against a real
// server instead.
package testenv

import (
	"context"
	"os"
	"testing"

	etapi "github.com/etapi-go/etapi.go"
	"github.com/etapi-go/etapi.go/internal/fakeetapi"
	"github.com/etapi-go/etapi.go/pkg/models"
)

const (
	// EnvTestURL is the base URL of a live server to test against.
	EnvTestURL = "ETAPI_TEST_URL"

	// EnvTestPassword is the password for the server at EnvTestURL.
	EnvTestPassword = "ETAPI_TEST_PASSWORD"

	fakePassword = "testenv"
)

// Live reports whether tests should run against a real server.
func Live() bool {
	return os.Getenv(EnvTestURL) != "" && os.Getenv(EnvTestPassword) != ""
}

// MustNewSession logs in to the live server when configured, otherwise to a
// fresh fake server that is closed when the test ends.
func MustNewSession(t testing.TB, opts ...etapi.Option) *etapi.Session {
	t.Helper()

	baseURL, password := os.Getenv(EnvTestURL), os.Getenv(EnvTestPassword)
	if !Live() {
		server := fakeetapi.NewServer(fakePassword)
		server.Start()
		t.Cleanup(server.Close)
		baseURL, password = server.URL(), fakePassword
	}

	session, err := etapi.Login(context.Background(), password, baseURL, opts...)
	if err != nil {
		t.Fatalf("testenv: login to %s: %v", baseURL, err)
	}
	return session
}

// MustCreateNote creates a text note under parent and deletes it when the
// test ends, so runs against a live server leave nothing behind.
func MustCreateNote(t testing.TB, session *etapi.Session, parent models.EntityID, title string) *models.CreateNoteResponse {
	t.Helper()

	ctx := context.Background()
	created, err := session.CreateNote(ctx, models.NewCreateNoteRequest(parent, title, models.NoteTypeText, ""))
	if err != nil {
		t.Fatalf("testenv: create note %q: %v", title, err)
	}
	t.Cleanup(func() {
		// The note may already be gone, e.g. deleted by the test or with its parent.
		_ = session.DeleteNote(ctx, created.Note.NoteID)
	})
	return created
}
