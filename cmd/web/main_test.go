package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestHandlerRendersConnectCommand(t *testing.T) {
	h := newHandler(pageData{SSHHost: "play.example.com", SSHPort: "2022"}, log.New(io.Discard))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if body := rec.Body.String(); !strings.Contains(body, "ssh -t -p 2022 play.example.com") {
		t.Fatalf("body lacks connect command:\n%s", body)
	}
}

func TestHandlerUnknownPath(t *testing.T) {
	h := newHandler(pageData{}, log.New(io.Discard))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
