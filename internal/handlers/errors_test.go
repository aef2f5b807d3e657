package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRespondWithErrorWritesStatusAndBody(t *testing.T) {
	recorder := httptest.NewRecorder()

	respondWithError(recorder, http.StatusNotFound, "Operator not found", "", nil)

	if recorder.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", recorder.Code, http.StatusNotFound)
	}
	if got := recorder.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("content type = %q, want application/json", got)
	}

	var body map[string]string
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["error"] != "Operator not found" {
		t.Errorf("error = %q, want %q", body["error"], "Operator not found")
	}
}

func TestRespondWithErrorLogsMessage(t *testing.T) {
	var buf bytes.Buffer
	orig := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(orig)

	recorder := httptest.NewRecorder()
	respondWithError(recorder, http.StatusInternalServerError, "Something failed", "detailed context", errors.New("boom"))

	logged := buf.String()
	if !strings.Contains(logged, "detailed context") {
		t.Errorf("log output %q missing log message", logged)
	}
	if !strings.Contains(logged, "boom") {
		t.Errorf("log output %q missing underlying error", logged)
	}
}
