// Copyright (c) 2024-2026 Will Pereira
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// assertStatusCode checks that the response has the expected status code.
func assertStatusCode(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("expected status %d, got %d", expected, w.Code)
	}
}

// assertErrorResponse unmarshals and validates an error response.
func assertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedCode string) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Error.Code != expectedCode {
		t.Errorf("expected code '%s', got %s", expectedCode, resp.Error.Code)
	}
	return resp
}

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()

	data := map[string]string{"key": "value"}
	WriteJSON(w, http.StatusOK, data)

	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected Content-Type 'application/json', got %s", ct)
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if resp["key"] != "value" {
		t.Errorf("expected key 'value', got %s", resp["key"])
	}
}

func TestWriteSuccess(t *testing.T) {
	w := httptest.NewRecorder()

	data := map[string]string{"name": "test"}
	meta := &Meta{Total: 100, Page: 1, PerPage: 20}
	WriteSuccess(w, data, meta)

	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	var resp Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if resp.Meta == nil {
		t.Fatal("expected meta to be present")
	}
	if resp.Meta.Total != 100 {
		t.Errorf("expected total 100, got %d", resp.Meta.Total)
	}
}

func TestWriteCreated(t *testing.T) {
	w := httptest.NewRecorder()

	data := map[string]string{"id": "123"}
	WriteCreated(w, data)

	if w.Code != http.StatusCreated {
		t.Errorf("expected status %d, got %d", http.StatusCreated, w.Code)
	}
}

func TestWriteNoContent(t *testing.T) {
	w := httptest.NewRecorder()
	WriteNoContent(w)
	assertStatusCode(t, w, http.StatusNoContent)

	if w.Body.Len() != 0 {
		t.Errorf("expected empty body, got %q", w.Body.String())
	}
}

func TestWriteError(t *testing.T) {
	w := httptest.NewRecorder()

	WriteError(w, http.StatusBadRequest, "validation_error", "Invalid input", map[string]string{
		"field": "name",
	})

	assertStatusCode(t, w, http.StatusBadRequest)
	resp := assertErrorResponse(t, w, "validation_error")

	if resp.Error.Message != "Invalid input" {
		t.Errorf("expected message 'Invalid input', got %s", resp.Error.Message)
	}
	if resp.Error.Details["field"] != "name" {
		t.Errorf("expected details.field 'name', got %s", resp.Error.Details["field"])
	}
}

func TestWriteBadRequest(t *testing.T) {
	w := httptest.NewRecorder()
	WriteBadRequest(w, "Bad input", nil)
	assertStatusCode(t, w, http.StatusBadRequest)
}

func TestWriteNotFound(t *testing.T) {
	w := httptest.NewRecorder()
	WriteNotFound(w, "Resource not found")
	assertStatusCode(t, w, http.StatusNotFound)
}

func TestWriteUnauthorized(t *testing.T) {
	w := httptest.NewRecorder()
	WriteUnauthorized(w, "Not authenticated")
	assertStatusCode(t, w, http.StatusUnauthorized)
}

func TestWriteForbidden(t *testing.T) {
	w := httptest.NewRecorder()
	WriteForbidden(w, "Access denied")
	assertStatusCode(t, w, http.StatusForbidden)
}

func TestWriteInternalError(t *testing.T) {
	w := httptest.NewRecorder()
	WriteInternalError(w, "Something went wrong")
	assertStatusCode(t, w, http.StatusInternalServerError)
}

func TestWriteValidationError(t *testing.T) {
	w := httptest.NewRecorder()
	WriteValidationError(w, map[string]string{
		"email": "Invalid email format",
		"name":  "Required field",
	})

	assertStatusCode(t, w, http.StatusBadRequest)
	resp := assertErrorResponse(t, w, "validation_error")

	if len(resp.Error.Details) != 2 {
		t.Errorf("expected 2 error details, got %d", len(resp.Error.Details))
	}
}

func TestWriteConflict(t *testing.T) {
	w := httptest.NewRecorder()
	WriteConflict(w, "Slug already exists", map[string]string{"slug": "hello-world"})

	assertStatusCode(t, w, http.StatusBadRequest)
	resp := assertErrorResponse(t, w, "conflict")

	if resp.Error.Details["slug"] != "hello-world" {
		t.Errorf("expected details.slug 'hello-world', got %s", resp.Error.Details["slug"])
	}
}

func TestStatus(t *testing.T) {
	_, h := testSetup(t)

	w := executeHandler(t, h.Status, newGetRequest(t, "/api/v1/status", nil))

	assertStatusCode(t, w, http.StatusOK)
	resp := unmarshalData[StatusResponse](t, w)

	if resp.Status != "ok" {
		t.Errorf("expected status 'ok', got %s", resp.Status)
	}
	if resp.Version == "" {
		t.Error("expected version to be set")
	}
}

func TestHealth(t *testing.T) {
	_, h := testSetup(t)

	w := executeHandler(t, h.Health, newGetRequest(t, "/api/v1/health", nil))

	assertStatusCode(t, w, http.StatusOK)
	resp := unmarshalData[map[string]string](t, w)

	if resp["status"] != "healthy" {
		t.Errorf("expected status 'healthy', got %s", resp["status"])
	}
}

func TestHealth_DatabaseDown(t *testing.T) {
	db, h := testSetup(t)
	_ = db.Close()

	w := executeHandler(t, h.Health, newGetRequest(t, "/api/v1/health", nil))

	assertStatusCode(t, w, http.StatusServiceUnavailable)
	assertErrorResponse(t, w, "unhealthy")
}

func TestLiveness(t *testing.T) {
	_, h := testSetup(t)

	w := executeHandler(t, h.Liveness, newGetRequest(t, "/health/live", nil))

	assertStatusCode(t, w, http.StatusOK)
	data := unmarshalData[map[string]string](t, w)
	if data["status"] != "alive" {
		t.Errorf("status = %q, want %q", data["status"], "alive")
	}
}

func TestReadiness(t *testing.T) {
	_, h := testSetup(t)

	w := executeHandler(t, h.Readiness, newGetRequest(t, "/health/ready", nil))

	assertStatusCode(t, w, http.StatusOK)
	data := unmarshalData[map[string]string](t, w)
	if data["status"] != "ready" {
		t.Errorf("status = %q, want %q", data["status"], "ready")
	}
}

func TestReadiness_DatabaseDown(t *testing.T) {
	db, h := testSetup(t)
	_ = db.Close()

	w := executeHandler(t, h.Readiness, newGetRequest(t, "/health/ready", nil))

	assertStatusCode(t, w, http.StatusServiceUnavailable)
	assertErrorResponse(t, w, "not_ready")
}

func TestAuthInfo(t *testing.T) {
	_, h := testSetup(t)

	req := withAPIKey(newGetRequest(t, "/api/v1/auth/info", nil), "content:read", "content:write")
	w := executeHandler(t, h.AuthInfo, req)

	assertStatusCode(t, w, http.StatusOK)

	var resp struct {
		Data struct {
			KeyPrefix   string   `json:"key_prefix"`
			Name        string   `json:"name"`
			Permissions []string `json:"permissions"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if resp.Data.Name != "test-key" {
		t.Errorf("expected name 'test-key', got %s", resp.Data.Name)
	}
	if len(resp.Data.Permissions) != 2 {
		t.Errorf("expected 2 permissions, got %d", len(resp.Data.Permissions))
	}
}

func TestAuthInfo_Unauthenticated(t *testing.T) {
	_, h := testSetup(t)

	w := executeHandler(t, h.AuthInfo, newGetRequest(t, "/api/v1/auth/info", nil))

	assertStatusCode(t, w, http.StatusUnauthorized)
}

func TestCapitalizeFirst(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"project", "Project"},
		{"Project", "Project"},
		{"now section", "Now section"},
		{"123", "123"},
	}

	for _, tt := range tests {
		if got := capitalizeFirst(tt.input); got != tt.want {
			t.Errorf("capitalizeFirst(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestPaginationMeta(t *testing.T) {
	meta := paginationMeta(45, 2, 20)

	if meta.Total != 45 {
		t.Errorf("expected total 45, got %d", meta.Total)
	}
	if meta.Page != 2 {
		t.Errorf("expected page 2, got %d", meta.Page)
	}
	if meta.PerPage != 20 {
		t.Errorf("expected per_page 20, got %d", meta.PerPage)
	}
	if meta.Pages != 3 {
		t.Errorf("expected pages 3, got %d", meta.Pages)
	}
}
