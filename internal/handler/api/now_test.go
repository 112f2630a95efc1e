// Copyright (c) 2024-2026 Will Pereira
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"net/http"
	"strconv"
	"testing"

	"github.com/wpdev/portfolio-go/internal/store"
)

// createTestNowSection creates a now section through the handler.
func createTestNowSection(t *testing.T, h *Handler, body string) NowSectionResponse {
	t.Helper()
	w := executeHandler(t, h.CreateNowSection, newJSONRequest(t, http.MethodPost, "/api/v1/now/sections", body, nil))
	if w.Code != http.StatusCreated {
		t.Fatalf("failed to create test now section: status %d, body %s", w.Code, w.Body.String())
	}
	return unmarshalData[NowSectionResponse](t, w)
}

func TestCreateNowSection(t *testing.T) {
	_, h := testSetup(t)

	section := createTestNowSection(t, h, `{
		"content": "Building a portfolio API in Go.",
		"current_project": "portfolio-go",
		"currently_learning": ["sqlite", "chi"],
		"current_goals": ["ship v1"]
	}`)

	if section.ID == 0 {
		t.Error("expected non-zero section ID")
	}
	if !section.IsActive {
		t.Error("expected a new section to be active")
	}
	if len(section.CurrentlyLearning) != 2 {
		t.Errorf("expected 2 learning entries, got %d", len(section.CurrentlyLearning))
	}
}

func TestCreateNowSection_MissingContent(t *testing.T) {
	_, h := testSetup(t)

	w := executeHandler(t, h.CreateNowSection, newJSONRequest(t, http.MethodPost, "/api/v1/now/sections", `{}`, nil))

	assertStatusCode(t, w, http.StatusBadRequest)
	resp := assertErrorResponse(t, w, "validation_error")

	if _, ok := resp.Error.Details["content"]; !ok {
		t.Errorf("expected error detail for content, got %v", resp.Error.Details)
	}
}

func TestCreateNowSection_DeactivatesPrevious(t *testing.T) {
	db, h := testSetup(t)

	first := createTestNowSection(t, h, `{"content": "First"}`)
	second := createTestNowSection(t, h, `{"content": "Second"}`)

	if !second.IsActive {
		t.Error("expected the new section to be active")
	}

	queries := store.New(db)
	active, err := queries.GetActiveNowSection(context.Background())
	if err != nil {
		t.Fatalf("failed to read active section: %v", err)
	}
	if active.ID != second.ID {
		t.Errorf("expected section %d active, got %d", second.ID, active.ID)
	}

	old, err := queries.GetNowSection(context.Background(), first.ID)
	if err != nil {
		t.Fatalf("failed to read first section: %v", err)
	}
	if old.IsActive {
		t.Error("expected the previous section to be deactivated")
	}
}

func TestGetActiveNowSection(t *testing.T) {
	_, h := testSetup(t)
	createTestNowSection(t, h, `{"content": "# Right now\n\nWriting Go."}`)

	w := executeHandler(t, h.GetActiveNowSection, newGetRequest(t, "/api/v1/now", nil))

	assertStatusCode(t, w, http.StatusOK)
	section := unmarshalData[NowSectionResponse](t, w)

	if !section.IsActive {
		t.Error("expected the active section")
	}
	if section.ContentHTML == "" {
		t.Error("expected rendered content")
	}
}

func TestGetActiveNowSection_NoneActive(t *testing.T) {
	_, h := testSetup(t)

	w := executeHandler(t, h.GetActiveNowSection, newGetRequest(t, "/api/v1/now", nil))

	assertStatusCode(t, w, http.StatusNotFound)
	assertErrorResponse(t, w, "not_found")
}

func TestListNowSections(t *testing.T) {
	_, h := testSetup(t)

	createTestNowSection(t, h, `{"content": "First"}`)
	createTestNowSection(t, h, `{"content": "Second"}`)

	w := executeHandler(t, h.ListNowSections, newGetRequest(t, "/api/v1/now/sections", nil))

	assertStatusCode(t, w, http.StatusOK)
	sections, meta := unmarshalList[NowSectionResponse](t, w)

	if len(sections) != 2 {
		t.Errorf("expected 2 sections, got %d", len(sections))
	}
	if meta == nil || meta.Total != 2 {
		t.Errorf("expected meta total 2, got %+v", meta)
	}
}

func TestGetNowSection(t *testing.T) {
	_, h := testSetup(t)
	created := createTestNowSection(t, h, `{"content": "First"}`)
	id := strconv.FormatInt(created.ID, 10)

	w := executeHandler(t, h.GetNowSection, newGetRequest(t, "/api/v1/now/sections/"+id, map[string]string{"id": id}))

	assertStatusCode(t, w, http.StatusOK)
	section := unmarshalData[NowSectionResponse](t, w)

	if section.Content != "First" {
		t.Errorf("expected content 'First', got %s", section.Content)
	}
}

func TestUpdateNowSection(t *testing.T) {
	_, h := testSetup(t)
	created := createTestNowSection(t, h, `{"content": "First"}`)
	id := strconv.FormatInt(created.ID, 10)

	body := `{"content": "Updated", "current_goals": ["finish tests"]}`
	req := newJSONRequest(t, http.MethodPut, "/api/v1/now/sections/"+id, body, map[string]string{"id": id})
	w := executeHandler(t, h.UpdateNowSection, req)

	assertStatusCode(t, w, http.StatusOK)
	section := unmarshalData[NowSectionResponse](t, w)

	if section.Content != "Updated" {
		t.Errorf("expected content 'Updated', got %s", section.Content)
	}
	if !section.IsActive {
		t.Error("expected section to stay active")
	}
}

func TestUpdateNowSection_ActivateDeactivatesOthers(t *testing.T) {
	db, h := testSetup(t)

	first := createTestNowSection(t, h, `{"content": "First"}`)
	second := createTestNowSection(t, h, `{"content": "Second"}`)
	id := strconv.FormatInt(first.ID, 10)

	req := newJSONRequest(t, http.MethodPut, "/api/v1/now/sections/"+id, `{"is_active": true}`, map[string]string{"id": id})
	w := executeHandler(t, h.UpdateNowSection, req)

	assertStatusCode(t, w, http.StatusOK)
	section := unmarshalData[NowSectionResponse](t, w)
	if !section.IsActive {
		t.Error("expected first section to be active again")
	}

	other, err := store.New(db).GetNowSection(context.Background(), second.ID)
	if err != nil {
		t.Fatalf("failed to read second section: %v", err)
	}
	if other.IsActive {
		t.Error("expected second section to be deactivated")
	}
}

func TestUpdateNowSection_UnknownIDLeavesActiveUntouched(t *testing.T) {
	db, h := testSetup(t)
	created := createTestNowSection(t, h, `{"content": "First"}`)

	req := newJSONRequest(t, http.MethodPut, "/api/v1/now/sections/999", `{"is_active": true}`, map[string]string{"id": "999"})
	w := executeHandler(t, h.UpdateNowSection, req)

	assertStatusCode(t, w, http.StatusNotFound)

	active, err := store.New(db).GetActiveNowSection(context.Background())
	if err != nil {
		t.Fatalf("expected active section untouched: %v", err)
	}
	if active.ID != created.ID {
		t.Errorf("expected section %d still active, got %d", created.ID, active.ID)
	}
}

func TestDeleteNowSection(t *testing.T) {
	_, h := testSetup(t)
	created := createTestNowSection(t, h, `{"content": "First"}`)
	id := strconv.FormatInt(created.ID, 10)

	w := executeHandler(t, h.DeleteNowSection, newDeleteRequest(t, "/api/v1/now/sections/"+id, map[string]string{"id": id}))
	assertStatusCode(t, w, http.StatusNoContent)

	// Deleting the active section leaves none active.
	w = executeHandler(t, h.GetActiveNowSection, newGetRequest(t, "/api/v1/now", nil))
	assertStatusCode(t, w, http.StatusNotFound)
}

func TestDeleteNowSection_NotFound(t *testing.T) {
	_, h := testSetup(t)

	w := executeHandler(t, h.DeleteNowSection, newDeleteRequest(t, "/api/v1/now/sections/8", map[string]string{"id": "8"}))
	assertStatusCode(t, w, http.StatusNotFound)
}
