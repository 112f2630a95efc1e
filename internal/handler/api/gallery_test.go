// Copyright (c) 2024-2026 Will Pereira
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/wpdev/portfolio-go/internal/model"
)

const validGalleryBody = `{
	"title": "Sunset over the bay",
	"image_url": "/images/sunset.jpg",
	"thumbnail_url": "/images/sunset_thumb.jpg",
	"alt_text": "Orange sunset over calm water",
	"tags": ["photography", "travel"],
	"width": 3840,
	"height": 2160,
	"file_size_bytes": 2400000
}`

// createTestGalleryImage creates an image through the handler and returns it.
func createTestGalleryImage(t *testing.T, h *Handler, body string) GalleryImageResponse {
	t.Helper()
	w := executeHandler(t, h.CreateGalleryImage, newJSONRequest(t, http.MethodPost, "/api/v1/gallery", body, nil))
	if w.Code != http.StatusCreated {
		t.Fatalf("failed to create test image: status %d, body %s", w.Code, w.Body.String())
	}
	return unmarshalData[GalleryImageResponse](t, w)
}

func TestCreateGalleryImage(t *testing.T) {
	_, h := testSetup(t)

	img := createTestGalleryImage(t, h, validGalleryBody)

	if img.ID == 0 {
		t.Error("expected non-zero image ID")
	}
	if img.Width != 3840 || img.Height != 2160 {
		t.Errorf("expected 3840x2160, got %dx%d", img.Width, img.Height)
	}
	if len(img.Tags) != 2 {
		t.Errorf("expected 2 tags, got %d", len(img.Tags))
	}
}

func TestCreateGalleryImage_Validation(t *testing.T) {
	_, h := testSetup(t)

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"missing title", `{"image_url": "/i.jpg", "alt_text": "a"}`, "title"},
		{"missing image url", `{"title": "t", "alt_text": "a"}`, "image_url"},
		{"missing alt text", `{"title": "t", "image_url": "/i.jpg"}`, "alt_text"},
		{"negative width", `{"title": "t", "image_url": "/i.jpg", "alt_text": "a", "width": -1}`, "dimensions"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := executeHandler(t, h.CreateGalleryImage, newJSONRequest(t, http.MethodPost, "/api/v1/gallery", tt.body, nil))

			assertStatusCode(t, w, http.StatusBadRequest)
			resp := assertErrorResponse(t, w, "validation_error")

			if _, ok := resp.Error.Details[tt.field]; !ok {
				t.Errorf("expected error detail for field %q, got %v", tt.field, resp.Error.Details)
			}
		})
	}
}

func TestGetGalleryImage(t *testing.T) {
	_, h := testSetup(t)
	created := createTestGalleryImage(t, h, validGalleryBody)
	id := strconv.FormatInt(created.ID, 10)

	w := executeHandler(t, h.GetGalleryImage, newGetRequest(t, "/api/v1/gallery/"+id, map[string]string{"id": id}))

	assertStatusCode(t, w, http.StatusOK)
	img := unmarshalData[GalleryImageResponse](t, w)

	if img.Title != created.Title {
		t.Errorf("expected title %q, got %q", created.Title, img.Title)
	}
}

func TestGetGalleryImage_NotFound(t *testing.T) {
	_, h := testSetup(t)

	w := executeHandler(t, h.GetGalleryImage, newGetRequest(t, "/api/v1/gallery/3", map[string]string{"id": "3"}))
	assertStatusCode(t, w, http.StatusNotFound)
}

func TestUpdateGalleryImage(t *testing.T) {
	_, h := testSetup(t)
	created := createTestGalleryImage(t, h, validGalleryBody)
	id := strconv.FormatInt(created.ID, 10)

	body := `{"title": "Golden hour", "position": 5, "tags": ["photography"]}`
	req := newJSONRequest(t, http.MethodPut, "/api/v1/gallery/"+id, body, map[string]string{"id": id})
	w := executeHandler(t, h.UpdateGalleryImage, req)

	assertStatusCode(t, w, http.StatusOK)
	img := unmarshalData[GalleryImageResponse](t, w)

	if img.Title != "Golden hour" {
		t.Errorf("expected title 'Golden hour', got %s", img.Title)
	}
	if img.Position != 5 {
		t.Errorf("expected position 5, got %d", img.Position)
	}
	if len(img.Tags) != 1 {
		t.Errorf("expected 1 tag, got %d", len(img.Tags))
	}
	if img.ImageURL != created.ImageURL {
		t.Errorf("expected image URL unchanged, got %s", img.ImageURL)
	}
}

func TestUpdateGalleryImage_EmptyTitle(t *testing.T) {
	_, h := testSetup(t)
	created := createTestGalleryImage(t, h, validGalleryBody)
	id := strconv.FormatInt(created.ID, 10)

	req := newJSONRequest(t, http.MethodPut, "/api/v1/gallery/"+id, `{"title": ""}`, map[string]string{"id": id})
	w := executeHandler(t, h.UpdateGalleryImage, req)

	assertStatusCode(t, w, http.StatusBadRequest)
	assertErrorResponse(t, w, "validation_error")
}

func TestDeleteGalleryImage(t *testing.T) {
	_, h := testSetup(t)
	created := createTestGalleryImage(t, h, validGalleryBody)
	id := strconv.FormatInt(created.ID, 10)

	w := executeHandler(t, h.DeleteGalleryImage, newDeleteRequest(t, "/api/v1/gallery/"+id, map[string]string{"id": id}))
	assertStatusCode(t, w, http.StatusNoContent)

	// Soft-deleted images disappear from anonymous reads.
	w = executeHandler(t, h.GetGalleryImage, newGetRequest(t, "/api/v1/gallery/"+id, map[string]string{"id": id}))
	assertStatusCode(t, w, http.StatusNotFound)

	// Deleting again is a no-op.
	w = executeHandler(t, h.DeleteGalleryImage, newDeleteRequest(t, "/api/v1/gallery/"+id, map[string]string{"id": id}))
	assertStatusCode(t, w, http.StatusNoContent)
}

func TestDeleteGalleryImage_KeyedReadAndRestore(t *testing.T) {
	_, h := testSetup(t)
	created := createTestGalleryImage(t, h, validGalleryBody)
	id := strconv.FormatInt(created.ID, 10)
	params := map[string]string{"id": id}

	w := executeHandler(t, h.DeleteGalleryImage, newDeleteRequest(t, "/api/v1/gallery/"+id, params))
	assertStatusCode(t, w, http.StatusNoContent)

	// Keyed callers still see the hidden image.
	req := withAPIKey(newGetRequest(t, "/api/v1/gallery/"+id, params), model.PermissionContentRead)
	w = executeHandler(t, h.GetGalleryImage, req)
	assertStatusCode(t, w, http.StatusOK)
	img := unmarshalData[GalleryImageResponse](t, w)
	if img.IsVisible {
		t.Error("deleted image should report is_visible false")
	}

	// An update flipping is_visible back restores it.
	req = withAPIKey(newJSONRequest(t, http.MethodPut, "/api/v1/gallery/"+id, `{"is_visible": true}`, params), model.PermissionContentWrite)
	w = executeHandler(t, h.UpdateGalleryImage, req)
	assertStatusCode(t, w, http.StatusOK)

	w = executeHandler(t, h.GetGalleryImage, newGetRequest(t, "/api/v1/gallery/"+id, params))
	assertStatusCode(t, w, http.StatusOK)
}

func TestListGalleryImages(t *testing.T) {
	_, h := testSetup(t)

	createTestGalleryImage(t, h, validGalleryBody)
	createTestGalleryImage(t, h, `{"title": "City lights", "image_url": "/c.jpg", "alt_text": "skyline", "tags": ["city"]}`)

	w := executeHandler(t, h.ListGalleryImages, newGetRequest(t, "/api/v1/gallery", nil))

	assertStatusCode(t, w, http.StatusOK)
	images, meta := unmarshalList[GalleryImageResponse](t, w)

	if len(images) != 2 {
		t.Errorf("expected 2 images, got %d", len(images))
	}
	if meta == nil || meta.Total != 2 {
		t.Errorf("expected meta total 2, got %+v", meta)
	}
}

func TestListGalleryImages_VisibleGating(t *testing.T) {
	_, h := testSetup(t)

	createTestGalleryImage(t, h, validGalleryBody)
	removed := createTestGalleryImage(t, h, `{"title": "City lights", "image_url": "/c.jpg", "alt_text": "skyline"}`)

	id := strconv.FormatInt(removed.ID, 10)
	w := executeHandler(t, h.DeleteGalleryImage, newDeleteRequest(t, "/api/v1/gallery/"+id, map[string]string{"id": id}))
	assertStatusCode(t, w, http.StatusNoContent)

	// Anonymous listings exclude the hidden image.
	w = executeHandler(t, h.ListGalleryImages, newGetRequest(t, "/api/v1/gallery", nil))
	assertStatusCode(t, w, http.StatusOK)
	images, _ := unmarshalList[GalleryImageResponse](t, w)
	if len(images) != 1 {
		t.Fatalf("anonymous listing returned %d images, want 1", len(images))
	}

	// Keyed listings include it.
	req := withAPIKey(newGetRequest(t, "/api/v1/gallery", nil), model.PermissionContentRead)
	w = executeHandler(t, h.ListGalleryImages, req)
	assertStatusCode(t, w, http.StatusOK)
	images, _ = unmarshalList[GalleryImageResponse](t, w)
	if len(images) != 2 {
		t.Fatalf("keyed listing returned %d images, want 2", len(images))
	}
}

func TestListGalleryImages_TagFilter(t *testing.T) {
	_, h := testSetup(t)

	createTestGalleryImage(t, h, validGalleryBody)
	createTestGalleryImage(t, h, `{"title": "City lights", "image_url": "/c.jpg", "alt_text": "skyline", "tags": ["city"]}`)

	w := executeHandler(t, h.ListGalleryImages, newGetRequest(t, "/api/v1/gallery?tag=city", nil))

	assertStatusCode(t, w, http.StatusOK)
	images, _ := unmarshalList[GalleryImageResponse](t, w)

	if len(images) != 1 {
		t.Fatalf("expected 1 image, got %d", len(images))
	}
	if images[0].Title != "City lights" {
		t.Errorf("expected image 'City lights', got %s", images[0].Title)
	}
}
