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

// createTestPost creates a blog post through the handler and returns it.
func createTestPost(t *testing.T, h *Handler, body string) BlogPostResponse {
	t.Helper()
	w := executeHandler(t, h.CreatePost, newJSONRequest(t, http.MethodPost, "/api/v1/posts", body, nil))
	if w.Code != http.StatusCreated {
		t.Fatalf("failed to create test post: status %d, body %s", w.Code, w.Body.String())
	}
	return unmarshalData[BlogPostResponse](t, w)
}

func TestCreatePost(t *testing.T) {
	_, h := testSetup(t)

	post := createTestPost(t, h, `{
		"title": "Hello World",
		"excerpt": "First post",
		"content": "# Hello\n\nSome **markdown** content.",
		"tags": ["go", "meta"],
		"is_published": true
	}`)

	if post.ID == 0 {
		t.Error("expected non-zero post ID")
	}
	if post.Slug != "hello-world" {
		t.Errorf("expected slug derived from title, got %s", post.Slug)
	}
	if !post.IsPublished {
		t.Error("expected post to be published")
	}
	if post.PublishedAt == nil {
		t.Error("expected published_at to be stamped")
	}
	if post.ReadTimeMinutes < 1 {
		t.Errorf("expected read time of at least 1 minute, got %d", post.ReadTimeMinutes)
	}
	if post.ViewCount != 0 {
		t.Errorf("expected zero view count, got %d", post.ViewCount)
	}
}

func TestCreatePost_ExplicitSlug(t *testing.T) {
	_, h := testSetup(t)

	post := createTestPost(t, h, `{"title": "Hello", "content": "c", "slug": "custom-slug"}`)

	if post.Slug != "custom-slug" {
		t.Errorf("expected slug 'custom-slug', got %s", post.Slug)
	}
	if post.IsPublished {
		t.Error("expected draft by default")
	}
	if post.PublishedAt != nil {
		t.Error("expected no published_at on a draft")
	}
}

func TestCreatePost_Validation(t *testing.T) {
	_, h := testSetup(t)

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"missing title", `{"content": "c"}`, "title"},
		{"missing content", `{"title": "t"}`, "content"},
		{"invalid slug", `{"title": "t", "content": "c", "slug": "Bad Slug!"}`, "slug"},
		{"bad scheduled_at", `{"title": "t", "content": "c", "scheduled_at": "tomorrow"}`, "scheduled_at"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := executeHandler(t, h.CreatePost, newJSONRequest(t, http.MethodPost, "/api/v1/posts", tt.body, nil))

			assertStatusCode(t, w, http.StatusBadRequest)
			resp := assertErrorResponse(t, w, "validation_error")

			if _, ok := resp.Error.Details[tt.field]; !ok {
				t.Errorf("expected error detail for field %q, got %v", tt.field, resp.Error.Details)
			}
		})
	}
}

func TestCreatePost_DuplicateSlug(t *testing.T) {
	_, h := testSetup(t)

	createTestPost(t, h, `{"title": "Hello World", "content": "c"}`)

	w := executeHandler(t, h.CreatePost, newJSONRequest(t, http.MethodPost, "/api/v1/posts",
		`{"title": "Different Title", "content": "c", "slug": "hello-world"}`, nil))

	assertStatusCode(t, w, http.StatusBadRequest)
	resp := assertErrorResponse(t, w, "conflict")

	if resp.Error.Details["slug"] != "hello-world" {
		t.Errorf("expected conflicting slug in details, got %v", resp.Error.Details)
	}
}

func TestGetPost(t *testing.T) {
	_, h := testSetup(t)
	created := createTestPost(t, h, `{"title": "Hello", "content": "# Heading", "is_published": true}`)
	id := strconv.FormatInt(created.ID, 10)

	w := executeHandler(t, h.GetPost, newGetRequest(t, "/api/v1/posts/"+id, map[string]string{"id": id}))

	assertStatusCode(t, w, http.StatusOK)
	post := unmarshalData[BlogPostResponse](t, w)

	if post.ID != created.ID {
		t.Errorf("expected ID %d, got %d", created.ID, post.ID)
	}
	if post.ContentHTML == "" {
		t.Error("expected rendered content on single-post endpoint")
	}
}

func TestGetPost_UnpublishedHiddenFromAnonymous(t *testing.T) {
	_, h := testSetup(t)
	created := createTestPost(t, h, `{"title": "Draft", "content": "c"}`)
	id := strconv.FormatInt(created.ID, 10)

	// Anonymous callers see a draft as missing.
	w := executeHandler(t, h.GetPost, newGetRequest(t, "/api/v1/posts/"+id, map[string]string{"id": id}))
	assertStatusCode(t, w, http.StatusNotFound)

	// Authenticated callers can read drafts.
	req := withAPIKey(newGetRequest(t, "/api/v1/posts/"+id, map[string]string{"id": id}), "content:read")
	w = executeHandler(t, h.GetPost, req)
	assertStatusCode(t, w, http.StatusOK)
}

func TestGetPostBySlug(t *testing.T) {
	_, h := testSetup(t)
	createTestPost(t, h, `{"title": "Hello World", "content": "c", "is_published": true}`)

	req := newGetRequest(t, "/api/v1/posts/slug/hello-world", map[string]string{"slug": "hello-world"})
	w := executeHandler(t, h.GetPostBySlug, req)

	assertStatusCode(t, w, http.StatusOK)
	post := unmarshalData[BlogPostResponse](t, w)

	if post.Slug != "hello-world" {
		t.Errorf("expected slug 'hello-world', got %s", post.Slug)
	}
	if post.ViewCount != 1 {
		t.Errorf("expected view count 1 after first lookup, got %d", post.ViewCount)
	}
}

func TestGetPostBySlug_IncrementsViews(t *testing.T) {
	db, h := testSetup(t)
	created := createTestPost(t, h, `{"title": "Hello World", "content": "c", "is_published": true}`)

	for range 3 {
		req := newGetRequest(t, "/api/v1/posts/slug/hello-world", map[string]string{"slug": "hello-world"})
		w := executeHandler(t, h.GetPostBySlug, req)
		assertStatusCode(t, w, http.StatusOK)
	}

	post, err := store.New(db).GetBlogPost(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("failed to read post: %v", err)
	}
	if post.ViewCount != 3 {
		t.Errorf("expected view count 3, got %d", post.ViewCount)
	}
}

func TestGetPostBySlug_DraftNotCounted(t *testing.T) {
	db, h := testSetup(t)
	created := createTestPost(t, h, `{"title": "Draft", "content": "c"}`)

	// Anonymous lookup of a draft is a 404 and does not count a view.
	req := newGetRequest(t, "/api/v1/posts/slug/draft", map[string]string{"slug": "draft"})
	w := executeHandler(t, h.GetPostBySlug, req)
	assertStatusCode(t, w, http.StatusNotFound)

	// Authenticated lookup succeeds but still does not count a view.
	req = withAPIKey(newGetRequest(t, "/api/v1/posts/slug/draft", map[string]string{"slug": "draft"}), "content:read")
	w = executeHandler(t, h.GetPostBySlug, req)
	assertStatusCode(t, w, http.StatusOK)

	post, err := store.New(db).GetBlogPost(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("failed to read post: %v", err)
	}
	if post.ViewCount != 0 {
		t.Errorf("expected view count 0 for a draft, got %d", post.ViewCount)
	}
}

func TestGetPostBySlug_NotFound(t *testing.T) {
	_, h := testSetup(t)

	req := newGetRequest(t, "/api/v1/posts/slug/nope", map[string]string{"slug": "nope"})
	w := executeHandler(t, h.GetPostBySlug, req)

	assertStatusCode(t, w, http.StatusNotFound)
}

func TestUpdatePost(t *testing.T) {
	_, h := testSetup(t)
	created := createTestPost(t, h, `{"title": "Hello", "content": "c"}`)
	id := strconv.FormatInt(created.ID, 10)

	body := `{"title": "Hello Again", "excerpt": "updated"}`
	req := newJSONRequest(t, http.MethodPut, "/api/v1/posts/"+id, body, map[string]string{"id": id})
	w := executeHandler(t, h.UpdatePost, req)

	assertStatusCode(t, w, http.StatusOK)
	post := unmarshalData[BlogPostResponse](t, w)

	if post.Title != "Hello Again" {
		t.Errorf("expected title 'Hello Again', got %s", post.Title)
	}
	if post.Excerpt != "updated" {
		t.Errorf("expected excerpt 'updated', got %s", post.Excerpt)
	}
	if post.Slug != created.Slug {
		t.Errorf("expected slug unchanged, got %s", post.Slug)
	}
}

func TestUpdatePost_SlugConflict(t *testing.T) {
	_, h := testSetup(t)
	createTestPost(t, h, `{"title": "First Post", "content": "c"}`)
	second := createTestPost(t, h, `{"title": "Second Post", "content": "c"}`)
	id := strconv.FormatInt(second.ID, 10)

	req := newJSONRequest(t, http.MethodPut, "/api/v1/posts/"+id, `{"slug": "first-post"}`, map[string]string{"id": id})
	w := executeHandler(t, h.UpdatePost, req)

	assertStatusCode(t, w, http.StatusBadRequest)
	assertErrorResponse(t, w, "conflict")
}

func TestUpdatePost_OwnSlugIsNotAConflict(t *testing.T) {
	_, h := testSetup(t)
	created := createTestPost(t, h, `{"title": "Hello World", "content": "c"}`)
	id := strconv.FormatInt(created.ID, 10)

	req := newJSONRequest(t, http.MethodPut, "/api/v1/posts/"+id,
		`{"slug": "hello-world", "title": "Hello Universe"}`, map[string]string{"id": id})
	w := executeHandler(t, h.UpdatePost, req)

	assertStatusCode(t, w, http.StatusOK)
	post := unmarshalData[BlogPostResponse](t, w)

	if post.Slug != "hello-world" {
		t.Errorf("expected slug kept, got %s", post.Slug)
	}
	if post.Title != "Hello Universe" {
		t.Errorf("expected title updated, got %s", post.Title)
	}
}

func TestUpdatePost_FirstPublishStampsPublishedAt(t *testing.T) {
	_, h := testSetup(t)
	created := createTestPost(t, h, `{"title": "Draft", "content": "c"}`)
	id := strconv.FormatInt(created.ID, 10)

	req := newJSONRequest(t, http.MethodPut, "/api/v1/posts/"+id, `{"is_published": true}`, map[string]string{"id": id})
	w := executeHandler(t, h.UpdatePost, req)

	assertStatusCode(t, w, http.StatusOK)
	post := unmarshalData[BlogPostResponse](t, w)

	if !post.IsPublished {
		t.Error("expected post to be published")
	}
	if post.PublishedAt == nil {
		t.Fatal("expected published_at to be stamped on first publish")
	}
	firstPublished := *post.PublishedAt

	// Unpublish and republish: the original timestamp is kept.
	req = newJSONRequest(t, http.MethodPut, "/api/v1/posts/"+id, `{"is_published": false}`, map[string]string{"id": id})
	w = executeHandler(t, h.UpdatePost, req)
	assertStatusCode(t, w, http.StatusOK)
	post = unmarshalData[BlogPostResponse](t, w)
	if post.PublishedAt == nil {
		t.Fatal("expected published_at kept on unpublish")
	}

	req = newJSONRequest(t, http.MethodPut, "/api/v1/posts/"+id, `{"is_published": true}`, map[string]string{"id": id})
	w = executeHandler(t, h.UpdatePost, req)
	assertStatusCode(t, w, http.StatusOK)
	post = unmarshalData[BlogPostResponse](t, w)

	if post.PublishedAt == nil || !post.PublishedAt.Equal(firstPublished) {
		t.Errorf("expected original publish time %v kept, got %v", firstPublished, post.PublishedAt)
	}
}

func TestUpdatePost_NotFound(t *testing.T) {
	_, h := testSetup(t)

	req := newJSONRequest(t, http.MethodPut, "/api/v1/posts/77", `{"title": "x"}`, map[string]string{"id": "77"})
	w := executeHandler(t, h.UpdatePost, req)

	assertStatusCode(t, w, http.StatusNotFound)
}

func TestDeletePost(t *testing.T) {
	_, h := testSetup(t)
	created := createTestPost(t, h, `{"title": "Hello World", "content": "c"}`)
	id := strconv.FormatInt(created.ID, 10)

	w := executeHandler(t, h.DeletePost, newDeleteRequest(t, "/api/v1/posts/"+id, map[string]string{"id": id}))
	assertStatusCode(t, w, http.StatusNoContent)

	// Posts are hard-deleted, so the slug is free for reuse.
	post := createTestPost(t, h, `{"title": "Hello World", "content": "c"}`)
	if post.Slug != "hello-world" {
		t.Errorf("expected slug 'hello-world' to be reusable, got %s", post.Slug)
	}
}

func TestDeletePost_NotFound(t *testing.T) {
	_, h := testSetup(t)

	w := executeHandler(t, h.DeletePost, newDeleteRequest(t, "/api/v1/posts/5", map[string]string{"id": "5"}))
	assertStatusCode(t, w, http.StatusNotFound)
}

func TestListPosts_AnonymousSeesOnlyPublished(t *testing.T) {
	_, h := testSetup(t)

	createTestPost(t, h, `{"title": "Published", "content": "c", "is_published": true}`)
	createTestPost(t, h, `{"title": "Draft", "content": "c"}`)

	w := executeHandler(t, h.ListPosts, newGetRequest(t, "/api/v1/posts", nil))

	assertStatusCode(t, w, http.StatusOK)
	posts, meta := unmarshalList[BlogPostResponse](t, w)

	if len(posts) != 1 {
		t.Fatalf("expected 1 published post, got %d", len(posts))
	}
	if posts[0].Title != "Published" {
		t.Errorf("expected post 'Published', got %s", posts[0].Title)
	}
	if meta == nil || meta.Total != 1 {
		t.Errorf("expected meta total 1, got %+v", meta)
	}
}

func TestListPosts_AuthenticatedSeesDrafts(t *testing.T) {
	_, h := testSetup(t)

	createTestPost(t, h, `{"title": "Published", "content": "c", "is_published": true}`)
	createTestPost(t, h, `{"title": "Draft", "content": "c"}`)

	req := withAPIKey(newGetRequest(t, "/api/v1/posts", nil), "content:read")
	w := executeHandler(t, h.ListPosts, req)

	assertStatusCode(t, w, http.StatusOK)
	posts, _ := unmarshalList[BlogPostResponse](t, w)

	if len(posts) != 2 {
		t.Errorf("expected 2 posts for an authenticated caller, got %d", len(posts))
	}
}

func TestListPosts_TagFilter(t *testing.T) {
	_, h := testSetup(t)

	createTestPost(t, h, `{"title": "Go Post", "content": "c", "tags": ["go"], "is_published": true}`)
	createTestPost(t, h, `{"title": "Rust Post", "content": "c", "tags": ["rust"], "is_published": true}`)

	w := executeHandler(t, h.ListPosts, newGetRequest(t, "/api/v1/posts?tag=go", nil))

	assertStatusCode(t, w, http.StatusOK)
	posts, _ := unmarshalList[BlogPostResponse](t, w)

	if len(posts) != 1 {
		t.Fatalf("expected 1 post, got %d", len(posts))
	}
	if posts[0].Title != "Go Post" {
		t.Errorf("expected post 'Go Post', got %s", posts[0].Title)
	}
}
