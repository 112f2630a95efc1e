// Copyright (c) 2024-2026 Will Pereira
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"database/sql"

	"github.com/go-chi/chi/v5"

	"github.com/wpdev/portfolio-go/internal/handler"
	"github.com/wpdev/portfolio-go/internal/middleware"
	"github.com/wpdev/portfolio-go/internal/model"
	"github.com/wpdev/portfolio-go/internal/store"
	"github.com/wpdev/portfolio-go/internal/util"
)

// BlogPostResponse represents a blog post in API responses.
// ContentHTML is only populated on single-post endpoints.
type BlogPostResponse struct {
	ID               int64      `json:"id"`
	Title            string     `json:"title"`
	Slug             string     `json:"slug"`
	Excerpt          string     `json:"excerpt"`
	Content          string     `json:"content"`
	ContentHTML      string     `json:"content_html,omitempty"`
	FeaturedImageURL *string    `json:"featured_image_url,omitempty"`
	Tags             []string   `json:"tags"`
	IsFeatured       bool       `json:"is_featured"`
	IsPublished      bool       `json:"is_published"`
	PublishedAt      *time.Time `json:"published_at,omitempty"`
	ScheduledAt      *time.Time `json:"scheduled_at,omitempty"`
	ReadTimeMinutes  int64      `json:"read_time_minutes"`
	ViewCount        int64      `json:"view_count"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        *time.Time `json:"updated_at,omitempty"`
}

// CreateBlogPostRequest represents the request body for creating a post.
type CreateBlogPostRequest struct {
	Title            string   `json:"title"`
	Slug             string   `json:"slug"`
	Excerpt          string   `json:"excerpt"`
	Content          string   `json:"content"`
	FeaturedImageURL *string  `json:"featured_image_url,omitempty"`
	Tags             []string `json:"tags"`
	IsFeatured       bool     `json:"is_featured"`
	IsPublished      bool     `json:"is_published"`
	ScheduledAt      *string  `json:"scheduled_at,omitempty"`
}

// UpdateBlogPostRequest represents the request body for updating a post.
// Nil fields are left unchanged.
type UpdateBlogPostRequest struct {
	Title            *string   `json:"title,omitempty"`
	Slug             *string   `json:"slug,omitempty"`
	Excerpt          *string   `json:"excerpt,omitempty"`
	Content          *string   `json:"content,omitempty"`
	FeaturedImageURL *string   `json:"featured_image_url,omitempty"`
	Tags             *[]string `json:"tags,omitempty"`
	IsFeatured       *bool     `json:"is_featured,omitempty"`
	IsPublished      *bool     `json:"is_published,omitempty"`
	ScheduledAt      *string   `json:"scheduled_at,omitempty"`
}

func postToResponse(p model.BlogPost) BlogPostResponse {
	return BlogPostResponse{
		ID:               p.ID,
		Title:            p.Title,
		Slug:             p.Slug,
		Excerpt:          p.Excerpt,
		Content:          p.Content,
		FeaturedImageURL: util.StringPtrFromNull(p.FeaturedImageURL),
		Tags:             model.SplitTags(p.Tags),
		IsFeatured:       p.IsFeatured,
		IsPublished:      p.IsPublished,
		PublishedAt:      util.TimePtrFromNull(p.PublishedAt),
		ScheduledAt:      util.TimePtrFromNull(p.ScheduledAt),
		ReadTimeMinutes:  p.ReadTimeMinutes,
		ViewCount:        p.ViewCount,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        util.TimePtrFromNull(p.UpdatedAt),
	}
}

// renderPostHTML fills ContentHTML on a single-post response.
func (h *Handler) renderPostHTML(resp *BlogPostResponse) {
	html, err := h.markdown.Render(resp.Content)
	if err != nil {
		slog.Error("failed to render post content", "slug", resp.Slug, "error", err)
		return
	}
	resp.ContentHTML = html
}

// ListPosts handles GET /api/v1/posts
// Public: returns only published posts.
// With API key: returns all posts, or only published with ?published=true.
func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	page := handler.ParsePageParam(r)
	perPage := handler.ParsePerPageParam(r, 20, 100)

	publishedOnly := r.URL.Query().Get("published") == "true"
	if middleware.GetAPIKey(r) == nil {
		publishedOnly = true
	}

	params := store.ListBlogPostsParams{
		PublishedOnly: publishedOnly,
		FeaturedOnly:  r.URL.Query().Get("featured") == "true",
		Tag:           r.URL.Query().Get("tag"),
		Limit:         int64(perPage),
		Offset:        int64((page - 1) * perPage),
	}

	posts, err := h.queries.ListBlogPosts(ctx, params)
	if err != nil {
		WriteInternalError(w, "Failed to list posts")
		return
	}
	total, err := h.queries.CountBlogPosts(ctx, params)
	if err != nil {
		WriteInternalError(w, "Failed to list posts")
		return
	}

	responses := make([]BlogPostResponse, 0, len(posts))
	for _, p := range posts {
		responses = append(responses, postToResponse(p))
	}

	WriteSuccess(w, responses, paginationMeta(total, page, perPage))
}

// GetPost handles GET /api/v1/posts/{id}
// Public: returns only published posts.
func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	post, ok := requireEntityByID(w, r, "post", func(id int64) (model.BlogPost, error) {
		return h.queries.GetBlogPost(r.Context(), id)
	})
	if !ok {
		return
	}

	if !post.IsPublished && middleware.GetAPIKey(r) == nil {
		WriteNotFound(w, "Post not found")
		return
	}

	resp := postToResponse(post)
	h.renderPostHTML(&resp)
	WriteSuccess(w, resp, nil)
}

// GetPostBySlug handles GET /api/v1/posts/slug/{slug}
// Public: returns only published posts. Each successful lookup of a
// published post increments its view counter.
func (h *Handler) GetPostBySlug(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := chi.URLParam(r, "slug")
	if slug == "" {
		WriteBadRequest(w, "Slug is required", nil)
		return
	}

	post, err := h.cache.GetPostBySlug(ctx, slug)
	if err != nil {
		post, err = h.queries.GetBlogPostBySlug(ctx, slug)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				WriteNotFound(w, "Post not found")
			} else {
				WriteInternalError(w, "Failed to retrieve post")
			}
			return
		}
		if post.IsPublished {
			if cacheErr := h.cache.SetPostBySlug(ctx, post); cacheErr != nil {
				slog.Warn("failed to cache post", "slug", slug, "error", cacheErr)
			}
		}
	}

	if !post.IsPublished && middleware.GetAPIKey(r) == nil {
		WriteNotFound(w, "Post not found")
		return
	}

	if post.IsPublished {
		if err := h.queries.IncrementBlogPostViews(ctx, post.ID); err != nil {
			slog.Error("failed to increment view count", "slug", slug, "error", err)
		} else {
			post.ViewCount++
		}
	}

	resp := postToResponse(post)
	h.renderPostHTML(&resp)
	WriteSuccess(w, resp, nil)
}

// CreatePost handles POST /api/v1/posts
// Requires content:write permission. The slug defaults to a slugified
// title and must be unique across all posts.
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateBlogPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	fieldErrors := make(map[string]string)
	if req.Title == "" {
		fieldErrors["title"] = "Title is required"
	}
	if req.Content == "" {
		fieldErrors["content"] = "Content is required"
	}
	if req.Slug == "" {
		req.Slug = util.Slugify(req.Title)
	}
	if req.Slug == "" || !util.IsValidSlug(req.Slug) {
		fieldErrors["slug"] = "Invalid slug"
	}
	if len(fieldErrors) > 0 {
		WriteValidationError(w, fieldErrors)
		return
	}

	exists, err := h.queries.BlogSlugExists(ctx, req.Slug)
	if err != nil {
		WriteInternalError(w, "Failed to check slug")
		return
	}
	if exists {
		WriteConflict(w, "Slug already exists", map[string]string{"slug": req.Slug})
		return
	}

	params := store.CreateBlogPostParams{
		Title:            req.Title,
		Slug:             req.Slug,
		Excerpt:          req.Excerpt,
		Content:          req.Content,
		FeaturedImageURL: util.NullStringFromPtr(req.FeaturedImageURL),
		Tags:             model.JoinTags(req.Tags),
		IsFeatured:       req.IsFeatured,
		IsPublished:      req.IsPublished,
		ReadTimeMinutes:  h.markdown.EstimateReadTime(req.Content),
	}
	if req.IsPublished {
		params.PublishedAt = util.NullTimeNow()
	}
	if req.ScheduledAt != nil && *req.ScheduledAt != "" {
		t, parseErr := time.Parse(time.RFC3339, *req.ScheduledAt)
		if parseErr != nil {
			WriteValidationError(w, map[string]string{"scheduled_at": "Invalid date format. Use RFC3339 (e.g., 2026-01-01T00:00:00Z)"})
			return
		}
		params.ScheduledAt = sql.NullTime{Time: t, Valid: true}
	}

	post, err := h.queries.CreateBlogPost(ctx, params)
	if err != nil {
		WriteInternalError(w, "Failed to create post")
		return
	}

	_ = h.events.LogBlogEvent(ctx, model.EventLevelInfo, "post created: "+post.Slug, util.ClientIP(r), map[string]any{"post_id": post.ID})

	WriteCreated(w, postToResponse(post))
}

// UpdatePost handles PUT /api/v1/posts/{id}
// Requires content:write permission. Changing the slug re-checks
// uniqueness against all other posts; publishing for the first time
// stamps published_at.
func (h *Handler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	existing, ok := requireEntityByID(w, r, "post", func(id int64) (model.BlogPost, error) {
		return h.queries.GetBlogPost(ctx, id)
	})
	if !ok {
		return
	}

	var req UpdateBlogPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	params := store.UpdateBlogPostParams{
		ID:               existing.ID,
		Title:            existing.Title,
		Slug:             existing.Slug,
		Excerpt:          existing.Excerpt,
		Content:          existing.Content,
		FeaturedImageURL: existing.FeaturedImageURL,
		Tags:             existing.Tags,
		IsFeatured:       existing.IsFeatured,
		IsPublished:      existing.IsPublished,
		PublishedAt:      existing.PublishedAt,
		ScheduledAt:      existing.ScheduledAt,
		ReadTimeMinutes:  existing.ReadTimeMinutes,
	}

	if req.Title != nil {
		if *req.Title == "" {
			WriteValidationError(w, map[string]string{"title": "Title cannot be empty"})
			return
		}
		params.Title = *req.Title
	}
	if req.Slug != nil && *req.Slug != existing.Slug {
		if !util.IsValidSlug(*req.Slug) {
			WriteValidationError(w, map[string]string{"slug": "Invalid slug"})
			return
		}
		exists, err := h.queries.BlogSlugExistsExcluding(ctx, *req.Slug, existing.ID)
		if err != nil {
			WriteInternalError(w, "Failed to check slug")
			return
		}
		if exists {
			WriteConflict(w, "Slug already exists", map[string]string{"slug": *req.Slug})
			return
		}
		params.Slug = *req.Slug
	}
	if req.Excerpt != nil {
		params.Excerpt = *req.Excerpt
	}
	if req.Content != nil {
		if *req.Content == "" {
			WriteValidationError(w, map[string]string{"content": "Content cannot be empty"})
			return
		}
		params.Content = *req.Content
		params.ReadTimeMinutes = h.markdown.EstimateReadTime(*req.Content)
	}
	if req.FeaturedImageURL != nil {
		params.FeaturedImageURL = util.NullStringFromValue(*req.FeaturedImageURL)
	}
	if req.Tags != nil {
		params.Tags = model.JoinTags(*req.Tags)
	}
	if req.IsFeatured != nil {
		params.IsFeatured = *req.IsFeatured
	}
	if req.IsPublished != nil {
		params.IsPublished = *req.IsPublished
		// First publish stamps published_at; it is kept on unpublish.
		if *req.IsPublished && !existing.PublishedAt.Valid {
			params.PublishedAt = util.NullTimeNow()
		}
	}
	if req.ScheduledAt != nil {
		if *req.ScheduledAt == "" {
			params.ScheduledAt = sql.NullTime{}
		} else {
			t, parseErr := time.Parse(time.RFC3339, *req.ScheduledAt)
			if parseErr != nil {
				WriteValidationError(w, map[string]string{"scheduled_at": "Invalid date format. Use RFC3339"})
				return
			}
			params.ScheduledAt = sql.NullTime{Time: t, Valid: true}
		}
	}

	post, err := h.queries.UpdateBlogPost(ctx, params)
	if err != nil {
		WriteInternalError(w, "Failed to update post")
		return
	}

	if err := h.cache.InvalidatePost(ctx, existing.Slug); err != nil {
		slog.Warn("failed to invalidate post cache", "slug", existing.Slug, "error", err)
	}
	if post.Slug != existing.Slug {
		if err := h.cache.InvalidatePost(ctx, post.Slug); err != nil {
			slog.Warn("failed to invalidate post cache", "slug", post.Slug, "error", err)
		}
	}

	WriteSuccess(w, postToResponse(post), nil)
}

// DeletePost handles DELETE /api/v1/posts/{id}
// Posts are hard-deleted: the row is removed and the slug becomes
// available again. Requires content:write permission.
func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	post, ok := requireEntityByID(w, r, "post", func(id int64) (model.BlogPost, error) {
		return h.queries.GetBlogPost(ctx, id)
	})
	if !ok {
		return
	}

	if err := h.queries.DeleteBlogPost(ctx, post.ID); err != nil {
		WriteInternalError(w, "Failed to delete post")
		return
	}

	if err := h.cache.InvalidatePost(ctx, post.Slug); err != nil {
		slog.Warn("failed to invalidate post cache", "slug", post.Slug, "error", err)
	}

	_ = h.events.LogBlogEvent(ctx, model.EventLevelInfo, "post deleted: "+post.Slug, util.ClientIP(r), map[string]any{"post_id": post.ID})

	WriteNoContent(w)
}
