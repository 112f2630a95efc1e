// Copyright (c) 2024-2026 Will Pereira
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/wpdev/portfolio-go/internal/model"
)

// Cache key prefixes for content objects.
const (
	keyActiveNow  = "now:active"
	keyPostPrefix = "post:slug:"
)

// ContentCache caches hot public content (the active now section and
// published posts by slug) on top of a Cacher backend. Mutating handlers
// must call the matching Invalidate method.
type ContentCache struct {
	backend Cacher
	ttl     time.Duration
}

// NewContentCache creates a ContentCache over the given backend.
func NewContentCache(backend Cacher, ttl time.Duration) *ContentCache {
	return &ContentCache{backend: backend, ttl: ttl}
}

// GetActiveNowSection returns the cached active now section, or ErrCacheMiss.
func (c *ContentCache) GetActiveNowSection(ctx context.Context) (model.NowSection, error) {
	var section model.NowSection
	data, err := c.backend.Get(ctx, keyActiveNow)
	if err != nil {
		return section, err
	}
	if err := json.Unmarshal(data, &section); err != nil {
		// Stale or corrupt entry, drop it
		_ = c.backend.Delete(ctx, keyActiveNow)
		return section, ErrCacheMiss
	}
	return section, nil
}

// SetActiveNowSection caches the active now section.
func (c *ContentCache) SetActiveNowSection(ctx context.Context, section model.NowSection) error {
	data, err := json.Marshal(section)
	if err != nil {
		return err
	}
	return c.backend.Set(ctx, keyActiveNow, data, c.ttl)
}

// InvalidateNowSection drops the cached active now section.
func (c *ContentCache) InvalidateNowSection(ctx context.Context) error {
	return c.backend.Delete(ctx, keyActiveNow)
}

// GetPostBySlug returns a cached published post, or ErrCacheMiss.
func (c *ContentCache) GetPostBySlug(ctx context.Context, slug string) (model.BlogPost, error) {
	var post model.BlogPost
	data, err := c.backend.Get(ctx, keyPostPrefix+slug)
	if err != nil {
		return post, err
	}
	if err := json.Unmarshal(data, &post); err != nil {
		_ = c.backend.Delete(ctx, keyPostPrefix+slug)
		return post, ErrCacheMiss
	}
	return post, nil
}

// SetPostBySlug caches a published post under its slug.
func (c *ContentCache) SetPostBySlug(ctx context.Context, post model.BlogPost) error {
	data, err := json.Marshal(post)
	if err != nil {
		return err
	}
	return c.backend.Set(ctx, keyPostPrefix+post.Slug, data, c.ttl)
}

// InvalidatePost drops a cached post by slug.
func (c *ContentCache) InvalidatePost(ctx context.Context, slug string) error {
	return c.backend.Delete(ctx, keyPostPrefix+slug)
}

// InvalidateAllPosts drops every cached post.
func (c *ContentCache) InvalidateAllPosts(ctx context.Context) error {
	return c.backend.DeleteByPrefix(ctx, keyPostPrefix)
}
