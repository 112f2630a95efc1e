// Copyright (c) 2024-2026 Will Pereira
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"

	"github.com/wpdev/portfolio-go/internal/model"
)

const blogPostColumns = `id, title, slug, excerpt, content, featured_image_url, tags,
	is_featured, is_published, published_at, scheduled_at, read_time_minutes,
	view_count, author_id, created_at, updated_at`

func scanBlogPost(row interface{ Scan(...any) error }) (model.BlogPost, error) {
	var p model.BlogPost
	err := row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Content, &p.FeaturedImageURL,
		&p.Tags, &p.IsFeatured, &p.IsPublished, &p.PublishedAt, &p.ScheduledAt,
		&p.ReadTimeMinutes, &p.ViewCount, &p.AuthorID, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

// CreateBlogPostParams holds the fields for inserting a blog post.
type CreateBlogPostParams struct {
	Title            string
	Slug             string
	Excerpt          string
	Content          string
	FeaturedImageURL sql.NullString
	Tags             string
	IsFeatured       bool
	IsPublished      bool
	PublishedAt      sql.NullTime
	ScheduledAt      sql.NullTime
	ReadTimeMinutes  int64
	AuthorID         sql.NullInt64
}

const createBlogPost = `
INSERT INTO blog_posts (
	title, slug, excerpt, content, featured_image_url, tags, is_featured,
	is_published, published_at, scheduled_at, read_time_minutes, view_count,
	author_id, created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, ?, CURRENT_TIMESTAMP)
RETURNING ` + blogPostColumns

func (q *Queries) CreateBlogPost(ctx context.Context, arg CreateBlogPostParams) (model.BlogPost, error) {
	row := q.db.QueryRowContext(ctx, createBlogPost,
		arg.Title, arg.Slug, arg.Excerpt, arg.Content, arg.FeaturedImageURL,
		arg.Tags, arg.IsFeatured, arg.IsPublished, arg.PublishedAt,
		arg.ScheduledAt, arg.ReadTimeMinutes, arg.AuthorID,
	)
	return scanBlogPost(row)
}

const getBlogPost = `SELECT ` + blogPostColumns + ` FROM blog_posts WHERE id = ?`

func (q *Queries) GetBlogPost(ctx context.Context, id int64) (model.BlogPost, error) {
	return scanBlogPost(q.db.QueryRowContext(ctx, getBlogPost, id))
}

const getBlogPostBySlug = `SELECT ` + blogPostColumns + ` FROM blog_posts WHERE slug = ?`

func (q *Queries) GetBlogPostBySlug(ctx context.Context, slug string) (model.BlogPost, error) {
	return scanBlogPost(q.db.QueryRowContext(ctx, getBlogPostBySlug, slug))
}

// ListBlogPostsParams filters the blog post listing.
type ListBlogPostsParams struct {
	PublishedOnly bool
	FeaturedOnly  bool
	Tag           string
	Limit         int64
	Offset        int64
}

const listBlogPosts = `
SELECT ` + blogPostColumns + `
FROM blog_posts
WHERE (? = 0 OR is_published = 1)
  AND (? = 0 OR is_featured = 1)
  AND (? = '' OR ',' || tags || ',' LIKE '%,' || ? || ',%')
ORDER BY created_at DESC
LIMIT ? OFFSET ?`

func (q *Queries) ListBlogPosts(ctx context.Context, arg ListBlogPostsParams) ([]model.BlogPost, error) {
	published, featured := int64(0), int64(0)
	if arg.PublishedOnly {
		published = 1
	}
	if arg.FeaturedOnly {
		featured = 1
	}
	rows, err := q.db.QueryContext(ctx, listBlogPosts,
		published, featured, arg.Tag, arg.Tag, arg.Limit, arg.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []model.BlogPost{}
	for rows.Next() {
		p, err := scanBlogPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

const countBlogPosts = `
SELECT COUNT(*)
FROM blog_posts
WHERE (? = 0 OR is_published = 1)
  AND (? = 0 OR is_featured = 1)
  AND (? = '' OR ',' || tags || ',' LIKE '%,' || ? || ',%')`

func (q *Queries) CountBlogPosts(ctx context.Context, arg ListBlogPostsParams) (int64, error) {
	published, featured := int64(0), int64(0)
	if arg.PublishedOnly {
		published = 1
	}
	if arg.FeaturedOnly {
		featured = 1
	}
	var count int64
	err := q.db.QueryRowContext(ctx, countBlogPosts,
		published, featured, arg.Tag, arg.Tag,
	).Scan(&count)
	return count, err
}

// UpdateBlogPostParams holds the full set of mutable blog post fields.
type UpdateBlogPostParams struct {
	ID               int64
	Title            string
	Slug             string
	Excerpt          string
	Content          string
	FeaturedImageURL sql.NullString
	Tags             string
	IsFeatured       bool
	IsPublished      bool
	PublishedAt      sql.NullTime
	ScheduledAt      sql.NullTime
	ReadTimeMinutes  int64
}

const updateBlogPost = `
UPDATE blog_posts SET
	title = ?, slug = ?, excerpt = ?, content = ?, featured_image_url = ?,
	tags = ?, is_featured = ?, is_published = ?, published_at = ?,
	scheduled_at = ?, read_time_minutes = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ?
RETURNING ` + blogPostColumns

func (q *Queries) UpdateBlogPost(ctx context.Context, arg UpdateBlogPostParams) (model.BlogPost, error) {
	row := q.db.QueryRowContext(ctx, updateBlogPost,
		arg.Title, arg.Slug, arg.Excerpt, arg.Content, arg.FeaturedImageURL,
		arg.Tags, arg.IsFeatured, arg.IsPublished, arg.PublishedAt,
		arg.ScheduledAt, arg.ReadTimeMinutes, arg.ID,
	)
	return scanBlogPost(row)
}

const deleteBlogPost = `DELETE FROM blog_posts WHERE id = ?`

// DeleteBlogPost removes a post permanently. Returns sql.ErrNoRows when the
// post does not exist.
func (q *Queries) DeleteBlogPost(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, deleteBlogPost, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

const incrementBlogPostViews = `
UPDATE blog_posts SET view_count = view_count + 1 WHERE id = ?`

func (q *Queries) IncrementBlogPostViews(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, incrementBlogPostViews, id)
	return err
}

const blogPostExists = `SELECT EXISTS(SELECT 1 FROM blog_posts WHERE id = ?)`

func (q *Queries) BlogPostExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := q.db.QueryRowContext(ctx, blogPostExists, id).Scan(&exists)
	return exists, err
}

const blogSlugExists = `SELECT EXISTS(SELECT 1 FROM blog_posts WHERE slug = ?)`

func (q *Queries) BlogSlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := q.db.QueryRowContext(ctx, blogSlugExists, slug).Scan(&exists)
	return exists, err
}

const blogSlugExistsExcluding = `
SELECT EXISTS(SELECT 1 FROM blog_posts WHERE slug = ? AND id != ?)`

func (q *Queries) BlogSlugExistsExcluding(ctx context.Context, slug string, excludeID int64) (bool, error) {
	var exists bool
	err := q.db.QueryRowContext(ctx, blogSlugExistsExcluding, slug, excludeID).Scan(&exists)
	return exists, err
}

const listScheduledBlogPosts = `
SELECT ` + blogPostColumns + `
FROM blog_posts
WHERE is_published = 0 AND scheduled_at IS NOT NULL AND scheduled_at <= ?
ORDER BY scheduled_at`

// ListScheduledBlogPosts returns unpublished posts whose scheduled time has
// passed.
func (q *Queries) ListScheduledBlogPosts(ctx context.Context, now sql.NullTime) ([]model.BlogPost, error) {
	rows, err := q.db.QueryContext(ctx, listScheduledBlogPosts, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []model.BlogPost{}
	for rows.Next() {
		p, err := scanBlogPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

const publishBlogPost = `
UPDATE blog_posts SET
	is_published = 1, published_at = COALESCE(published_at, ?), scheduled_at = NULL,
	updated_at = CURRENT_TIMESTAMP
WHERE id = ? AND is_published = 0`

// PublishBlogPost flips a draft to published. The publish time is stamped only
// when the draft has none, so a republished post keeps its original date.
func (q *Queries) PublishBlogPost(ctx context.Context, id int64, publishedAt sql.NullTime) error {
	res, err := q.db.ExecContext(ctx, publishBlogPost, publishedAt, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
