// Copyright (c) 2024-2026 Will Pereira
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"

	"github.com/wpdev/portfolio-go/internal/model"
)

const galleryImageColumns = `id, title, description, image_url, thumbnail_url,
	alt_text, tags, position, is_visible, width, height, file_size_bytes,
	created_at, updated_at`

func scanGalleryImage(row interface{ Scan(...any) error }) (model.GalleryImage, error) {
	var img model.GalleryImage
	err := row.Scan(
		&img.ID, &img.Title, &img.Description, &img.ImageURL, &img.ThumbnailURL,
		&img.AltText, &img.Tags, &img.Position, &img.IsVisible, &img.Width,
		&img.Height, &img.FileSizeBytes, &img.CreatedAt, &img.UpdatedAt,
	)
	return img, err
}

// CreateGalleryImageParams holds the fields for inserting a gallery image.
type CreateGalleryImageParams struct {
	Title         string
	Description   sql.NullString
	ImageURL      string
	ThumbnailURL  sql.NullString
	AltText       string
	Tags          string
	Position      int64
	Width         int64
	Height        int64
	FileSizeBytes int64
}

const createGalleryImage = `
INSERT INTO gallery_images (
	title, description, image_url, thumbnail_url, alt_text, tags, position,
	is_visible, width, height, file_size_bytes, created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, 1, ?, ?, ?, CURRENT_TIMESTAMP)
RETURNING ` + galleryImageColumns

func (q *Queries) CreateGalleryImage(ctx context.Context, arg CreateGalleryImageParams) (model.GalleryImage, error) {
	row := q.db.QueryRowContext(ctx, createGalleryImage,
		arg.Title, arg.Description, arg.ImageURL, arg.ThumbnailURL, arg.AltText,
		arg.Tags, arg.Position, arg.Width, arg.Height, arg.FileSizeBytes,
	)
	return scanGalleryImage(row)
}

const getGalleryImage = `
SELECT ` + galleryImageColumns + ` FROM gallery_images WHERE id = ?`

// GetGalleryImage returns an image regardless of its visible flag. Callers
// serving anonymous traffic check IsVisible themselves.
func (q *Queries) GetGalleryImage(ctx context.Context, id int64) (model.GalleryImage, error) {
	return scanGalleryImage(q.db.QueryRowContext(ctx, getGalleryImage, id))
}

// ListGalleryImagesParams filters the gallery listing. Zero values mean no
// filter.
type ListGalleryImagesParams struct {
	VisibleOnly bool
	Tag         string
	Limit       int64
	Offset      int64
}

const listGalleryImages = `
SELECT ` + galleryImageColumns + `
FROM gallery_images
WHERE (? = 0 OR is_visible = 1)
  AND (? = '' OR ',' || tags || ',' LIKE '%,' || ? || ',%')
ORDER BY position, created_at DESC
LIMIT ? OFFSET ?`

func (q *Queries) ListGalleryImages(ctx context.Context, arg ListGalleryImagesParams) ([]model.GalleryImage, error) {
	visible := int64(0)
	if arg.VisibleOnly {
		visible = 1
	}
	rows, err := q.db.QueryContext(ctx, listGalleryImages,
		visible, arg.Tag, arg.Tag, arg.Limit, arg.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	images := []model.GalleryImage{}
	for rows.Next() {
		img, err := scanGalleryImage(rows)
		if err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

const countGalleryImages = `
SELECT COUNT(*)
FROM gallery_images
WHERE (? = 0 OR is_visible = 1)
  AND (? = '' OR ',' || tags || ',' LIKE '%,' || ? || ',%')`

func (q *Queries) CountGalleryImages(ctx context.Context, arg ListGalleryImagesParams) (int64, error) {
	visible := int64(0)
	if arg.VisibleOnly {
		visible = 1
	}
	var count int64
	err := q.db.QueryRowContext(ctx, countGalleryImages, visible, arg.Tag, arg.Tag).Scan(&count)
	return count, err
}

// UpdateGalleryImageParams holds the full set of mutable image fields.
type UpdateGalleryImageParams struct {
	ID            int64
	Title         string
	Description   sql.NullString
	ImageURL      string
	ThumbnailURL  sql.NullString
	AltText       string
	Tags          string
	Position      int64
	Width         int64
	Height        int64
	FileSizeBytes int64
	IsVisible     bool
}

const updateGalleryImage = `
UPDATE gallery_images SET
	title = ?, description = ?, image_url = ?, thumbnail_url = ?, alt_text = ?,
	tags = ?, position = ?, width = ?, height = ?, file_size_bytes = ?,
	is_visible = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ?
RETURNING ` + galleryImageColumns

// UpdateGalleryImage replaces all mutable fields, including the visible flag.
// A hidden image stays updatable so it can be restored.
func (q *Queries) UpdateGalleryImage(ctx context.Context, arg UpdateGalleryImageParams) (model.GalleryImage, error) {
	row := q.db.QueryRowContext(ctx, updateGalleryImage,
		arg.Title, arg.Description, arg.ImageURL, arg.ThumbnailURL, arg.AltText,
		arg.Tags, arg.Position, arg.Width, arg.Height, arg.FileSizeBytes,
		arg.IsVisible, arg.ID,
	)
	return scanGalleryImage(row)
}

const galleryImageExists = `SELECT EXISTS(SELECT 1 FROM gallery_images WHERE id = ?)`

func (q *Queries) GalleryImageExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := q.db.QueryRowContext(ctx, galleryImageExists, id).Scan(&exists)
	return exists, err
}

const softDeleteGalleryImage = `
UPDATE gallery_images SET is_visible = 0, updated_at = CURRENT_TIMESTAMP
WHERE id = ? AND is_visible = 1`

// SoftDeleteGalleryImage hides an image. Returns sql.ErrNoRows when the image
// does not exist or is already hidden.
func (q *Queries) SoftDeleteGalleryImage(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, softDeleteGalleryImage, id)
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
