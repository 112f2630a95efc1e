// Copyright (c) 2024-2026 Will Pereira
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"

	"github.com/wpdev/portfolio-go/internal/model"
)

const projectColumns = `id, title, description, short_description, image_url, demo_url,
	repository_url, technologies, year, is_featured, status, rarity, attack_points,
	defense_points, flavor_text, is_active, created_at, updated_at`

func scanProject(row interface{ Scan(...any) error }) (model.Project, error) {
	var p model.Project
	err := row.Scan(
		&p.ID, &p.Title, &p.Description, &p.ShortDescription, &p.ImageURL,
		&p.DemoURL, &p.RepositoryURL, &p.Technologies, &p.Year, &p.IsFeatured,
		&p.Status, &p.Rarity, &p.AttackPoints, &p.DefensePoints, &p.FlavorText,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

// CreateProjectParams holds the fields for inserting a project.
type CreateProjectParams struct {
	Title            string
	Description      string
	ShortDescription sql.NullString
	ImageURL         string
	DemoURL          sql.NullString
	RepositoryURL    sql.NullString
	Technologies     string
	Year             int64
	IsFeatured       bool
	Status           string
	Rarity           string
	AttackPoints     int64
	DefensePoints    int64
	FlavorText       sql.NullString
}

const createProject = `
INSERT INTO projects (
	title, description, short_description, image_url, demo_url, repository_url,
	technologies, year, is_featured, status, rarity, attack_points, defense_points,
	flavor_text, is_active, created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1, CURRENT_TIMESTAMP)
RETURNING ` + projectColumns

func (q *Queries) CreateProject(ctx context.Context, arg CreateProjectParams) (model.Project, error) {
	row := q.db.QueryRowContext(ctx, createProject,
		arg.Title, arg.Description, arg.ShortDescription, arg.ImageURL,
		arg.DemoURL, arg.RepositoryURL, arg.Technologies, arg.Year,
		arg.IsFeatured, arg.Status, arg.Rarity, arg.AttackPoints,
		arg.DefensePoints, arg.FlavorText,
	)
	return scanProject(row)
}

const getProject = `SELECT ` + projectColumns + ` FROM projects WHERE id = ?`

// GetProject returns a project regardless of its active flag. Callers serving
// anonymous traffic check IsActive themselves.
func (q *Queries) GetProject(ctx context.Context, id int64) (model.Project, error) {
	return scanProject(q.db.QueryRowContext(ctx, getProject, id))
}

// ListProjectsParams filters the project listing. Zero values mean no filter.
type ListProjectsParams struct {
	ActiveOnly   bool
	FeaturedOnly bool
	Year         int64
	Technology   string
	Limit        int64
	Offset       int64
}

const listProjects = `
SELECT ` + projectColumns + `
FROM projects
WHERE (? = 0 OR is_active = 1)
  AND (? = 0 OR is_featured = 1)
  AND (? = 0 OR year = ?)
  AND (? = '' OR ',' || technologies || ',' LIKE '%,' || ? || ',%')
ORDER BY created_at DESC
LIMIT ? OFFSET ?`

func (q *Queries) ListProjects(ctx context.Context, arg ListProjectsParams) ([]model.Project, error) {
	active := int64(0)
	if arg.ActiveOnly {
		active = 1
	}
	featured := int64(0)
	if arg.FeaturedOnly {
		featured = 1
	}
	rows, err := q.db.QueryContext(ctx, listProjects,
		active, featured, arg.Year, arg.Year, arg.Technology, arg.Technology,
		arg.Limit, arg.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := []model.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

const countProjects = `
SELECT COUNT(*)
FROM projects
WHERE (? = 0 OR is_active = 1)
  AND (? = 0 OR is_featured = 1)
  AND (? = 0 OR year = ?)
  AND (? = '' OR ',' || technologies || ',' LIKE '%,' || ? || ',%')`

func (q *Queries) CountProjects(ctx context.Context, arg ListProjectsParams) (int64, error) {
	active := int64(0)
	if arg.ActiveOnly {
		active = 1
	}
	featured := int64(0)
	if arg.FeaturedOnly {
		featured = 1
	}
	var count int64
	err := q.db.QueryRowContext(ctx, countProjects,
		active, featured, arg.Year, arg.Year, arg.Technology, arg.Technology,
	).Scan(&count)
	return count, err
}

// UpdateProjectParams holds the full set of mutable project fields.
type UpdateProjectParams struct {
	ID               int64
	Title            string
	Description      string
	ShortDescription sql.NullString
	ImageURL         string
	DemoURL          sql.NullString
	RepositoryURL    sql.NullString
	Technologies     string
	Year             int64
	IsFeatured       bool
	Status           string
	Rarity           string
	AttackPoints     int64
	DefensePoints    int64
	FlavorText       sql.NullString
	IsActive         bool
}

const updateProject = `
UPDATE projects SET
	title = ?, description = ?, short_description = ?, image_url = ?, demo_url = ?,
	repository_url = ?, technologies = ?, year = ?, is_featured = ?, status = ?,
	rarity = ?, attack_points = ?, defense_points = ?, flavor_text = ?, is_active = ?,
	updated_at = CURRENT_TIMESTAMP
WHERE id = ?
RETURNING ` + projectColumns

// UpdateProject replaces all mutable fields, including the active flag. An
// inactive project stays updatable so it can be restored.
func (q *Queries) UpdateProject(ctx context.Context, arg UpdateProjectParams) (model.Project, error) {
	row := q.db.QueryRowContext(ctx, updateProject,
		arg.Title, arg.Description, arg.ShortDescription, arg.ImageURL,
		arg.DemoURL, arg.RepositoryURL, arg.Technologies, arg.Year,
		arg.IsFeatured, arg.Status, arg.Rarity, arg.AttackPoints,
		arg.DefensePoints, arg.FlavorText, arg.IsActive, arg.ID,
	)
	return scanProject(row)
}

const projectExists = `SELECT EXISTS(SELECT 1 FROM projects WHERE id = ?)`

func (q *Queries) ProjectExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := q.db.QueryRowContext(ctx, projectExists, id).Scan(&exists)
	return exists, err
}

const softDeleteProject = `
UPDATE projects SET is_active = 0, updated_at = CURRENT_TIMESTAMP
WHERE id = ? AND is_active = 1`

// SoftDeleteProject marks a project inactive. Returns sql.ErrNoRows when the
// project does not exist or is already inactive.
func (q *Queries) SoftDeleteProject(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, softDeleteProject, id)
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
