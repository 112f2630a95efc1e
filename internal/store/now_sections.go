// Copyright (c) 2024-2026 Will Pereira
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"

	"github.com/wpdev/portfolio-go/internal/model"
)

const nowSectionColumns = `id, content, current_project, current_project_url,
	currently_learning, current_goals, is_active, created_at, updated_at`

func scanNowSection(row interface{ Scan(...any) error }) (model.NowSection, error) {
	var s model.NowSection
	err := row.Scan(
		&s.ID, &s.Content, &s.CurrentProject, &s.CurrentProjectURL,
		&s.CurrentlyLearning, &s.CurrentGoals, &s.IsActive,
		&s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

// CreateNowSectionParams holds the fields for inserting a now section.
// New sections are always created active; callers must deactivate the rest
// first to keep a single active row.
type CreateNowSectionParams struct {
	Content           string
	CurrentProject    sql.NullString
	CurrentProjectURL sql.NullString
	CurrentlyLearning string
	CurrentGoals      string
}

const createNowSection = `
INSERT INTO now_sections (
	content, current_project, current_project_url, currently_learning,
	current_goals, is_active, created_at, updated_at
) VALUES (?, ?, ?, ?, ?, 1, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
RETURNING ` + nowSectionColumns

func (q *Queries) CreateNowSection(ctx context.Context, arg CreateNowSectionParams) (model.NowSection, error) {
	row := q.db.QueryRowContext(ctx, createNowSection,
		arg.Content, arg.CurrentProject, arg.CurrentProjectURL,
		arg.CurrentlyLearning, arg.CurrentGoals,
	)
	return scanNowSection(row)
}

const getNowSection = `
SELECT ` + nowSectionColumns + ` FROM now_sections WHERE id = ?`

func (q *Queries) GetNowSection(ctx context.Context, id int64) (model.NowSection, error) {
	return scanNowSection(q.db.QueryRowContext(ctx, getNowSection, id))
}

const nowSectionExists = `SELECT EXISTS(SELECT 1 FROM now_sections WHERE id = ?)`

func (q *Queries) NowSectionExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := q.db.QueryRowContext(ctx, nowSectionExists, id).Scan(&exists)
	return exists, err
}

const getActiveNowSection = `
SELECT ` + nowSectionColumns + `
FROM now_sections
WHERE is_active = 1
ORDER BY updated_at DESC
LIMIT 1`

// GetActiveNowSection returns the single active section, or sql.ErrNoRows
// when none is active.
func (q *Queries) GetActiveNowSection(ctx context.Context) (model.NowSection, error) {
	return scanNowSection(q.db.QueryRowContext(ctx, getActiveNowSection))
}

const listNowSections = `
SELECT ` + nowSectionColumns + `
FROM now_sections
ORDER BY updated_at DESC
LIMIT ? OFFSET ?`

func (q *Queries) ListNowSections(ctx context.Context, limit, offset int64) ([]model.NowSection, error) {
	rows, err := q.db.QueryContext(ctx, listNowSections, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sections := []model.NowSection{}
	for rows.Next() {
		s, err := scanNowSection(rows)
		if err != nil {
			return nil, err
		}
		sections = append(sections, s)
	}
	return sections, rows.Err()
}

const countNowSections = `SELECT COUNT(*) FROM now_sections`

func (q *Queries) CountNowSections(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countNowSections).Scan(&count)
	return count, err
}

// UpdateNowSectionParams holds the full set of mutable section fields.
type UpdateNowSectionParams struct {
	ID                int64
	Content           string
	CurrentProject    sql.NullString
	CurrentProjectURL sql.NullString
	CurrentlyLearning string
	CurrentGoals      string
	IsActive          bool
}

const updateNowSection = `
UPDATE now_sections SET
	content = ?, current_project = ?, current_project_url = ?,
	currently_learning = ?, current_goals = ?, is_active = ?,
	updated_at = CURRENT_TIMESTAMP
WHERE id = ?
RETURNING ` + nowSectionColumns

func (q *Queries) UpdateNowSection(ctx context.Context, arg UpdateNowSectionParams) (model.NowSection, error) {
	row := q.db.QueryRowContext(ctx, updateNowSection,
		arg.Content, arg.CurrentProject, arg.CurrentProjectURL,
		arg.CurrentlyLearning, arg.CurrentGoals, arg.IsActive, arg.ID,
	)
	return scanNowSection(row)
}

const deactivateNowSections = `
UPDATE now_sections SET is_active = 0, updated_at = CURRENT_TIMESTAMP
WHERE is_active = 1`

// DeactivateNowSections turns off every active section. Called before an
// activating write to keep at most one active row.
func (q *Queries) DeactivateNowSections(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, deactivateNowSections)
	return err
}

const deactivateNowSectionsExcluding = `
UPDATE now_sections SET is_active = 0, updated_at = CURRENT_TIMESTAMP
WHERE is_active = 1 AND id != ?`

func (q *Queries) DeactivateNowSectionsExcluding(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deactivateNowSectionsExcluding, id)
	return err
}

const softDeleteNowSection = `
UPDATE now_sections SET is_active = 0, updated_at = CURRENT_TIMESTAMP
WHERE id = ? AND is_active = 1`

// SoftDeleteNowSection deactivates a section. Returns sql.ErrNoRows when the
// section does not exist or is already inactive.
func (q *Queries) SoftDeleteNowSection(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, softDeleteNowSection, id)
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
