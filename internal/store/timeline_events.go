// Copyright (c) 2024-2026 Will Pereira
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/wpdev/portfolio-go/internal/model"
)

const timelineEventColumns = `id, title, description, date, type, icon_url,
	link_url, link_text, position, is_visible, created_at, updated_at`

func scanTimelineEvent(row interface{ Scan(...any) error }) (model.TimelineEvent, error) {
	var e model.TimelineEvent
	err := row.Scan(
		&e.ID, &e.Title, &e.Description, &e.Date, &e.Type, &e.IconURL,
		&e.LinkURL, &e.LinkText, &e.Position, &e.IsVisible,
		&e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

// CreateTimelineEventParams holds the fields for inserting a timeline event.
type CreateTimelineEventParams struct {
	Title       string
	Description string
	Date        time.Time
	Type        string
	IconURL     sql.NullString
	LinkURL     sql.NullString
	LinkText    sql.NullString
	Position    int64
}

const createTimelineEvent = `
INSERT INTO timeline_events (
	title, description, date, type, icon_url, link_url, link_text, position,
	is_visible, created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, 1, CURRENT_TIMESTAMP)
RETURNING ` + timelineEventColumns

func (q *Queries) CreateTimelineEvent(ctx context.Context, arg CreateTimelineEventParams) (model.TimelineEvent, error) {
	row := q.db.QueryRowContext(ctx, createTimelineEvent,
		arg.Title, arg.Description, arg.Date, arg.Type, arg.IconURL,
		arg.LinkURL, arg.LinkText, arg.Position,
	)
	return scanTimelineEvent(row)
}

const getTimelineEvent = `
SELECT ` + timelineEventColumns + ` FROM timeline_events WHERE id = ?`

// GetTimelineEvent returns an event regardless of its visible flag. Callers
// serving anonymous traffic check IsVisible themselves.
func (q *Queries) GetTimelineEvent(ctx context.Context, id int64) (model.TimelineEvent, error) {
	return scanTimelineEvent(q.db.QueryRowContext(ctx, getTimelineEvent, id))
}

// ListTimelineEventsParams filters the timeline listing. Zero values mean no
// filter.
type ListTimelineEventsParams struct {
	VisibleOnly bool
	Type        string
	Year        int64
	Limit       int64
	Offset      int64
}

const listTimelineEvents = `
SELECT ` + timelineEventColumns + `
FROM timeline_events
WHERE (? = 0 OR is_visible = 1)
  AND (? = '' OR type = ?)
  AND (? = 0 OR CAST(strftime('%Y', date) AS INTEGER) = ?)
ORDER BY position, date DESC
LIMIT ? OFFSET ?`

func (q *Queries) ListTimelineEvents(ctx context.Context, arg ListTimelineEventsParams) ([]model.TimelineEvent, error) {
	visible := int64(0)
	if arg.VisibleOnly {
		visible = 1
	}
	rows, err := q.db.QueryContext(ctx, listTimelineEvents,
		visible, arg.Type, arg.Type, arg.Year, arg.Year, arg.Limit, arg.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []model.TimelineEvent{}
	for rows.Next() {
		e, err := scanTimelineEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

const countTimelineEvents = `
SELECT COUNT(*)
FROM timeline_events
WHERE (? = 0 OR is_visible = 1)
  AND (? = '' OR type = ?)
  AND (? = 0 OR CAST(strftime('%Y', date) AS INTEGER) = ?)`

func (q *Queries) CountTimelineEvents(ctx context.Context, arg ListTimelineEventsParams) (int64, error) {
	visible := int64(0)
	if arg.VisibleOnly {
		visible = 1
	}
	var count int64
	err := q.db.QueryRowContext(ctx, countTimelineEvents,
		visible, arg.Type, arg.Type, arg.Year, arg.Year,
	).Scan(&count)
	return count, err
}

// UpdateTimelineEventParams holds the full set of mutable event fields.
type UpdateTimelineEventParams struct {
	ID          int64
	Title       string
	Description string
	Date        time.Time
	Type        string
	IconURL     sql.NullString
	LinkURL     sql.NullString
	LinkText    sql.NullString
	Position    int64
	IsVisible   bool
}

const updateTimelineEvent = `
UPDATE timeline_events SET
	title = ?, description = ?, date = ?, type = ?, icon_url = ?, link_url = ?,
	link_text = ?, position = ?, is_visible = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ?
RETURNING ` + timelineEventColumns

// UpdateTimelineEvent replaces all mutable fields, including the visible flag.
// A hidden event stays updatable so it can be restored.
func (q *Queries) UpdateTimelineEvent(ctx context.Context, arg UpdateTimelineEventParams) (model.TimelineEvent, error) {
	row := q.db.QueryRowContext(ctx, updateTimelineEvent,
		arg.Title, arg.Description, arg.Date, arg.Type, arg.IconURL,
		arg.LinkURL, arg.LinkText, arg.Position, arg.IsVisible, arg.ID,
	)
	return scanTimelineEvent(row)
}

const timelineEventExists = `SELECT EXISTS(SELECT 1 FROM timeline_events WHERE id = ?)`

func (q *Queries) TimelineEventExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := q.db.QueryRowContext(ctx, timelineEventExists, id).Scan(&exists)
	return exists, err
}

const softDeleteTimelineEvent = `
UPDATE timeline_events SET is_visible = 0, updated_at = CURRENT_TIMESTAMP
WHERE id = ? AND is_visible = 1`

// SoftDeleteTimelineEvent hides an event. Returns sql.ErrNoRows when the event
// does not exist or is already hidden.
func (q *Queries) SoftDeleteTimelineEvent(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, softDeleteTimelineEvent, id)
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
