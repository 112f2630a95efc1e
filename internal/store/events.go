// Copyright (c) 2024-2026 Will Pereira
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"

	"github.com/wpdev/portfolio-go/internal/model"
)

// CreateEventParams holds the fields for inserting an event log entry.
type CreateEventParams struct {
	Level     string
	Category  string
	Message   string
	Metadata  string
	IpAddress string
}

const createEvent = `
INSERT INTO events (level, category, message, metadata, ip_address, created_at)
VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)`

func (q *Queries) CreateEvent(ctx context.Context, arg CreateEventParams) error {
	_, err := q.db.ExecContext(ctx, createEvent,
		arg.Level, arg.Category, arg.Message, arg.Metadata, arg.IpAddress,
	)
	return err
}

const listEvents = `
SELECT id, level, category, message, metadata, ip_address, created_at
FROM events
WHERE (? = '' OR level = ?)
  AND (? = '' OR category = ?)
ORDER BY created_at DESC
LIMIT ? OFFSET ?`

// ListEventsParams filters the event log listing.
type ListEventsParams struct {
	Level    string
	Category string
	Limit    int64
	Offset   int64
}

func (q *Queries) ListEvents(ctx context.Context, arg ListEventsParams) ([]model.Event, error) {
	rows, err := q.db.QueryContext(ctx, listEvents,
		arg.Level, arg.Level, arg.Category, arg.Category, arg.Limit, arg.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []model.Event{}
	for rows.Next() {
		var e model.Event
		if err := rows.Scan(
			&e.ID, &e.Level, &e.Category, &e.Message, &e.Metadata,
			&e.IpAddress, &e.CreatedAt,
		); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

const countEvents = `SELECT COUNT(*) FROM events`

func (q *Queries) CountEvents(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countEvents).Scan(&count)
	return count, err
}

const pruneEvents = `
DELETE FROM events WHERE created_at < datetime('now', '-' || ? || ' days')`

// PruneEvents removes event log entries older than the given number of days.
func (q *Queries) PruneEvents(ctx context.Context, days int64) (int64, error) {
	res, err := q.db.ExecContext(ctx, pruneEvents, days)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
