// Copyright (c) 2024-2026 Will Pereira
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"

	"github.com/wpdev/portfolio-go/internal/model"
)

const contactMessageColumns = `id, reference, name, email, subject, message, type,
	status, ip_address, user_agent, country, response_message, responded_at,
	created_at, updated_at`

func scanContactMessage(row interface{ Scan(...any) error }) (model.ContactMessage, error) {
	var m model.ContactMessage
	err := row.Scan(
		&m.ID, &m.Reference, &m.Name, &m.Email, &m.Subject, &m.Message,
		&m.Type, &m.Status, &m.IpAddress, &m.UserAgent, &m.Country,
		&m.ResponseMessage, &m.RespondedAt, &m.CreatedAt, &m.UpdatedAt,
	)
	return m, err
}

// CreateContactMessageParams holds the fields for inserting a contact message.
// Status is always forced to new on insert.
type CreateContactMessageParams struct {
	Reference string
	Name      string
	Email     string
	Subject   string
	Message   string
	Type      string
	IpAddress sql.NullString
	UserAgent sql.NullString
	Country   sql.NullString
}

const createContactMessage = `
INSERT INTO contact_messages (
	reference, name, email, subject, message, type, status, ip_address,
	user_agent, country, created_at
) VALUES (?, ?, ?, ?, ?, ?, 'new', ?, ?, ?, CURRENT_TIMESTAMP)
RETURNING ` + contactMessageColumns

func (q *Queries) CreateContactMessage(ctx context.Context, arg CreateContactMessageParams) (model.ContactMessage, error) {
	row := q.db.QueryRowContext(ctx, createContactMessage,
		arg.Reference, arg.Name, arg.Email, arg.Subject, arg.Message,
		arg.Type, arg.IpAddress, arg.UserAgent, arg.Country,
	)
	return scanContactMessage(row)
}

const getContactMessage = `
SELECT ` + contactMessageColumns + ` FROM contact_messages WHERE id = ?`

func (q *Queries) GetContactMessage(ctx context.Context, id int64) (model.ContactMessage, error) {
	return scanContactMessage(q.db.QueryRowContext(ctx, getContactMessage, id))
}

const getContactMessageByReference = `
SELECT ` + contactMessageColumns + ` FROM contact_messages WHERE reference = ?`

func (q *Queries) GetContactMessageByReference(ctx context.Context, reference string) (model.ContactMessage, error) {
	return scanContactMessage(q.db.QueryRowContext(ctx, getContactMessageByReference, reference))
}

const contactMessageExists = `SELECT EXISTS(SELECT 1 FROM contact_messages WHERE id = ?)`

func (q *Queries) ContactMessageExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := q.db.QueryRowContext(ctx, contactMessageExists, id).Scan(&exists)
	return exists, err
}

// ListContactMessagesParams filters the message listing.
type ListContactMessagesParams struct {
	Status string
	Type   string
	Limit  int64
	Offset int64
}

const listContactMessages = `
SELECT ` + contactMessageColumns + `
FROM contact_messages
WHERE (? = '' OR status = ?)
  AND (? = '' OR type = ?)
ORDER BY created_at DESC
LIMIT ? OFFSET ?`

func (q *Queries) ListContactMessages(ctx context.Context, arg ListContactMessagesParams) ([]model.ContactMessage, error) {
	rows, err := q.db.QueryContext(ctx, listContactMessages,
		arg.Status, arg.Status, arg.Type, arg.Type, arg.Limit, arg.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []model.ContactMessage{}
	for rows.Next() {
		m, err := scanContactMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

const countContactMessages = `
SELECT COUNT(*)
FROM contact_messages
WHERE (? = '' OR status = ?)
  AND (? = '' OR type = ?)`

func (q *Queries) CountContactMessages(ctx context.Context, arg ListContactMessagesParams) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countContactMessages,
		arg.Status, arg.Status, arg.Type, arg.Type,
	).Scan(&count)
	return count, err
}

// UpdateContactMessageParams holds the admin-mutable message fields.
type UpdateContactMessageParams struct {
	ID              int64
	Status          string
	ResponseMessage sql.NullString
	RespondedAt     sql.NullTime
}

const updateContactMessage = `
UPDATE contact_messages SET
	status = ?, response_message = ?, responded_at = ?,
	updated_at = CURRENT_TIMESTAMP
WHERE id = ?
RETURNING ` + contactMessageColumns

func (q *Queries) UpdateContactMessage(ctx context.Context, arg UpdateContactMessageParams) (model.ContactMessage, error) {
	row := q.db.QueryRowContext(ctx, updateContactMessage,
		arg.Status, arg.ResponseMessage, arg.RespondedAt, arg.ID,
	)
	return scanContactMessage(row)
}

const countContactMessagesByStatus = `
SELECT COUNT(*) FROM contact_messages WHERE status = ?`

func (q *Queries) CountContactMessagesByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countContactMessagesByStatus, status).Scan(&count)
	return count, err
}
