// Copyright (c) 2024-2026 Will Pereira
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/mileusna/useragent"

	"github.com/wpdev/portfolio-go/internal/handler"
	"github.com/wpdev/portfolio-go/internal/model"
	"github.com/wpdev/portfolio-go/internal/store"
	"github.com/wpdev/portfolio-go/internal/util"
)

const (
	maxNameLength    = 200
	maxSubjectLength = 300
	maxMessageLength = 10000
)

// ContactMessageResponse represents a contact message in API responses.
// Only returned to callers holding a messages permission.
type ContactMessageResponse struct {
	ID              int64      `json:"id"`
	Reference       string     `json:"reference"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	Subject         string     `json:"subject"`
	Message         string     `json:"message"`
	Type            string     `json:"type"`
	Status          string     `json:"status"`
	IPAddress       *string    `json:"ip_address,omitempty"`
	UserAgent       *string    `json:"user_agent,omitempty"`
	Country         *string    `json:"country,omitempty"`
	ResponseMessage *string    `json:"response_message,omitempty"`
	RespondedAt     *time.Time `json:"responded_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
}

// ContactReceiptResponse is the public acknowledgement for a submission.
type ContactReceiptResponse struct {
	Reference string    `json:"reference"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// SubmitContactRequest represents the public contact form body.
type SubmitContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

// UpdateContactMessageRequest represents the admin update body.
type UpdateContactMessageRequest struct {
	Status          *string `json:"status,omitempty"`
	ResponseMessage *string `json:"response_message,omitempty"`
}

func contactMessageToResponse(m model.ContactMessage) ContactMessageResponse {
	return ContactMessageResponse{
		ID:              m.ID,
		Reference:       m.Reference,
		Name:            m.Name,
		Email:           m.Email,
		Subject:         m.Subject,
		Message:         m.Message,
		Type:            m.Type,
		Status:          m.Status,
		IPAddress:       util.StringPtrFromNull(m.IpAddress),
		UserAgent:       util.StringPtrFromNull(m.UserAgent),
		Country:         util.StringPtrFromNull(m.Country),
		ResponseMessage: util.StringPtrFromNull(m.ResponseMessage),
		RespondedAt:     util.TimePtrFromNull(m.RespondedAt),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       util.TimePtrFromNull(m.UpdatedAt),
	}
}

// SubmitContactMessage handles POST /api/v1/contact
// Public endpoint, rate limited per IP. Captures the client IP, a
// summarized user agent, and a GeoIP country for the admin view.
func (h *Handler) SubmitContactMessage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SubmitContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	fieldErrors := make(map[string]string)
	if req.Name == "" {
		fieldErrors["name"] = "Name is required"
	} else if len(req.Name) > maxNameLength {
		fieldErrors["name"] = "Name is too long"
	}
	if req.Email == "" {
		fieldErrors["email"] = "Email is required"
	} else if _, err := mail.ParseAddress(req.Email); err != nil {
		fieldErrors["email"] = "Invalid email address"
	}
	if len(req.Subject) > maxSubjectLength {
		fieldErrors["subject"] = "Subject is too long"
	}
	if req.Message == "" {
		fieldErrors["message"] = "Message is required"
	} else if len(req.Message) > maxMessageLength {
		fieldErrors["message"] = "Message is too long"
	}
	if req.Type == "" {
		req.Type = model.ContactTypeGeneral
	}
	if !model.IsValidContactType(req.Type) {
		fieldErrors["type"] = "Invalid message type"
	}
	if len(fieldErrors) > 0 {
		WriteValidationError(w, fieldErrors)
		return
	}

	ip := util.ClientIP(r)

	var uaSummary string
	if rawUA := r.UserAgent(); rawUA != "" {
		ua := useragent.Parse(rawUA)
		uaSummary = ua.Name + " " + ua.Version + " (" + ua.OS + ")"
	}

	var country string
	if h.geo != nil {
		country = h.geo.LookupCountry(ip)
	}

	msg, err := h.queries.CreateContactMessage(ctx, store.CreateContactMessageParams{
		Reference: uuid.NewString(),
		Name:      req.Name,
		Email:     req.Email,
		Subject:   req.Subject,
		Message:   req.Message,
		Type:      req.Type,
		IpAddress: util.NullStringFromValue(ip),
		UserAgent: util.NullStringFromValue(uaSummary),
		Country:   util.NullStringFromValue(country),
	})
	if err != nil {
		WriteInternalError(w, "Failed to submit message")
		return
	}

	_ = h.events.LogContactEvent(ctx, model.EventLevelInfo, "contact message received: "+msg.Reference, ip, map[string]any{
		"message_id": msg.ID,
		"type":       msg.Type,
	})

	WriteCreated(w, ContactReceiptResponse{
		Reference: msg.Reference,
		Status:    msg.Status,
		CreatedAt: msg.CreatedAt,
	})
}

// GetContactMessageByReference handles GET /api/v1/contact/{reference}
// Public: lets a sender confirm their submission by its opaque handle.
// Only the receipt fields are exposed.
func (h *Handler) GetContactMessageByReference(w http.ResponseWriter, r *http.Request) {
	reference := chi.URLParam(r, "reference")
	if reference == "" {
		WriteBadRequest(w, "Reference is required", nil)
		return
	}

	msg, err := h.queries.GetContactMessageByReference(r.Context(), reference)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Message not found")
		} else {
			WriteInternalError(w, "Failed to retrieve message")
		}
		return
	}

	WriteSuccess(w, ContactReceiptResponse{
		Reference: msg.Reference,
		Status:    msg.Status,
		CreatedAt: msg.CreatedAt,
	}, nil)
}

// ListContactMessages handles GET /api/v1/messages
// Requires messages:read permission.
func (h *Handler) ListContactMessages(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	page := handler.ParsePageParam(r)
	perPage := handler.ParsePerPageParam(r, 20, 100)

	status := r.URL.Query().Get("status")
	if status != "" && !model.IsValidContactStatus(status) {
		WriteBadRequest(w, "Invalid status filter", nil)
		return
	}
	msgType := r.URL.Query().Get("type")
	if msgType != "" && !model.IsValidContactType(msgType) {
		WriteBadRequest(w, "Invalid type filter", nil)
		return
	}

	params := store.ListContactMessagesParams{
		Status: status,
		Type:   msgType,
		Limit:  int64(perPage),
		Offset: int64((page - 1) * perPage),
	}

	messages, err := h.queries.ListContactMessages(ctx, params)
	if err != nil {
		WriteInternalError(w, "Failed to list messages")
		return
	}
	total, err := h.queries.CountContactMessages(ctx, params)
	if err != nil {
		WriteInternalError(w, "Failed to list messages")
		return
	}

	responses := make([]ContactMessageResponse, 0, len(messages))
	for _, m := range messages {
		responses = append(responses, contactMessageToResponse(m))
	}

	meta := paginationMeta(total, page, perPage)
	if unread, err := h.queries.CountContactMessagesByStatus(ctx, model.ContactStatusNew); err == nil {
		meta.Unread = unread
	}

	WriteSuccess(w, responses, meta)
}

// GetContactMessage handles GET /api/v1/messages/{id}
// Requires messages:read permission.
func (h *Handler) GetContactMessage(w http.ResponseWriter, r *http.Request) {
	msg, ok := requireEntityByID(w, r, "message", func(id int64) (model.ContactMessage, error) {
		return h.queries.GetContactMessage(r.Context(), id)
	})
	if !ok {
		return
	}

	WriteSuccess(w, contactMessageToResponse(msg), nil)
}

// UpdateContactMessage handles PUT /api/v1/messages/{id}
// Requires messages:write permission. Recording the first non-empty
// response stamps responded_at and forces the status to responded,
// regardless of any status in the same request; later response edits
// change the text only. Messages are never deleted; archiving is the
// terminal state.
func (h *Handler) UpdateContactMessage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	existing, ok := requireEntityByID(w, r, "message", func(id int64) (model.ContactMessage, error) {
		return h.queries.GetContactMessage(ctx, id)
	})
	if !ok {
		return
	}

	var req UpdateContactMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	params := store.UpdateContactMessageParams{
		ID:              existing.ID,
		Status:          existing.Status,
		ResponseMessage: existing.ResponseMessage,
		RespondedAt:     existing.RespondedAt,
	}

	if req.Status != nil {
		if !model.IsValidContactStatus(*req.Status) {
			WriteValidationError(w, map[string]string{"status": "Invalid status"})
			return
		}
		params.Status = *req.Status
	}
	if req.ResponseMessage != nil {
		params.ResponseMessage = util.NullStringFromValue(*req.ResponseMessage)
	}

	// The first non-empty response wins over any explicit status and
	// stamps responded_at. Later edits overwrite the text only.
	if req.ResponseMessage != nil && *req.ResponseMessage != "" && !existing.RespondedAt.Valid {
		params.Status = model.ContactStatusResponded
		params.RespondedAt = util.NullTimeNow()
	}

	msg, err := h.queries.UpdateContactMessage(ctx, params)
	if err != nil {
		WriteInternalError(w, "Failed to update message")
		return
	}

	WriteSuccess(w, contactMessageToResponse(msg), nil)
}
