// Copyright (c) 2024-2026 Will Pereira
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/wpdev/portfolio-go/internal/handler"
	"github.com/wpdev/portfolio-go/internal/middleware"
	"github.com/wpdev/portfolio-go/internal/model"
	"github.com/wpdev/portfolio-go/internal/store"
	"github.com/wpdev/portfolio-go/internal/util"
)

// ProjectResponse represents a project in API responses.
type ProjectResponse struct {
	ID               int64      `json:"id"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	ShortDescription *string    `json:"short_description,omitempty"`
	ImageURL         string     `json:"image_url"`
	DemoURL          *string    `json:"demo_url,omitempty"`
	RepositoryURL    *string    `json:"repository_url,omitempty"`
	Technologies     []string   `json:"technologies"`
	Year             int64      `json:"year"`
	IsFeatured       bool       `json:"is_featured"`
	Status           string     `json:"status"`
	Rarity           string     `json:"rarity"`
	AttackPoints     int64      `json:"attack_points"`
	DefensePoints    int64      `json:"defense_points"`
	FlavorText       *string    `json:"flavor_text,omitempty"`
	IsActive         bool       `json:"is_active"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        *time.Time `json:"updated_at,omitempty"`
}

// CreateProjectRequest represents the request body for creating a project.
type CreateProjectRequest struct {
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	ShortDescription *string  `json:"short_description,omitempty"`
	ImageURL         string   `json:"image_url"`
	DemoURL          *string  `json:"demo_url,omitempty"`
	RepositoryURL    *string  `json:"repository_url,omitempty"`
	Technologies     []string `json:"technologies"`
	Year             int64    `json:"year"`
	IsFeatured       bool     `json:"is_featured"`
	Status           string   `json:"status"`
	Rarity           string   `json:"rarity"`
	AttackPoints     int64    `json:"attack_points"`
	DefensePoints    int64    `json:"defense_points"`
	FlavorText       *string  `json:"flavor_text,omitempty"`
}

// UpdateProjectRequest represents the request body for updating a project.
// Nil fields are left unchanged.
type UpdateProjectRequest struct {
	Title            *string   `json:"title,omitempty"`
	Description      *string   `json:"description,omitempty"`
	ShortDescription *string   `json:"short_description,omitempty"`
	ImageURL         *string   `json:"image_url,omitempty"`
	DemoURL          *string   `json:"demo_url,omitempty"`
	RepositoryURL    *string   `json:"repository_url,omitempty"`
	Technologies     *[]string `json:"technologies,omitempty"`
	Year             *int64    `json:"year,omitempty"`
	IsFeatured       *bool     `json:"is_featured,omitempty"`
	Status           *string   `json:"status,omitempty"`
	Rarity           *string   `json:"rarity,omitempty"`
	AttackPoints     *int64    `json:"attack_points,omitempty"`
	DefensePoints    *int64    `json:"defense_points,omitempty"`
	FlavorText       *string   `json:"flavor_text,omitempty"`
	IsActive         *bool     `json:"is_active,omitempty"`
}

func projectToResponse(p model.Project) ProjectResponse {
	return ProjectResponse{
		ID:               p.ID,
		Title:            p.Title,
		Description:      p.Description,
		ShortDescription: util.StringPtrFromNull(p.ShortDescription),
		ImageURL:         p.ImageURL,
		DemoURL:          util.StringPtrFromNull(p.DemoURL),
		RepositoryURL:    util.StringPtrFromNull(p.RepositoryURL),
		Technologies:     model.SplitTags(p.Technologies),
		Year:             p.Year,
		IsFeatured:       p.IsFeatured,
		Status:           p.Status,
		Rarity:           p.Rarity,
		AttackPoints:     p.AttackPoints,
		DefensePoints:    p.DefensePoints,
		FlavorText:       util.StringPtrFromNull(p.FlavorText),
		IsActive:         p.IsActive,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        util.TimePtrFromNull(p.UpdatedAt),
	}
}

// validateProject checks the create-request fields and returns field errors.
func validateProject(req CreateProjectRequest) map[string]string {
	fieldErrors := make(map[string]string)
	if req.Title == "" {
		fieldErrors["title"] = "Title is required"
	}
	if req.Description == "" {
		fieldErrors["description"] = "Description is required"
	}
	if req.ImageURL == "" {
		fieldErrors["image_url"] = "Image URL is required"
	}
	if req.Year < 1990 || req.Year > int64(time.Now().Year())+1 {
		fieldErrors["year"] = "Year is out of range"
	}
	if req.Status != "" && !model.IsValidProjectStatus(req.Status) {
		fieldErrors["status"] = "Invalid status"
	}
	if req.Rarity != "" && !model.IsValidCardRarity(req.Rarity) {
		fieldErrors["rarity"] = "Invalid rarity"
	}
	if req.AttackPoints < 0 || req.AttackPoints > 9999 {
		fieldErrors["attack_points"] = "Attack points must be between 0 and 9999"
	}
	if req.DefensePoints < 0 || req.DefensePoints > 9999 {
		fieldErrors["defense_points"] = "Defense points must be between 0 and 9999"
	}
	return fieldErrors
}

// ListProjects handles GET /api/v1/projects
// Public: returns only active projects.
// With API key: returns all projects, or only active with ?active=true.
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	page := handler.ParsePageParam(r)
	perPage := handler.ParsePerPageParam(r, 20, 100)

	activeOnly := r.URL.Query().Get("active") == "true"
	if middleware.GetAPIKey(r) == nil {
		activeOnly = true
	}

	params := store.ListProjectsParams{
		ActiveOnly:   activeOnly,
		FeaturedOnly: r.URL.Query().Get("featured") == "true",
		Year:         int64(handler.ParseIntParam(r, "year", 0, 0, 0)),
		Technology:   r.URL.Query().Get("technology"),
		Limit:        int64(perPage),
		Offset:       int64((page - 1) * perPage),
	}

	projects, err := h.queries.ListProjects(ctx, params)
	if err != nil {
		WriteInternalError(w, "Failed to list projects")
		return
	}
	total, err := h.queries.CountProjects(ctx, params)
	if err != nil {
		WriteInternalError(w, "Failed to list projects")
		return
	}

	responses := make([]ProjectResponse, 0, len(projects))
	for _, p := range projects {
		responses = append(responses, projectToResponse(p))
	}

	WriteSuccess(w, responses, paginationMeta(total, page, perPage))
}

// GetProject handles GET /api/v1/projects/{id}
// Public: returns only active projects.
func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	project, ok := requireEntityByID(w, r, "project", func(id int64) (model.Project, error) {
		return h.queries.GetProject(r.Context(), id)
	})
	if !ok {
		return
	}

	if !project.IsActive && middleware.GetAPIKey(r) == nil {
		WriteNotFound(w, "Project not found")
		return
	}

	WriteSuccess(w, projectToResponse(project), nil)
}

// CreateProject handles POST /api/v1/projects
// Requires content:write permission.
func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	if fieldErrors := validateProject(req); len(fieldErrors) > 0 {
		WriteValidationError(w, fieldErrors)
		return
	}

	if req.Status == "" {
		req.Status = model.ProjectStatusCompleted
	}
	if req.Rarity == "" {
		req.Rarity = model.CardRarityCommon
	}

	project, err := h.queries.CreateProject(r.Context(), store.CreateProjectParams{
		Title:            req.Title,
		Description:      req.Description,
		ShortDescription: util.NullStringFromPtr(req.ShortDescription),
		ImageURL:         req.ImageURL,
		DemoURL:          util.NullStringFromPtr(req.DemoURL),
		RepositoryURL:    util.NullStringFromPtr(req.RepositoryURL),
		Technologies:     model.JoinTags(req.Technologies),
		Year:             req.Year,
		IsFeatured:       req.IsFeatured,
		Status:           req.Status,
		Rarity:           req.Rarity,
		AttackPoints:     req.AttackPoints,
		DefensePoints:    req.DefensePoints,
		FlavorText:       util.NullStringFromPtr(req.FlavorText),
	})
	if err != nil {
		WriteInternalError(w, "Failed to create project")
		return
	}

	WriteCreated(w, projectToResponse(project))
}

// UpdateProject handles PUT /api/v1/projects/{id}
// Requires content:write permission.
func (h *Handler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	existing, ok := requireEntityByID(w, r, "project", func(id int64) (model.Project, error) {
		return h.queries.GetProject(ctx, id)
	})
	if !ok {
		return
	}

	var req UpdateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	params := store.UpdateProjectParams{
		ID:               existing.ID,
		Title:            existing.Title,
		Description:      existing.Description,
		ShortDescription: existing.ShortDescription,
		ImageURL:         existing.ImageURL,
		DemoURL:          existing.DemoURL,
		RepositoryURL:    existing.RepositoryURL,
		Technologies:     existing.Technologies,
		Year:             existing.Year,
		IsFeatured:       existing.IsFeatured,
		Status:           existing.Status,
		Rarity:           existing.Rarity,
		AttackPoints:     existing.AttackPoints,
		DefensePoints:    existing.DefensePoints,
		FlavorText:       existing.FlavorText,
		IsActive:         existing.IsActive,
	}

	fieldErrors := make(map[string]string)
	if req.Title != nil {
		if *req.Title == "" {
			fieldErrors["title"] = "Title cannot be empty"
		}
		params.Title = *req.Title
	}
	if req.Description != nil {
		params.Description = *req.Description
	}
	if req.ShortDescription != nil {
		params.ShortDescription = util.NullStringFromValue(*req.ShortDescription)
	}
	if req.ImageURL != nil {
		params.ImageURL = *req.ImageURL
	}
	if req.DemoURL != nil {
		params.DemoURL = util.NullStringFromValue(*req.DemoURL)
	}
	if req.RepositoryURL != nil {
		params.RepositoryURL = util.NullStringFromValue(*req.RepositoryURL)
	}
	if req.Technologies != nil {
		params.Technologies = model.JoinTags(*req.Technologies)
	}
	if req.Year != nil {
		if *req.Year < 1990 || *req.Year > int64(time.Now().Year())+1 {
			fieldErrors["year"] = "Year is out of range"
		}
		params.Year = *req.Year
	}
	if req.IsFeatured != nil {
		params.IsFeatured = *req.IsFeatured
	}
	if req.Status != nil {
		if !model.IsValidProjectStatus(*req.Status) {
			fieldErrors["status"] = "Invalid status"
		}
		params.Status = *req.Status
	}
	if req.Rarity != nil {
		if !model.IsValidCardRarity(*req.Rarity) {
			fieldErrors["rarity"] = "Invalid rarity"
		}
		params.Rarity = *req.Rarity
	}
	if req.AttackPoints != nil {
		if *req.AttackPoints < 0 || *req.AttackPoints > 9999 {
			fieldErrors["attack_points"] = "Attack points must be between 0 and 9999"
		}
		params.AttackPoints = *req.AttackPoints
	}
	if req.DefensePoints != nil {
		if *req.DefensePoints < 0 || *req.DefensePoints > 9999 {
			fieldErrors["defense_points"] = "Defense points must be between 0 and 9999"
		}
		params.DefensePoints = *req.DefensePoints
	}
	if req.FlavorText != nil {
		params.FlavorText = util.NullStringFromValue(*req.FlavorText)
	}
	if req.IsActive != nil {
		params.IsActive = *req.IsActive
	}

	if len(fieldErrors) > 0 {
		WriteValidationError(w, fieldErrors)
		return
	}

	project, err := h.queries.UpdateProject(ctx, params)
	if err != nil {
		WriteInternalError(w, "Failed to update project")
		return
	}

	WriteSuccess(w, projectToResponse(project), nil)
}

// DeleteProject handles DELETE /api/v1/projects/{id}
// Projects are soft-deleted: the row stays but disappears from anonymous
// reads. An update setting is_active back to true restores it. Requires
// content:write permission.
func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	project, ok := requireEntityByID(w, r, "project", func(id int64) (model.Project, error) {
		return h.queries.GetProject(r.Context(), id)
	})
	if !ok {
		return
	}

	if err := h.queries.SoftDeleteProject(r.Context(), project.ID); err != nil && !errors.Is(err, sql.ErrNoRows) {
		WriteInternalError(w, "Failed to delete project")
		return
	}

	WriteNoContent(w)
}
