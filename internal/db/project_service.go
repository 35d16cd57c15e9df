package db

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mconstantine/cooler-sub002/internal/apperr"
	"github.com/mconstantine/cooler-sub002/internal/models"
	"github.com/mconstantine/cooler-sub002/internal/validate"
)

// ProjectCreationInput holds the data needed to create a project.
type ProjectCreationInput struct {
	Name        string
	Description *string
	ClientID    uint
	Cashed      *models.Cashed
}

// ProjectUpdateInput is a partial update: nil fields keep their value.
// The Clear flags distinguish "leave alone" from "set to null"; cashed_at
// and cashed_balance are only ever written as a pair.
type ProjectUpdateInput struct {
	Name             *string
	Description      *string
	ClearDescription bool
	ClientID         *uint
	Cashed           *models.Cashed
	ClearCashed      bool
}

var projectOrderings = map[string]ordering[models.Project]{
	"NAME_ASC":        {"name ASC", func(p *models.Project) string { return p.Name }},
	"NAME_DESC":       {"name DESC", func(p *models.Project) string { return p.Name }},
	"CREATED_AT_ASC":  {"projects.created_at ASC", func(p *models.Project) string { return timeCursor(p.CreatedAt) }},
	"CREATED_AT_DESC": {"projects.created_at DESC", func(p *models.Project) string { return timeCursor(p.CreatedAt) }},
	"UPDATED_AT_ASC":  {"projects.updated_at ASC", func(p *models.Project) string { return timeCursor(p.UpdatedAt) }},
	"UPDATED_AT_DESC": {"projects.updated_at DESC", func(p *models.Project) string { return timeCursor(p.UpdatedAt) }},
}

// CreateProject creates a project under one of the viewer's clients.
func (s *Store) CreateProject(ctx context.Context, viewerID uint, input ProjectCreationInput) (*models.Project, error) {
	v := validate.New()
	v.Check(input.Name != "", "name", "must be provided")
	if input.Cashed != nil {
		v.Check(input.Cashed.Balance >= 0, "cashed_balance", "must not be negative")
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	// 404 for a missing client, 403 for somebody else's.
	if _, err := s.GetClient(ctx, input.ClientID, viewerID); err != nil {
		return nil, err
	}

	project := models.Project{
		Name:        input.Name,
		Description: input.Description,
		ClientID:    input.ClientID,
		OwnerID:     viewerID,
	}
	if input.Cashed != nil {
		at, balance := input.Cashed.At, input.Cashed.Balance
		project.CashedAt = &at
		project.CashedBalance = &balance
	}
	if err := s.db.WithContext(ctx).Create(&project).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return &project, nil
}

// GetProject fetches a project together with its owning user id in a
// single joined query, then enforces ownership (404 before 403).
func (s *Store) GetProject(ctx context.Context, id, viewerID uint) (*models.Project, error) {
	var project models.Project
	err := s.db.WithContext(ctx).
		Select("projects.*, clients.user_id AS owner_id").
		Joins("JOIN clients ON clients.id = projects.client_id").
		Where("projects.id = ?", id).
		Take(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("project not found")
		}
		return nil, apperr.Internal(err)
	}
	if project.OwnerID != viewerID {
		return nil, apperr.Forbidden("you cannot see this project")
	}
	return &project, nil
}

// ProjectsForUser lists the viewer's projects across all their clients.
func (s *Store) ProjectsForUser(ctx context.Context, viewerID uint, name *string, args ConnectionArgs, orderBy *string) (*Connection[models.Project], error) {
	o, err := orderingFor(projectOrderings, orderBy, "NAME_ASC")
	if err != nil {
		return nil, err
	}
	q := s.db.Model(&models.Project{}).
		Select("projects.*, clients.user_id AS owner_id").
		Joins("JOIN clients ON clients.id = projects.client_id").
		Where("clients.user_id = ?", viewerID)
	if name != nil && *name != "" {
		q = q.Where("projects.name LIKE ?", "%"+*name+"%")
	}
	return paginate[models.Project](ctx, q, o, args)
}

// ProjectsForClient lists the projects of a client the caller has
// already resolved through an ownership check.
func (s *Store) ProjectsForClient(ctx context.Context, clientID uint, args ConnectionArgs, orderBy *string) (*Connection[models.Project], error) {
	o, err := orderingFor(projectOrderings, orderBy, "NAME_ASC")
	if err != nil {
		return nil, err
	}
	q := s.db.Where("client_id = ?", clientID)
	return paginate[models.Project](ctx, q, o, args)
}

// UpdateProject applies a partial update.
func (s *Store) UpdateProject(ctx context.Context, id, viewerID uint, input ProjectUpdateInput) (*models.Project, error) {
	project, err := s.GetProject(ctx, id, viewerID)
	if err != nil {
		return nil, err
	}

	v := validate.New()
	if input.Name != nil {
		v.Check(*input.Name != "", "name", "must be provided")
	}
	if input.Cashed != nil {
		v.Check(input.Cashed.Balance >= 0, "cashed_balance", "must not be negative")
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	if input.ClientID != nil && *input.ClientID != project.ClientID {
		if _, err := s.GetClient(ctx, *input.ClientID, viewerID); err != nil {
			return nil, err
		}
		project.ClientID = *input.ClientID
	}
	if input.Name != nil {
		project.Name = *input.Name
	}
	switch {
	case input.Description != nil:
		project.Description = input.Description
	case input.ClearDescription:
		project.Description = nil
	}
	switch {
	case input.Cashed != nil:
		at, balance := input.Cashed.At, input.Cashed.Balance
		project.CashedAt = &at
		project.CashedBalance = &balance
	case input.ClearCashed:
		project.CashedAt = nil
		project.CashedBalance = nil
	}

	if err := s.db.WithContext(ctx).Save(project).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return project, nil
}

// DeleteProject removes a project and, through the cascade constraints,
// all its tasks and sessions.
func (s *Store) DeleteProject(ctx context.Context, id, viewerID uint) (*models.Project, error) {
	project, err := s.GetProject(ctx, id, viewerID)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Delete(&models.Project{}, id).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return project, nil
}
