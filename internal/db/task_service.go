package db

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/mconstantine/cooler-sub002/internal/apperr"
	"github.com/mconstantine/cooler-sub002/internal/models"
	"github.com/mconstantine/cooler-sub002/internal/validate"
)

// TaskCreationInput holds the data needed to create a task.
type TaskCreationInput struct {
	Name                 string
	Description          *string
	StartTime            time.Time
	ExpectedWorkingHours float64
	HourlyCost           float64
	ProjectID            uint
}

// TaskUpdateInput is a partial update: nil fields keep their value.
type TaskUpdateInput struct {
	Name                 *string
	Description          *string
	ClearDescription     bool
	StartTime            *time.Time
	ExpectedWorkingHours *float64
	HourlyCost           *float64
	ProjectID            *uint
}

var taskOrderings = map[string]ordering[models.Task]{
	"NAME_ASC":        {"name ASC", func(t *models.Task) string { return t.Name }},
	"NAME_DESC":       {"name DESC", func(t *models.Task) string { return t.Name }},
	"START_TIME_ASC":  {"start_time ASC", func(t *models.Task) string { return timeCursor(t.StartTime) }},
	"START_TIME_DESC": {"start_time DESC", func(t *models.Task) string { return timeCursor(t.StartTime) }},
	"CREATED_AT_ASC":  {"tasks.created_at ASC", func(t *models.Task) string { return timeCursor(t.CreatedAt) }},
	"CREATED_AT_DESC": {"tasks.created_at DESC", func(t *models.Task) string { return timeCursor(t.CreatedAt) }},
}

func validateTaskFigures(v *validate.Validator, expectedWorkingHours, hourlyCost float64) {
	v.Check(expectedWorkingHours > 0, "expected_working_hours", "must be positive")
	v.Check(hourlyCost >= 0, "hourly_cost", "must not be negative")
}

// CreateTask creates a task under one of the viewer's projects.
func (s *Store) CreateTask(ctx context.Context, viewerID uint, input TaskCreationInput) (*models.Task, error) {
	v := validate.New()
	v.Check(input.Name != "", "name", "must be provided")
	validateTaskFigures(v, input.ExpectedWorkingHours, input.HourlyCost)
	if err := v.Err(); err != nil {
		return nil, err
	}

	if _, err := s.GetProject(ctx, input.ProjectID, viewerID); err != nil {
		return nil, err
	}

	task := models.Task{
		Name:                 input.Name,
		Description:          input.Description,
		StartTime:            input.StartTime,
		ExpectedWorkingHours: input.ExpectedWorkingHours,
		HourlyCost:           input.HourlyCost,
		ProjectID:            input.ProjectID,
		OwnerID:              viewerID,
	}
	if err := s.db.WithContext(ctx).Create(&task).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return &task, nil
}

// GetTask fetches a task together with its owning user id in a single
// query joined up the ownership chain, then enforces ownership (404
// before 403).
func (s *Store) GetTask(ctx context.Context, id, viewerID uint) (*models.Task, error) {
	var task models.Task
	err := s.db.WithContext(ctx).
		Select("tasks.*, clients.user_id AS owner_id").
		Joins("JOIN projects ON projects.id = tasks.project_id").
		Joins("JOIN clients ON clients.id = projects.client_id").
		Where("tasks.id = ?", id).
		Take(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("task not found")
		}
		return nil, apperr.Internal(err)
	}
	if task.OwnerID != viewerID {
		return nil, apperr.Forbidden("you cannot see this task")
	}
	return &task, nil
}

// TasksForUser lists the viewer's tasks across all their projects.
func (s *Store) TasksForUser(ctx context.Context, viewerID uint, name *string, args ConnectionArgs, orderBy *string) (*Connection[models.Task], error) {
	o, err := orderingFor(taskOrderings, orderBy, "NAME_ASC")
	if err != nil {
		return nil, err
	}
	q := s.db.Model(&models.Task{}).
		Select("tasks.*, clients.user_id AS owner_id").
		Joins("JOIN projects ON projects.id = tasks.project_id").
		Joins("JOIN clients ON clients.id = projects.client_id").
		Where("clients.user_id = ?", viewerID)
	if name != nil && *name != "" {
		q = q.Where("tasks.name LIKE ?", "%"+*name+"%")
	}
	return paginate[models.Task](ctx, q, o, args)
}

// TasksForProject lists the tasks of a project the caller has already
// resolved through an ownership check.
func (s *Store) TasksForProject(ctx context.Context, projectID uint, args ConnectionArgs, orderBy *string) (*Connection[models.Task], error) {
	o, err := orderingFor(taskOrderings, orderBy, "START_TIME_ASC")
	if err != nil {
		return nil, err
	}
	q := s.db.Where("project_id = ?", projectID)
	return paginate[models.Task](ctx, q, o, args)
}

// UpdateTask applies a partial update.
func (s *Store) UpdateTask(ctx context.Context, id, viewerID uint, input TaskUpdateInput) (*models.Task, error) {
	task, err := s.GetTask(ctx, id, viewerID)
	if err != nil {
		return nil, err
	}

	expected := task.ExpectedWorkingHours
	if input.ExpectedWorkingHours != nil {
		expected = *input.ExpectedWorkingHours
	}
	hourly := task.HourlyCost
	if input.HourlyCost != nil {
		hourly = *input.HourlyCost
	}
	v := validate.New()
	if input.Name != nil {
		v.Check(*input.Name != "", "name", "must be provided")
	}
	validateTaskFigures(v, expected, hourly)
	if err := v.Err(); err != nil {
		return nil, err
	}

	if input.ProjectID != nil && *input.ProjectID != task.ProjectID {
		if _, err := s.GetProject(ctx, *input.ProjectID, viewerID); err != nil {
			return nil, err
		}
		task.ProjectID = *input.ProjectID
	}
	if input.Name != nil {
		task.Name = *input.Name
	}
	switch {
	case input.Description != nil:
		task.Description = input.Description
	case input.ClearDescription:
		task.Description = nil
	}
	if input.StartTime != nil {
		task.StartTime = *input.StartTime
	}
	task.ExpectedWorkingHours = expected
	task.HourlyCost = hourly

	if err := s.db.WithContext(ctx).Save(task).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return task, nil
}

// DeleteTask removes a task and, through the cascade constraints, all
// its sessions.
func (s *Store) DeleteTask(ctx context.Context, id, viewerID uint) (*models.Task, error) {
	task, err := s.GetTask(ctx, id, viewerID)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Delete(&models.Task{}, id).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return task, nil
}
