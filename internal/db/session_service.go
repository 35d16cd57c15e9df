package db

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/mconstantine/cooler-sub002/internal/apperr"
	"github.com/mconstantine/cooler-sub002/internal/models"
)

// SessionUpdateInput is a partial update. ClearEndTime asks for the
// session to be reopened, which is only legal while it is still open (a
// no-op); on a closed session it is a conflict.
type SessionUpdateInput struct {
	StartTime    *time.Time
	EndTime      *time.Time
	ClearEndTime bool
	TaskID       *uint
}

var sessionOrderings = map[string]ordering[models.Session]{
	"START_TIME_ASC":  {"start_time ASC", func(s *models.Session) string { return timeCursor(s.StartTime) }},
	"START_TIME_DESC": {"start_time DESC", func(s *models.Session) string { return timeCursor(s.StartTime) }},
	"ID_ASC":          {"sessions.id ASC", func(s *models.Session) string { return idCursor(s.ID) }},
	"ID_DESC":         {"sessions.id DESC", func(s *models.Session) string { return idCursor(s.ID) }},
}

// StartSession starts a new time tracking session on a task. A task can
// only have one open session at a time: the pre-check gives a friendly
// conflict, the partial unique index on open sessions makes it hold
// under concurrent starts.
func (s *Store) StartSession(ctx context.Context, taskID, viewerID uint) (*models.Session, error) {
	if _, err := s.GetTask(ctx, taskID, viewerID); err != nil {
		return nil, err
	}

	var count int64
	err := s.db.WithContext(ctx).Model(&models.Session{}).
		Where("task_id = ? AND end_time IS NULL", taskID).
		Count(&count).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if count > 0 {
		return nil, apperr.Conflict("there is already an open session for this task")
	}

	session := models.Session{
		TaskID:    taskID,
		StartTime: s.now(),
		OwnerID:   viewerID,
	}
	if err := s.db.WithContext(ctx).Create(&session).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.Conflict("there is already an open session for this task")
		}
		return nil, apperr.Internal(err)
	}
	return &session, nil
}

// StopSession closes an open session at the current time.
func (s *Store) StopSession(ctx context.Context, id, viewerID uint) (*models.Session, error) {
	session, err := s.GetSession(ctx, id, viewerID)
	if err != nil {
		return nil, err
	}
	if !session.Open() {
		return nil, apperr.Conflict("this session is already stopped")
	}

	now := s.now()
	session.EndTime = &now
	if err := s.db.WithContext(ctx).Save(session).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return session, nil
}

// GetSession fetches a session together with its owning user id in a
// single query joined up the ownership chain, then enforces ownership
// (404 before 403).
func (s *Store) GetSession(ctx context.Context, id, viewerID uint) (*models.Session, error) {
	var session models.Session
	err := s.db.WithContext(ctx).
		Select("sessions.*, clients.user_id AS owner_id").
		Joins("JOIN tasks ON tasks.id = sessions.task_id").
		Joins("JOIN projects ON projects.id = tasks.project_id").
		Joins("JOIN clients ON clients.id = projects.client_id").
		Where("sessions.id = ?", id).
		Take(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("session not found")
		}
		return nil, apperr.Internal(err)
	}
	if session.OwnerID != viewerID {
		return nil, apperr.Forbidden("you cannot see this session")
	}
	return &session, nil
}

// OpenSessionForTask returns the task's running session, or nil when
// there is none.
func (s *Store) OpenSessionForTask(ctx context.Context, taskID uint) (*models.Session, error) {
	var session models.Session
	err := s.db.WithContext(ctx).
		Where("task_id = ? AND end_time IS NULL", taskID).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperr.Internal(err)
	}
	return &session, nil
}

// SessionsForTask lists the sessions of a task the caller has already
// resolved through an ownership check.
func (s *Store) SessionsForTask(ctx context.Context, taskID uint, args ConnectionArgs, orderBy *string) (*Connection[models.Session], error) {
	o, err := orderingFor(sessionOrderings, orderBy, "START_TIME_ASC")
	if err != nil {
		return nil, err
	}
	q := s.db.Where("task_id = ?", taskID)
	return paginate[models.Session](ctx, q, o, args)
}

// UpdateSession applies a partial update. A closed session can never be
// reopened; setting an end time on an open session closes it.
func (s *Store) UpdateSession(ctx context.Context, id, viewerID uint, input SessionUpdateInput) (*models.Session, error) {
	session, err := s.GetSession(ctx, id, viewerID)
	if err != nil {
		return nil, err
	}

	if !session.Open() && input.ClearEndTime {
		return nil, apperr.Conflict("a closed session cannot be reopened")
	}

	if input.TaskID != nil && *input.TaskID != session.TaskID {
		if _, err := s.GetTask(ctx, *input.TaskID, viewerID); err != nil {
			return nil, err
		}
		if session.Open() {
			open, err := s.OpenSessionForTask(ctx, *input.TaskID)
			if err != nil {
				return nil, err
			}
			if open != nil {
				return nil, apperr.Conflict("there is already an open session for this task")
			}
		}
		session.TaskID = *input.TaskID
	}
	if input.StartTime != nil {
		session.StartTime = *input.StartTime
	}
	if input.EndTime != nil {
		session.EndTime = input.EndTime
	}
	if session.EndTime != nil && !session.EndTime.After(session.StartTime) {
		return nil, apperr.BadRequest("end time must come after start time")
	}

	if err := s.db.WithContext(ctx).Save(session).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.Conflict("there is already an open session for this task")
		}
		return nil, apperr.Internal(err)
	}
	return session, nil
}

// DeleteSession removes a session.
func (s *Store) DeleteSession(ctx context.Context, id, viewerID uint) (*models.Session, error) {
	session, err := s.GetSession(ctx, id, viewerID)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Delete(&models.Session{}, id).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return session, nil
}

// isUniqueViolation matches on the driver's message: the glebarez driver
// does not expose a typed error for constraint failures.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
