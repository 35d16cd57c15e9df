package db

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/mconstantine/cooler-sub002/internal/apperr"
	"github.com/mconstantine/cooler-sub002/internal/models"
)

// Aggregates compose hierarchically: a figure for a user equals the sum
// of the same figure over its projects, which equals the sum over their
// tasks, with the optional since filter applied uniformly. Everything is
// computed in SQL and null sums coalesce to zero.

// Session duration in hours, counting open sessions up to the bound
// "now" parameter.
const sessionHoursExpr = "(julianday(COALESCE(sessions.end_time, ?)) - julianday(sessions.start_time)) * 24"

// UserExpectedWorkingHours sums expected hours over all the user's
// tasks, restricted to tasks starting on or after since when given.
func (s *Store) UserExpectedWorkingHours(ctx context.Context, userID uint, since *time.Time) (float64, error) {
	q := taskSince(s.userTasks(userID), since).
		Select("COALESCE(SUM(tasks.expected_working_hours), 0)")
	return s.sumFloat(ctx, q)
}

// ProjectExpectedWorkingHours sums expected hours over the project's
// tasks.
func (s *Store) ProjectExpectedWorkingHours(ctx context.Context, projectID uint, since *time.Time) (float64, error) {
	q := taskSince(s.projectTasks(projectID), since).
		Select("COALESCE(SUM(tasks.expected_working_hours), 0)")
	return s.sumFloat(ctx, q)
}

// UserActualWorkingHours sums session durations over all the user's
// tasks, restricted to sessions starting on or after since when given.
func (s *Store) UserActualWorkingHours(ctx context.Context, userID uint, since *time.Time) (float64, error) {
	q := sessionSince(s.userSessions(userID), since).
		Select("COALESCE(SUM("+sessionHoursExpr+"), 0)", s.now().UTC())
	return s.sumFloat(ctx, q)
}

// ProjectActualWorkingHours sums session durations over the project's
// tasks.
func (s *Store) ProjectActualWorkingHours(ctx context.Context, projectID uint, since *time.Time) (float64, error) {
	q := sessionSince(s.projectSessions(projectID), since).
		Select("COALESCE(SUM("+sessionHoursExpr+"), 0)", s.now().UTC())
	return s.sumFloat(ctx, q)
}

// TaskActualWorkingHours sums the task's session durations.
func (s *Store) TaskActualWorkingHours(ctx context.Context, taskID uint, since *time.Time) (float64, error) {
	q := sessionSince(s.db.Model(&models.Session{}).Where("sessions.task_id = ?", taskID), since).
		Select("COALESCE(SUM("+sessionHoursExpr+"), 0)", s.now().UTC())
	return s.sumFloat(ctx, q)
}

// UserBudget sums expected hours times hourly cost over all the user's
// tasks.
func (s *Store) UserBudget(ctx context.Context, userID uint, since *time.Time) (float64, error) {
	q := taskSince(s.userTasks(userID), since).
		Select("COALESCE(SUM(tasks.expected_working_hours * tasks.hourly_cost), 0)")
	return s.sumFloat(ctx, q)
}

// ProjectBudget sums expected hours times hourly cost over the project's
// tasks.
func (s *Store) ProjectBudget(ctx context.Context, projectID uint, since *time.Time) (float64, error) {
	q := taskSince(s.projectTasks(projectID), since).
		Select("COALESCE(SUM(tasks.expected_working_hours * tasks.hourly_cost), 0)")
	return s.sumFloat(ctx, q)
}

// UserBalance sums session durations times the task's hourly cost over
// all the user's tasks.
func (s *Store) UserBalance(ctx context.Context, userID uint, since *time.Time) (float64, error) {
	q := sessionSince(s.userSessions(userID), since).
		Select("COALESCE(SUM("+sessionHoursExpr+" * tasks.hourly_cost), 0)", s.now().UTC())
	return s.sumFloat(ctx, q)
}

// ProjectBalance sums session durations times the task's hourly cost
// over the project's tasks.
func (s *Store) ProjectBalance(ctx context.Context, projectID uint, since *time.Time) (float64, error) {
	q := sessionSince(s.projectSessions(projectID), since).
		Select("COALESCE(SUM("+sessionHoursExpr+" * tasks.hourly_cost), 0)", s.now().UTC())
	return s.sumFloat(ctx, q)
}

// UserCashedBalance sums the cashed balances of the user's cashed
// projects, restricted to those cashed on or after since when given.
// Projects that were never cashed contribute nothing.
func (s *Store) UserCashedBalance(ctx context.Context, userID uint, since *time.Time) (float64, error) {
	q := s.db.Model(&models.Project{}).
		Joins("JOIN clients ON clients.id = projects.client_id").
		Where("clients.user_id = ?", userID)
	q = cashedSince(q, since).
		Select("COALESCE(SUM(projects.cashed_balance), 0)")
	return s.sumFloat(ctx, q)
}

// ProjectCashedBalance is the project's own cashed balance, or zero when
// it was never cashed or was cashed before since.
func (s *Store) ProjectCashedBalance(ctx context.Context, projectID uint, since *time.Time) (float64, error) {
	q := s.db.Model(&models.Project{}).Where("projects.id = ?", projectID)
	q = cashedSince(q, since).
		Select("COALESCE(SUM(projects.cashed_balance), 0)")
	return s.sumFloat(ctx, q)
}

func (s *Store) userTasks(userID uint) *gorm.DB {
	return s.db.Model(&models.Task{}).
		Joins("JOIN projects ON projects.id = tasks.project_id").
		Joins("JOIN clients ON clients.id = projects.client_id").
		Where("clients.user_id = ?", userID)
}

func (s *Store) projectTasks(projectID uint) *gorm.DB {
	return s.db.Model(&models.Task{}).Where("tasks.project_id = ?", projectID)
}

func (s *Store) userSessions(userID uint) *gorm.DB {
	return s.db.Model(&models.Session{}).
		Joins("JOIN tasks ON tasks.id = sessions.task_id").
		Joins("JOIN projects ON projects.id = tasks.project_id").
		Joins("JOIN clients ON clients.id = projects.client_id").
		Where("clients.user_id = ?", userID)
}

func (s *Store) projectSessions(projectID uint) *gorm.DB {
	return s.db.Model(&models.Session{}).
		Joins("JOIN tasks ON tasks.id = sessions.task_id").
		Where("tasks.project_id = ?", projectID)
}

func taskSince(q *gorm.DB, since *time.Time) *gorm.DB {
	if since == nil {
		return q
	}
	return q.Where("datetime(tasks.start_time) >= datetime(?)", since.UTC())
}

func sessionSince(q *gorm.DB, since *time.Time) *gorm.DB {
	if since == nil {
		return q
	}
	return q.Where("datetime(sessions.start_time) >= datetime(?)", since.UTC())
}

func cashedSince(q *gorm.DB, since *time.Time) *gorm.DB {
	q = q.Where("projects.cashed_at IS NOT NULL")
	if since == nil {
		return q
	}
	return q.Where("datetime(projects.cashed_at) >= datetime(?)", since.UTC())
}

func (s *Store) sumFloat(ctx context.Context, q *gorm.DB) (float64, error) {
	var total float64
	if err := q.WithContext(ctx).Scan(&total).Error; err != nil {
		return 0, apperr.Internal(err)
	}
	return total, nil
}
