package db

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mconstantine/cooler-sub002/internal/apperr"
	"github.com/mconstantine/cooler-sub002/internal/auth"
	"github.com/mconstantine/cooler-sub002/internal/models"
	"github.com/mconstantine/cooler-sub002/internal/validate"
)

// UserCreationInput holds the data needed to register a user.
type UserCreationInput struct {
	Name     string
	Email    string
	Password string
}

// UserUpdateInput is a partial update: nil fields keep their value.
type UserUpdateInput struct {
	Name     *string
	Email    *string
	Password *string
}

// CreateUser registers a new user with a hashed password.
func (s *Store) CreateUser(ctx context.Context, input UserCreationInput) (*models.User, error) {
	v := validate.New()
	v.Check(input.Name != "", "name", "must be provided")
	v.Check(len(input.Name) <= 255, "name", "must be at most 255 characters")
	v.CheckEmail(input.Email)
	v.CheckPassword(input.Password)
	if err := v.Err(); err != nil {
		return nil, err
	}

	taken, err := s.emailTaken(ctx, input.Email, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Conflict("a user with this email address already exists")
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	user := models.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, apperr.Internal(err)
	}

	return &user, nil
}

// GetUserByEmail returns nil without an error when no user matches, so
// the caller decides what absence means.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperr.Internal(err)
	}
	return &user, nil
}

// GetUserByID returns nil without an error when no user matches.
func (s *Store) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperr.Internal(err)
	}
	return &user, nil
}

// UpdateUser applies a partial update to the user's profile.
func (s *Store) UpdateUser(ctx context.Context, id uint, input UserUpdateInput) (*models.User, error) {
	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("user not found")
	}

	v := validate.New()
	if input.Name != nil {
		v.Check(*input.Name != "", "name", "must be provided")
		v.Check(len(*input.Name) <= 255, "name", "must be at most 255 characters")
	}
	if input.Email != nil {
		v.CheckEmail(*input.Email)
	}
	if input.Password != nil {
		v.CheckPassword(*input.Password)
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	if input.Email != nil && *input.Email != user.Email {
		taken, err := s.emailTaken(ctx, *input.Email, user.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperr.Conflict("a user with this email address already exists")
		}
		user.Email = *input.Email
	}
	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Password != nil {
		hash, err := auth.HashPassword(*input.Password)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		user.PasswordHash = hash
	}

	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return user, nil
}

// DeleteUser removes the user; clients, taxes, projects, tasks and
// sessions go with it through the cascade constraints.
func (s *Store) DeleteUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("user not found")
	}
	if err := s.db.WithContext(ctx).Delete(&models.User{}, id).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return user, nil
}

func (s *Store) emailTaken(ctx context.Context, email string, excludeID uint) (bool, error) {
	var count int64
	q := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, apperr.Internal(err)
	}
	return count > 0, nil
}
