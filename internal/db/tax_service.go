package db

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mconstantine/cooler-sub002/internal/apperr"
	"github.com/mconstantine/cooler-sub002/internal/models"
	"github.com/mconstantine/cooler-sub002/internal/validate"
)

// TaxCreationInput holds the data needed to create a tax.
type TaxCreationInput struct {
	Label string
	Value float64
}

// TaxUpdateInput is a partial update: nil fields keep their value.
type TaxUpdateInput struct {
	Label *string
	Value *float64
}

var taxOrderings = map[string]ordering[models.Tax]{
	"LABEL_ASC":  {"label ASC", func(t *models.Tax) string { return t.Label }},
	"LABEL_DESC": {"label DESC", func(t *models.Tax) string { return t.Label }},
	"VALUE_ASC":  {"value ASC, id ASC", func(t *models.Tax) string { return idCursor(t.ID) }},
	"VALUE_DESC": {"value DESC, id DESC", func(t *models.Tax) string { return idCursor(t.ID) }},
}

func validateTax(v *validate.Validator, label string, value float64) {
	v.Check(label != "", "label", "must be provided")
	v.Check(value >= 0 && value <= 1, "value", "must be a fraction between 0 and 1")
}

// CreateTax creates a tax owned by the given user.
func (s *Store) CreateTax(ctx context.Context, userID uint, input TaxCreationInput) (*models.Tax, error) {
	v := validate.New()
	validateTax(v, input.Label, input.Value)
	if err := v.Err(); err != nil {
		return nil, err
	}

	tax := models.Tax{Label: input.Label, Value: input.Value, UserID: userID}
	if err := s.db.WithContext(ctx).Create(&tax).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return &tax, nil
}

// GetTax fetches a tax, enforcing ownership (404 before 403).
func (s *Store) GetTax(ctx context.Context, id, viewerID uint) (*models.Tax, error) {
	var tax models.Tax
	err := s.db.WithContext(ctx).First(&tax, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("tax not found")
		}
		return nil, apperr.Internal(err)
	}
	if tax.UserID != viewerID {
		return nil, apperr.Forbidden("you cannot see this tax")
	}
	return &tax, nil
}

// TaxesForUser lists the viewer's taxes.
func (s *Store) TaxesForUser(ctx context.Context, viewerID uint, args ConnectionArgs, orderBy *string) (*Connection[models.Tax], error) {
	o, err := orderingFor(taxOrderings, orderBy, "LABEL_ASC")
	if err != nil {
		return nil, err
	}
	q := s.db.Where("user_id = ?", viewerID)
	return paginate[models.Tax](ctx, q, o, args)
}

// UpdateTax applies a partial update.
func (s *Store) UpdateTax(ctx context.Context, id, viewerID uint, input TaxUpdateInput) (*models.Tax, error) {
	tax, err := s.GetTax(ctx, id, viewerID)
	if err != nil {
		return nil, err
	}

	label := tax.Label
	if input.Label != nil {
		label = *input.Label
	}
	value := tax.Value
	if input.Value != nil {
		value = *input.Value
	}
	v := validate.New()
	validateTax(v, label, value)
	if err := v.Err(); err != nil {
		return nil, err
	}

	tax.Label = label
	tax.Value = value
	if err := s.db.WithContext(ctx).Save(tax).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return tax, nil
}

// DeleteTax removes a tax.
func (s *Store) DeleteTax(ctx context.Context, id, viewerID uint) (*models.Tax, error) {
	tax, err := s.GetTax(ctx, id, viewerID)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Delete(&models.Tax{}, id).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return tax, nil
}
