package db

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mconstantine/cooler-sub002/internal/apperr"
	"github.com/mconstantine/cooler-sub002/internal/models"
	"github.com/mconstantine/cooler-sub002/internal/validate"
)

// ClientCreationInput holds the data needed to create a client. The
// detail fields of the variant not selected by Type are discarded.
type ClientCreationInput struct {
	Type string

	FiscalCode *string
	FirstName  *string
	LastName   *string

	CountryCode  *string
	VatNumber    *string
	BusinessName *string

	AddressCountry      string
	AddressProvince     string
	AddressCity         string
	AddressZip          string
	AddressStreet       string
	AddressStreetNumber *string
	AddressEmail        string
}

// ClientUpdateInput is a partial update: nil fields keep their value.
// Switching Type requires the new variant's details and nulls out the
// old variant's columns.
type ClientUpdateInput struct {
	Type *string

	FiscalCode *string
	FirstName  *string
	LastName   *string

	CountryCode  *string
	VatNumber    *string
	BusinessName *string

	AddressCountry      *string
	AddressProvince     *string
	AddressCity         *string
	AddressZip          *string
	AddressStreet       *string
	AddressStreetNumber *string
	AddressEmail        *string
}

var clientOrderings = map[string]ordering[models.Client]{
	"CREATED_AT_ASC":  {"created_at ASC", func(c *models.Client) string { return timeCursor(c.CreatedAt) }},
	"CREATED_AT_DESC": {"created_at DESC", func(c *models.Client) string { return timeCursor(c.CreatedAt) }},
	"UPDATED_AT_ASC":  {"updated_at ASC", func(c *models.Client) string { return timeCursor(c.UpdatedAt) }},
	"UPDATED_AT_DESC": {"updated_at DESC", func(c *models.Client) string { return timeCursor(c.UpdatedAt) }},
	"NAME_ASC":        {clientNameExpr + " ASC", func(c *models.Client) string { return c.DisplayName() }},
	"NAME_DESC":       {clientNameExpr + " DESC", func(c *models.Client) string { return c.DisplayName() }},
}

const clientNameExpr = "COALESCE(business_name, first_name || ' ' || last_name)"

// CreateClient creates a client owned by the given user.
func (s *Store) CreateClient(ctx context.Context, userID uint, input ClientCreationInput) (*models.Client, error) {
	v := validate.New()
	validateClientAddress(v, input.AddressCountry, input.AddressProvince, input.AddressCity,
		input.AddressZip, input.AddressStreet, input.AddressEmail)
	validateClientDetails(v, input.Type, input.FiscalCode, input.FirstName, input.LastName,
		input.CountryCode, input.VatNumber, input.BusinessName)
	if err := v.Err(); err != nil {
		return nil, err
	}

	client := models.Client{
		AddressCountry:      input.AddressCountry,
		AddressProvince:     input.AddressProvince,
		AddressCity:         input.AddressCity,
		AddressZip:          input.AddressZip,
		AddressStreet:       input.AddressStreet,
		AddressStreetNumber: input.AddressStreetNumber,
		AddressEmail:        input.AddressEmail,
		UserID:              userID,
	}
	applyClientDetails(&client, input.Type, input.FiscalCode, input.FirstName, input.LastName,
		input.CountryCode, input.VatNumber, input.BusinessName)

	if err := s.db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return &client, nil
}

// GetClient fetches a client, enforcing ownership. A missing client is a
// 404 before any ownership consideration.
func (s *Store) GetClient(ctx context.Context, id, viewerID uint) (*models.Client, error) {
	var client models.Client
	err := s.db.WithContext(ctx).First(&client, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("client not found")
		}
		return nil, apperr.Internal(err)
	}
	if client.UserID != viewerID {
		return nil, apperr.Forbidden("you cannot see this client")
	}
	return &client, nil
}

// ClientsForUser lists the viewer's clients, optionally filtered by
// (display) name.
func (s *Store) ClientsForUser(ctx context.Context, viewerID uint, name *string, args ConnectionArgs, orderBy *string) (*Connection[models.Client], error) {
	o, err := orderingFor(clientOrderings, orderBy, "NAME_ASC")
	if err != nil {
		return nil, err
	}
	q := s.db.Where("user_id = ?", viewerID)
	if name != nil && *name != "" {
		q = q.Where(clientNameExpr+" LIKE ?", "%"+*name+"%")
	}
	return paginate[models.Client](ctx, q, o, args)
}

// UpdateClient applies a partial update, re-deriving the variant columns
// so the inapplicable detail set is always NULL.
func (s *Store) UpdateClient(ctx context.Context, id, viewerID uint, input ClientUpdateInput) (*models.Client, error) {
	client, err := s.GetClient(ctx, id, viewerID)
	if err != nil {
		return nil, err
	}

	clientType := client.Type
	if input.Type != nil {
		clientType = *input.Type
	}
	fiscalCode := mergeOpt(client.FiscalCode, input.FiscalCode)
	firstName := mergeOpt(client.FirstName, input.FirstName)
	lastName := mergeOpt(client.LastName, input.LastName)
	countryCode := mergeOpt(client.CountryCode, input.CountryCode)
	vatNumber := mergeOpt(client.VatNumber, input.VatNumber)
	businessName := mergeOpt(client.BusinessName, input.BusinessName)

	if input.AddressCountry != nil {
		client.AddressCountry = *input.AddressCountry
	}
	if input.AddressProvince != nil {
		client.AddressProvince = *input.AddressProvince
	}
	if input.AddressCity != nil {
		client.AddressCity = *input.AddressCity
	}
	if input.AddressZip != nil {
		client.AddressZip = *input.AddressZip
	}
	if input.AddressStreet != nil {
		client.AddressStreet = *input.AddressStreet
	}
	if input.AddressStreetNumber != nil {
		client.AddressStreetNumber = input.AddressStreetNumber
	}
	if input.AddressEmail != nil {
		client.AddressEmail = *input.AddressEmail
	}

	v := validate.New()
	validateClientAddress(v, client.AddressCountry, client.AddressProvince, client.AddressCity,
		client.AddressZip, client.AddressStreet, client.AddressEmail)
	validateClientDetails(v, clientType, fiscalCode, firstName, lastName,
		countryCode, vatNumber, businessName)
	if err := v.Err(); err != nil {
		return nil, err
	}

	applyClientDetails(client, clientType, fiscalCode, firstName, lastName,
		countryCode, vatNumber, businessName)

	if err := s.db.WithContext(ctx).Save(client).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return client, nil
}

// DeleteClient removes a client and, through the cascade constraints,
// all its projects, tasks and sessions.
func (s *Store) DeleteClient(ctx context.Context, id, viewerID uint) (*models.Client, error) {
	client, err := s.GetClient(ctx, id, viewerID)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Delete(&models.Client{}, id).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return client, nil
}

func validateClientAddress(v *validate.Validator, country, province, city, zip, street, email string) {
	v.Check(country != "", "address_country", "must be provided")
	v.Check(province != "", "address_province", "must be provided")
	v.Check(city != "", "address_city", "must be provided")
	v.Check(zip != "", "address_zip", "must be provided")
	v.Check(street != "", "address_street", "must be provided")
	v.CheckEmail(email)
}

func validateClientDetails(v *validate.Validator, clientType string, fiscalCode, firstName, lastName, countryCode, vatNumber, businessName *string) {
	switch clientType {
	case models.ClientTypePrivate:
		v.Check(present(fiscalCode), "fiscal_code", "must be provided for private clients")
		v.Check(present(firstName), "first_name", "must be provided for private clients")
		v.Check(present(lastName), "last_name", "must be provided for private clients")
	case models.ClientTypeBusiness:
		v.Check(present(countryCode), "country_code", "must be provided for business clients")
		v.Check(present(vatNumber), "vat_number", "must be provided for business clients")
		v.Check(present(businessName), "business_name", "must be provided for business clients")
	default:
		v.Check(false, "type", "must be either PRIVATE or BUSINESS")
	}
}

// applyClientDetails writes the selected variant's columns and nulls the
// other set, keeping the two mutually exclusive in storage.
func applyClientDetails(client *models.Client, clientType string, fiscalCode, firstName, lastName, countryCode, vatNumber, businessName *string) {
	client.Type = clientType
	switch clientType {
	case models.ClientTypePrivate:
		client.FiscalCode = fiscalCode
		client.FirstName = firstName
		client.LastName = lastName
		client.CountryCode = nil
		client.VatNumber = nil
		client.BusinessName = nil
	case models.ClientTypeBusiness:
		client.FiscalCode = nil
		client.FirstName = nil
		client.LastName = nil
		client.CountryCode = countryCode
		client.VatNumber = vatNumber
		client.BusinessName = businessName
	}
}

func present(s *string) bool {
	return s != nil && *s != ""
}

func mergeOpt(current, incoming *string) *string {
	if incoming != nil {
		return incoming
	}
	return current
}
