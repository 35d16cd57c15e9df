package models

import (
	"strings"
	"time"
)

// Client types. The two variants carry disjoint detail column sets.
const (
	ClientTypePrivate  = "PRIVATE"
	ClientTypeBusiness = "BUSINESS"
)

// Client is somebody a user works for. A client is either PRIVATE or
// BUSINESS; the inapplicable detail columns are always NULL and the two
// sets are never populated together.
type Client struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Type string `gorm:"not null" json:"type"` // PRIVATE, BUSINESS

	// PRIVATE details
	FiscalCode *string `json:"fiscal_code"`
	FirstName  *string `json:"first_name"`
	LastName   *string `json:"last_name"`

	// BUSINESS details
	CountryCode  *string `json:"country_code"`
	VatNumber    *string `json:"vat_number"`
	BusinessName *string `json:"business_name"`

	AddressCountry      string  `gorm:"not null" json:"address_country"`
	AddressProvince     string  `gorm:"not null" json:"address_province"`
	AddressCity         string  `gorm:"not null" json:"address_city"`
	AddressZip          string  `gorm:"not null" json:"address_zip"`
	AddressStreet       string  `gorm:"not null" json:"address_street"`
	AddressStreetNumber *string `json:"address_street_number"`
	AddressEmail        string  `gorm:"not null" json:"address_email"`

	UserID uint `gorm:"not null;index" json:"user_id"`

	// Relationships
	User     User      `json:"-"`
	Projects []Project `gorm:"foreignKey:ClientID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"projects,omitempty"`
}

// PrivateDetails is the populated variant of a PRIVATE client.
type PrivateDetails struct {
	FiscalCode string
	FirstName  string
	LastName   string
}

// BusinessDetails is the populated variant of a BUSINESS client.
type BusinessDetails struct {
	CountryCode  string
	VatNumber    string
	BusinessName string
}

// Private returns the PRIVATE variant of the client, if that is what it is.
func (c *Client) Private() (PrivateDetails, bool) {
	if c.Type != ClientTypePrivate || c.FiscalCode == nil || c.FirstName == nil || c.LastName == nil {
		return PrivateDetails{}, false
	}
	return PrivateDetails{
		FiscalCode: *c.FiscalCode,
		FirstName:  *c.FirstName,
		LastName:   *c.LastName,
	}, true
}

// Business returns the BUSINESS variant of the client, if that is what it is.
func (c *Client) Business() (BusinessDetails, bool) {
	if c.Type != ClientTypeBusiness || c.CountryCode == nil || c.VatNumber == nil || c.BusinessName == nil {
		return BusinessDetails{}, false
	}
	return BusinessDetails{
		CountryCode:  *c.CountryCode,
		VatNumber:    *c.VatNumber,
		BusinessName: *c.BusinessName,
	}, true
}

// DisplayName is the business name for BUSINESS clients, "first last"
// for PRIVATE ones.
func (c *Client) DisplayName() string {
	if b, ok := c.Business(); ok {
		return b.BusinessName
	}
	if p, ok := c.Private(); ok {
		return strings.TrimSpace(p.FirstName + " " + p.LastName)
	}
	return ""
}
