package models

import (
	"time"
)

// Project is a unit of billable work for a client. Once a payment has
// been recorded against it the project is "cashed": cashed_at and
// cashed_balance are set together or not at all.
type Project struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name        string  `gorm:"not null" json:"name"`
	Description *string `json:"description"`

	CashedAt      *time.Time `json:"cashed_at"`
	CashedBalance *float64   `json:"cashed_balance"`

	ClientID uint `gorm:"not null;index" json:"client_id"`

	// Owning user id, populated by the ownership join on reads only.
	OwnerID uint `gorm:"->;-:migration" json:"-"`

	// Relationships
	Client Client `json:"-"`
	Tasks  []Task `gorm:"foreignKey:ProjectID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"tasks,omitempty"`
}

// Cashed is the recorded payment of a cashed project.
type Cashed struct {
	At      time.Time `json:"at"`
	Balance float64   `json:"balance"`
}

// CashedData returns the cashed pair, if the project has been cashed.
func (p *Project) CashedData() (Cashed, bool) {
	if p.CashedAt == nil || p.CashedBalance == nil {
		return Cashed{}, false
	}
	return Cashed{At: *p.CashedAt, Balance: *p.CashedBalance}, true
}
