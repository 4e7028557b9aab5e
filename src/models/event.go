package models

import (
	"anc/src/types"
	"time"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type Event struct {
	ID          uint    `gorm:"primarykey" json:"id"`
	Title       string  `json:"title"`
	TitleBangla string  `json:"title_bangla,omitempty"`
	Slug        string  `gorm:"uniqueIndex" json:"slug"`
	Description string  `json:"description,omitempty"`
	EventType   string  `gorm:"index;default:'waz-mahfil'" json:"event_type,omitempty"`
	Category    string  `json:"category,omitempty"`

	StartDate time.Time  `gorm:"index" json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`

	VenueName    string `json:"venue_name,omitempty"`
	VenueAddress string `json:"venue_address,omitempty"`
	VenueCity    string `json:"venue_city,omitempty"`

	CoverImage string `json:"cover_image,omitempty"`

	HasDonationTarget bool    `json:"has_donation_target"`
	DonationTarget    float64 `json:"donation_target,omitempty"`
	CurrentDonations  float64 `json:"current_donations"`

	Status      types.EventStatus `gorm:"index;default:'draft'" json:"status"`
	PublishedAt *time.Time        `json:"published_at,omitempty"`
	Views       uint              `json:"views"`
	CreatedBy   uint              `json:"created_by,omitempty"`

	Creator *User `gorm:"foreignKey:created_by" json:"-"`

	types.Timestamps
}

// Phase is derived from the event dates against now; nothing is stored.
func (e *Event) Phase(now time.Time) types.EventPhase {
	if now.Before(e.StartDate) {
		return types.EVENT_UPCOMING
	}
	if e.EndDate != nil {
		if now.After(*e.EndDate) {
			return types.EVENT_PAST
		}
		return types.EVENT_ONGOING
	}
	if now.After(e.StartDate) {
		return types.EVENT_PAST
	}
	return types.EVENT_ONGOING
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.Slug == "" {
		e.Slug = slug.Make(e.Title)
	}
	return nil
}
