package entity

import (
	"time"

	"github.com/google/uuid"
)

// Periodicity values accepted for a company.
const (
	PeriodicityOneWeek   = "1 week"
	PeriodicityTwoWeeks  = "2 weeks"
	PeriodicityOneMonth  = "1 month"
	PeriodicityTwoMonths = "2 months"
	DefaultPeriodicity   = PeriodicityTwoWeeks
)

// Company represents an organisation the team keeps in touch with.
type Company struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Location        string    `json:"location"`
	LinkedInProfile string    `json:"linkedin_profile"`
	Emails          []string  `json:"emails"`
	PhoneNumbers    []string  `json:"phone_numbers"`
	Comments        string    `json:"comments"`
	Periodicity     string    `json:"periodicity"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
