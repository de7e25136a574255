package entity

import (
	"time"

	"github.com/google/uuid"
)

// CommunicationMethod is an administrator-defined kind of interaction.
type CommunicationMethod struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Sequence    int       `json:"sequence"`
	Mandatory   bool      `json:"mandatory"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Communication is a single logged interaction with a company.
type Communication struct {
	ID        uuid.UUID  `json:"id"`
	CompanyID uuid.UUID  `json:"company_id"`
	MethodID  uuid.UUID  `json:"method_id"`
	Date      time.Time  `json:"date"`
	Notes     string     `json:"notes"`
	CreatedBy *uuid.UUID `json:"created_by,omitempty"`
	CreatedAt time.Time  `json:"created_at"`

	// Populated by joins; empty when the reference no longer resolves.
	CompanyName string `json:"company_name,omitempty"`
	MethodName  string `json:"method_name,omitempty"`
}
