package dto

import (
	"time"

	"github.com/google/uuid"
)

// LogCommunicationRequest records one interaction against one or more companies.
type LogCommunicationRequest struct {
	CompanyIDs []string   `json:"companyIds"`
	MethodID   string     `json:"methodId"`
	Date       *time.Time `json:"date,omitempty"`
	Notes      string     `json:"notes"`
}

// CommunicationFilter narrows communication listings.
type CommunicationFilter struct {
	CompanyID *uuid.UUID
	Since     *time.Time
}
