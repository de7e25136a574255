package dto

import "github.com/google/uuid"

// StatsQuery carries the analytics query parameters.
type StatsQuery struct {
	Timeframe string
	CompanyID *uuid.UUID
}

// ReportQuery carries the report download parameters.
type ReportQuery struct {
	Format    string
	Timeframe string
	CompanyID *uuid.UUID
}
