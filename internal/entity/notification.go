package entity

import (
	"time"

	"github.com/google/uuid"
)

// Notification types.
const (
	NotificationOverdue  = "overdue"
	NotificationDueToday = "due today"
)

// Notification flags a company whose next communication is due or late.
type Notification struct {
	ID          uuid.UUID `json:"id"`
	CompanyID   uuid.UUID `json:"company_id"`
	CompanyName string    `json:"company_name"`
	Type        string    `json:"type"`
	Message     string    `json:"message"`
	DueDate     time.Time `json:"due_date"`
	CreatedAt   time.Time `json:"created_at"`
}
