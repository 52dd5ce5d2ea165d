package appointment

import "github.com/prashantkoirala465/Appointment-Management-System/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func InitialStatus() Status {
	return StatusScheduled
}

// IsValid reports whether s is one of the known status values. Checked at
// the input boundary; the store itself does not constrain the column.
func IsValid(s Status) bool {
	switch s {
	case StatusScheduled, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func Validate(s Status) error {
	if !IsValid(s) {
		return httperr.ErrBusiness("invalid_status")
	}
	return nil
}
