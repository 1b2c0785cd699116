package leave

import (
	"time"

	"github.com/hrportal/leave-management/internal"
)

// CreateLeaveRequestDTO is the request payload for submitting a leave
// request. Dates arrive as YYYY-MM-DD strings.
type CreateLeaveRequestDTO struct {
	LeaveType string `json:"leave_type"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason"`
}

// Validate checks the payload and returns the parsed fields. End before
// start is rejected here rather than silently charged via the absolute
// day count.
func (dto CreateLeaveRequestDTO) Validate() (LeaveType, time.Time, time.Time, error) {
	leaveType, ok := ParseLeaveType(dto.LeaveType)
	if !ok {
		return "", time.Time{}, time.Time{}, internal.NewValidationError("unknown leave type", internal.ErrCodeInvalidLeaveType)
	}
	if dto.Reason == "" {
		return "", time.Time{}, time.Time{}, internal.NewValidationError("reason is required", internal.ErrCodeReasonRequired)
	}
	start, err := time.Parse(DateLayout, dto.StartDate)
	if err != nil {
		return "", time.Time{}, time.Time{}, internal.NewValidationError("start date must be in YYYY-MM-DD format", internal.ErrCodeInvalidDateRange)
	}
	end, err := time.Parse(DateLayout, dto.EndDate)
	if err != nil {
		return "", time.Time{}, time.Time{}, internal.NewValidationError("end date must be in YYYY-MM-DD format", internal.ErrCodeInvalidDateRange)
	}
	if end.Before(start) {
		return "", time.Time{}, time.Time{}, internal.NewValidationError("end date must not be before start date", internal.ErrCodeInvalidDateRange)
	}
	return leaveType, start, end, nil
}

// RejectLeaveRequestDTO carries the rejection reason for a reject action.
type RejectLeaveRequestDTO struct {
	Reason string `json:"reason"`
}

func (dto RejectLeaveRequestDTO) Validate() error {
	if dto.Reason == "" {
		return internal.NewValidationError("reason is required when rejecting a leave request", internal.ErrCodeReasonRequired)
	}
	return nil
}

// StatsResponse backs the admin dashboard summary cards.
type StatsResponse struct {
	TotalEmployees  int `json:"total_employees"`
	PendingRequests int `json:"pending_requests"`
}

// MonthlyCount is one bucket of the approved-requests-per-month series.
type MonthlyCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}
