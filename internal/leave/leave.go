package leave

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/hrportal/leave-management/internal"
	leaveDatamodel "github.com/hrportal/leave-management/internal/core/datamodel/leave"
	"github.com/hrportal/leave-management/internal/user"
)

type LeaveType string

const (
	TypeAnnual    LeaveType = "Annual"
	TypeSick      LeaveType = "Sick"
	TypeUnpaid    LeaveType = "Unpaid"
	TypeMaternity LeaveType = "Maternity"
)

// AllLeaveTypes is the closed set of leave categories, in display order.
var AllLeaveTypes = []LeaveType{TypeAnnual, TypeSick, TypeUnpaid, TypeMaternity}

func ParseLeaveType(s string) (LeaveType, bool) {
	for _, t := range AllLeaveTypes {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

// DateLayout is the wire format for request dates.
const DateLayout = "2006-01-02"

type LeaveRequest struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	UserName        string    `json:"user_name"`
	LeaveType       LeaveType `json:"leave_type"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	Reason          string    `json:"reason"`
	Status          string    `json:"status"`
	RejectionReason string    `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (r *LeaveRequest) CanBeApproved() bool {
	return r.Status == StatusPending
}

func (r *LeaveRequest) CanBeRejected() bool {
	return r.Status == StatusPending
}

func (r *LeaveRequest) Approve() {
	r.Status = StatusApproved
	r.RejectionReason = ""
	r.UpdatedAt = time.Now()
}

func (r *LeaveRequest) Reject(reason string) {
	r.Status = StatusRejected
	r.RejectionReason = reason
	r.UpdatedAt = time.Now()
}

// ChargesBalance reports whether approving this request deducts days from
// the owner's balance. Unpaid leave never does.
func (r *LeaveRequest) ChargesBalance() bool {
	return r.LeaveType != TypeUnpaid
}

// Days returns the inclusive day count charged on approval.
func (r *LeaveRequest) Days() int {
	return DaysInclusive(r.StartDate, r.EndDate)
}

// DaysInclusive counts calendar days between two dates, both ends
// included: ceil(|end-start| in ms / 86,400,000) + 1. The absolute value
// keeps the count positive even when the dates arrive inverted, and a
// same-day range counts as one day.
func DaysInclusive(start, end time.Time) int {
	diffMs := end.Sub(start).Milliseconds()
	if diffMs < 0 {
		diffMs = -diffMs
	}
	return int(math.Ceil(float64(diffMs)/86400000.0)) + 1
}

// NewLeaveRequest builds a Pending request owned by actor. UserName is a
// snapshot of the actor's name at creation time and is never refreshed.
func NewLeaveRequest(actor *user.User, leaveType LeaveType, startDate, endDate time.Time, reason string) *LeaveRequest {
	now := time.Now()
	return &LeaveRequest{
		ID:        uuid.NewString(),
		UserID:    actor.ID,
		UserName:  actor.Name,
		LeaveType: leaveType,
		StartDate: startDate,
		EndDate:   endDate,
		Reason:    reason,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Domain errors
var (
	ErrLeaveRequestNotFound = internal.ErrLeaveRequestNotFound
	ErrInvalidLeaveStatus   = internal.ErrInvalidLeaveStatus
)

func ToDataModel(r *LeaveRequest) *leaveDatamodel.LeaveRequest {
	return &leaveDatamodel.LeaveRequest{
		ID:              r.ID,
		UserID:          r.UserID,
		UserName:        r.UserName,
		LeaveType:       string(r.LeaveType),
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		Reason:          r.Reason,
		Status:          r.Status,
		RejectionReason: r.RejectionReason,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

func FromDataModel(r *leaveDatamodel.LeaveRequest) *LeaveRequest {
	return &LeaveRequest{
		ID:              r.ID,
		UserID:          r.UserID,
		UserName:        r.UserName,
		LeaveType:       LeaveType(r.LeaveType),
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		Reason:          r.Reason,
		Status:          r.Status,
		RejectionReason: r.RejectionReason,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

func FromDataModelSlice(requests []*leaveDatamodel.LeaveRequest) []*LeaveRequest {
	result := make([]*LeaveRequest, len(requests))
	for i, r := range requests {
		result[i] = FromDataModel(r)
	}
	return result
}
