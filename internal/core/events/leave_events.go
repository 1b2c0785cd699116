package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	LeaveRequestSubmitted = "leave.request.submitted"
	LeaveRequestApproved  = "leave.request.approved"
	LeaveRequestRejected  = "leave.request.rejected"
)

func NewLeaveRequestSubmitted(requestID, userID, leaveType string) BaseEvent {
	return newLeaveEvent(LeaveRequestSubmitted, map[string]interface{}{
		"request_id": requestID,
		"user_id":    userID,
		"leave_type": leaveType,
	})
}

func NewLeaveRequestApproved(requestID, userID, leaveType string, daysDeducted int) BaseEvent {
	return newLeaveEvent(LeaveRequestApproved, map[string]interface{}{
		"request_id":    requestID,
		"user_id":       userID,
		"leave_type":    leaveType,
		"days_deducted": daysDeducted,
	})
}

func NewLeaveRequestRejected(requestID, userID, rejectionReason string) BaseEvent {
	return newLeaveEvent(LeaveRequestRejected, map[string]interface{}{
		"request_id":       requestID,
		"user_id":          userID,
		"rejection_reason": rejectionReason,
	})
}

func newLeaveEvent(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      data,
	}
}
