package leave

import "time"

// LeaveRequest is the persistence shape of a leave request. Seq orders
// listings newest-created-first without relying on wall-clock timestamps.
type LeaveRequest struct {
	ID              string    `gorm:"primaryKey"`
	Seq             int64     `gorm:"column:seq;autoIncrement;uniqueIndex"`
	UserID          string    `gorm:"column:user_id;index;not null"`
	UserName        string    `gorm:"column:user_name;not null"`
	LeaveType       string    `gorm:"column:leave_type;not null"`
	StartDate       time.Time `gorm:"column:start_date;type:date;not null"`
	EndDate         time.Time `gorm:"column:end_date;type:date;not null"`
	Reason          string    `gorm:"column:reason;not null"`
	Status          string    `gorm:"column:status;default:Pending;index"`
	RejectionReason string    `gorm:"column:rejection_reason"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}
