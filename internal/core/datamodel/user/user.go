package user

import "time"

type User struct {
	ID        string    `gorm:"primaryKey"`
	Email     string    `gorm:"column:email;uniqueIndex;not null"`
	Name      string    `gorm:"column:name;not null"`
	Role      string    `gorm:"column:role;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}

// LeaveBalance holds one leave-category counter per user. Days is signed:
// approvals may push it below zero.
type LeaveBalance struct {
	ID        int64     `gorm:"primaryKey"`
	UserID    string    `gorm:"column:user_id;index:idx_user_leave_type,unique;not null"`
	LeaveType string    `gorm:"column:leave_type;index:idx_user_leave_type,unique;not null"`
	Days      int       `gorm:"column:days;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (LeaveBalance) TableName() string {
	return "leave_balances"
}
