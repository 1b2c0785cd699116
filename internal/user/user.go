package user

import (
	"github.com/hrportal/leave-management/internal"
	userDatamodel "github.com/hrportal/leave-management/internal/core/datamodel/user"
)

type Role string

const (
	RoleEmployee Role = "employee"
	RoleAdmin    Role = "admin"
)

// User is the domain model. LeaveBalances maps a leave-category name to
// the remaining day count; absent categories read as zero and values may
// go negative. Admin users carry no balances.
type User struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Email         string         `json:"email"`
	Role          Role           `json:"role"`
	LeaveBalances map[string]int `json:"leave_balances"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsEmployee() bool {
	return u.Role == RoleEmployee
}

// Balance returns the remaining days for a leave category, zero when the
// category has never been recorded.
func (u *User) Balance(leaveType string) int {
	if u.LeaveBalances == nil {
		return 0
	}
	return u.LeaveBalances[leaveType]
}

// Deduct lowers the balance for a leave category, creating the entry at
// 0-days when absent. No floor: balances go negative silently.
func (u *User) Deduct(leaveType string, days int) {
	if u.LeaveBalances == nil {
		u.LeaveBalances = make(map[string]int)
	}
	u.LeaveBalances[leaveType] = u.LeaveBalances[leaveType] - days
}

// Clone returns a deep copy so callers never hand out a map that aliases
// store state.
func (u *User) Clone() *User {
	cp := *u
	cp.LeaveBalances = make(map[string]int, len(u.LeaveBalances))
	for k, v := range u.LeaveBalances {
		cp.LeaveBalances[k] = v
	}
	return &cp
}

var ErrNotFound = internal.ErrUserNotFound

func ToDataModel(u *User) *userDatamodel.User {
	return &userDatamodel.User{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
		Role:  string(u.Role),
	}
}

func ToBalanceDataModels(u *User) []*userDatamodel.LeaveBalance {
	balances := make([]*userDatamodel.LeaveBalance, 0, len(u.LeaveBalances))
	for leaveType, days := range u.LeaveBalances {
		balances = append(balances, &userDatamodel.LeaveBalance{
			UserID:    u.ID,
			LeaveType: leaveType,
			Days:      days,
		})
	}
	return balances
}

func FromDataModel(u *userDatamodel.User, balances []*userDatamodel.LeaveBalance) *User {
	domainUser := &User{
		ID:            u.ID,
		Email:         u.Email,
		Name:          u.Name,
		Role:          Role(u.Role),
		LeaveBalances: make(map[string]int, len(balances)),
	}
	for _, b := range balances {
		domainUser.LeaveBalances[b.LeaveType] = b.Days
	}
	return domainUser
}
