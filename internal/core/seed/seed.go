// Package seed holds the sample dataset the service starts with in
// in-memory mode, and which the seed command loads into a database.
package seed

import (
	"time"

	"github.com/hrportal/leave-management/internal/leave"
	"github.com/hrportal/leave-management/internal/user"
)

func Users() []*user.User {
	return []*user.User{
		{
			ID:            "1",
			Name:          "Admin User",
			Email:         "admin@example.com",
			Role:          user.RoleAdmin,
			LeaveBalances: map[string]int{},
		},
		{
			ID:    "2",
			Name:  "Alice Johnson",
			Email: "alice@example.com",
			Role:  user.RoleEmployee,
			LeaveBalances: map[string]int{
				string(leave.TypeAnnual): 15,
				string(leave.TypeSick):   8,
			},
		},
		{
			ID:    "3",
			Name:  "Bob Williams",
			Email: "bob@example.com",
			Role:  user.RoleEmployee,
			LeaveBalances: map[string]int{
				string(leave.TypeAnnual): 20,
				string(leave.TypeSick):   5,
			},
		},
		{
			ID:    "4",
			Name:  "Charlie Brown",
			Email: "charlie@example.com",
			Role:  user.RoleEmployee,
			LeaveBalances: map[string]int{
				string(leave.TypeAnnual): 12,
				string(leave.TypeSick):   10,
			},
		},
	}
}

func LeaveRequests() []*leave.LeaveRequest {
	return []*leave.LeaveRequest{
		{
			ID:        "lr1",
			UserID:    "2",
			UserName:  "Alice Johnson",
			LeaveType: leave.TypeAnnual,
			StartDate: date("2024-08-10"),
			EndDate:   date("2024-08-15"),
			Reason:    "Family vacation to the mountains.",
			Status:    leave.StatusPending,
		},
		{
			ID:        "lr2",
			UserID:    "3",
			UserName:  "Bob Williams",
			LeaveType: leave.TypeSick,
			StartDate: date("2024-07-22"),
			EndDate:   date("2024-07-22"),
			Reason:    "Fever and cold.",
			Status:    leave.StatusApproved,
		},
		{
			ID:        "lr3",
			UserID:    "4",
			UserName:  "Charlie Brown",
			LeaveType: leave.TypeUnpaid,
			StartDate: date("2024-09-01"),
			EndDate:   date("2024-09-05"),
			Reason:    "Personal reasons, attending a workshop.",
			Status:    leave.StatusPending,
		},
		{
			ID:              "lr4",
			UserID:          "2",
			UserName:        "Alice Johnson",
			LeaveType:       leave.TypeAnnual,
			StartDate:       date("2024-06-01"),
			EndDate:         date("2024-06-03"),
			Reason:          "Short trip.",
			Status:          leave.StatusRejected,
			RejectionReason: "Project deadline approaching, critical phase.",
		},
	}
}

func date(s string) time.Time {
	t, err := time.Parse(leave.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}
