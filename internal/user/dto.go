package user

import "sort"

// BalanceEntry is one leave-category counter in a balances listing.
type BalanceEntry struct {
	LeaveType string `json:"leave_type"`
	Days      int    `json:"days"`
}

type BalancesResponse struct {
	UserID   string         `json:"user_id"`
	Balances []BalanceEntry `json:"balances"`
}

func (u *User) ToBalancesResponse() BalancesResponse {
	resp := BalancesResponse{UserID: u.ID, Balances: []BalanceEntry{}}
	for leaveType, days := range u.LeaveBalances {
		resp.Balances = append(resp.Balances, BalanceEntry{LeaveType: leaveType, Days: days})
	}
	sort.Slice(resp.Balances, func(i, j int) bool {
		return resp.Balances[i].LeaveType < resp.Balances[j].LeaveType
	})
	return resp
}
