// Package directory is the in-memory system of record for users and
// leave requests, seeded from sample data at startup. It is the default
// store when no database source is configured and backs the service
// tests.
package directory

import (
	"strings"
	"sync"

	"github.com/hrportal/leave-management/internal/leave"
	"github.com/hrportal/leave-management/internal/user"
)

// Store holds both collections behind one mutex so an approval can apply
// the status transition and the balance deduction as a single atomic
// step.
type Store struct {
	mu           sync.RWMutex
	users        map[string]*user.User
	userOrder    []string
	requests     []*leave.LeaveRequest // newest-created first
	requestIndex map[string]*leave.LeaveRequest
}

func New(users []*user.User, requests []*leave.LeaveRequest) *Store {
	s := &Store{
		users:        make(map[string]*user.User, len(users)),
		requestIndex: make(map[string]*leave.LeaveRequest, len(requests)),
	}
	for _, u := range users {
		cp := u.Clone()
		s.users[cp.ID] = cp
		s.userOrder = append(s.userOrder, cp.ID)
	}
	for _, r := range requests {
		cp := *r
		s.requests = append(s.requests, &cp)
		s.requestIndex[cp.ID] = &cp
	}
	return s
}

// Users returns the user.Repository view of the store.
func (s *Store) Users() user.Repository {
	return &userDirectory{store: s}
}

// Requests returns the leave.Repository view of the store.
func (s *Store) Requests() leave.Repository {
	return &requestDirectory{store: s}
}

// ----------------- USERS -----------------

type userDirectory struct {
	store *Store
}

func (d *userDirectory) GetByID(id string) (*user.User, error) {
	d.store.mu.RLock()
	defer d.store.mu.RUnlock()

	u, ok := d.store.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u.Clone(), nil
}

func (d *userDirectory) GetByEmail(email string) (*user.User, error) {
	d.store.mu.RLock()
	defer d.store.mu.RUnlock()

	for _, id := range d.store.userOrder {
		u := d.store.users[id]
		if strings.EqualFold(u.Email, email) {
			return u.Clone(), nil
		}
	}
	return nil, user.ErrNotFound
}

func (d *userDirectory) Upsert(u *user.User) error {
	d.store.mu.Lock()
	defer d.store.mu.Unlock()

	if _, ok := d.store.users[u.ID]; !ok {
		d.store.userOrder = append(d.store.userOrder, u.ID)
	}
	d.store.users[u.ID] = u.Clone()
	return nil
}

func (d *userDirectory) CountByRole(role user.Role) (int, error) {
	d.store.mu.RLock()
	defer d.store.mu.RUnlock()

	count := 0
	for _, u := range d.store.users {
		if u.Role == role {
			count++
		}
	}
	return count, nil
}

// ----------------- LEAVE REQUESTS -----------------

type requestDirectory struct {
	store *Store
}

func (d *requestDirectory) Create(req *leave.LeaveRequest) error {
	d.store.mu.Lock()
	defer d.store.mu.Unlock()

	cp := *req
	// new requests are most recent: insert at the front
	d.store.requests = append([]*leave.LeaveRequest{&cp}, d.store.requests...)
	d.store.requestIndex[cp.ID] = &cp
	return nil
}

func (d *requestDirectory) GetByID(id string) (*leave.LeaveRequest, error) {
	d.store.mu.RLock()
	defer d.store.mu.RUnlock()

	req, ok := d.store.requestIndex[id]
	if !ok {
		return nil, leave.ErrLeaveRequestNotFound
	}
	cp := *req
	return &cp, nil
}

func (d *requestDirectory) ListAll() ([]*leave.LeaveRequest, error) {
	d.store.mu.RLock()
	defer d.store.mu.RUnlock()
	return cloneRequests(d.store.requests), nil
}

func (d *requestDirectory) ListByUserID(userID string) ([]*leave.LeaveRequest, error) {
	d.store.mu.RLock()
	defer d.store.mu.RUnlock()

	var result []*leave.LeaveRequest
	for _, req := range d.store.requests {
		if req.UserID == userID {
			cp := *req
			result = append(result, &cp)
		}
	}
	return result, nil
}

func (d *requestDirectory) ListPending() ([]*leave.LeaveRequest, error) {
	return d.listByStatus(func(status string) bool { return status == leave.StatusPending })
}

func (d *requestDirectory) ListHistory() ([]*leave.LeaveRequest, error) {
	result, err := d.listByStatus(func(status string) bool { return status != leave.StatusPending })
	if err != nil {
		return nil, err
	}
	leave.SortByStartDateDesc(result)
	return result, nil
}

func (d *requestDirectory) listByStatus(match func(string) bool) ([]*leave.LeaveRequest, error) {
	d.store.mu.RLock()
	defer d.store.mu.RUnlock()

	var result []*leave.LeaveRequest
	for _, req := range d.store.requests {
		if match(req.Status) {
			cp := *req
			result = append(result, &cp)
		}
	}
	return result, nil
}

// Approve transitions the request to Approved and applies the balance
// deduction under one lock. A missing owner skips the deduction but still
// approves, matching the lifecycle contract.
func (d *requestDirectory) Approve(id string, deduction *leave.BalanceDeduction) error {
	d.store.mu.Lock()
	defer d.store.mu.Unlock()

	req, ok := d.store.requestIndex[id]
	if !ok {
		return leave.ErrLeaveRequestNotFound
	}
	if !req.CanBeApproved() {
		return leave.ErrInvalidLeaveStatus
	}

	req.Approve()

	if deduction != nil {
		if owner, ok := d.store.users[deduction.UserID]; ok {
			owner.Deduct(string(deduction.LeaveType), deduction.Days)
		}
	}
	return nil
}

func (d *requestDirectory) Reject(id string, reason string) error {
	d.store.mu.Lock()
	defer d.store.mu.Unlock()

	req, ok := d.store.requestIndex[id]
	if !ok {
		return leave.ErrLeaveRequestNotFound
	}
	if !req.CanBeRejected() {
		return leave.ErrInvalidLeaveStatus
	}

	req.Reject(reason)
	return nil
}

func cloneRequests(requests []*leave.LeaveRequest) []*leave.LeaveRequest {
	result := make([]*leave.LeaveRequest, len(requests))
	for i, req := range requests {
		cp := *req
		result[i] = &cp
	}
	return result
}
