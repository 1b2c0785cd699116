package leave

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/hrportal/leave-management/internal/core/events"
	"github.com/hrportal/leave-management/internal/user"
)

// BalanceDeduction describes the side effect an approval applies to the
// owner's balance. Nil means the approval charges nothing (Unpaid leave).
type BalanceDeduction struct {
	UserID    string
	LeaveType LeaveType
	Days      int
}

// Repository is the directory of leave requests. Listings follow store
// order: newest-created first. Approve and Reject re-check the Pending
// guard atomically with the write so a concurrent transition cannot be
// applied twice.
type Repository interface {
	Create(req *LeaveRequest) error
	GetByID(id string) (*LeaveRequest, error)
	ListAll() ([]*LeaveRequest, error)
	ListByUserID(userID string) ([]*LeaveRequest, error)
	ListPending() ([]*LeaveRequest, error)
	ListHistory() ([]*LeaveRequest, error)
	Approve(id string, deduction *BalanceDeduction) error
	Reject(id string, reason string) error
}

// UserDirectory is the slice of the user store the lifecycle engine needs.
type UserDirectory interface {
	GetByID(id string) (*user.User, error)
	CountByRole(role user.Role) (int, error)
}

// Service is the request lifecycle engine: it creates requests,
// transitions their status, and applies balance deduction on approval.
type Service struct {
	repo   Repository
	users  UserDirectory
	bus    *events.EventBus
	logger *slog.Logger
}

func NewService(repo Repository, users UserDirectory, bus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		users:  users,
		bus:    bus,
		logger: logger,
	}
}

// Submit creates a new Pending request owned by actor.
func (s *Service) Submit(actor *user.User, dto CreateLeaveRequestDTO) (*LeaveRequest, error) {
	leaveType, start, end, err := dto.Validate()
	if err != nil {
		s.logger.Error("leave request validation failed", "error", err, "user_id", actor.ID)
		return nil, err
	}

	req := NewLeaveRequest(actor, leaveType, start, end, dto.Reason)
	if err := s.repo.Create(req); err != nil {
		s.logger.Error("failed to create leave request", "error", err, "user_id", actor.ID)
		return nil, err
	}

	s.publish(events.NewLeaveRequestSubmitted(req.ID, req.UserID, string(req.LeaveType)))

	s.logger.Info("leave request submitted",
		"request_id", req.ID,
		"user_id", actor.ID,
		"leave_type", req.LeaveType,
		"start_date", req.StartDate.Format(DateLayout),
		"end_date", req.EndDate.Format(DateLayout))

	return req, nil
}

// Approve transitions a Pending request to Approved and, unless the leave
// is Unpaid, deducts the inclusive day count from the owner's balance.
// The deduction is unconditional: it is not validated against the
// available balance and may push it negative.
func (s *Service) Approve(requestID string) error {
	req, err := s.repo.GetByID(requestID)
	if err != nil {
		s.logger.Error("leave request not found for approval", "error", err, "request_id", requestID)
		return ErrLeaveRequestNotFound
	}

	if !req.CanBeApproved() {
		s.logger.Warn("cannot approve leave request in current status",
			"request_id", requestID,
			"current_status", req.Status)
		return ErrInvalidLeaveStatus
	}

	var deduction *BalanceDeduction
	days := 0
	if req.ChargesBalance() {
		days = req.Days()
		deduction = &BalanceDeduction{
			UserID:    req.UserID,
			LeaveType: req.LeaveType,
			Days:      days,
		}
	}

	if err := s.repo.Approve(requestID, deduction); err != nil {
		s.logger.Error("failed to approve leave request", "error", err, "request_id", requestID)
		return err
	}

	s.publish(events.NewLeaveRequestApproved(req.ID, req.UserID, string(req.LeaveType), days))

	s.logger.Info("leave request approved",
		"request_id", requestID,
		"user_id", req.UserID,
		"leave_type", req.LeaveType,
		"days_deducted", days)

	return nil
}

// Reject transitions a Pending request to Rejected, storing the reason
// verbatim. Balances are never touched.
func (s *Service) Reject(requestID, rejectionReason string) error {
	req, err := s.repo.GetByID(requestID)
	if err != nil {
		s.logger.Error("leave request not found for rejection", "error", err, "request_id", requestID)
		return ErrLeaveRequestNotFound
	}

	if !req.CanBeRejected() {
		s.logger.Warn("cannot reject leave request in current status",
			"request_id", requestID,
			"current_status", req.Status)
		return ErrInvalidLeaveStatus
	}

	if err := s.repo.Reject(requestID, rejectionReason); err != nil {
		s.logger.Error("failed to reject leave request", "error", err, "request_id", requestID)
		return err
	}

	s.publish(events.NewLeaveRequestRejected(req.ID, req.UserID, rejectionReason))

	s.logger.Info("leave request rejected",
		"request_id", requestID,
		"user_id", req.UserID,
		"reason", rejectionReason)

	return nil
}

func (s *Service) GetByID(requestID string) (*LeaveRequest, error) {
	req, err := s.repo.GetByID(requestID)
	if err != nil {
		return nil, ErrLeaveRequestNotFound
	}
	return req, nil
}

// ListAll returns every request, newest-created first.
func (s *Service) ListAll() ([]*LeaveRequest, error) {
	return s.repo.ListAll()
}

// ListForUser returns the requests owned by userID in store order.
func (s *Service) ListForUser(userID string) ([]*LeaveRequest, error) {
	return s.repo.ListByUserID(userID)
}

// ListPending returns Pending requests in store order.
func (s *Service) ListPending() ([]*LeaveRequest, error) {
	return s.repo.ListPending()
}

// ListHistory returns non-Pending requests sorted by start date
// descending.
func (s *Service) ListHistory() ([]*LeaveRequest, error) {
	return s.repo.ListHistory()
}

// Stats backs the admin dashboard summary cards.
func (s *Service) Stats() (*StatsResponse, error) {
	pending, err := s.repo.ListPending()
	if err != nil {
		s.logger.Error("failed to list pending requests for stats", "error", err)
		return nil, err
	}

	employees, err := s.users.CountByRole(user.RoleEmployee)
	if err != nil {
		s.logger.Error("failed to count employees for stats", "error", err)
		return nil, err
	}

	return &StatsResponse{
		TotalEmployees:  employees,
		PendingRequests: len(pending),
	}, nil
}

// MonthlyApprovedCounts buckets Approved requests by start-date month
// over the whole store, the series behind the admin dashboard chart.
func (s *Service) MonthlyApprovedCounts() ([]MonthlyCount, error) {
	all, err := s.repo.ListAll()
	if err != nil {
		return nil, err
	}

	counts := make(map[time.Month]int)
	for _, req := range all {
		if req.Status == StatusApproved {
			counts[req.StartDate.Month()]++
		}
	}

	series := make([]MonthlyCount, 0, 12)
	for m := time.January; m <= time.December; m++ {
		series = append(series, MonthlyCount{
			Month: m.String()[:3],
			Count: counts[m],
		})
	}
	return series, nil
}

// SortByStartDateDesc orders requests newest start date first. Shared by
// repository implementations for the history listing.
func SortByStartDateDesc(requests []*LeaveRequest) {
	sort.SliceStable(requests, func(i, j int) bool {
		return requests[i].StartDate.After(requests[j].StartDate)
	})
}

func (s *Service) publish(event events.BaseEvent) {
	if s.bus == nil {
		return
	}
	s.bus.PublishAsync(context.Background(), event)
}
