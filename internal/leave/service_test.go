package leave_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/hrportal/leave-management/internal/leave"
	"github.com/hrportal/leave-management/internal/user"
)

func TestLeaveService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Leave Service Suite")
}

// Mock repository for testing. Approve applies the status transition and
// balance deduction against the shared user directory the way the real
// stores do.
type mockLeaveRepository struct {
	requests map[string]*leave.LeaveRequest
	order    []string
	users    *mockUserDirectory

	createError error
	getError    error
}

func newMockLeaveRepository(users *mockUserDirectory) *mockLeaveRepository {
	return &mockLeaveRepository{
		requests: make(map[string]*leave.LeaveRequest),
		users:    users,
	}
}

func (m *mockLeaveRepository) Create(req *leave.LeaveRequest) error {
	if m.createError != nil {
		return m.createError
	}
	m.requests[req.ID] = req
	m.order = append([]string{req.ID}, m.order...)
	return nil
}

func (m *mockLeaveRepository) GetByID(id string) (*leave.LeaveRequest, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	req, exists := m.requests[id]
	if !exists {
		return nil, leave.ErrLeaveRequestNotFound
	}
	return req, nil
}

func (m *mockLeaveRepository) ListAll() ([]*leave.LeaveRequest, error) {
	result := make([]*leave.LeaveRequest, 0, len(m.order))
	for _, id := range m.order {
		result = append(result, m.requests[id])
	}
	return result, nil
}

func (m *mockLeaveRepository) ListByUserID(userID string) ([]*leave.LeaveRequest, error) {
	all, _ := m.ListAll()
	result := make([]*leave.LeaveRequest, 0)
	for _, req := range all {
		if req.UserID == userID {
			result = append(result, req)
		}
	}
	return result, nil
}

func (m *mockLeaveRepository) ListPending() ([]*leave.LeaveRequest, error) {
	return m.listByStatus(leave.StatusPending), nil
}

func (m *mockLeaveRepository) ListHistory() ([]*leave.LeaveRequest, error) {
	all, _ := m.ListAll()
	result := make([]*leave.LeaveRequest, 0)
	for _, req := range all {
		if req.Status != leave.StatusPending {
			result = append(result, req)
		}
	}
	leave.SortByStartDateDesc(result)
	return result, nil
}

func (m *mockLeaveRepository) listByStatus(status string) []*leave.LeaveRequest {
	all, _ := m.ListAll()
	result := make([]*leave.LeaveRequest, 0)
	for _, req := range all {
		if req.Status == status {
			result = append(result, req)
		}
	}
	return result
}

func (m *mockLeaveRepository) Approve(id string, deduction *leave.BalanceDeduction) error {
	req, exists := m.requests[id]
	if !exists {
		return leave.ErrLeaveRequestNotFound
	}
	if !req.CanBeApproved() {
		return leave.ErrInvalidLeaveStatus
	}
	req.Approve()
	if deduction != nil {
		if owner, ok := m.users.byID[deduction.UserID]; ok {
			owner.Deduct(string(deduction.LeaveType), deduction.Days)
		}
	}
	return nil
}

func (m *mockLeaveRepository) Reject(id string, reason string) error {
	req, exists := m.requests[id]
	if !exists {
		return leave.ErrLeaveRequestNotFound
	}
	if !req.CanBeRejected() {
		return leave.ErrInvalidLeaveStatus
	}
	req.Reject(reason)
	return nil
}

type mockUserDirectory struct {
	byID          map[string]*user.User
	countError    error
	employeeCount int
}

func newMockUserDirectory(users ...*user.User) *mockUserDirectory {
	m := &mockUserDirectory{byID: make(map[string]*user.User)}
	for _, u := range users {
		m.byID[u.ID] = u
		if u.IsEmployee() {
			m.employeeCount++
		}
	}
	return m
}

func (m *mockUserDirectory) GetByID(id string) (*user.User, error) {
	u, exists := m.byID[id]
	if !exists {
		return nil, user.ErrNotFound
	}
	return u, nil
}

func (m *mockUserDirectory) CountByRole(role user.Role) (int, error) {
	if m.countError != nil {
		return 0, m.countError
	}
	count := 0
	for _, u := range m.byID {
		if u.Role == role {
			count++
		}
	}
	return count, nil
}

var _ = Describe("LeaveService", func() {
	var (
		leaveService *leave.Service
		mockRepo     *mockLeaveRepository
		mockUsers    *mockUserDirectory
		alice        *user.User
		logger       *slog.Logger
	)

	submit := func(u *user.User, leaveType, start, end, reason string) *leave.LeaveRequest {
		req, err := leaveService.Submit(u, leave.CreateLeaveRequestDTO{
			LeaveType: leaveType,
			StartDate: start,
			EndDate:   end,
			Reason:    reason,
		})
		Expect(err).ToNot(HaveOccurred())
		return req
	}

	BeforeEach(func() {
		alice = &user.User{
			ID:    "2",
			Name:  "Alice Johnson",
			Email: "alice@example.com",
			Role:  user.RoleEmployee,
			LeaveBalances: map[string]int{
				"Annual": 15,
				"Sick":   8,
			},
		}
		mockUsers = newMockUserDirectory(alice)
		mockRepo = newMockLeaveRepository(mockUsers)
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		leaveService = leave.NewService(mockRepo, mockUsers, nil, logger)
	})

	Describe("Submit", func() {
		Context("with a valid payload", func() {
			It("should create a pending request owned by the actor", func() {
				req := submit(alice, "Annual", "2024-08-10", "2024-08-15", "Family vacation")

				Expect(req.ID).ToNot(BeEmpty())
				Expect(req.UserID).To(Equal(alice.ID))
				Expect(req.UserName).To(Equal("Alice Johnson"))
				Expect(req.Status).To(Equal(leave.StatusPending))
				Expect(req.RejectionReason).To(BeEmpty())
			})

			It("should not touch the actor's balance on submission", func() {
				submit(alice, "Annual", "2024-08-10", "2024-08-15", "Family vacation")

				Expect(alice.Balance("Annual")).To(Equal(15))
			})
		})

		Context("with an invalid payload", func() {
			It("should reject an unknown leave type", func() {
				_, err := leaveService.Submit(alice, leave.CreateLeaveRequestDTO{
					LeaveType: "Sabbatical",
					StartDate: "2024-08-10",
					EndDate:   "2024-08-15",
					Reason:    "Extended break",
				})

				Expect(err).To(HaveOccurred())
				Expect(err.Error()).To(ContainSubstring("unknown leave type"))
			})

			It("should reject an empty reason", func() {
				_, err := leaveService.Submit(alice, leave.CreateLeaveRequestDTO{
					LeaveType: "Annual",
					StartDate: "2024-08-10",
					EndDate:   "2024-08-15",
				})

				Expect(err).To(HaveOccurred())
				Expect(err.Error()).To(ContainSubstring("reason is required"))
			})

			It("should reject a malformed date", func() {
				_, err := leaveService.Submit(alice, leave.CreateLeaveRequestDTO{
					LeaveType: "Annual",
					StartDate: "10/08/2024",
					EndDate:   "2024-08-15",
					Reason:    "Family vacation",
				})

				Expect(err).To(HaveOccurred())
			})

			It("should reject an end date before the start date", func() {
				_, err := leaveService.Submit(alice, leave.CreateLeaveRequestDTO{
					LeaveType: "Annual",
					StartDate: "2024-08-15",
					EndDate:   "2024-08-10",
					Reason:    "Family vacation",
				})

				Expect(err).To(HaveOccurred())
				Expect(err.Error()).To(ContainSubstring("end date"))
			})
		})
	})

	Describe("Approve", func() {
		It("should deduct the inclusive day count from the owner's balance", func() {
			req := submit(alice, "Annual", "2024-08-10", "2024-08-15", "Family vacation")

			err := leaveService.Approve(req.ID)

			Expect(err).ToNot(HaveOccurred())
			Expect(req.Status).To(Equal(leave.StatusApproved))
			Expect(alice.Balance("Annual")).To(Equal(9))
		})

		It("should charge a single day for a same-day request", func() {
			req := submit(alice, "Sick", "2024-07-22", "2024-07-22", "Flu")

			err := leaveService.Approve(req.ID)

			Expect(err).ToNot(HaveOccurred())
			Expect(alice.Balance("Sick")).To(Equal(7))
		})

		It("should not touch any balance for unpaid leave", func() {
			req := submit(alice, "Unpaid", "2024-09-01", "2024-09-05", "Personal matters")

			err := leaveService.Approve(req.ID)

			Expect(err).ToNot(HaveOccurred())
			Expect(req.Status).To(Equal(leave.StatusApproved))
			Expect(alice.Balance("Annual")).To(Equal(15))
			Expect(alice.Balance("Sick")).To(Equal(8))
			Expect(alice.Balance("Unpaid")).To(Equal(0))
		})

		It("should push the balance negative rather than refuse", func() {
			req := submit(alice, "Annual", "2024-08-01", "2024-08-20", "Long trip")

			err := leaveService.Approve(req.ID)

			Expect(err).ToNot(HaveOccurred())
			Expect(alice.Balance("Annual")).To(Equal(-5))
		})

		It("should create a missing balance entry below zero", func() {
			req := submit(alice, "Maternity", "2024-10-01", "2024-10-03", "Parental leave")

			err := leaveService.Approve(req.ID)

			Expect(err).ToNot(HaveOccurred())
			Expect(alice.Balance("Maternity")).To(Equal(-3))
		})

		It("should refuse to approve the same request twice", func() {
			req := submit(alice, "Annual", "2024-08-10", "2024-08-15", "Family vacation")

			Expect(leaveService.Approve(req.ID)).To(Succeed())
			err := leaveService.Approve(req.ID)

			Expect(err).To(Equal(leave.ErrInvalidLeaveStatus))
			Expect(alice.Balance("Annual")).To(Equal(9))
		})

		It("should refuse to approve a rejected request", func() {
			req := submit(alice, "Annual", "2024-08-10", "2024-08-15", "Family vacation")

			Expect(leaveService.Reject(req.ID, "Coverage gap")).To(Succeed())
			err := leaveService.Approve(req.ID)

			Expect(err).To(Equal(leave.ErrInvalidLeaveStatus))
			Expect(alice.Balance("Annual")).To(Equal(15))
		})

		It("should return not found for an unknown request id", func() {
			err := leaveService.Approve("missing")

			Expect(err).To(Equal(leave.ErrLeaveRequestNotFound))
		})

		It("should still approve when the owner has left the directory", func() {
			ghost := &user.User{ID: "99", Name: "Ghost", Role: user.RoleEmployee}
			req := submit(ghost, "Annual", "2024-08-10", "2024-08-15", "Family vacation")

			err := leaveService.Approve(req.ID)

			Expect(err).ToNot(HaveOccurred())
			Expect(req.Status).To(Equal(leave.StatusApproved))
		})
	})

	Describe("Reject", func() {
		It("should store the rejection reason verbatim", func() {
			req := submit(alice, "Annual", "2024-06-01", "2024-06-03", "Short break")
			reason := "Project deadline approaching, critical phase."

			err := leaveService.Reject(req.ID, reason)

			Expect(err).ToNot(HaveOccurred())
			Expect(req.Status).To(Equal(leave.StatusRejected))
			Expect(req.RejectionReason).To(Equal(reason))
		})

		It("should never touch the owner's balance", func() {
			req := submit(alice, "Annual", "2024-06-01", "2024-06-03", "Short break")

			Expect(leaveService.Reject(req.ID, "Coverage gap")).To(Succeed())

			Expect(alice.Balance("Annual")).To(Equal(15))
		})

		It("should refuse to reject a decided request", func() {
			req := submit(alice, "Annual", "2024-06-01", "2024-06-03", "Short break")

			Expect(leaveService.Approve(req.ID)).To(Succeed())
			err := leaveService.Reject(req.ID, "Too late")

			Expect(err).To(Equal(leave.ErrInvalidLeaveStatus))
			Expect(req.RejectionReason).To(BeEmpty())
		})

		It("should return not found for an unknown request id", func() {
			err := leaveService.Reject("missing", "whatever")

			Expect(err).To(Equal(leave.ErrLeaveRequestNotFound))
		})
	})

	Describe("Listings", func() {
		It("should return requests newest-created first", func() {
			first := submit(alice, "Annual", "2024-08-10", "2024-08-15", "Family vacation")
			second := submit(alice, "Sick", "2024-07-22", "2024-07-22", "Flu")

			all, err := leaveService.ListAll()

			Expect(err).ToNot(HaveOccurred())
			Expect(all).To(HaveLen(2))
			Expect(all[0].ID).To(Equal(second.ID))
			Expect(all[1].ID).To(Equal(first.ID))
		})

		It("should sort history by start date descending", func() {
			a := submit(alice, "Annual", "2024-06-01", "2024-06-03", "June break")
			b := submit(alice, "Sick", "2024-07-22", "2024-07-22", "Flu")
			c := submit(alice, "Unpaid", "2024-09-01", "2024-09-05", "Personal matters")
			pending := submit(alice, "Annual", "2024-08-10", "2024-08-15", "Family vacation")

			Expect(leaveService.Reject(a.ID, "Coverage gap")).To(Succeed())
			Expect(leaveService.Approve(b.ID)).To(Succeed())
			Expect(leaveService.Approve(c.ID)).To(Succeed())

			history, err := leaveService.ListHistory()

			Expect(err).ToNot(HaveOccurred())
			Expect(history).To(HaveLen(3))
			Expect(history[0].ID).To(Equal(c.ID))
			Expect(history[1].ID).To(Equal(b.ID))
			Expect(history[2].ID).To(Equal(a.ID))

			pendingList, err := leaveService.ListPending()
			Expect(err).ToNot(HaveOccurred())
			Expect(pendingList).To(HaveLen(1))
			Expect(pendingList[0].ID).To(Equal(pending.ID))
		})
	})

	Describe("Stats", func() {
		It("should count pending requests and employees", func() {
			submit(alice, "Annual", "2024-08-10", "2024-08-15", "Family vacation")
			decided := submit(alice, "Sick", "2024-07-22", "2024-07-22", "Flu")
			Expect(leaveService.Approve(decided.ID)).To(Succeed())

			stats, err := leaveService.Stats()

			Expect(err).ToNot(HaveOccurred())
			Expect(stats.PendingRequests).To(Equal(1))
			Expect(stats.TotalEmployees).To(Equal(1))
		})

		It("should propagate directory failures", func() {
			mockUsers.countError = errors.New("directory unavailable")

			_, err := leaveService.Stats()

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("MonthlyApprovedCounts", func() {
		It("should bucket approved requests by start-date month", func() {
			jul := submit(alice, "Sick", "2024-07-22", "2024-07-22", "Flu")
			aug := submit(alice, "Annual", "2024-08-10", "2024-08-15", "Family vacation")
			submit(alice, "Unpaid", "2024-09-01", "2024-09-05", "Personal matters")

			Expect(leaveService.Approve(jul.ID)).To(Succeed())
			Expect(leaveService.Approve(aug.ID)).To(Succeed())

			series, err := leaveService.MonthlyApprovedCounts()

			Expect(err).ToNot(HaveOccurred())
			Expect(series).To(HaveLen(12))
			Expect(series[0].Month).To(Equal("Jan"))
			Expect(series[6]).To(Equal(leave.MonthlyCount{Month: "Jul", Count: 1}))
			Expect(series[7]).To(Equal(leave.MonthlyCount{Month: "Aug", Count: 1}))
			Expect(series[8]).To(Equal(leave.MonthlyCount{Month: "Sep", Count: 0}))
		})
	})
})

var _ = Describe("DaysInclusive", func() {
	day := func(s string) time.Time {
		t, err := time.Parse(leave.DateLayout, s)
		Expect(err).ToNot(HaveOccurred())
		return t
	}

	It("counts both endpoints", func() {
		Expect(leave.DaysInclusive(day("2024-08-10"), day("2024-08-15"))).To(Equal(6))
	})

	It("counts a same-day range as one day", func() {
		Expect(leave.DaysInclusive(day("2024-07-22"), day("2024-07-22"))).To(Equal(1))
	})

	It("stays positive when the dates arrive inverted", func() {
		Expect(leave.DaysInclusive(day("2024-08-15"), day("2024-08-10"))).To(Equal(6))
	})

	It("spans month boundaries", func() {
		Expect(leave.DaysInclusive(day("2024-06-28"), day("2024-07-02"))).To(Equal(5))
	})
})
