package postgres

import (
	"errors"

	leaveDatamodel "github.com/hrportal/leave-management/internal/core/datamodel/leave"
	userDatamodel "github.com/hrportal/leave-management/internal/core/datamodel/user"
	"github.com/hrportal/leave-management/internal/leave"
	"gorm.io/gorm"
)

// LeaveRequestRepository implements the leave.Repository interface using GORM
type LeaveRequestRepository struct {
	db *gorm.DB
}

func NewLeaveRequestRepository(db *gorm.DB) leave.Repository {
	return &LeaveRequestRepository{db: db}
}

func (r *LeaveRequestRepository) Create(req *leave.LeaveRequest) error {
	return r.db.Create(leave.ToDataModel(req)).Error
}

func (r *LeaveRequestRepository) GetByID(id string) (*leave.LeaveRequest, error) {
	var dm leaveDatamodel.LeaveRequest
	if err := r.db.Where("id = ?", id).First(&dm).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leave.ErrLeaveRequestNotFound
		}
		return nil, err
	}
	return leave.FromDataModel(&dm), nil
}

// ListAll returns every request, newest-created first (seq descending).
func (r *LeaveRequestRepository) ListAll() ([]*leave.LeaveRequest, error) {
	var dms []*leaveDatamodel.LeaveRequest
	err := r.db.Order("seq DESC").Find(&dms).Error
	return leave.FromDataModelSlice(dms), err
}

func (r *LeaveRequestRepository) ListByUserID(userID string) ([]*leave.LeaveRequest, error) {
	var dms []*leaveDatamodel.LeaveRequest
	err := r.db.Where("user_id = ?", userID).
		Order("seq DESC").
		Find(&dms).Error
	return leave.FromDataModelSlice(dms), err
}

func (r *LeaveRequestRepository) ListPending() ([]*leave.LeaveRequest, error) {
	var dms []*leaveDatamodel.LeaveRequest
	err := r.db.Where("status = ?", leave.StatusPending).
		Order("seq DESC").
		Find(&dms).Error
	return leave.FromDataModelSlice(dms), err
}

func (r *LeaveRequestRepository) ListHistory() ([]*leave.LeaveRequest, error) {
	var dms []*leaveDatamodel.LeaveRequest
	err := r.db.Where("status <> ?", leave.StatusPending).
		Order("start_date DESC").
		Find(&dms).Error
	return leave.FromDataModelSlice(dms), err
}

// Approve sets the status and applies the balance deduction in a single
// transaction. The Pending guard is re-checked by the UPDATE's WHERE
// clause so a concurrent transition cannot be applied twice.
func (r *LeaveRequestRepository) Approve(id string, deduction *leave.BalanceDeduction) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&leaveDatamodel.LeaveRequest{}).
			Where("id = ? AND status = ?", id, leave.StatusPending).
			Updates(map[string]interface{}{
				"status":           leave.StatusApproved,
				"rejection_reason": "",
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return r.transitionFailure(tx, id)
		}

		if deduction == nil {
			return nil
		}
		return applyDeduction(tx, deduction)
	})
}

// Reject sets the status and stores the rejection reason verbatim.
func (r *LeaveRequestRepository) Reject(id string, reason string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&leaveDatamodel.LeaveRequest{}).
			Where("id = ? AND status = ?", id, leave.StatusPending).
			Updates(map[string]interface{}{
				"status":           leave.StatusRejected,
				"rejection_reason": reason,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return r.transitionFailure(tx, id)
		}
		return nil
	})
}

// transitionFailure distinguishes a missing request from one that is no
// longer Pending after a guarded UPDATE matched nothing.
func (r *LeaveRequestRepository) transitionFailure(tx *gorm.DB, id string) error {
	var count int64
	if err := tx.Model(&leaveDatamodel.LeaveRequest{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return leave.ErrLeaveRequestNotFound
	}
	return leave.ErrInvalidLeaveStatus
}

// applyDeduction decrements the owner's balance row, creating it at
// 0-days when the category has never been recorded. A missing owner
// skips the deduction; the approval itself stands.
func applyDeduction(tx *gorm.DB, deduction *leave.BalanceDeduction) error {
	var owners int64
	if err := tx.Model(&userDatamodel.User{}).Where("id = ?", deduction.UserID).Count(&owners).Error; err != nil {
		return err
	}
	if owners == 0 {
		return nil
	}

	var balance userDatamodel.LeaveBalance
	err := tx.Where("user_id = ? AND leave_type = ?", deduction.UserID, string(deduction.LeaveType)).
		First(&balance).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return tx.Create(&userDatamodel.LeaveBalance{
			UserID:    deduction.UserID,
			LeaveType: string(deduction.LeaveType),
			Days:      -deduction.Days,
		}).Error
	}
	if err != nil {
		return err
	}

	return tx.Model(&userDatamodel.LeaveBalance{}).
		Where("id = ?", balance.ID).
		UpdateColumn("days", gorm.Expr("days - ?", deduction.Days)).Error
}
