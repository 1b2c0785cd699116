package postgres

import (
	"errors"

	userDatamodel "github.com/hrportal/leave-management/internal/core/datamodel/user"
	"github.com/hrportal/leave-management/internal/user"
	"gorm.io/gorm"
)

// UserRepository implements the user.Repository interface using GORM
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.Repository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(id string) (*user.User, error) {
	var dm userDatamodel.User
	if err := r.db.Where("id = ?", id).First(&dm).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrNotFound
		}
		return nil, err
	}

	balances, err := r.balancesFor(dm.ID)
	if err != nil {
		return nil, err
	}
	return user.FromDataModel(&dm, balances), nil
}

// GetByEmail matches case-insensitively; email is the login key.
func (r *UserRepository) GetByEmail(email string) (*user.User, error) {
	var dm userDatamodel.User
	if err := r.db.Where("LOWER(email) = LOWER(?)", email).First(&dm).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrNotFound
		}
		return nil, err
	}

	balances, err := r.balancesFor(dm.ID)
	if err != nil {
		return nil, err
	}
	return user.FromDataModel(&dm, balances), nil
}

// Upsert replaces the stored user and its balance rows.
func (r *UserRepository) Upsert(u *user.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(user.ToDataModel(u)).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", u.ID).Delete(&userDatamodel.LeaveBalance{}).Error; err != nil {
			return err
		}
		for _, b := range user.ToBalanceDataModels(u) {
			if err := tx.Create(b).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *UserRepository) CountByRole(role user.Role) (int, error) {
	var count int64
	err := r.db.Model(&userDatamodel.User{}).
		Where("role = ?", string(role)).
		Count(&count).Error
	return int(count), err
}

func (r *UserRepository) balancesFor(userID string) ([]*userDatamodel.LeaveBalance, error) {
	var balances []*userDatamodel.LeaveBalance
	err := r.db.Where("user_id = ?", userID).Find(&balances).Error
	return balances, err
}
