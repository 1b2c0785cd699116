package postgres

import (
	"testing"
	"time"

	"github.com/hrportal/leave-management/internal/user"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestUserRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "UserRepository Suite")
}

// SQLite table shapes for the in-memory test database.
type SQLiteUser struct {
	ID        string    `gorm:"primaryKey"`
	Email     string    `gorm:"column:email;uniqueIndex;not null"`
	Name      string    `gorm:"column:name;not null"`
	Role      string    `gorm:"column:role;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (SQLiteUser) TableName() string {
	return "users"
}

type SQLiteLeaveBalance struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	UserID    string    `gorm:"column:user_id;index:idx_user_leave_type,unique;not null"`
	LeaveType string    `gorm:"column:leave_type;index:idx_user_leave_type,unique;not null"`
	Days      int       `gorm:"column:days;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (SQLiteLeaveBalance) TableName() string {
	return "leave_balances"
}

var _ = Describe("UserRepository", func() {
	var (
		db   *gorm.DB
		repo user.Repository
	)

	alice := func() *user.User {
		return &user.User{
			ID:    "2",
			Name:  "Alice Johnson",
			Email: "alice@example.com",
			Role:  user.RoleEmployee,
			LeaveBalances: map[string]int{
				"Annual": 15,
				"Sick":   8,
			},
		}
	}

	BeforeEach(func() {
		var err error

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&SQLiteUser{}, &SQLiteLeaveBalance{})
		Expect(err).NotTo(HaveOccurred())

		repo = NewUserRepository(db)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	Describe("Upsert and GetByID", func() {
		It("should round-trip a user with balances", func() {
			Expect(repo.Upsert(alice())).To(Succeed())

			got, err := repo.GetByID("2")
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Name).To(Equal("Alice Johnson"))
			Expect(got.Balance("Annual")).To(Equal(15))
			Expect(got.Balance("Sick")).To(Equal(8))
		})

		It("should replace balances on re-upsert", func() {
			u := alice()
			Expect(repo.Upsert(u)).To(Succeed())

			u.LeaveBalances = map[string]int{"Annual": 9}
			Expect(repo.Upsert(u)).To(Succeed())

			got, err := repo.GetByID("2")
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Balance("Annual")).To(Equal(9))
			Expect(got.Balance("Sick")).To(Equal(0))
		})

		It("should map a missing row to the domain error", func() {
			_, err := repo.GetByID("404")

			Expect(err).To(Equal(user.ErrNotFound))
		})
	})

	Describe("GetByEmail", func() {
		BeforeEach(func() {
			Expect(repo.Upsert(alice())).To(Succeed())
		})

		It("should match exactly", func() {
			got, err := repo.GetByEmail("alice@example.com")

			Expect(err).NotTo(HaveOccurred())
			Expect(got.ID).To(Equal("2"))
		})

		It("should match case-insensitively", func() {
			got, err := repo.GetByEmail("ALICE@Example.COM")

			Expect(err).NotTo(HaveOccurred())
			Expect(got.ID).To(Equal("2"))
		})

		It("should map an unknown email to the domain error", func() {
			_, err := repo.GetByEmail("nobody@example.com")

			Expect(err).To(Equal(user.ErrNotFound))
		})
	})

	Describe("CountByRole", func() {
		It("should count per role", func() {
			Expect(repo.Upsert(alice())).To(Succeed())
			Expect(repo.Upsert(&user.User{
				ID:    "1",
				Name:  "Admin User",
				Email: "admin@example.com",
				Role:  user.RoleAdmin,
			})).To(Succeed())

			employees, err := repo.CountByRole(user.RoleEmployee)
			Expect(err).NotTo(HaveOccurred())
			Expect(employees).To(Equal(1))

			admins, err := repo.CountByRole(user.RoleAdmin)
			Expect(err).NotTo(HaveOccurred())
			Expect(admins).To(Equal(1))
		})
	})
})
