package cmd

import (
	"fmt"
	"log"

	"github.com/hrportal/leave-management/internal/core/seed"
	"github.com/hrportal/leave-management/internal/leave"
	"github.com/hrportal/leave-management/internal/user"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with the sample directory used by the in-memory mode, for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		if cfg.Database.Source == "" {
			log.Fatal("seed requires database.source; the in-memory directory seeds itself")
		}

		sqlxDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer sqlxDB.Close()

		db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlxDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to open gorm connection: %v", err)
		}

		if clearData {
			for _, table := range []string{"leave_requests", "leave_balances", "users"} {
				if err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
					log.Fatalf("failed to clear table %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		for _, u := range seed.Users() {
			var exists int
			row := db.Raw("SELECT 1 FROM users WHERE id = ?", u.ID).Row()
			if err := row.Scan(&exists); err == nil {
				fmt.Printf("user %s already exists, skipping\n", u.Email)
				continue
			}

			if err := db.Create(user.ToDataModel(u)).Error; err != nil {
				log.Fatalf("failed to insert user %s: %v", u.Email, err)
			}
			for _, b := range user.ToBalanceDataModels(u) {
				if err := db.Create(b).Error; err != nil {
					log.Fatalf("failed to insert balance for %s: %v", u.Email, err)
				}
			}
			fmt.Printf("Seeded user: %s (%s)\n", u.Name, u.Email)
		}

		for _, r := range seed.LeaveRequests() {
			var exists int
			row := db.Raw("SELECT 1 FROM leave_requests WHERE id = ?", r.ID).Row()
			if err := row.Scan(&exists); err == nil {
				continue
			}

			if err := db.Create(leave.ToDataModel(r)).Error; err != nil {
				log.Fatalf("failed to insert leave request %s: %v", r.ID, err)
			}
			fmt.Printf("Seeded leave request: %s (%s, %s)\n", r.ID, r.UserName, r.Status)
		}

		fmt.Println("Sample directory seeded successfully")
	},
}
