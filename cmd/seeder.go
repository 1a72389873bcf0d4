package cmd

import (
	"fmt"
	"log"
	"time"

	categoryModel "github.com/frahmantamala/finance-chatbot/internal/core/datamodel/category"
	transactionModel "github.com/frahmantamala/finance-chatbot/internal/core/datamodel/transaction"
	userModel "github.com/frahmantamala/finance-chatbot/internal/core/datamodel/user"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlxDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlxDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to open gorm: %v", err)
		}

		if clearData {
			for _, table := range []string{"transactions", "categories", "users"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)

		demoEmail := "demo@mail.com"
		var demoUser userModel.User
		err = db.Where("email = ?", demoEmail).First(&demoUser).Error
		if err == gorm.ErrRecordNotFound {
			demoUser = userModel.User{
				Email:        demoEmail,
				Name:         "Demo User",
				PasswordHash: string(hash),
				IsActive:     true,
			}
			if err := db.Create(&demoUser).Error; err != nil {
				log.Fatalf("failed to insert demo user: %v", err)
			}
			fmt.Println("Seeded demo user:", demoEmail)
		} else if err != nil {
			log.Fatalf("failed to look up demo user: %v", err)
		} else {
			fmt.Println("demo user already exists")
		}

		categories := []categoryModel.Category{
			{UserID: demoUser.ID, Name: "Food & Dining", Type: "expense"},
			{UserID: demoUser.ID, Name: "Transport", Type: "expense"},
			{UserID: demoUser.ID, Name: "Salary", Type: "income"},
			{UserID: demoUser.ID, Name: "Uncategorized", Type: "expense"},
		}
		for i := range categories {
			var existing categoryModel.Category
			err := db.Where("user_id = ? AND LOWER(name) = LOWER(?)", demoUser.ID, categories[i].Name).First(&existing).Error
			if err == gorm.ErrRecordNotFound {
				if err := db.Create(&categories[i]).Error; err != nil {
					log.Fatalf("failed to insert category %s: %v", categories[i].Name, err)
				}
			} else if err != nil {
				log.Fatalf("failed to look up category %s: %v", categories[i].Name, err)
			}
		}
		fmt.Println("Seeded categories")

		var txCount int64
		if err := db.Model(&transactionModel.Transaction{}).Where("user_id = ?", demoUser.ID).Count(&txCount).Error; err != nil {
			log.Fatalf("failed to count transactions: %v", err)
		}
		if txCount == 0 {
			now := time.Now()
			samples := []transactionModel.Transaction{
				{UserID: demoUser.ID, Type: "income", CategoryName: "Salary", AmountMinor: 50000000, Description: "Monthly salary", PaymentMethod: "bank transfer", Date: now.AddDate(0, 0, -20)},
				{UserID: demoUser.ID, Type: "expense", CategoryName: "Food & Dining", AmountMinor: 450000, Description: "dinner", PaymentMethod: "cash", Date: now.AddDate(0, 0, -5)},
				{UserID: demoUser.ID, Type: "expense", CategoryName: "Transport", AmountMinor: 120000, Description: "bus fare", PaymentMethod: "card", Date: now.AddDate(0, 0, -2)},
			}
			for i := range samples {
				if err := db.Create(&samples[i]).Error; err != nil {
					log.Fatalf("failed to insert sample transaction: %v", err)
				}
			}
			fmt.Println("Seeded sample transactions")
		}

		fmt.Println("Seeding complete")
	},
}
