package main

import (
	"log"
	"os"
	"time"

	"lendhub-be/internal/model"
	"lendhub-be/pkg/database"
	"lendhub-be/pkg/finance"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seeds a superadmin, an admin and a borrower with one pending loan so the
// console has something to review on a fresh database.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Seeding base accounts...")

	superadmin := seedUser(db, "superadmin@lendhub.local", "Root Administrator", "superadmin")
	seedUser(db, "admin@lendhub.local", "Console Administrator", "admin")
	borrower := seedUser(db, "borrower@lendhub.local", "Demo Borrower", "user")

	_ = superadmin

	color.Cyan("Seeding demo loan...")
	seedLoan(db, borrower)

	color.Cyan("Seeding demo activation profile...")
	seedProfile(db, borrower)

	color.Green("✅ Seed completed")
}

func seedUser(db *gorm.DB, email, fullName, role string) uuid.UUID {
	var existing model.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		color.Yellow("User %s already exists, skipping", email)
		return existing.Id
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Error: failed to hash password: %v", err)
	}
	hashStr := string(hash)

	user := model.User{
		Id:           uuid.New(),
		Email:        email,
		FullName:     fullName,
		PasswordHash: &hashStr,
		Role:         role,
		Status:       "active",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := db.Create(&user).Error; err != nil {
		log.Fatalf("Error: failed to seed user %s: %v", email, err)
	}
	color.Green("Created %s (%s)", email, role)
	return user.Id
}

func seedLoan(db *gorm.DB, userId uuid.UUID) {
	var count int64
	db.Model(&model.Loan{}).Where("user_id = ?", userId).Count(&count)
	if count > 0 {
		color.Yellow("Borrower already has a loan, skipping")
		return
	}

	schedule := finance.Amortize(50000, 5.0, 24)
	loan := model.Loan{
		Id:             uuid.New(),
		UserId:         userId,
		LoanAmount:     50000,
		InterestRate:   5.0,
		DurationMonths: 24,
		Purpose:        "Working capital",
		Status:         "Pending Approval",
		MonthlyPayment: schedule.MonthlyPayment,
		TotalInterest:  schedule.TotalInterest,
		TotalAmount:    schedule.TotalAmount,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	if err := db.Create(&loan).Error; err != nil {
		log.Fatalf("Error: failed to seed loan: %v", err)
	}
	color.Green("Created demo loan %s", loan.Id)
}

func seedProfile(db *gorm.DB, userId uuid.UUID) {
	var count int64
	db.Model(&model.ActivationProfile{}).Where("user_id = ?", userId).Count(&count)
	if count > 0 {
		color.Yellow("Borrower already has a profile, skipping")
		return
	}

	profile := model.ActivationProfile{
		Id:            uuid.New(),
		UserId:        userId,
		FullName:      "Demo Borrower",
		PhoneNumber:   "+1-555-0100",
		Address:       "1 Demo Street",
		Occupation:    "Engineer",
		MonthlyIncome: 6500,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	if err := db.Create(&profile).Error; err != nil {
		log.Fatalf("Error: failed to seed profile: %v", err)
	}
	color.Green("Created demo activation profile")
}
