package model

import (
	"time"

	"github.com/google/uuid"
)

type Loan struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId         uuid.UUID `gorm:"type:uuid;not null;index"`
	LoanAmount     float64   `gorm:"type:numeric(14,2);not null"`
	InterestRate   float64   `gorm:"type:numeric(5,2);not null"`
	DurationMonths int       `gorm:"not null"`
	Purpose        string    `gorm:"type:varchar(255)"`
	Notes          string    `gorm:"type:text"`
	Status         string    `gorm:"type:varchar(50);not null;default:'Pending Approval';index"`
	MonthlyPayment float64   `gorm:"type:numeric(14,2);not null"`
	TotalInterest  float64   `gorm:"type:numeric(14,2);not null"`
	TotalAmount    float64   `gorm:"type:numeric(14,2);not null"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

func (Loan) TableName() string {
	return "loans"
}
