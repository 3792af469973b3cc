package model

import (
	"time"

	"github.com/google/uuid"
)

type Withdrawal struct {
	Id            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId        uuid.UUID  `gorm:"type:uuid;not null;index"`
	Amount        float64    `gorm:"type:numeric(14,2);not null"`
	BankName      string     `gorm:"type:varchar(100);not null"`
	AccountNumber string     `gorm:"type:varchar(50);not null"`
	AccountHolder string     `gorm:"type:varchar(255);not null"`
	Status        string     `gorm:"type:varchar(20);not null;default:'pending';index"`
	AdminNotes    string     `gorm:"type:text"`
	ProcessedAt   *time.Time
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (Withdrawal) TableName() string {
	return "withdrawals"
}
