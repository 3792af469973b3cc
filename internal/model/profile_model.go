package model

import (
	"time"

	"github.com/google/uuid"
)

type ActivationProfile struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	FullName      string    `gorm:"type:varchar(255);not null"`
	PhoneNumber   string    `gorm:"type:varchar(30)"`
	Address       string    `gorm:"type:text"`
	Occupation    string    `gorm:"type:varchar(100)"`
	MonthlyIncome float64   `gorm:"type:numeric(14,2)"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (ActivationProfile) TableName() string {
	return "user_activation_profiles"
}
