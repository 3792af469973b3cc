package entity

import (
	"time"

	"github.com/google/uuid"
)

// ActivationProfile is the KYC-style record a user fills in during
// onboarding. Admins may correct it through the mutation pipeline.
type ActivationProfile struct {
	Id            uuid.UUID
	UserId        uuid.UUID
	FullName      string
	PhoneNumber   string
	Address       string
	Occupation    string
	MonthlyIncome float64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
