package mapper

import (
	"lendhub-be/internal/entity"
	"lendhub-be/internal/model"
)

type ProfileMapper struct{}

func NewProfileMapper() *ProfileMapper {
	return &ProfileMapper{}
}

func (m *ProfileMapper) ToEntity(p *model.ActivationProfile) *entity.ActivationProfile {
	if p == nil {
		return nil
	}
	return &entity.ActivationProfile{
		Id:            p.Id,
		UserId:        p.UserId,
		FullName:      p.FullName,
		PhoneNumber:   p.PhoneNumber,
		Address:       p.Address,
		Occupation:    p.Occupation,
		MonthlyIncome: p.MonthlyIncome,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func (m *ProfileMapper) ToModel(p *entity.ActivationProfile) *model.ActivationProfile {
	if p == nil {
		return nil
	}
	return &model.ActivationProfile{
		Id:            p.Id,
		UserId:        p.UserId,
		FullName:      p.FullName,
		PhoneNumber:   p.PhoneNumber,
		Address:       p.Address,
		Occupation:    p.Occupation,
		MonthlyIncome: p.MonthlyIncome,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
