package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/PlayZone-BookingService/internal/domain"
)

// Request модели

// CreatePackageRequest запрос на создание пакета
type CreatePackageRequest struct {
	Name            string          `json:"name"`
	Description     *string         `json:"description,omitempty"`
	Type            string          `json:"type"`
	Price           decimal.Decimal `json:"price"`
	DurationMinutes int             `json:"durationMinutes"`
	Features        []string        `json:"features"`
}

// UpdatePackageRequest частичное обновление: меняются только указанные поля
type UpdatePackageRequest struct {
	Name            *string          `json:"name,omitempty"`
	Description     *string          `json:"description,omitempty"`
	Type            *string          `json:"type,omitempty"`
	Price           *decimal.Decimal `json:"price,omitempty"`
	DurationMinutes *int             `json:"durationMinutes,omitempty"`
	Features        []string         `json:"features,omitempty"`
	IsActive        *bool            `json:"isActive,omitempty"`
}

// CreateTimeSlotRequest запрос на создание слота
type CreateTimeSlotRequest struct {
	StartTime   string `json:"startTime"` // "10:00"
	EndTime     string `json:"endTime"`
	MaxCapacity int    `json:"maxCapacity"`
}

// UpdateTimeSlotRequest частичное обновление слота
type UpdateTimeSlotRequest struct {
	StartTime   *string `json:"startTime,omitempty"`
	EndTime     *string `json:"endTime,omitempty"`
	MaxCapacity *int    `json:"maxCapacity,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

// CreateHolidayRequest запрос на создание выходного
type CreateHolidayRequest struct {
	Date time.Time `json:"date"`
	Name string    `json:"name"`
}

// Response модели

// PackageResponse ответ с данными пакета
type PackageResponse struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Description     *string   `json:"description,omitempty"`
	Type            string    `json:"type"`
	Price           string    `json:"price"`
	DurationMinutes int       `json:"durationMinutes"`
	Features        []string  `json:"features"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// TimeSlotResponse ответ с данными слота
type TimeSlotResponse struct {
	ID              int64  `json:"id"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	Label           string `json:"label"`
	DurationMinutes int    `json:"durationMinutes"`
	MaxCapacity     int    `json:"maxCapacity"`
	IsActive        bool   `json:"isActive"`
}

// HolidayResponse ответ с данными выходного
type HolidayResponse struct {
	ID       int64  `json:"id"`
	Date     string `json:"date"`
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
}

// Методы конвертации

func FromDomainPackage(p *domain.Package) PackageResponse {
	features := p.Features
	if features == nil {
		features = []string{}
	}
	return PackageResponse{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		Type:            string(p.Type),
		Price:           p.Price.StringFixed(2),
		DurationMinutes: p.DurationMinutes,
		Features:        features,
		IsActive:        p.IsActive,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func FromDomainPackageList(packages []*domain.Package) []PackageResponse {
	resp := make([]PackageResponse, 0, len(packages))
	for _, p := range packages {
		resp = append(resp, FromDomainPackage(p))
	}
	return resp
}

func FromDomainTimeSlot(s *domain.TimeSlot) TimeSlotResponse {
	return TimeSlotResponse{
		ID:              s.ID,
		StartTime:       s.StartTime.String(),
		EndTime:         s.EndTime.String(),
		Label:           s.Label(),
		DurationMinutes: s.DurationMinutes(),
		MaxCapacity:     s.MaxCapacity,
		IsActive:        s.IsActive,
	}
}

func FromDomainTimeSlotList(slots []*domain.TimeSlot) []TimeSlotResponse {
	resp := make([]TimeSlotResponse, 0, len(slots))
	for _, s := range slots {
		resp = append(resp, FromDomainTimeSlot(s))
	}
	return resp
}

func FromDomainHoliday(h *domain.Holiday) HolidayResponse {
	return HolidayResponse{
		ID:       h.ID,
		Date:     h.Date.Format(domain.DateFormat),
		Name:     h.Name,
		IsActive: h.IsActive,
	}
}

func FromDomainHolidayList(holidays []*domain.Holiday) []HolidayResponse {
	resp := make([]HolidayResponse, 0, len(holidays))
	for _, h := range holidays {
		resp = append(resp, FromDomainHoliday(h))
	}
	return resp
}
