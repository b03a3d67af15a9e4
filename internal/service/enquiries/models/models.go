package models

import (
	"time"

	"github.com/m04kA/PlayZone-BookingService/internal/domain"
)

// CreateEnquiryRequest сообщение из формы обратной связи
type CreateEnquiryRequest struct {
	Name    string  `json:"name"`
	Email   *string `json:"email,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Message string  `json:"message"`
}

// EnquiryResponse ответ с данными обращения
type EnquiryResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     *string   `json:"email,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

func FromDomainEnquiry(e *domain.Enquiry) *EnquiryResponse {
	return &EnquiryResponse{
		ID:        e.ID,
		Name:      e.Name,
		Email:     e.Email,
		Phone:     e.Phone,
		Message:   e.Message,
		CreatedAt: e.CreatedAt,
	}
}

func FromDomainEnquiryList(enquiries []*domain.Enquiry) []*EnquiryResponse {
	resp := make([]*EnquiryResponse, 0, len(enquiries))
	for _, e := range enquiries {
		resp = append(resp, FromDomainEnquiry(e))
	}
	return resp
}
