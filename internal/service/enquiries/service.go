package enquiries

import (
	"context"
	"fmt"
	"strings"

	"github.com/m04kA/PlayZone-BookingService/internal/domain"
	"github.com/m04kA/PlayZone-BookingService/internal/service/enquiries/models"
)

// DefaultListLimit сколько последних обращений отдаём администратору
const DefaultListLimit = 100

// Service обращения из формы обратной связи
type Service struct {
	enquiryRepo  EnquiryRepository
	publisher    EventPublisher
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса обращений
func NewService(enquiryRepo EnquiryRepository, publisher EventPublisher, logger Logger) *Service {
	return &Service{
		enquiryRepo:  enquiryRepo,
		publisher:    publisher,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Create сохраняет обращение и отправляет копию администратору
func (s *Service) Create(ctx context.Context, req *models.CreateEnquiryRequest) (*models.EnquiryResponse, error) {
	enquiry := &domain.Enquiry{
		Name:    strings.TrimSpace(req.Name),
		Email:   trimmed(req.Email),
		Phone:   trimmed(req.Phone),
		Message: strings.TrimSpace(req.Message),
	}

	if err := validate(enquiry); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	created, err := s.enquiryRepo.Create(ctx, enquiry)
	if err != nil {
		s.logger.Error("Create: failed to save enquiry: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %w", ErrInternal, err)
	}

	event := domain.NewEnquiryEvent(created, s.timeProvider.Now())
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("Create: failed to publish %s for enquiry id=%d: %v", event.Type, created.ID, err)
	}

	s.logger.Info("Create: enquiry id=%d received", created.ID)
	return models.FromDomainEnquiry(created), nil
}

// List последние обращения (только администратор)
func (s *Service) List(ctx context.Context, actor domain.Actor) ([]*models.EnquiryResponse, error) {
	if !actor.IsAdmin() {
		s.logger.Warn("List: user=%d is not an admin", actor.UserID)
		return nil, ErrAccessDenied
	}

	enquiries, err := s.enquiryRepo.List(ctx, DefaultListLimit)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainEnquiryList(enquiries), nil
}

func validate(e *domain.Enquiry) error {
	if e.Name == "" || len(e.Name) > domain.MaxNameLength {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if e.Email == nil && e.Phone == nil {
		return fmt.Errorf("%w: email or phone is required", ErrInvalidInput)
	}
	if e.Email != nil && !strings.Contains(*e.Email, "@") {
		return fmt.Errorf("%w: email is malformed", ErrInvalidInput)
	}
	if e.Message == "" {
		return fmt.Errorf("%w: message is required", ErrInvalidInput)
	}
	if len(e.Message) > domain.MaxMessageLength {
		return fmt.Errorf("%w: message exceeds %d characters", ErrInvalidInput, domain.MaxMessageLength)
	}
	return nil
}

// trimmed пустая строка считается отсутствующим значением
func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
