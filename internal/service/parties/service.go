package parties

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/PlayZone-BookingService/internal/domain"
	partyRepo "github.com/m04kA/PlayZone-BookingService/internal/infra/storage/party"
	packageRepo "github.com/m04kA/PlayZone-BookingService/internal/infra/storage/playpackage"
	"github.com/m04kA/PlayZone-BookingService/internal/service/parties/models"
	"github.com/m04kA/PlayZone-BookingService/pkg/types"
)

// Service заявки на проведение дня рождения.
// Заявки не занимают вместимость слотов и не сверяются с бронированиями.
type Service struct {
	partyRepo    PartyRepository
	packageRepo  PackageRepository
	publisher    EventPublisher
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса заявок
func NewService(partyRepo PartyRepository, packageRepo PackageRepository, publisher EventPublisher, logger Logger) *Service {
	return &Service{
		partyRepo:    partyRepo,
		packageRepo:  packageRepo,
		publisher:    publisher,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Create создает заявку в статусе pending и уведомляет клиента и администратора
func (s *Service) Create(ctx context.Context, req *models.CreatePartyRequest) (*models.PartyResponse, error) {
	s.logger.Info("Create: party request from user=%d for date=%s", req.Actor.UserID, req.PartyDate.Format(domain.DateFormat))

	now := s.timeProvider.Now()

	// 1. Валидация входных данных
	if err := validateCreate(req, now); err != nil {
		s.logger.Warn("Create: validation failed for user=%d: %v", req.Actor.UserID, err)
		return nil, err
	}
	startTime, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: startTime: %w", ErrInvalidInput, err)
	}

	// 2. Пакет должен быть активным пакетом для дня рождения
	pkg, err := s.packageRepo.GetByID(ctx, req.PackageID)
	if err != nil {
		if errors.Is(err, packageRepo.ErrPackageNotFound) {
			s.logger.Warn("Create: package id=%d not found", req.PackageID)
			return nil, ErrPackageNotFound
		}
		s.logger.Error("Create: failed to get package id=%d: %v", req.PackageID, err)
		return nil, fmt.Errorf("%w: Create - get package: %w", ErrInternal, err)
	}
	if !pkg.IsActive || pkg.Type != domain.PackageBirthday {
		s.logger.Warn("Create: package id=%d is %s active=%t", pkg.ID, pkg.Type, pkg.IsActive)
		return nil, ErrNotBirthdayPackage
	}

	// 3. Сохраняем заявку
	party := &domain.Party{
		UserID:       req.Actor.UserID,
		PackageID:    pkg.ID,
		PartyDate:    time.Date(req.PartyDate.Year(), req.PartyDate.Month(), req.PartyDate.Day(), 0, 0, 0, 0, time.UTC),
		StartTime:    startTime,
		Guests:       req.Guests,
		ChildName:    strings.TrimSpace(req.ChildName),
		ChildAge:     req.ChildAge,
		Theme:        req.Theme,
		Status:       domain.StatusPending,
		ContactName:  strings.TrimSpace(req.ContactName),
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		Notes:        req.Notes,
	}

	created, err := s.partyRepo.Create(ctx, party)
	if err != nil {
		s.logger.Error("Create: failed to create party: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %w", ErrInternal, err)
	}

	// 4. Уведомление
	s.publish(ctx, domain.NewPartyEvent(domain.EventPartyRequested, created, pkg.Name, now))

	s.logger.Info("Create: created party id=%d (%s)", created.ID, created.Reference())
	return models.FromDomainParty(created), nil
}

// List список заявок (только администратор), опционально по статусу
func (s *Service) List(ctx context.Context, actor domain.Actor, status *string) ([]*models.PartyResponse, error) {
	s.logger.Info("List: parties for admin=%d, status=%v", actor.UserID, status)

	if !actor.IsAdmin() {
		s.logger.Warn("List: user=%d is not an admin", actor.UserID)
		return nil, ErrAccessDenied
	}

	var domainStatus *domain.BookingStatus
	if status != nil {
		parsed, err := domain.ParseBookingStatus(*status)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &parsed
	}

	parties, err := s.partyRepo.List(ctx, domainStatus)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainPartyList(parties), nil
}

// UpdateStatus меняет статус заявки по тому же автомату, что и у бронирований
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.PartyResponse, error) {
	s.logger.Info("UpdateStatus: party id=%d -> %s by user=%d", id, req.Status, req.Actor.UserID)

	if !req.Actor.IsAdmin() {
		s.logger.Warn("UpdateStatus: user=%d is not an admin", req.Actor.UserID)
		return nil, ErrAccessDenied
	}

	target, err := domain.ParseBookingStatus(req.Status)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	party, err := s.partyRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, partyRepo.ErrPartyNotFound) {
			s.logger.Warn("UpdateStatus: party id=%d not found", id)
			return nil, ErrPartyNotFound
		}
		s.logger.Error("UpdateStatus: failed to get party id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStatus - get party: %w", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	if err := party.Transition(target, now); err != nil {
		s.logger.Warn("UpdateStatus: party id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidTransition, err)
	}

	if err := s.partyRepo.UpdateStatus(ctx, party); err != nil {
		if errors.Is(err, partyRepo.ErrPartyNotFound) {
			return nil, ErrPartyNotFound
		}
		s.logger.Error("UpdateStatus: failed to update party id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %w", ErrInternal, err)
	}

	packageName := ""
	if pkg, err := s.packageRepo.GetByID(ctx, party.PackageID); err == nil {
		packageName = pkg.Name
	}
	s.publish(ctx, domain.NewPartyEvent(domain.EventPartyUpdated, party, packageName, now))

	s.logger.Info("UpdateStatus: party id=%d is now %s", id, party.Status)
	return models.FromDomainParty(party), nil
}

func (s *Service) publish(ctx context.Context, event domain.NotificationEvent) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("publish: failed to publish %s for %s: %v", event.Type, event.Reference, err)
	}
}
