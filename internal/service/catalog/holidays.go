package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/PlayZone-BookingService/internal/domain"
	holidayRepo "github.com/m04kA/PlayZone-BookingService/internal/infra/storage/holiday"
	"github.com/m04kA/PlayZone-BookingService/internal/service/catalog/models"
)

// ListUpcomingHolidays активные выходные начиная с сегодняшнего дня
func (s *Service) ListUpcomingHolidays(ctx context.Context) ([]models.HolidayResponse, error) {
	now := s.timeProvider.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	holidays, err := s.holidayRepo.ListFrom(ctx, today)
	if err != nil {
		s.logger.Error("ListUpcomingHolidays: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListUpcomingHolidays - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainHolidayList(holidays), nil
}

// CreateHoliday закрывает дату для бронирований (только администратор).
// Существующие бронирования на эту дату не отменяются.
func (s *Service) CreateHoliday(ctx context.Context, actor domain.Actor, req *models.CreateHolidayRequest) (*models.HolidayResponse, error) {
	s.logger.Info("CreateHoliday: creating holiday date=%s by user=%d", req.Date.Format(domain.DateFormat), actor.UserID)

	if err := s.requireAdmin("CreateHoliday", actor); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" || len(name) > domain.MaxNameLength {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	h := &domain.Holiday{
		Date:     time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, time.UTC),
		Name:     name,
		IsActive: true,
	}

	created, err := s.holidayRepo.Create(ctx, h)
	if err != nil {
		if errors.Is(err, holidayRepo.ErrHolidayExists) {
			s.logger.Warn("CreateHoliday: holiday already exists for date=%s", h.Date.Format(domain.DateFormat))
			return nil, ErrHolidayExists
		}
		s.logger.Error("CreateHoliday: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateHoliday - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("CreateHoliday: created holiday id=%d", created.ID)
	resp := models.FromDomainHoliday(created)
	return &resp, nil
}

// DeleteHoliday снимает выходной (только администратор). Запись деактивируется, а не удаляется.
func (s *Service) DeleteHoliday(ctx context.Context, actor domain.Actor, id int64) error {
	s.logger.Info("DeleteHoliday: deactivating holiday id=%d by user=%d", id, actor.UserID)

	if err := s.requireAdmin("DeleteHoliday", actor); err != nil {
		return err
	}

	if err := s.holidayRepo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, holidayRepo.ErrHolidayNotFound) {
			s.logger.Warn("DeleteHoliday: holiday id=%d not found", id)
			return ErrHolidayNotFound
		}
		s.logger.Error("DeleteHoliday: repository error for id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteHoliday - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("DeleteHoliday: holiday id=%d deactivated", id)
	return nil
}
