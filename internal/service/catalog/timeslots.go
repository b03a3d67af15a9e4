package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/PlayZone-BookingService/internal/domain"
	timeSlotRepo "github.com/m04kA/PlayZone-BookingService/internal/infra/storage/timeslot"
	"github.com/m04kA/PlayZone-BookingService/internal/service/catalog/models"
)

// ListTimeSlots список слотов по времени начала. Неактивные видит только администратор.
func (s *Service) ListTimeSlots(ctx context.Context, actor domain.Actor, includeInactive bool) ([]models.TimeSlotResponse, error) {
	if includeInactive {
		if err := s.requireAdmin("ListTimeSlots", actor); err != nil {
			return nil, err
		}
		slots, err := s.timeSlotRepo.List(ctx, false)
		if err != nil {
			s.logger.Error("ListTimeSlots: repository error: %v", err)
			return nil, fmt.Errorf("%w: ListTimeSlots - repository error: %w", ErrInternal, err)
		}
		return models.FromDomainTimeSlotList(slots), nil
	}

	cached, err := s.cache.GetTimeSlots(ctx)
	if err != nil {
		s.logger.Warn("ListTimeSlots: cache read failed: %v", err)
	}
	if cached != nil {
		return models.FromDomainTimeSlotList(cached), nil
	}

	slots, err := s.timeSlotRepo.List(ctx, true)
	if err != nil {
		s.logger.Error("ListTimeSlots: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListTimeSlots - repository error: %w", ErrInternal, err)
	}

	if err := s.cache.SetTimeSlots(ctx, slots); err != nil {
		s.logger.Warn("ListTimeSlots: cache write failed: %v", err)
	}

	return models.FromDomainTimeSlotList(slots), nil
}

// CreateTimeSlot создает слот (только администратор)
func (s *Service) CreateTimeSlot(ctx context.Context, actor domain.Actor, req *models.CreateTimeSlotRequest) (*models.TimeSlotResponse, error) {
	s.logger.Info("CreateTimeSlot: creating slot %s-%s by user=%d", req.StartTime, req.EndTime, actor.UserID)

	if err := s.requireAdmin("CreateTimeSlot", actor); err != nil {
		return nil, err
	}

	start, err := parseTime("startTime", req.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := parseTime("endTime", req.EndTime)
	if err != nil {
		return nil, err
	}

	slot := &domain.TimeSlot{
		StartTime:   start,
		EndTime:     end,
		MaxCapacity: req.MaxCapacity,
		IsActive:    true,
	}
	if err := validateTimeSlot(slot); err != nil {
		s.logger.Warn("CreateTimeSlot: validation failed: %v", err)
		return nil, err
	}

	created, err := s.timeSlotRepo.Create(ctx, slot)
	if err != nil {
		s.logger.Error("CreateTimeSlot: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateTimeSlot - repository error: %w", ErrInternal, err)
	}

	s.invalidateTimeSlots(ctx)

	s.logger.Info("CreateTimeSlot: created slot id=%d", created.ID)
	resp := models.FromDomainTimeSlot(created)
	return &resp, nil
}

// UpdateTimeSlot частично обновляет слот (только администратор).
// Уменьшение вместимости не трогает существующие бронирования.
func (s *Service) UpdateTimeSlot(ctx context.Context, actor domain.Actor, id int64, req *models.UpdateTimeSlotRequest) (*models.TimeSlotResponse, error) {
	s.logger.Info("UpdateTimeSlot: updating slot id=%d by user=%d", id, actor.UserID)

	if err := s.requireAdmin("UpdateTimeSlot", actor); err != nil {
		return nil, err
	}

	slot, err := s.timeSlotRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, timeSlotRepo.ErrTimeSlotNotFound) {
			s.logger.Warn("UpdateTimeSlot: slot id=%d not found", id)
			return nil, ErrTimeSlotNotFound
		}
		s.logger.Error("UpdateTimeSlot: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateTimeSlot - repository error: %w", ErrInternal, err)
	}

	if req.StartTime != nil {
		if slot.StartTime, err = parseTime("startTime", *req.StartTime); err != nil {
			return nil, err
		}
	}
	if req.EndTime != nil {
		if slot.EndTime, err = parseTime("endTime", *req.EndTime); err != nil {
			return nil, err
		}
	}
	if req.MaxCapacity != nil {
		slot.MaxCapacity = *req.MaxCapacity
	}
	if req.IsActive != nil {
		slot.IsActive = *req.IsActive
	}
	slot.UpdatedAt = s.timeProvider.Now()

	if err := validateTimeSlot(slot); err != nil {
		s.logger.Warn("UpdateTimeSlot: validation failed for id=%d: %v", id, err)
		return nil, err
	}

	if err := s.timeSlotRepo.Update(ctx, slot); err != nil {
		if errors.Is(err, timeSlotRepo.ErrTimeSlotNotFound) {
			return nil, ErrTimeSlotNotFound
		}
		s.logger.Error("UpdateTimeSlot: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateTimeSlot - repository error: %w", ErrInternal, err)
	}

	s.invalidateTimeSlots(ctx)

	s.logger.Info("UpdateTimeSlot: updated slot id=%d", id)
	resp := models.FromDomainTimeSlot(slot)
	return &resp, nil
}
