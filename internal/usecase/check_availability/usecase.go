package check_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/PlayZone-BookingService/internal/domain"
	holidayRepo "github.com/m04kA/PlayZone-BookingService/internal/infra/storage/holiday"
	timeslotRepo "github.com/m04kA/PlayZone-BookingService/internal/infra/storage/timeslot"
)

// UseCase калькулятор доступности слотов
type UseCase struct {
	holidayRepo  HolidayRepository
	timeSlotRepo TimeSlotRepository
	bookingRepo  BookingRepository
	logger       Logger
}

func NewUseCase(
	holidayRepo HolidayRepository,
	timeSlotRepo TimeSlotRepository,
	bookingRepo BookingRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		holidayRepo:  holidayRepo,
		timeSlotRepo: timeSlotRepo,
		bookingRepo:  bookingRepo,
		logger:       logger,
	}
}

// Execute проверяет, хватит ли мест в слоте на дату. Ничего не резервирует.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}

	result, err := uc.Check(ctx, req.Date, req.TimeSlotID, req.Children)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CheckAvailability: date=%s, slot=%d, children=%d -> available=%t, remaining=%d",
		req.Date.Format(domain.DateFormat), req.TimeSlotID, req.Children, result.Available, result.Remaining)

	return &Response{Date: req.Date, TimeSlotID: req.TimeSlotID, Result: result}, nil
}

// Check читает выходной, слот и занятость через исполнителя из контекста.
// Внутри транзакции слот блокируется, поэтому create_booking вызывает Check прямо в своей транзакции.
func (uc *UseCase) Check(ctx context.Context, date time.Time, timeSlotID int64, children int) (Result, error) {
	holiday, err := uc.holidayRepo.GetActiveByDate(ctx, date)
	if err != nil && !errors.Is(err, holidayRepo.ErrHolidayNotFound) {
		uc.logger.Error("CheckAvailability: failed to get holiday for %s: %v", date.Format(domain.DateFormat), err)
		return Result{}, fmt.Errorf("%w: failed to get holiday: %w", ErrInternal, err)
	}
	if holiday != nil {
		return Evaluate(holiday, nil, 0, children), nil
	}

	slot, err := uc.timeSlotRepo.GetByID(ctx, timeSlotID)
	if err != nil && !errors.Is(err, timeslotRepo.ErrTimeSlotNotFound) {
		uc.logger.Error("CheckAvailability: failed to get slot id=%d: %v", timeSlotID, err)
		return Result{}, fmt.Errorf("%w: failed to get time slot: %w", ErrInternal, err)
	}
	if slot == nil || !slot.IsActive {
		return Evaluate(nil, slot, 0, children), nil
	}

	booked, err := uc.bookingRepo.SumChildrenForSlot(ctx, date, timeSlotID)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to sum children for slot id=%d: %v", timeSlotID, err)
		return Result{}, fmt.Errorf("%w: failed to sum booked children: %w", ErrInternal, err)
	}

	return Evaluate(nil, slot, booked, children), nil
}

// ExecuteDay остаток мест во всех активных слотах на дату
func (uc *UseCase) ExecuteDay(ctx context.Context, req *DayRequest) (*DayResponse, error) {
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	holiday, err := uc.holidayRepo.GetActiveByDate(ctx, req.Date)
	if err != nil && !errors.Is(err, holidayRepo.ErrHolidayNotFound) {
		uc.logger.Error("CheckAvailabilityDay: failed to get holiday: %v", err)
		return nil, fmt.Errorf("%w: failed to get holiday: %w", ErrInternal, err)
	}
	if holiday != nil {
		return &DayResponse{Date: req.Date, Closed: true, Reason: holiday.Name, Slots: []SlotInfo{}}, nil
	}

	slots, err := uc.timeSlotRepo.List(ctx, true)
	if err != nil {
		uc.logger.Error("CheckAvailabilityDay: failed to list slots: %v", err)
		return nil, fmt.Errorf("%w: failed to list time slots: %w", ErrInternal, err)
	}

	booked, err := uc.bookingRepo.SumChildrenByDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("CheckAvailabilityDay: failed to sum children: %v", err)
		return nil, fmt.Errorf("%w: failed to sum booked children: %w", ErrInternal, err)
	}

	infos := make([]SlotInfo, 0, len(slots))
	for _, slot := range slots {
		infos = append(infos, SlotInfo{
			TimeSlotID:  slot.ID,
			StartTime:   slot.StartTime.String(),
			EndTime:     slot.EndTime.String(),
			MaxCapacity: slot.MaxCapacity,
			Booked:      booked[slot.ID],
			Remaining:   Remaining(slot.MaxCapacity, booked[slot.ID]),
		})
	}

	uc.logger.Info("CheckAvailabilityDay: date=%s, %d slots", req.Date.Format(domain.DateFormat), len(infos))
	return &DayResponse{Date: req.Date, Slots: infos}, nil
}
