package catalog

import (
	"context"

	"github.com/m04kA/PlayZone-BookingService/internal/domain"
)

// Service справочники площадки: пакеты, слоты и выходные дни.
// Публичные списки активных пакетов и слотов кэшируются, любая запись сбрасывает кэш.
type Service struct {
	packageRepo  PackageRepository
	timeSlotRepo TimeSlotRepository
	holidayRepo  HolidayRepository
	cache        Cache
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(
	packageRepo PackageRepository,
	timeSlotRepo TimeSlotRepository,
	holidayRepo HolidayRepository,
	cache Cache,
	logger Logger,
) *Service {
	return &Service{
		packageRepo:  packageRepo,
		timeSlotRepo: timeSlotRepo,
		holidayRepo:  holidayRepo,
		cache:        cache,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

func (s *Service) requireAdmin(op string, actor domain.Actor) error {
	if !actor.IsAdmin() {
		s.logger.Warn("%s: user=%d is not an admin", op, actor.UserID)
		return ErrAccessDenied
	}
	return nil
}

// Ошибки кэша не ломают запрос, только пишутся в лог

func (s *Service) invalidatePackages(ctx context.Context) {
	if err := s.cache.InvalidatePackages(ctx); err != nil {
		s.logger.Warn("cache: failed to invalidate packages: %v", err)
	}
}

func (s *Service) invalidateTimeSlots(ctx context.Context) {
	if err := s.cache.InvalidateTimeSlots(ctx); err != nil {
		s.logger.Warn("cache: failed to invalidate time slots: %v", err)
	}
}
