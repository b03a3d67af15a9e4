package cache

import (
	"context"

	"github.com/m04kA/PlayZone-BookingService/internal/domain"
)

// Noop кэш для запуска без redis: всегда промах
type Noop struct{}

func (Noop) GetPackages(context.Context) ([]*domain.Package, error)   { return nil, nil }
func (Noop) SetPackages(context.Context, []*domain.Package) error     { return nil }
func (Noop) GetTimeSlots(context.Context) ([]*domain.TimeSlot, error) { return nil, nil }
func (Noop) SetTimeSlots(context.Context, []*domain.TimeSlot) error   { return nil }
func (Noop) InvalidatePackages(context.Context) error                 { return nil }
func (Noop) InvalidateTimeSlots(context.Context) error                { return nil }
