package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/PlayZone-BookingService/internal/domain"
	packageRepo "github.com/m04kA/PlayZone-BookingService/internal/infra/storage/playpackage"
	"github.com/m04kA/PlayZone-BookingService/internal/service/catalog/models"
)

// ListPackages список пакетов. Неактивные видит только администратор.
func (s *Service) ListPackages(ctx context.Context, actor domain.Actor, includeInactive bool) ([]models.PackageResponse, error) {
	if includeInactive {
		if err := s.requireAdmin("ListPackages", actor); err != nil {
			return nil, err
		}
		packages, err := s.packageRepo.List(ctx, false)
		if err != nil {
			s.logger.Error("ListPackages: repository error: %v", err)
			return nil, fmt.Errorf("%w: ListPackages - repository error: %w", ErrInternal, err)
		}
		return models.FromDomainPackageList(packages), nil
	}

	cached, err := s.cache.GetPackages(ctx)
	if err != nil {
		s.logger.Warn("ListPackages: cache read failed: %v", err)
	}
	if cached != nil {
		return models.FromDomainPackageList(cached), nil
	}

	packages, err := s.packageRepo.List(ctx, true)
	if err != nil {
		s.logger.Error("ListPackages: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListPackages - repository error: %w", ErrInternal, err)
	}

	if err := s.cache.SetPackages(ctx, packages); err != nil {
		s.logger.Warn("ListPackages: cache write failed: %v", err)
	}

	return models.FromDomainPackageList(packages), nil
}

// GetPackage пакет по ID. Неактивный пакет клиенту не показывается.
func (s *Service) GetPackage(ctx context.Context, actor domain.Actor, id int64) (*models.PackageResponse, error) {
	p, err := s.getPackage(ctx, "GetPackage", id)
	if err != nil {
		return nil, err
	}
	if !p.IsActive && !actor.IsAdmin() {
		return nil, ErrPackageNotFound
	}

	resp := models.FromDomainPackage(p)
	return &resp, nil
}

// CreatePackage создает пакет (только администратор)
func (s *Service) CreatePackage(ctx context.Context, actor domain.Actor, req *models.CreatePackageRequest) (*models.PackageResponse, error) {
	s.logger.Info("CreatePackage: creating package name=%q by user=%d", req.Name, actor.UserID)

	if err := s.requireAdmin("CreatePackage", actor); err != nil {
		return nil, err
	}

	p := &domain.Package{
		Name:            strings.TrimSpace(req.Name),
		Description:     req.Description,
		Type:            domain.PackageType(req.Type),
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
		Features:        req.Features,
		IsActive:        true,
	}
	if err := validatePackage(p); err != nil {
		s.logger.Warn("CreatePackage: validation failed: %v", err)
		return nil, err
	}

	created, err := s.packageRepo.Create(ctx, p)
	if err != nil {
		s.logger.Error("CreatePackage: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreatePackage - repository error: %w", ErrInternal, err)
	}

	s.invalidatePackages(ctx)

	s.logger.Info("CreatePackage: created package id=%d", created.ID)
	resp := models.FromDomainPackage(created)
	return &resp, nil
}

// UpdatePackage частично обновляет пакет (только администратор).
// Деактивация через isActive=false скрывает пакет из публичного списка.
func (s *Service) UpdatePackage(ctx context.Context, actor domain.Actor, id int64, req *models.UpdatePackageRequest) (*models.PackageResponse, error) {
	s.logger.Info("UpdatePackage: updating package id=%d by user=%d", id, actor.UserID)

	if err := s.requireAdmin("UpdatePackage", actor); err != nil {
		return nil, err
	}

	p, err := s.getPackage(ctx, "UpdatePackage", id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		p.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		p.Description = req.Description
	}
	if req.Type != nil {
		p.Type = domain.PackageType(*req.Type)
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.DurationMinutes != nil {
		p.DurationMinutes = *req.DurationMinutes
	}
	if req.Features != nil {
		p.Features = req.Features
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	p.UpdatedAt = s.timeProvider.Now()

	if err := validatePackage(p); err != nil {
		s.logger.Warn("UpdatePackage: validation failed for id=%d: %v", id, err)
		return nil, err
	}

	if err := s.packageRepo.Update(ctx, p); err != nil {
		if errors.Is(err, packageRepo.ErrPackageNotFound) {
			return nil, ErrPackageNotFound
		}
		s.logger.Error("UpdatePackage: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdatePackage - repository error: %w", ErrInternal, err)
	}

	s.invalidatePackages(ctx)

	s.logger.Info("UpdatePackage: updated package id=%d", id)
	resp := models.FromDomainPackage(p)
	return &resp, nil
}

func (s *Service) getPackage(ctx context.Context, op string, id int64) (*domain.Package, error) {
	p, err := s.packageRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, packageRepo.ErrPackageNotFound) {
			s.logger.Warn("%s: package id=%d not found", op, id)
			return nil, ErrPackageNotFound
		}
		s.logger.Error("%s: repository error for package id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}
	return p, nil
}
