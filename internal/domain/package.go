package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PackageType вид пакета
type PackageType string

const (
	PackageWalkIn   PackageType = "walk_in"
	PackageWeekend  PackageType = "weekend"
	PackageMonthly  PackageType = "monthly"
	PackageBirthday PackageType = "birthday"
)

func (t PackageType) IsValid() bool {
	switch t {
	case PackageWalkIn, PackageWeekend, PackageMonthly, PackageBirthday:
		return true
	}
	return false
}

// Package priced offering; Price is per child
type Package struct {
	ID              int64
	Name            string
	Description     *string
	Type            PackageType
	Price           decimal.Decimal
	DurationMinutes int
	Features        []string
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
