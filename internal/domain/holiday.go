package domain

import "time"

// Holiday closed date. An active holiday makes the whole date unavailable.
type Holiday struct {
	ID        int64
	Date      time.Time
	Name      string
	IsActive  bool
	CreatedAt time.Time
}
