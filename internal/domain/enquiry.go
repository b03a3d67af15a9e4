package domain

import "time"

// Enquiry contact form message
type Enquiry struct {
	ID        int64
	Name      string
	Email     *string
	Phone     *string
	Message   string
	CreatedAt time.Time
}
