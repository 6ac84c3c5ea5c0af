package models

import "time"

// Service is a bookable salon service from the catalogue. DurationMin drives
// slot generation and conflict checks.
type Service struct {
	BaseModel
	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	DurationMin int    `gorm:"not null" json:"durationMin"`
	PriceCents  int64  `gorm:"default:0" json:"priceCents"`
}

// Duration returns the service length as a time.Duration.
func (s *Service) Duration() time.Duration {
	return time.Duration(s.DurationMin) * time.Minute
}
