package domain

import "time"

// Mental state levels, ordered from calm to crisis. The frontend renders
// these as a banner; the backend only stores and broadcasts them.
const (
	StateSafe     = "safe"
	StateUnsafe   = "unsafe"
	StateHighRisk = "highrisk"
)

// MentalState is the system-wide wellbeing indicator shown on the site.
type MentalState struct {
	Level     string    `json:"level"`
	UpdatedAt time.Time `json:"updated_at"`
	Notes     string    `json:"notes,omitempty"`
}

// DefaultMentalState is returned when no state has ever been recorded.
func DefaultMentalState() MentalState {
	return MentalState{Level: StateSafe, UpdatedAt: time.Now().UTC()}
}
