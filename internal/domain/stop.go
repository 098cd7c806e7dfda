package domain

import (
	"errors"
	"fmt"
)

// Depot is the shared start and end point of every route. One per request.
type Depot struct {
	ID       string
	Name     string
	Address  string
	Location Coordinate
}

func (d Depot) Validate() error {
	if err := d.Location.Validate(); err != nil {
		return fmt.Errorf("depot: %w", err)
	}
	return nil
}

// Stop is a single delivery: a location with demand, an optional clock-of-day
// time window, a per-stop service duration, and a priority rank (1=highest,
// 3=lowest). Stops are immutable during a single optimization run.
type Stop struct {
	ID              string
	Name            string
	Phone           string
	Notes           string
	Address         string
	Location        Coordinate
	Demand          float64
	TimeWindowStart string
	TimeWindowEnd   string
	ServiceTime     int // minutes at the stop
	Priority        int
}

func (s Stop) Validate() error {
	if s.ID == "" {
		return errors.New("stop: id must be non-empty")
	}
	if err := s.Location.Validate(); err != nil {
		return fmt.Errorf("stop %q: %w", s.ID, err)
	}
	if s.Demand < 0 {
		return fmt.Errorf("stop %q: demand must be >= 0", s.ID)
	}
	if s.ServiceTime < 0 {
		return fmt.Errorf("stop %q: service time must be >= 0", s.ID)
	}
	if s.Priority < 1 || s.Priority > 3 {
		return fmt.Errorf("stop %q: priority must be between 1 and 3", s.ID)
	}
	return nil
}
