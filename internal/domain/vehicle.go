package domain

import (
	"errors"
	"fmt"
)

// Vehicle is a capacity- and time-constrained delivery vehicle. MaxStops of
// zero means unlimited. The operating window is clock-of-day; SpeedFactor
// scales the base road speed. Immutable during a run.
type Vehicle struct {
	ID          string
	Name        string
	Capacity    float64
	MaxStops    int
	StartTime   string
	EndTime     string
	SpeedFactor float64
}

func (v Vehicle) Validate() error {
	if v.ID == "" {
		return errors.New("vehicle: id must be non-empty")
	}
	if v.Capacity <= 0 {
		return fmt.Errorf("vehicle %q: capacity must be > 0", v.ID)
	}
	if v.MaxStops < 0 {
		return fmt.Errorf("vehicle %q: max stops must be >= 0", v.ID)
	}
	if v.SpeedFactor <= 0 {
		return fmt.Errorf("vehicle %q: speed factor must be > 0", v.ID)
	}
	return nil
}
