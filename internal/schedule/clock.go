package schedule

import (
	"time"

	"github.com/daliphone/money-marketing-room/internal/models"
)

// Clock defines an interface for getting the current time.
// This allows us to inject a fake time during unit tests.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the actual server system time.
type RealClock struct{}

func (c RealClock) Now() time.Time {
	return time.Now()
}

// MockClock implements Clock for testing specific scenarios.
// e.g., "Pretend it is Monday 2025-06-02"
type MockClock struct {
	MockTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.MockTime
}

// Today is the reference date in the deployment's local calendar.
func Today(c Clock) models.Date {
	return models.DateOf(c.Now())
}
