// Package clock lets build timestamps be fixed in tests
package clock

import "time"

//go:generate mockgen -destination=mock/mock.go -package=mockclock github.com/KirkDiggler/simui-api/internal/pkg/clock Clock

// Clock tells the time
type Clock interface {
	Now() time.Time
}

// Real reads the system clock in UTC
type Real struct{}

// Now returns the current time
func (c *Real) Now() time.Time {
	return time.Now().UTC()
}

// New returns the system clock
func New() Clock {
	return &Real{}
}
