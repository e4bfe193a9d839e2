package clock

import (
	"sync"
	"time"
)

// Service is the source of wall clock time for upload records.
type Service interface {
	Now() time.Time
}

type TimeSetterFn func(time.Time)

type mockService struct {
	mu  sync.RWMutex
	now time.Time
}

func (m *mockService) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.now
}

func (m *mockService) set(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.now = now
}

// NewMockService returns a clock frozen at now and a function to move it.
func NewMockService(now time.Time) (Service, TimeSetterFn) {
	service := &mockService{
		now: now,
	}
	return service, service.set
}

type systemClock struct{}

func NewSystemClock() Service {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}
