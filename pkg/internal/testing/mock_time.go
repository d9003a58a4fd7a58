package testing

import "time"

// MockNowService is a controllable clock for tests
type MockNowService struct {
	now time.Time
}

// Now returns current mocked time
func (svc *MockNowService) Now() time.Time {
	return svc.now
}

// SetNow set current now value
func (svc *MockNowService) SetNow(val time.Time) {
	svc.now = val
}

// Advance moves the clock forward and returns the new value
func (svc *MockNowService) Advance(d time.Duration) time.Time {
	svc.now = svc.now.Add(d)
	return svc.now
}

// NewMockNowService returns a clock stopped at now
func NewMockNowService(now time.Time) *MockNowService {
	return &MockNowService{now: now}
}
