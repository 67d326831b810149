package mocks

import (
	"time"

	"github.com/stretchr/testify/mock"
)

// MetricsRecorder is a mock of ports.MetricsRecorder
type MetricsRecorder struct {
	mock.Mock
}

// NewMetricsRecorder creates a mock and registers expectation checks on cleanup
func NewMetricsRecorder(t interface {
	mock.TestingT
	Cleanup(func())
}) *MetricsRecorder {
	m := &MetricsRecorder{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// NewPermissiveMetricsRecorder accepts any metric call
func NewPermissiveMetricsRecorder(t interface {
	mock.TestingT
	Cleanup(func())
}) *MetricsRecorder {
	m := NewMetricsRecorder(t)
	m.On("RecordFetch", mock.Anything, mock.Anything, mock.Anything).Maybe()
	m.On("RecordLoginAttempt", mock.Anything, mock.Anything).Maybe()
	m.On("RecordSessionChange", mock.Anything).Maybe()
	m.On("RecordGuardRedirect", mock.Anything).Maybe()
	return m
}

func (m *MetricsRecorder) RecordFetch(dataset, outcome string, duration time.Duration) {
	m.Called(dataset, outcome, duration)
}

func (m *MetricsRecorder) RecordLoginAttempt(stage, outcome string) {
	m.Called(stage, outcome)
}

func (m *MetricsRecorder) RecordSessionChange(action string) {
	m.Called(action)
}

func (m *MetricsRecorder) RecordGuardRedirect(route string) {
	m.Called(route)
}
