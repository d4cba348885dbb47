package kvkit_test

import (
	reflect "reflect"

	gomock "github.com/golang/mock/gomock"
)

// MockProducer is a mock of Producer interface that is also an io.Closer.
// It is written by hand in mockgen's layout, mockgen does not generate mocks for generic interfaces.
type MockProducer[T any] struct {
	ctrl     *gomock.Controller
	recorder *MockProducerMockRecorder[T]
}

// MockProducerMockRecorder is the mock recorder for MockProducer.
type MockProducerMockRecorder[T any] struct {
	mock *MockProducer[T]
}

// NewMockProducer creates a new mock instance.
func NewMockProducer[T any](ctrl *gomock.Controller) *MockProducer[T] {
	mock := &MockProducer[T]{ctrl: ctrl}
	mock.recorder = &MockProducerMockRecorder[T]{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockProducer[T]) EXPECT() *MockProducerMockRecorder[T] {
	return m.recorder
}

// Next mocks base method.
func (m *MockProducer[T]) Next() (T, bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Next")
	ret0, _ := ret[0].(T)
	ret1, _ := ret[1].(bool)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

// Next indicates an expected call of Next.
func (mr *MockProducerMockRecorder[T]) Next() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Next", reflect.TypeOf((*MockProducer[T])(nil).Next))
}

// Close mocks base method.
func (m *MockProducer[T]) Close() error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Close")
	ret0, _ := ret[0].(error)
	return ret0
}

// Close indicates an expected call of Close.
func (mr *MockProducerMockRecorder[T]) Close() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Close", reflect.TypeOf((*MockProducer[T])(nil).Close))
}
