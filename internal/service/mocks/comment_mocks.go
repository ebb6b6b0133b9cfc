package mocks

import (
	"context"
	"reflect"
	"time"

	"github.com/google/uuid"
	"go.uber.org/mock/gomock"

	"feedback_service/internal/domain"
)

type MockCommentRepository struct {
	ctrl     *gomock.Controller
	recorder *MockCommentRepositoryMockRecorder
}

type MockCommentRepositoryMockRecorder struct {
	mock *MockCommentRepository
}

func NewMockCommentRepository(ctrl *gomock.Controller) *MockCommentRepository {
	mock := &MockCommentRepository{ctrl: ctrl}
	mock.recorder = &MockCommentRepositoryMockRecorder{mock}
	return mock
}

func (m *MockCommentRepository) EXPECT() *MockCommentRepositoryMockRecorder {
	return m.recorder
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Create", ctx, comment)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockCommentRepositoryMockRecorder) Create(ctx, comment interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Create", reflect.TypeOf((*MockCommentRepository)(nil).Create), ctx, comment)
}

func (m *MockCommentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByID", ctx, id)
	ret0, _ := ret[0].(*domain.Comment)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockCommentRepositoryMockRecorder) GetByID(ctx, id interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByID", reflect.TypeOf((*MockCommentRepository)(nil).GetByID), ctx, id)
}

func (m *MockCommentRepository) Update(ctx context.Context, comment *domain.Comment) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Update", ctx, comment)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockCommentRepositoryMockRecorder) Update(ctx, comment interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Update", reflect.TypeOf((*MockCommentRepository)(nil).Update), ctx, comment)
}

func (m *MockCommentRepository) ListByResponse(ctx context.Context, responseID string) ([]*domain.Comment, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListByResponse", ctx, responseID)
	ret0, _ := ret[0].([]*domain.Comment)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockCommentRepositoryMockRecorder) ListByResponse(ctx, responseID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListByResponse", reflect.TypeOf((*MockCommentRepository)(nil).ListByResponse), ctx, responseID)
}

func (m *MockCommentRepository) ListEditedSince(ctx context.Context, within time.Duration) ([]*domain.Comment, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListEditedSince", ctx, within)
	ret0, _ := ret[0].([]*domain.Comment)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockCommentRepositoryMockRecorder) ListEditedSince(ctx, within interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListEditedSince", reflect.TypeOf((*MockCommentRepository)(nil).ListEditedSince), ctx, within)
}

type MockIndexProducer struct {
	ctrl     *gomock.Controller
	recorder *MockIndexProducerMockRecorder
}

type MockIndexProducerMockRecorder struct {
	mock *MockIndexProducer
}

func NewMockIndexProducer(ctrl *gomock.Controller) *MockIndexProducer {
	mock := &MockIndexProducer{ctrl: ctrl}
	mock.recorder = &MockIndexProducerMockRecorder{mock}
	return mock
}

func (m *MockIndexProducer) EXPECT() *MockIndexProducerMockRecorder {
	return m.recorder
}

func (m *MockIndexProducer) Send(ctx context.Context, topic string, message interface{}) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Send", ctx, topic, message)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockIndexProducerMockRecorder) Send(ctx, topic, message interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Send", reflect.TypeOf((*MockIndexProducer)(nil).Send), ctx, topic, message)
}
