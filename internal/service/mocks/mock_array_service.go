package mocks

import (
	"context"

	"filearray/internal/model"
	"filearray/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockArrayService struct {
	mock.Mock
}

func (m *MockArrayService) Field() model.ArrayField {
	args := m.Called()
	return args.Get(0).(model.ArrayField)
}

func (m *MockArrayService) Save(ctx context.Context, in service.SaveInput) (*model.Record, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Record), args.Error(1)
}

func (m *MockArrayService) Persist(ctx context.Context, rec *model.Record) (*model.Record, error) {
	args := m.Called(ctx, rec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Record), args.Error(1)
}

func (m *MockArrayService) Get(ctx context.Context, id string) (*model.Record, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Record), args.Error(1)
}

func (m *MockArrayService) List(ctx context.Context, limit, offset int) (*service.RecordListResult, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RecordListResult), args.Error(1)
}

func (m *MockArrayService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
