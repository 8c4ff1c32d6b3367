package mocks

import (
	"context"

	"roofapi/internal/model"
	"roofapi/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockBuildingRepository struct {
	mock.Mock
}

func (m *MockBuildingRepository) Create(ctx context.Context, b *model.Building) (*model.Building, error) {
	args := m.Called(ctx, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Building), args.Error(1)
}

func (m *MockBuildingRepository) FindByID(ctx context.Context, id string) (*model.Building, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Building), args.Error(1)
}

func (m *MockBuildingRepository) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Building], error) {
	args := m.Called(ctx, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Building]), args.Error(1)
}

func (m *MockBuildingRepository) AppendDocument(ctx context.Context, buildingID string, doc model.BuildingDocument, maxDocs int) error {
	args := m.Called(ctx, buildingID, doc, maxDocs)
	return args.Error(0)
}

func (m *MockBuildingRepository) RemoveDocument(ctx context.Context, buildingID, documentID string) error {
	args := m.Called(ctx, buildingID, documentID)
	return args.Error(0)
}
