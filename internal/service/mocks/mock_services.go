package mocks

import (
	"context"
	"io"

	"roofapi/internal/model"
	"roofapi/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) Validate(ctx context.Context, buildingID string, file service.FileInfo) (service.ValidationResult, error) {
	args := m.Called(ctx, buildingID, file)
	return args.Get(0).(service.ValidationResult), args.Error(1)
}

func (m *MockDocumentService) Upload(ctx context.Context, buildingID string, r io.Reader, file service.FileInfo, uploadedBy string) (*model.BuildingDocument, error) {
	args := m.Called(ctx, buildingID, r, file, uploadedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BuildingDocument), args.Error(1)
}

func (m *MockDocumentService) Delete(ctx context.Context, buildingID, documentID string) error {
	args := m.Called(ctx, buildingID, documentID)
	return args.Error(0)
}

func (m *MockDocumentService) DownloadURL(ctx context.Context, buildingID, documentID string) (string, error) {
	args := m.Called(ctx, buildingID, documentID)
	return args.String(0), args.Error(1)
}

func (m *MockDocumentService) Download(ctx context.Context, buildingID, documentID string) (io.ReadCloser, *model.BuildingDocument, error) {
	args := m.Called(ctx, buildingID, documentID)
	var rc io.ReadCloser
	if args.Get(0) != nil {
		rc = args.Get(0).(io.ReadCloser)
	}
	var doc *model.BuildingDocument
	if args.Get(1) != nil {
		doc = args.Get(1).(*model.BuildingDocument)
	}
	return rc, doc, args.Error(2)
}

type MockBuildingService struct {
	mock.Mock
}

func (m *MockBuildingService) Create(ctx context.Context, in service.CreateBuildingInput) (*model.Building, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Building), args.Error(1)
}

func (m *MockBuildingService) Get(ctx context.Context, id string) (*model.Building, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Building), args.Error(1)
}

func (m *MockBuildingService) List(ctx context.Context, limit, offset int) (*service.BuildingListResult, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.BuildingListResult), args.Error(1)
}
