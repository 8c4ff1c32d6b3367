package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"roofapi/internal/model"
	"roofapi/internal/repository"
	repoMocks "roofapi/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBuildingService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		mRepo := new(repoMocks.MockBuildingRepository)
		svc := NewBuildingService(mRepo)

		addr := "12 Main St"
		mRepo.On("Create", ctx, mock.MatchedBy(func(b *model.Building) bool {
			return b.ID != "" && b.Name == "Warehouse A" && b.Address != nil &&
				b.Documents != nil && len(b.Documents) == 0 && !b.CreatedAt.IsZero()
		})).Return(&model.Building{ID: "b1", Name: "Warehouse A", Address: &addr}, nil)

		b, err := svc.Create(ctx, CreateBuildingInput{Name: "Warehouse A", Address: &addr})

		require.NoError(t, err)
		assert.Equal(t, "b1", b.ID)
		assert.Equal(t, "12 Main St", b.DisplayAddress())
		assert.Equal(t, "N/A", b.DisplayRoofType())
		mRepo.AssertExpectations(t)
	})

	t.Run("name required", func(t *testing.T) {
		svc := NewBuildingService(nil)

		_, err := svc.Create(ctx, CreateBuildingInput{})

		assert.ErrorIs(t, err, ErrNameRequired)
	})
}

func TestBuildingService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		mRepo := new(repoMocks.MockBuildingRepository)
		svc := NewBuildingService(mRepo)
		mRepo.On("FindByID", ctx, "b1").Return(&model.Building{ID: "b1"}, nil)

		b, err := svc.Get(ctx, "b1")

		assert.NoError(t, err)
		assert.Equal(t, "b1", b.ID)
	})

	t.Run("not found", func(t *testing.T) {
		mRepo := new(repoMocks.MockBuildingRepository)
		svc := NewBuildingService(mRepo)
		mRepo.On("FindByID", ctx, "missing").Return(nil, sql.ErrNoRows)

		_, err := svc.Get(ctx, "missing")

		assert.ErrorIs(t, err, ErrBuildingNotFound)
	})

	t.Run("empty id", func(t *testing.T) {
		svc := NewBuildingService(nil)

		_, err := svc.Get(ctx, "")

		assert.ErrorIs(t, err, ErrBuildingNotFound)
	})
}

func TestBuildingService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		mRepo := new(repoMocks.MockBuildingRepository)
		svc := NewBuildingService(mRepo)
		mRepo.On("List", ctx, repository.PageQuery{Limit: 10, Offset: 0}).
			Return(&repository.PageResult[model.Building]{
				Items: []model.Building{{ID: "b1"}, {ID: "b2"}},
				Total: 2,
			}, nil)

		res, err := svc.List(ctx, 10, 0)

		require.NoError(t, err)
		assert.Len(t, res.Items, 2)
		assert.Equal(t, 2, res.Total)
	})

	t.Run("defaults applied", func(t *testing.T) {
		mRepo := new(repoMocks.MockBuildingRepository)
		svc := NewBuildingService(mRepo)
		mRepo.On("List", ctx, repository.PageQuery{Limit: 10, Offset: 0}).
			Return(&repository.PageResult[model.Building]{Items: []model.Building{}, Total: 0}, nil)

		_, err := svc.List(ctx, 0, -3)

		assert.NoError(t, err)
		mRepo.AssertExpectations(t)
	})

	t.Run("repository error", func(t *testing.T) {
		mRepo := new(repoMocks.MockBuildingRepository)
		svc := NewBuildingService(mRepo)
		mRepo.On("List", ctx, mock.Anything).Return(nil, errors.New("db fail"))

		_, err := svc.List(ctx, 10, 0)

		assert.Error(t, err)
	})
}
