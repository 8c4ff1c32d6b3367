package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"roofapi/internal/model"
	"roofapi/internal/repository"
)

var ErrNameRequired = errors.New("name is required")

// BuildingListResult is the service-level DTO for paginated buildings.
type BuildingListResult struct {
	Items []model.Building `json:"data"`
	Total int              `json:"total"`
}

// CreateBuildingInput carries the client-supplied fields for a new building.
// Optional fields stay nil when the client omits them.
type CreateBuildingInput struct {
	Name        string  `json:"name"`
	Address     *string `json:"address,omitempty"`
	RoofType    *string `json:"roof_type,omitempty"`
	ContactName *string `json:"contact_name,omitempty"`
}

// BuildingService defines the use cases for managing buildings.
type BuildingService interface {
	// Create stores a new building with an empty documents list.
	Create(ctx context.Context, in CreateBuildingInput) (*model.Building, error)

	// Get returns a single building by its ID.
	Get(ctx context.Context, id string) (*model.Building, error)

	// List returns buildings using limit/offset and a total count.
	List(ctx context.Context, limit, offset int) (*BuildingListResult, error)
}

type buildingService struct {
	repo repository.BuildingRepository
}

// NewBuildingService constructs a new BuildingService.
func NewBuildingService(repo repository.BuildingRepository) BuildingService {
	return &buildingService{repo: repo}
}

func (s *buildingService) Create(ctx context.Context, in CreateBuildingInput) (*model.Building, error) {
	if in.Name == "" {
		return nil, ErrNameRequired
	}
	b := &model.Building{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Address:     in.Address,
		RoofType:    in.RoofType,
		ContactName: in.ContactName,
		Documents:   []model.BuildingDocument{},
		CreatedAt:   time.Now().UTC(),
	}
	return s.repo.Create(ctx, b)
}

func (s *buildingService) Get(ctx context.Context, id string) (*model.Building, error) {
	if id == "" {
		return nil, ErrBuildingNotFound
	}
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBuildingNotFound
		}
		return nil, err
	}
	return b, nil
}

func (s *buildingService) List(ctx context.Context, limit, offset int) (*BuildingListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &BuildingListResult{Items: res.Items, Total: res.Total}, nil
}
