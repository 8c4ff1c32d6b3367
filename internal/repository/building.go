package repository

import (
	"context"
	"errors"

	"roofapi/internal/model"
)

// ErrDocumentLimit is returned by AppendDocument when the building already
// holds the maximum number of documents. The check and the append are one
// conditional write, so concurrent uploads cannot push a building past the
// limit.
var ErrDocumentLimit = errors.New("document limit reached")

// BuildingRepository defines data access for buildings and their attached
// document metadata. No business logic here — strictly persistence operations.
type BuildingRepository interface {
	// Create inserts a new building record and returns the stored row.
	Create(ctx context.Context, b *model.Building) (*model.Building, error)

	// FindByID returns a building by its ID, including its documents list
	// in upload order.
	FindByID(ctx context.Context, id string) (*model.Building, error)

	// List returns a paginated list of buildings and the total row count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Building], error)

	// AppendDocument atomically appends a document entry to the building's
	// list, conditional on the list holding fewer than maxDocs entries.
	// Returns sql.ErrNoRows when the building does not exist and
	// ErrDocumentLimit when the list is full.
	AppendDocument(ctx context.Context, buildingID string, doc model.BuildingDocument, maxDocs int) error

	// RemoveDocument atomically removes the entry with the given document ID
	// from the building's list. Removing an absent entry is a no-op.
	// Returns sql.ErrNoRows when the building does not exist.
	RemoveDocument(ctx context.Context, buildingID, documentID string) error
}

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}
