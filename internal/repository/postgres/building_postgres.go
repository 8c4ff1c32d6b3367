package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"roofapi/internal/model"
	"roofapi/internal/repository"
)

// BuildingPostgres is a PostgreSQL implementation of repository.BuildingRepository.
// Document metadata lives in a JSONB array column on the buildings row, so
// element-level add/remove is a single UPDATE and composes safely with
// concurrent mutations on the same building.
type BuildingPostgres struct {
	db *sql.DB
}

// NewBuildingPostgres creates a new BuildingPostgres repository.
func NewBuildingPostgres(db *sql.DB) *BuildingPostgres {
	return &BuildingPostgres{db: db}
}

var _ repository.BuildingRepository = (*BuildingPostgres)(nil)

// Create inserts a new building row and returns the stored record.
func (r *BuildingPostgres) Create(ctx context.Context, b *model.Building) (*model.Building, error) {
	docs, err := marshalDocuments(b.Documents)
	if err != nil {
		return nil, err
	}

	const q = `
		INSERT INTO buildings (id, name, address, roof_type, contact_name, documents, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, name, address, roof_type, contact_name, documents, created_at
	`
	row := r.db.QueryRowContext(ctx, q,
		b.ID,
		b.Name,
		b.Address,
		b.RoofType,
		b.ContactName,
		docs,
		b.CreatedAt,
	)
	return scanBuilding(row)
}

// FindByID fetches a single building by its ID.
func (r *BuildingPostgres) FindByID(ctx context.Context, id string) (*model.Building, error) {
	const q = `
		SELECT id, name, address, roof_type, contact_name, documents, created_at
		FROM buildings
		WHERE id = $1
	`
	return scanBuilding(r.db.QueryRowContext(ctx, q, id))
}

// List returns buildings using LIMIT/OFFSET pagination and a total count.
func (r *BuildingPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Building], error) {
	const qCount = `SELECT COUNT(*) FROM buildings`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT id, name, address, roof_type, contact_name, documents, created_at
		FROM buildings
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Building, 0)
	for rows.Next() {
		var (
			b    model.Building
			docs []byte
		)
		if err := rows.Scan(
			&b.ID,
			&b.Name,
			&b.Address,
			&b.RoofType,
			&b.ContactName,
			&docs,
			&b.CreatedAt,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(docs, &b.Documents); err != nil {
			return nil, fmt.Errorf("decode documents: %w", err)
		}
		items = append(items, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Building]{
		Items: items,
		Total: total,
	}, nil
}

// AppendDocument appends one metadata entry to the documents array. The
// length guard is part of the same UPDATE, so the count check cannot race
// with a concurrent append.
func (r *BuildingPostgres) AppendDocument(ctx context.Context, buildingID string, doc model.BuildingDocument, maxDocs int) error {
	entry, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	const q = `
		UPDATE buildings
		SET documents = documents || $2::jsonb
		WHERE id = $1 AND jsonb_array_length(documents) < $3
	`
	res, err := r.db.ExecContext(ctx, q, buildingID, entry, maxDocs)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	// No row updated: either the building is missing or the list is full.
	const qExists = `SELECT 1 FROM buildings WHERE id = $1`
	var one int
	if err := r.db.QueryRowContext(ctx, qExists, buildingID).Scan(&one); err != nil {
		return err // sql.ErrNoRows for a missing building
	}
	return repository.ErrDocumentLimit
}

// RemoveDocument rebuilds the documents array without the matched entry in a
// single UPDATE. Removing an id that is not present leaves the row unchanged.
func (r *BuildingPostgres) RemoveDocument(ctx context.Context, buildingID, documentID string) error {
	const q = `
		UPDATE buildings
		SET documents = (
			SELECT COALESCE(jsonb_agg(d), '[]'::jsonb)
			FROM jsonb_array_elements(documents) AS d
			WHERE d->>'id' <> $2
		)
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, q, buildingID, documentID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func marshalDocuments(docs []model.BuildingDocument) ([]byte, error) {
	if docs == nil {
		docs = []model.BuildingDocument{}
	}
	b, err := json.Marshal(docs)
	if err != nil {
		return nil, fmt.Errorf("encode documents: %w", err)
	}
	return b, nil
}

func scanBuilding(row *sql.Row) (*model.Building, error) {
	var (
		b    model.Building
		docs []byte
	)
	if err := row.Scan(
		&b.ID,
		&b.Name,
		&b.Address,
		&b.RoofType,
		&b.ContactName,
		&docs,
		&b.CreatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(docs, &b.Documents); err != nil {
		return nil, fmt.Errorf("decode documents: %w", err)
	}
	return &b, nil
}
