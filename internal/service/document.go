package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"roofapi/internal/model"
	"roofapi/internal/repository"
	"roofapi/internal/storage"
)

var tracer = otel.Tracer("roofapi/internal/service")

var (
	ErrBuildingNotFound = errors.New("building not found")
	ErrDocumentNotFound = errors.New("document not found")
	ErrReaderNil        = errors.New("reader is nil")

	// ErrStorageWrite and ErrMetadataWrite classify infrastructure failures so
	// callers can tell them apart from validation failures.
	ErrStorageWrite  = errors.New("storage write failed")
	ErrMetadataWrite = errors.New("metadata write failed")
)

// DocumentService manages the attachment lifecycle for building documents:
// policy validation, blob storage and the metadata list on the building row.
type DocumentService interface {
	// Validate checks a candidate file against the attachment policy for a
	// building. No side effects; all violations are reported together.
	Validate(ctx context.Context, buildingID string, file FileInfo) (ValidationResult, error)

	// Upload validates the file, writes its content to object storage under
	// the deterministic building/document key and appends the metadata entry
	// to the building. Nothing is written for a file that fails validation.
	Upload(ctx context.Context, buildingID string, r io.Reader, file FileInfo, uploadedBy string) (*model.BuildingDocument, error)

	// Delete removes the blob first, then the metadata entry. Deleting an
	// already-deleted document is a no-op.
	Delete(ctx context.Context, buildingID, documentID string) error

	// DownloadURL returns a presigned URL for the document's blob.
	DownloadURL(ctx context.Context, buildingID, documentID string) (string, error)

	// Download streams the document's content from object storage. The caller
	// must close the returned reader.
	Download(ctx context.Context, buildingID, documentID string) (io.ReadCloser, *model.BuildingDocument, error)
}

// documentService is a concrete implementation of DocumentService.
type documentService struct {
	store         storage.Storage
	repo          repository.BuildingRepository
	presignExpiry time.Duration
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(store storage.Storage, repo repository.BuildingRepository, presignExpiry time.Duration) DocumentService {
	if presignExpiry <= 0 {
		presignExpiry = 15 * time.Minute
	}
	return &documentService{store: store, repo: repo, presignExpiry: presignExpiry}
}

func (s *documentService) Validate(ctx context.Context, buildingID string, file FileInfo) (ValidationResult, error) {
	b, err := s.findBuilding(ctx, buildingID)
	if err != nil {
		return ValidationResult{}, err
	}
	return Validate(file, len(b.Documents)), nil
}

func (s *documentService) Upload(ctx context.Context, buildingID string, r io.Reader, file FileInfo, uploadedBy string) (*model.BuildingDocument, error) {
	if r == nil {
		return nil, ErrReaderNil
	}

	ctx, span := tracer.Start(ctx, "document.upload",
		trace.WithAttributes(attribute.String("building.id", buildingID)))
	defer span.End()

	b, err := s.findBuilding(ctx, buildingID)
	if err != nil {
		return nil, err
	}

	// Re-check the policy against the freshly read count. The repository's
	// conditional append still guards the limit against concurrent uploads.
	if res := Validate(file, len(b.Documents)); !res.Valid {
		return nil, &ValidationFailedError{Result: res}
	}

	id := uuid.New().String()
	key := StorageKey(buildingID, id, file.Name)

	if _, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        file.Size,
		ContentType: file.ContentType,
		Metadata: map[string]string{
			"original-filename": file.Name,
			"uploaded-by":       uploadedBy,
		},
	}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageWrite, err)
	}

	doc := model.BuildingDocument{
		ID:          id,
		FileName:    file.Name,
		FileSize:    file.Size,
		FileType:    file.ContentType,
		StoragePath: key,
		UploadedAt:  time.Now().UTC(),
		UploadedBy:  uploadedBy,
	}
	if err := s.repo.AppendDocument(ctx, buildingID, doc, MaxDocumentsPerBuilding); err != nil {
		// The blob is orphaned now. There is no rollback at this layer; log
		// the key so the object can be reclaimed out of band.
		logOrphanedBlob(key, err)
		span.RecordError(err, trace.WithAttributes(attribute.String("storage.key", key)))
		if errors.Is(err, repository.ErrDocumentLimit) {
			return nil, &ValidationFailedError{Result: ValidationResult{Issues: []ValidationIssue{IssueLimitExceeded}}}
		}
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBuildingNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrMetadataWrite, err)
	}

	return &doc, nil
}

func (s *documentService) Delete(ctx context.Context, buildingID, documentID string) error {
	if documentID == "" {
		return ErrDocumentNotFound
	}

	ctx, span := tracer.Start(ctx, "document.delete",
		trace.WithAttributes(
			attribute.String("building.id", buildingID),
			attribute.String("document.id", documentID),
		))
	defer span.End()

	b, err := s.findBuilding(ctx, buildingID)
	if err != nil {
		return err
	}

	doc, ok := b.DocumentByID(documentID)
	if !ok {
		// Already gone; delete stays idempotent.
		return nil
	}

	// Blob first: a crash here leaves a dangling metadata entry, which is
	// detectable on the next download, rather than an untracked blob.
	if err := s.store.Delete(ctx, doc.StoragePath); err != nil {
		return fmt.Errorf("delete storage: %w", err)
	}

	if err := s.repo.RemoveDocument(ctx, buildingID, documentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrBuildingNotFound
		}
		return fmt.Errorf("%w: %v", ErrMetadataWrite, err)
	}
	return nil
}

func (s *documentService) DownloadURL(ctx context.Context, buildingID, documentID string) (string, error) {
	ctx, span := tracer.Start(ctx, "document.download_url",
		trace.WithAttributes(
			attribute.String("building.id", buildingID),
			attribute.String("document.id", documentID),
		))
	defer span.End()

	b, err := s.findBuilding(ctx, buildingID)
	if err != nil {
		return "", err
	}

	doc, ok := b.DocumentByID(documentID)
	if !ok {
		return "", ErrDocumentNotFound
	}

	u, err := s.store.PresignGet(ctx, doc.StoragePath, s.presignExpiry)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// Dangling metadata: the blob is gone but the entry survived.
			return "", ErrDocumentNotFound
		}
		return "", fmt.Errorf("presign download: %w", err)
	}
	return u, nil
}

func (s *documentService) Download(ctx context.Context, buildingID, documentID string) (io.ReadCloser, *model.BuildingDocument, error) {
	b, err := s.findBuilding(ctx, buildingID)
	if err != nil {
		return nil, nil, err
	}

	doc, ok := b.DocumentByID(documentID)
	if !ok {
		return nil, nil, ErrDocumentNotFound
	}

	rc, _, err := s.store.Get(ctx, doc.StoragePath)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, ErrDocumentNotFound
		}
		return nil, nil, fmt.Errorf("get storage: %w", err)
	}
	return rc, &doc, nil
}

func (s *documentService) findBuilding(ctx context.Context, buildingID string) (*model.Building, error) {
	if buildingID == "" {
		return nil, ErrBuildingNotFound
	}
	b, err := s.repo.FindByID(ctx, buildingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBuildingNotFound
		}
		return nil, err
	}
	return b, nil
}

func logOrphanedBlob(key string, cause error) {
	entry := map[string]any{
		"ts":           time.Now().UTC().Format(time.RFC3339Nano),
		"level":        "warn",
		"msg":          "orphaned_blob",
		"storage_path": key,
		"error":        cause.Error(),
	}
	if b, err := json.Marshal(entry); err == nil {
		log.SetFlags(0)
		log.Println(string(b))
	}
}
