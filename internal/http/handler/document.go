package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"roofapi/internal/service"
)

// ActingUserHeader carries the authenticated principal's ID. Authentication
// and authorization happen upstream; this layer only records who acted.
const ActingUserHeader = "X-User-ID"

// UploadBuildingDocument attaches a file to a building
// (multipart/form-data, field name: file).
func UploadBuildingDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		buildingID := c.Params("id")
		if _, err := uuid.Parse(buildingID); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		userID := c.Get(ActingUserHeader)
		if userID == "" {
			return writeError(c, fiber.StatusBadRequest, "USER_REQUIRED", "acting user is required")
		}

		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		doc, err := svc.Upload(c.UserContext(), buildingID, f, service.FileInfo{
			Name:        fh.Filename,
			Size:        fh.Size,
			ContentType: ct,
		}, userID)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(doc)
	}
}

// ValidateBuildingDocument is a side-effect-free pre-check so the UI can show
// every policy violation before sending any bytes.
func ValidateBuildingDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		buildingID := c.Params("id")
		if _, err := uuid.Parse(buildingID); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		var file service.FileInfo
		if err := c.BodyParser(&file); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		res, err := svc.Validate(c.UserContext(), buildingID, file)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// DeleteBuildingDocument removes a document's blob and metadata entry.
// Deleting an already-deleted document succeeds.
func DeleteBuildingDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		buildingID := c.Params("id")
		docID := c.Params("docId")
		if _, err := uuid.Parse(buildingID); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if _, err := uuid.Parse(docID); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		if err := svc.Delete(c.UserContext(), buildingID, docID); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// GetBuildingDocumentContent streams the document bytes directly, for clients
// that cannot follow a presigned URL.
func GetBuildingDocumentContent(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		buildingID := c.Params("id")
		docID := c.Params("docId")
		if _, err := uuid.Parse(buildingID); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if _, err := uuid.Parse(docID); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		rc, doc, err := svc.Download(c.UserContext(), buildingID, docID)
		if err != nil {
			return writeServiceError(c, err)
		}

		c.Set(fiber.HeaderContentType, doc.FileType)
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+doc.FileName+`"`)
		return c.SendStream(rc, int(doc.FileSize))
	}
}

// DownloadBuildingDocument returns a presigned URL for the document's blob.
func DownloadBuildingDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		buildingID := c.Params("id")
		docID := c.Params("docId")
		if _, err := uuid.Parse(buildingID); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if _, err := uuid.Parse(docID); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		u, err := svc.DownloadURL(c.UserContext(), buildingID, docID)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"url": u})
	}
}
