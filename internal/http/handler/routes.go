package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"roofapi/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay thin; business rules live in the services.
func RegisterRoutes(app *fiber.App, db *sql.DB, buildingSvc service.BuildingService, docSvc service.DocumentService) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	app.Post("/buildings", CreateBuilding(buildingSvc))
	app.Get("/buildings", ListBuildings(buildingSvc))
	app.Get("/buildings/:id", GetBuilding(buildingSvc))

	app.Post("/buildings/:id/documents", UploadBuildingDocument(docSvc))
	app.Post("/buildings/:id/documents/validate", ValidateBuildingDocument(docSvc))
	app.Delete("/buildings/:id/documents/:docId", DeleteBuildingDocument(docSvc))
	app.Get("/buildings/:id/documents/:docId/download", DownloadBuildingDocument(docSvc))
	app.Get("/buildings/:id/documents/:docId/content", GetBuildingDocumentContent(docSvc))
}
