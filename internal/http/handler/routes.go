package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"doctrack/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app. Handlers stay
// minimal; business rules live in the service layer.
func RegisterRoutes(app *fiber.App, db *sql.DB, companySvc service.CompanyService, docSvc service.DocumentService) {
	// Readiness probe: checks DB connectivity only
	app.Get("/health", HealthCheck(db))

	// Simple liveness probe
	app.Get("/healthz", LivenessProbe())

	api := app.Group("/api")

	companies := api.Group("/companies")
	companies.Post("/", CreateCompany(companySvc))
	companies.Get("/", ListCompanies(companySvc))
	companies.Get("/:id", GetCompany(companySvc))
	companies.Put("/:id", UpdateCompany(companySvc))
	companies.Delete("/:id", DeleteCompany(companySvc))

	documents := api.Group("/documents")
	documents.Post("/upload/:companyId", UploadDocument(docSvc))
	documents.Get("/company/:companyId", ListCompanyDocuments(docSvc))
	documents.Get("/:id", GetDocument(docSvc))
	documents.Delete("/:id", DeleteDocument(docSvc))
	documents.Post("/:id/open", OpenDocument(docSvc))
	documents.Get("/:id/download", DownloadDocument(docSvc))
}
