package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"filearray/internal/model"
	"filearray/internal/service"
	"filearray/internal/storage"
	"filearray/internal/upload"
)

// Admin bundles what the admin routes of one record kind need.
type Admin struct {
	Service service.ArrayService
	Adapter *upload.Adapter
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Every kind gets its own /admin/<kind> group; unknown kinds fall through to 404.
func RegisterRoutes(app *fiber.App, db *sql.DB, store storage.Storage, admins map[model.Kind]Admin, log *zap.Logger) {
	log = orNop(log)

	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	for kind, a := range admins {
		g := app.Group("/admin/" + string(kind))
		g.Get("/field", FieldDescriptor(a.Adapter))
		g.Get("/", ListRecords(a.Service))
		g.Post("/", SaveRecord(a.Service, a.Adapter, log))
		g.Get("/:id", GetRecord(a.Service, store, log))
		g.Post("/:id", SaveRecord(a.Service, a.Adapter, log))
		g.Get("/:id/files/:index", DownloadFile(a.Service, store, log))
		g.Delete("/:id", DeleteRecord(a.Service, log))
	}
}
