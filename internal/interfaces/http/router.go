package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dhavocats/cabinet-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Invoices       InvoiceService
	InvoicePDF     InvoicePDFService
	Matter         MatterService
	Clients        ClientService
	Users          UserService
	DB             Pinger
	ServiceName    string
	JWTSecret      string
	RequestTimeout time.Duration
}

// Router registra las rutas de la API bajo /api.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", RequestTimeout(deps.RequestTimeout))

	// Health (público)
	api.Get("/health", Health(deps.ServiceName, deps.DB))

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Invoices
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.Invoices, deps.InvoicePDF)
	invoices.Post("/generate", invoiceHandler.Generate)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/document/:documentId", invoiceHandler.ListByDocument)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Patch("/:id", invoiceHandler.Update)
	invoices.Patch("/:id/mark-paid", invoiceHandler.MarkPaid)
	invoices.Delete("/:id", invoiceHandler.Delete)
	invoices.Get("/:id/download-pdf", invoiceHandler.DownloadPDF)
	invoices.Get("/:id/preview-pdf", invoiceHandler.PreviewPDF)

	// Documents (dossiers)
	documents := protected.Group("/documents")
	documentHandler := NewDocumentHandler(deps.Matter)
	documents.Post("/", documentHandler.Create)
	documents.Get("/:id", documentHandler.GetByID)
	documents.Patch("/:id", documentHandler.Update)
	documents.Delete("/:id", documentHandler.Delete)

	// Lists, tasks y time entries
	taskHandler := NewTaskHandler(deps.Matter)
	lists := protected.Group("/lists")
	lists.Post("/", taskHandler.CreateList)
	lists.Patch("/:id/status", taskHandler.UpdateListStatus)

	tasks := protected.Group("/tasks")
	tasks.Post("/", taskHandler.CreateTask)
	tasks.Patch("/:id", taskHandler.UpdateTask)
	tasks.Patch("/:id/assign", taskHandler.AssignTask)
	tasks.Get("/:id/time-entries", taskHandler.ListTimeEntries)

	timeEntries := protected.Group("/time-entries")
	timeEntries.Post("/", taskHandler.CreateTimeEntry)
	timeEntries.Patch("/:id", taskHandler.UpdateTimeEntry)
	timeEntries.Delete("/:id", taskHandler.DeleteTimeEntry)

	// Clients
	clients := protected.Group("/clients")
	clientHandler := NewClientHandler(deps.Clients)
	clients.Post("/", clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Patch("/:id", clientHandler.Update)
	clients.Delete("/:id", clientHandler.Delete)

	// Users
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.Users)
	users.Post("/", RequireRole(entity.RoleAdmin), userHandler.Create)
	users.Get("/me", userHandler.Me)
	users.Get("/:id", userHandler.GetByID)
	users.Patch("/:id/billing-profile", RequireRole(entity.RoleAdmin), userHandler.UpdateBillingProfile)
}
