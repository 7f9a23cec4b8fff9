package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pandastore/facturacion/internal/application/auth"
	"github.com/pandastore/facturacion/internal/application/billing"
	"github.com/pandastore/facturacion/internal/application/dto"
	"github.com/pandastore/facturacion/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	CatalogUC *usecase.CatalogUseCase
	AIUC      *usecase.AIUseCase
	RenderUC  *billing.RenderUseCase
	DraftUC   *billing.DraftUseCase
	JWTSecret string
	Health    dto.HealthResponse
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(deps.Health)
	})

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	protected.Get("/catalog", catalogHandler.List)
	protected.Get("/catalog/:id", catalogHandler.GetByID)

	aiHandler := NewAIHandler(deps.AIUC)
	protected.Post("/ai/extract-client", aiHandler.ExtractClient)

	invoiceHandler := NewInvoiceHandler(deps.RenderUC)
	protected.Post("/invoices/pdf", invoiceHandler.RenderPDF)

	// Borradores
	drafts := protected.Group("/drafts")
	draftHandler := NewDraftHandler(deps.DraftUC)
	drafts.Post("/", draftHandler.Create)
	drafts.Get("/:id", draftHandler.Get)
	drafts.Delete("/:id", draftHandler.Delete)
	drafts.Put("/:id/client", draftHandler.UpdateClient)
	drafts.Post("/:id/client/extract", draftHandler.ExtractClient)
	drafts.Post("/:id/items", draftHandler.AddItem)
	drafts.Delete("/:id/items/:index", draftHandler.RemoveItem)
	drafts.Put("/:id/totals", draftHandler.UpdateTotals)
	drafts.Post("/:id/pdf", draftHandler.RenderPDF)
	drafts.Post("/:id/label", draftHandler.Label)
}
