package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Trazabilidad-api/internal/application/auth"
	"github.com/jhoicas/Trazabilidad-api/internal/application/boxes"
	"github.com/jhoicas/Trazabilidad-api/internal/application/facility"
	"github.com/jhoicas/Trazabilidad-api/internal/application/stock"
	"github.com/jhoicas/Trazabilidad-api/internal/application/transfer"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	TransferUC *transfer.UseCase
	StockUC    *stock.UseCase
	BoxUC      *boxes.UseCase
	FacilityUC *facility.UseCase
	AuthUC     *auth.UseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Transfers: el motor de transferencias valida rol e instalación por
	// operación (tabla de políticas); el middleware solo exige identidad.
	transfers := protected.Group("/transfers")
	transferHandler := NewTransferHandler(deps.TransferUC)
	transfers.Post("/generate", transferHandler.GenerateBoxes)
	transfers.Post("/warehouse-receive", transferHandler.WarehouseReceive)
	transfers.Post("/dispatch", transferHandler.Dispatch)
	transfers.Post("/facility-receive", transferHandler.FacilityReceive)
	transfers.Post("/dispense", transferHandler.Dispense)

	// Boxes (protegido, solo lectura)
	boxHandler := NewBoxHandler(deps.BoxUC)
	protected.Get("/boxes/:box_uid", boxHandler.GetByUID)

	// Stock (protegido, solo lectura)
	stockHandler := NewStockHandler(deps.StockUC)
	protected.Get("/stock/facility/:facility_id", stockHandler.FacilityStock)

	// Facilities (protegido; mutaciones solo admin)
	facilities := protected.Group("/facilities")
	facilityHandler := NewFacilityHandler(deps.FacilityUC)
	facilities.Get("/", facilityHandler.List)
	facilities.Get("/:id", facilityHandler.GetByIDOrCode)
	facilities.Get("/:id/facilities", facilityHandler.ListOfWarehouse)
	facilities.Post("/", RequireRole(entity.RoleAdmin), facilityHandler.Create)
	facilities.Put("/link-warehouse", RequireRole(entity.RoleAdmin), facilityHandler.BulkLinkWarehouse)
	facilities.Put("/:id/warehouse", RequireRole(entity.RoleAdmin), facilityHandler.LinkWarehouse)

	// Admin: ajuste y reset
	admin := protected.Group("/admin", RequireRole(entity.RoleAdmin))
	admin.Post("/boxes/:box_uid/void", transferHandler.VoidBox)
	admin.Delete("/orders/:order_number/boxes", transferHandler.PurgeOrder)
}
