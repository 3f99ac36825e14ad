package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/backoffice-api/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Suppliers    SupplierService
	Arrivals     ArrivalService
	Receipts     ReceiptService
	Debts        DebtService
	CashRegister CashRegisterService
	Availability AvailabilityService
	SerialCheck  SerialCheckService
	JWTSecret    string
	JWTIssuer    string
}

// Router registra las rutas de la API. Todo /api requiere Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))

	anyRole := RequireRole(jwt.RoleAdmin, jwt.RoleStorekeeper, jwt.RoleSeller)
	warehouse := RequireRole(jwt.RoleAdmin, jwt.RoleStorekeeper)
	sales := RequireRole(jwt.RoleAdmin, jwt.RoleSeller)
	adminOnly := RequireRole(jwt.RoleAdmin)

	suppliers := api.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.Suppliers)
	suppliers.Get("/", anyRole, supplierHandler.List)
	suppliers.Get("/:id", anyRole, supplierHandler.GetByID)
	suppliers.Post("/", warehouse, supplierHandler.Create)
	suppliers.Put("/:id", warehouse, supplierHandler.Update)
	suppliers.Delete("/:id", adminOnly, supplierHandler.Delete)

	arrivals := api.Group("/arrivals")
	arrivalHandler := NewArrivalHandler(deps.Arrivals)
	arrivals.Get("/", warehouse, arrivalHandler.List)
	arrivals.Get("/:id", warehouse, arrivalHandler.GetByID)
	arrivals.Post("/", warehouse, arrivalHandler.Create)
	arrivals.Delete("/:id", warehouse, arrivalHandler.Delete)

	receipts := api.Group("/receipts")
	receiptHandler := NewReceiptHandler(deps.Receipts)
	receipts.Get("/", sales, receiptHandler.List)
	receipts.Get("/:id", sales, receiptHandler.GetByID)
	receipts.Post("/", sales, receiptHandler.Create)
	receipts.Post("/:id/complete", sales, receiptHandler.Complete)
	receipts.Post("/:id/cancel", sales, receiptHandler.Cancel)

	debts := api.Group("/debts", adminOnly)
	debtHandler := NewDebtHandler(deps.Debts)
	debts.Get("/", debtHandler.List)
	debts.Get("/:id", debtHandler.GetByID)
	debts.Post("/", debtHandler.Create)
	debts.Post("/:id/payments", debtHandler.Pay)
	debts.Delete("/:id", debtHandler.Delete)

	cash := api.Group("/cash-register", adminOnly)
	cashHandler := NewCashRegisterHandler(deps.CashRegister)
	cash.Get("/entries", cashHandler.Entries)
	cash.Get("/summary", cashHandler.Summary)

	stock := api.Group("/stock", anyRole)
	stockHandler := NewStockHandler(deps.Availability, deps.SerialCheck)
	stock.Get("/available", stockHandler.Available)
	stock.Post("/serials/check", warehouse, stockHandler.CheckSerials)
}
