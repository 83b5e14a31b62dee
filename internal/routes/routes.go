// Package routes defines the API routing configuration. All services are
// constructed once here and handed to handlers by reference, so tests can
// swap any collaborator for a double.
package routes

import (
	"lirapay/internal/config"
	"lirapay/internal/handlers"
	"lirapay/internal/middleware"
	"lirapay/internal/repositories"
	"lirapay/internal/repositories/cache"
	"lirapay/internal/services/notification"
	"lirapay/internal/services/transfer"
	"lirapay/internal/services/wallet"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupRoutes wires repositories, services and handlers onto the app.
func SetupRoutes(app *fiber.App, db *gorm.DB, cacheService *cache.CacheService) {
	walletRepo := repositories.NewWalletRepository(db)
	txRepo := repositories.NewTransactionRepository(db)

	dispatcher := notification.NewDispatcher(notification.LogNotifier{})

	walletCfg := wallet.Config{
		LowBalanceCooldown: config.GetDurationEnv("LOW_BALANCE_COOLDOWN", wallet.DefaultLowBalanceCooldown),
		LockTimeout:        config.GetDurationEnv("WALLET_LOCK_TIMEOUT", wallet.DefaultLockTimeout),
	}
	walletService := wallet.NewService(walletRepo, txRepo, cacheService, dispatcher, walletCfg, nil)
	transferService := transfer.NewService(walletRepo, cacheService, dispatcher, walletCfg.LockTimeout)

	walletHandler := handlers.NewWalletHandler(walletService)
	transferHandler := handlers.NewTransferHandler(transferService)
	adminHandler := handlers.NewAdminHandler(walletService)
	healthHandler := handlers.NewHealthHandler(db, cacheService)

	auth := middleware.NewAuthMiddleware(config.GetEnv("JWT_SECRET", "lirapay"))

	app.Get("/health", healthHandler.Check)

	api := app.Group("/api", auth.Handler)

	w := api.Group("/wallet")
	w.Get("/balance", walletHandler.GetBalance)
	w.Get("/history", walletHandler.GetHistory)
	w.Get("/statistics", walletHandler.GetStatistics)
	w.Post("/topup", walletHandler.TopUp)
	w.Post("/pay", walletHandler.Pay)
	w.Put("/settings", walletHandler.UpdateSettings)

	api.Post("/transfer", transferHandler.Transfer)

	admin := api.Group("/admin", middleware.AdminOnly)
	admin.Get("/wallets", adminHandler.ListWallets)
	admin.Post("/wallets/:id/freeze", adminHandler.FreezeWallet)
	admin.Post("/wallets/:id/unfreeze", adminHandler.UnfreezeWallet)
	admin.Post("/wallet/refund", adminHandler.Refund)
	admin.Post("/wallet/bonus", adminHandler.Bonus)
}
