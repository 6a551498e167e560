package router

import (
	"github.com/vjchen03/hsa/internal/config"
	"github.com/vjchen03/hsa/internal/handler"
	"github.com/vjchen03/hsa/internal/ledger"
	"github.com/vjchen03/hsa/internal/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures the gin engine and the API route table.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Audit(db))

	svc := ledger.New(db)

	// ====== API ======
	api := r.Group("/api")

	accountHandler := handler.NewAccountHandler(svc)
	api.POST("/register", accountHandler.Register)
	api.POST("/deposit", accountHandler.Deposit)
	api.POST("/cards", accountHandler.IssueCard)

	purchaseHandler := handler.NewPurchaseHandler(svc)
	api.POST("/purchases", purchaseHandler.Purchase)

	overviewHandler := handler.NewOverviewHandler(svc, cfg.App.TxnPageSize)
	api.GET("/overview", overviewHandler.Overview)
	api.GET("/transactions", overviewHandler.Transactions)

	exportHandler := handler.NewExportHandler(svc, db)
	api.GET("/transactions/export/csv", exportHandler.ExportCSV)
	api.GET("/transactions/export/xlsx", exportHandler.ExportXLSX)

	statsHandler := handler.NewStatsHandler(svc, db)
	api.GET("/stats/categories", statsHandler.CategoryStats)

	return r
}
