package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/Diaealaoui/agrimanager-sub000/internal/config"
	"github.com/Diaealaoui/agrimanager-sub000/internal/repository/mongodb"
	"github.com/Diaealaoui/agrimanager-sub000/internal/repository/sheets"
	"github.com/Diaealaoui/agrimanager-sub000/internal/scheduler"
	"github.com/Diaealaoui/agrimanager-sub000/internal/server/handlers"
	"github.com/Diaealaoui/agrimanager-sub000/internal/server/router"
	dashboardsvc "github.com/Diaealaoui/agrimanager-sub000/internal/service/dashboard"
	importersvc "github.com/Diaealaoui/agrimanager-sub000/internal/service/importer"
	inventorysvc "github.com/Diaealaoui/agrimanager-sub000/internal/service/inventory"
	orderssvc "github.com/Diaealaoui/agrimanager-sub000/internal/service/orders"
	"github.com/Diaealaoui/agrimanager-sub000/pkg/clients/notifier"
	"github.com/Diaealaoui/agrimanager-sub000/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	mongoClient, err := mongodb.NewClient(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb client", zap.Error(err))
	}
	defer func() {
		if err := mongoClient.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	purchaseRepo := mongodb.NewPurchaseRepository(mongoClient)
	productRepo := mongodb.NewProductRepository(mongoClient)
	treatmentRepo := mongodb.NewTreatmentRepository(mongoClient)
	parcelRepo := mongodb.NewParcelRepository(mongoClient)
	supplierRepo := mongodb.NewSupplierRepository(mongoClient)
	orderRepo := mongodb.NewOrderRepository(mongoClient)
	snapshotRepo := mongodb.NewSnapshotRepository(mongoClient)

	var notifierClient notifier.Client
	if cfg.Notifier.Enabled() {
		notifierClient = notifier.NewClient(cfg.Notifier)
		baseLogger.Info("outbound notifier enabled", zap.String("channel", cfg.Notifier.Channel))
	} else {
		baseLogger.Warn("notifier webhook not configured, outbound notifications disabled")
	}

	dashboardSvc := dashboardsvc.NewService(purchaseRepo, treatmentRepo, parcelRepo, productRepo, supplierRepo, cfg.Dashboard.TopN, baseLogger.Named("svc.dashboard"))
	inventorySvc := inventorysvc.NewService(purchaseRepo, productRepo, treatmentRepo, parcelRepo, supplierRepo, baseLogger.Named("svc.inventory"))
	ordersSvc := orderssvc.NewService(productRepo, purchaseRepo, orderRepo, notifierClient, baseLogger.Named("svc.orders"))

	var importSvc *importersvc.Service
	if cfg.Sheets.Enabled() {
		sheetsRepo, err := sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		importSvc = importersvc.NewService(sheetsRepo, purchaseRepo, baseLogger.Named("svc.importer"))
		baseLogger.Info("spreadsheet import enabled", zap.String("range", cfg.Sheets.PurchaseRange))
	} else {
		baseLogger.Warn("sheets credentials missing, spreadsheet import disabled")
	}

	statsHandler := handlers.NewStatsHandler(dashboardSvc, baseLogger.Named("handlers.stats"))
	inventoryHandler := handlers.NewInventoryHandler(inventorySvc, importSvc, cfg.Sheets.PurchaseRange, baseLogger.Named("handlers.inventory"))
	orderHandler := handlers.NewOrderHandler(ordersSvc, baseLogger.Named("handlers.orders"))
	engine := router.New(statsHandler, inventoryHandler, orderHandler, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(*cfg, dashboardSvc, snapshotRepo, notifierClient, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
