package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tradein/cmd"
	tradeinhttp "tradein/internal/adapters/in/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	config, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	gormDB, err := gorm.Open(postgres.Open(config.DatabaseDSN), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	root, err := cmd.NewCompositionRoot(config, gormDB)
	if err != nil {
		log.Fatalf("Error building application: %v", err)
	}

	server, err := buildServer(root)
	if err != nil {
		log.Fatalf("Error building HTTP server: %v", err)
	}

	jobManager, err := root.CreateJobManager()
	if err != nil {
		log.Fatalf("Error building jobs: %v", err)
	}
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	server.RegisterRoutes(e)

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", config.HTTPPort)); err != nil && err != http.ErrServerClosed {
			root.Logger().Error("http server stopped", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	root.Logger().Info("shutting down")
	jobManager.StopAll()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		root.Logger().Error("shutdown failed", "error", err)
	}
}

func buildServer(root *cmd.CompositionRoot) (*tradeinhttp.Server, error) {
	createOrder, err := root.CreateCreateOrderCommandHandler()
	if err != nil {
		return nil, err
	}
	markKitSent, err := root.CreateMarkKitSentCommandHandler()
	if err != nil {
		return nil, err
	}
	markReceived, err := root.CreateMarkReceivedCommandHandler()
	if err != nil {
		return nil, err
	}
	markInspected, err := root.CreateMarkInspectedCommandHandler()
	if err != nil {
		return nil, err
	}
	completeOrder, err := root.CreateCompleteOrderCommandHandler()
	if err != nil {
		return nil, err
	}
	proposeReOffer, err := root.CreateProposeReOfferCommandHandler()
	if err != nil {
		return nil, err
	}
	resolveReOffer, err := root.CreateResolveReOfferCommandHandler()
	if err != nil {
		return nil, err
	}
	finalizeAutoRequote, err := root.CreateFinalizeAutoRequoteCommandHandler()
	if err != nil {
		return nil, err
	}
	generateReturnLabel, err := root.CreateGenerateReturnLabelCommandHandler()
	if err != nil {
		return nil, err
	}
	cancelOrder, err := root.CreateCancelOrderCommandHandler()
	if err != nil {
		return nil, err
	}
	syncTracking, err := root.CreateSyncTrackingCommandHandler()
	if err != nil {
		return nil, err
	}

	return tradeinhttp.NewServer(
		createOrder,
		markKitSent,
		markReceived,
		markInspected,
		completeOrder,
		proposeReOffer,
		resolveReOffer,
		finalizeAutoRequote,
		generateReturnLabel,
		cancelOrder,
		syncTracking,
		root.CreateGetCustomerOrdersQueryHandler(),
		root.OrderWriter(),
	), nil
}
