package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/orinoco-shop/orinoco/config"
	"github.com/orinoco-shop/orinoco/internal/adminapi"
	"github.com/orinoco-shop/orinoco/internal/app"
	"github.com/orinoco-shop/orinoco/internal/catalog"
	"github.com/orinoco-shop/orinoco/internal/ordering"
	"github.com/orinoco-shop/orinoco/internal/shopapi"
	"github.com/orinoco-shop/orinoco/internal/webserver"
)

var (
	showHelp = flag.Bool("h", false, "show help")
	debug    = flag.Bool("x", false, "enable debug mode")
	initDb   = flag.Bool("initdb", false, "drop and recreate the database schema, then exit")
	confFile = flag.String("c", "/etc/orinoco.yml", "configuration file")
)

func main() {
	flag.Parse()
	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	cfg := config.LoadConfig(*confFile)
	if *debug {
		cfg.System.Debug = true
	}

	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Release()

	if *initDb {
		application.InitDb()
		fmt.Println("database initialized")
		return
	}

	catalogRepo := catalog.NewGormRepository(application.DB())
	catalogSvc := catalog.NewService(catalogRepo)
	orderRepo := ordering.NewGormOrderRepository(application.DB())
	orderSvc := ordering.NewService(catalogRepo, orderRepo, application.SnowflakeNode())
	adminSvc := ordering.NewAdminService(orderRepo)

	webserver.Init(cfg, application.RateLimiter())
	shopapi.InitRouter(catalogSvc, orderSvc)
	adminapi.InitRouter(adminSvc)

	go func() {
		if err := webserver.Listen(); err != nil && err != http.ErrServerClosed {
			zap.S().Fatalf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.S().Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := webserver.Shutdown(ctx); err != nil {
		zap.S().Errorf("shutdown error: %v", err)
	}
}
