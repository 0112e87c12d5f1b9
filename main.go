// Command catalog starts the specimen catalog admin API server.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/daksndt/catalog/config"
	"github.com/daksndt/catalog/internal/adminapi"
	"github.com/daksndt/catalog/internal/app"
	"github.com/daksndt/catalog/internal/webserver"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	cfile := flag.String("c", "catalog.yml", "config file")
	showVer := flag.Bool("v", false, "print version and exit")
	initDb := flag.Bool("initdb", false, "drop and recreate all tables, then exit")
	flag.Parse()

	if *showVer {
		fmt.Printf("catalog %s (%s)\n", version, buildDate)
		return
	}

	cfg := config.LoadConfig(*cfile)

	application := app.NewApplication(cfg)
	if err := application.Init(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "init failed: %v\n", err)
		os.Exit(1)
	}
	defer application.Release()

	if *initDb {
		application.InitDb()
		zap.S().Info("database initialized")
		return
	}

	server, err := webserver.Init(application)
	if err != nil {
		zap.S().Fatalf("webserver init failed: %v", err)
	}
	adminapi.Init()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Listen()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			zap.S().Errorf("shutdown error: %v", err)
		}
	case err := <-errCh:
		zap.S().Errorf("server error: %v", err)
		os.Exit(1)
	}

	zap.S().Info("shutdown complete")
}
