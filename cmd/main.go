package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/yungbote/publisher-backend/internal/app"
)

func main() {
	a, err := app.New()
	if err != nil {
		fmt.Printf("Failed to init app: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(a.Run)
	g.Go(func() error {
		<-gctx.Done()
		a.Log.Info("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Cfg.ShutdownTimeout)
		defer cancel()
		return a.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		a.Log.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}
