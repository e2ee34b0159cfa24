package main

import (
	"context"
	"log/slog"
	"net/http"
	_ "net/http/pprof" // profiling
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload" // automatically load .env files

	"github.com/yumosx/recycler/internal/cmd"
	"github.com/yumosx/recycler/internal/log"
)

const profileAddr = "localhost:6060"

func main() {
	defer log.RecoverPanic("main", func() {
		slog.Error("Application terminated due to unhandled panic")
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	if os.Getenv("RECYCLER_PROFILE") != "" {
		go serveProfile()
	}

	cmd.Execute(ctx)
}

func serveProfile() {
	defer log.RecoverPanic("pprof", nil)
	slog.Info("Serving pprof", "addr", profileAddr)
	if err := http.ListenAndServe(profileAddr, nil); err != nil {
		slog.Error("Failed to serve pprof", "error", err)
	}
}
