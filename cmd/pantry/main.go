// Pantry: household food inventory, shopping list and weekly meal planner
// with LLM-drafted recipes, in the terminal.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mrazikpato/AI-Food-Inventory-Meal-Planner/internal/cli"
)

// Build information (set via ldflags)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// Setup context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		slog.Info("received shutdown signal", "signal", sig)
		cancel()

		// Force exit after timeout
		time.AfterFunc(10*time.Second, func() {
			slog.Error("forced shutdown after timeout")
			os.Exit(1)
		})
	}()

	root := cli.NewRootCmd(cli.BuildInfo{Version: Version, BuildTime: BuildTime})
	if err := root.ExecuteContext(ctx); err != nil {
		slog.Error("application error", "error", err)
		fmt.Fprintln(os.Stderr, "pantry:", err)
		os.Exit(1)
	}
}
