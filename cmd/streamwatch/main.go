// streamwatch connects to a dashboard stream and prints decoded
// messages to the console.
//
// Usage: go run ./cmd/streamwatch -origin https://app.folio.dev
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rmoran/folio-data/internal/endpoints"
	"github.com/rmoran/folio-data/internal/stream"
	"github.com/rmoran/folio-data/internal/version"
)

func main() {
	endpoint := flag.String("endpoint", endpoints.Stream, "stream endpoint (ws(s) URL or path)")
	origin := flag.String("origin", "https://app.folio.dev", "origin used to resolve path endpoints")
	verbose := flag.Bool("verbose", false, "print full message JSON")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	logger.Info("starting streamwatch", "version", version.Version)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal")
		cancel()
	}()

	client := stream.NewClient(stream.Config{
		Endpoint:     *endpoint,
		Origin:       *origin,
		PingInterval: 30 * time.Second,
	}, logger)
	defer client.Close()

	unsubscribe := client.OnMessage(func(payload any) {
		if *verbose {
			data, _ := json.MarshalIndent(payload, "", "  ")
			fmt.Printf("[MSG] %s\n", data)
			return
		}
		switch v := payload.(type) {
		case map[string]any:
			kind, _ := v["type"].(string)
			fmt.Printf("[MSG] type=%s fields=%d\n", kind, len(v))
		case string:
			fmt.Printf("[RAW] %s\n", v)
		default:
			fmt.Printf("[MSG] %v\n", v)
		}
	})
	defer unsubscribe()

	client.Connect(ctx)

	// Status printer
	go func() {
		ticker := time.NewTicker(10 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				st := client.Status()
				logger.Info("status", "state", st.State, "error", st.Err)
			}
		}
	}()

	logger.Info("streaming started - press Ctrl+C to stop")

	<-ctx.Done()

	client.Disconnect()
	logger.Info("shutdown complete")
}
