// cmd/serve.go
package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/KARTHIKBM7/Market-Intelligence---Competitive-Pricing-Engine/handlers"
	"github.com/KARTHIKBM7/Market-Intelligence---Competitive-Pricing-Engine/services"
)

var scheduleEvery time.Duration

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the read-only price API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		store, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("failed to prepare price table: %w", err)
		}

		wg := &sync.WaitGroup{}
		if scheduleEvery > 0 {
			pipeline := newPipeline(store)
			wg.Add(1)
			go func() {
				defer wg.Done()
				services.RunScheduled(ctx, pipeline, cfg.Scraper.URL, scheduleEvery)
			}()
		}

		if os.Getenv("GIN_MODE") == "" {
			gin.SetMode(gin.ReleaseMode)
		}
		srv := &http.Server{
			Addr:    ":" + cfg.Server.Port,
			Handler: handlers.NewRouter(services.NewReportService(store)),
		}

		errCh := make(chan error, 1)
		go func() {
			log.Printf("Server starting on http://localhost:%s", cfg.Server.Port)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				errCh <- err
			}
		}()

		select {
		case <-ctx.Done():
			log.Println("Server: shutdown signal received")
		case err := <-errCh:
			return fmt.Errorf("server stopped: %w", err)
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("ERROR Server: shutdown: %v", err)
		}
		wg.Wait()

		log.Println("Server: graceful shutdown complete")
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "listen port (overrides PORT)")
	serveCmd.Flags().DurationVar(&scheduleEvery, "schedule", 0, "also run the scrape pipeline on this interval, e.g. 24h (0 disables)")
}
