// services/scheduler.go
package services

import (
	"context"
	"log"
	"time"
)

// RunScheduled runs the pipeline once immediately and then every interval until
// ctx is cancelled. A failed run is logged and the next tick tries again.
func RunScheduled(ctx context.Context, pipeline *PipelineService, pageURL string, interval time.Duration) {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Printf("Service: scheduler started, interval %v", interval)
	runOnce(ctx, pipeline, pageURL)

	for {
		select {
		case <-ctx.Done():
			log.Println("Service: scheduler stopping, context cancelled")
			return
		case <-ticker.C:
			runOnce(ctx, pipeline, pageURL)
		}
	}
}

func runOnce(ctx context.Context, pipeline *PipelineService, pageURL string) {
	if _, err := pipeline.Run(ctx, pageURL); err != nil {
		log.Printf("ERROR Service: scheduled run failed: %v", err)
	}
}
