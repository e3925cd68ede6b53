// cmd/api/main.go

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"

	"github.com/Roach1197/The-Radar/internal/adapter/gtrends"
	"github.com/Roach1197/The-Radar/internal/adapter/reddit"
	sentimentAdapter "github.com/Roach1197/The-Radar/internal/adapter/sentiment"
	translateAdapter "github.com/Roach1197/The-Radar/internal/adapter/translate"
	twitterAdapter "github.com/Roach1197/The-Radar/internal/adapter/twitter"
	"github.com/Roach1197/The-Radar/internal/alert"
	"github.com/Roach1197/The-Radar/internal/cache"
	"github.com/Roach1197/The-Radar/internal/config"
	"github.com/Roach1197/The-Radar/internal/domain/radar"
	"github.com/Roach1197/The-Radar/internal/server"
	"github.com/Roach1197/The-Radar/internal/service/sweep"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found or error loading it. Using environment variables.")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Initialize source adapters
	redditClient := reddit.New(nil, cfg.Reddit.BaseURL)
	twitterClient := twitterAdapter.New(cfg.Twitter.BearerToken, cfg.Twitter.Host)
	trendsClient := gtrends.New(nil, cfg.Trends.BaseURL)
	translator := translateAdapter.New(nil, cfg.Translate.BaseURL, cfg.Translate.Target)
	sentimentClient := sentimentAdapter.New(nil, cfg.Sentiment.BaseURL)

	// Initialize caches
	trendCache := cache.New[radar.TrendSignal](cfg.Cache.TrendTTL, nil)
	discussionCache := cache.New[[]radar.Opportunity](cfg.Cache.DiscussionTTL, nil)

	// Initialize fetchers and pipeline
	trendFetcher := sweep.NewTrendFetcher(trendsClient, trendCache)
	discussionFetcher := sweep.NewDiscussionFetcher(
		redditClient,
		twitterClient,
		translator,
		sentimentClient,
		discussionCache,
		sweep.DiscussionFetcherConfig{
			FetchLimit:     cfg.Radar.FetchLimit,
			ItemsPerSecond: cfg.Radar.ItemsPerSecond,
		},
	)
	pipeline := sweep.NewPipeline(trendFetcher, discussionFetcher, nil)

	// Initialize opportunity alerting
	var natsConn *nats.Conn
	if cfg.Alerts.Enabled {
		natsConn, err = initNATS(cfg.Alerts)
		if err != nil {
			log.Fatalf("Failed to connect to NATS: %v", err)
		}
		defer natsConn.Close()

		publisher := alert.NewPublisher(natsConn, cfg.Alerts.Subject, cfg.Alerts.MinScore)
		discussionFetcher.RegisterOpportunityHandler(publisher.Publish)
	}

	// Initialize HTTP server
	httpServer := server.NewServer(cfg.Server, cfg.Alerts.Subject, pipeline, natsConn)

	// Start HTTP server
	go func() {
		log.Printf("Starting HTTP server on %s:%d", cfg.Server.Host, cfg.Server.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-shutdown
	log.Println("Shutdown signal received")

	// Create shutdown context with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	// Graceful shutdown
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	log.Println("Shutdown complete")
}

// Initialize NATS connection
func initNATS(cfg config.AlertsConfig) (*nats.Conn, error) {
	options := []nats.Option{
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.Timeout(cfg.ConnectTimeout),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Printf("NATS disconnected: %v", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Printf("NATS reconnected to %s", nc.ConnectedUrl())
		}),
	}

	return nats.Connect(cfg.NATSURL, options...)
}
