package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"TradeDesk/internal/api"
	"TradeDesk/internal/config"
	"TradeDesk/internal/journal"
	"TradeDesk/internal/notify"
	"TradeDesk/internal/order"
	"TradeDesk/internal/settings"
	"TradeDesk/internal/store"
	"TradeDesk/internal/view"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] TradeDesk starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Gateway to the remote trading service
	client := api.NewClient(cfg.Server.BaseURL, cfg.Server.APIKey, cfg.Proxy, time.Duration(cfg.Server.TimeoutSec)*time.Second)
	log.Printf("[INFO] remote service: %s", cfg.Server.BaseURL)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	probeCtx, probeCancel := context.WithTimeout(ctx, 5*time.Second)
	if ok, err := client.Health(probeCtx); err != nil {
		log.Printf("[WARN] health probe failed: %v", err)
	} else if !ok {
		log.Println("[WARN] remote service reports not ok")
	}
	probeCancel()

	// Notifier
	var notifier notify.Notifier = notify.Noop{}
	if cfg.Notify.WebhookURL != "" {
		notifier = notify.NewGated(notify.NewWebhook(cfg.Notify.WebhookURL, cfg.Proxy), nil)
		log.Println("[INFO] webhook notifier enabled")
	}

	// Order journal
	var recorder journal.Recorder
	if cfg.Journal.SQLitePath != "" {
		sr, err := journal.NewSQLiteRecorder(cfg.Journal.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init order journal failed, using noop: %v", err)
			recorder = journal.NewNoopRecorder()
		} else {
			recorder = sr
			defer sr.Close()
		}
	} else {
		recorder = journal.NewNoopRecorder()
	}

	// Shared state and navigation
	shared := store.NewStore()
	nav := store.NewNavigator(shared, func(path string) {
		log.Printf("[INFO] navigate %s", path)
	})
	log.Printf("[INFO] active route: %s", nav.Path())

	cache := settings.NewCache(client)
	submitter := order.NewSubmitter(client, notifier, recorder)

	// Views. The holdings view polls for the whole session; the others
	// mount on demand from the navigation chrome.
	holdings := view.NewHoldingsView(client, cache, shared)
	chart := view.NewChartView(client, cache, shared, cfg.DefaultSymbol)
	reco := view.NewRecoView(client, cache, shared)
	trade := view.NewTradeView(client, cache, shared, submitter, cfg.DefaultSymbol)

	if err := holdings.Mount(ctx); err != nil {
		log.Fatalf("[FATAL] mount holdings view: %v", err)
	}
	trade.Mount(ctx)
	chart.Mount(ctx)
	reco.Mount(ctx)

	log.Println("[INFO] TradeDesk is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	reco.Unmount()
	chart.Unmount()
	trade.Unmount()
	holdings.Unmount()
	cancel()
	log.Println("[INFO] TradeDesk stopped")
}
