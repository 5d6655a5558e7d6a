// Package main - Entry point for the paperbill HTTP server
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"go.uber.org/zap"

	"paperbill/adapters/storage"
	"paperbill/api"
	"paperbill/internal/config"
	"paperbill/internal/logging"
)

const version = "1.0.0"

func main() {
	addr := flag.String("addr", "", "Server address (overrides config)")
	cfgPath := flag.String("config", "", "Path to config file")
	dataDir := flag.String("data-dir", "", "Data directory (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *dataDir != "" {
		cfg.Storage.DataDir = *dataDir
	}

	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logging: %v\n", err)
		os.Exit(1)
	}
	defer logging.Sync()

	store, err := storage.New(storage.Backend(cfg.Storage.Backend), cfg.Storage.DataDir)
	if err != nil {
		logging.Fatal("failed to open store", zap.Error(err))
	}
	defer store.Close()

	apiServer := api.NewServer(version, store)

	mux := http.NewServeMux()
	mux.Handle("/api/", http.StripPrefix("/api", apiServer))

	logging.Info("paperbill server listening",
		zap.String("addr", cfg.Server.Addr),
		zap.String("version", version),
	)

	if err := http.ListenAndServe(cfg.Server.Addr, mux); err != nil {
		logging.Fatal("server failed", zap.Error(err))
	}
}
