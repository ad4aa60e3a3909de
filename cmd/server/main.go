// Command server runs the HTTP report service.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/DaniloReis10/TarifadorTest-sub000/api"
	"github.com/DaniloReis10/TarifadorTest-sub000/internal/config"
	"github.com/DaniloReis10/TarifadorTest-sub000/internal/logging"
	"github.com/DaniloReis10/TarifadorTest-sub000/store/sqlite"

	"go.uber.org/zap"
)

const version = "0.1.0"

func main() {
	// .env is optional; explicit environment always wins
	_ = godotenv.Load()

	cfgPath := os.Getenv("TARIFADOR_CONFIG")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	config.Set(cfg)

	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
	defer logging.Sync()

	dbPath := cfg.Store.DatabasePath
	if env := os.Getenv("TARIFADOR_DB"); env != "" {
		dbPath = env
	}

	store, err := sqlite.Open(dbPath)
	if err != nil {
		logging.Fatal("opening record store", zap.Error(err))
	}
	defer store.Close()

	addr := cfg.Server.Addr
	if env := os.Getenv("TARIFADOR_ADDR"); env != "" {
		addr = env
	}

	logging.Info("report service listening", zap.String("addr", addr))
	server := api.NewServer(version, store)
	if err := server.ListenAndServe(addr); err != nil {
		logging.Fatal("server stopped", zap.Error(err))
	}
}
