package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"time"

	"github.com/railyardhq/railyard/pkg/config"
	"github.com/railyardhq/railyard/pkg/core"
	"github.com/railyardhq/railyard/pkg/core/api"
	"github.com/railyardhq/railyard/pkg/db"
	"github.com/railyardhq/railyard/pkg/lifecycle"
	"github.com/railyardhq/railyard/pkg/mqtt"
)

func main() {
	configPath := flag.String("config", "/etc/railyard/core.json", "Path to core config file")
	flag.Parse()

	var cfg config.CoreConfig
	if err := config.LoadAndValidate(*configPath, &cfg); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	store, err := db.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	ctx := context.Background()

	if cfg.ManifestPath != "" {
		manifest, err := core.LoadManifest(cfg.ManifestPath)
		if err != nil {
			log.Fatalf("Failed to load manifest: %v", err)
		}

		if err := core.NewReconciler(store).Reconcile(ctx, manifest); err != nil {
			log.Fatalf("Failed to reconcile manifest: %v", err)
		}
	}

	transport := mqtt.NewClient(cfg.BrokerURL, "railyard-core")
	server := core.NewServer(&cfg, store, transport)

	apiServer := api.NewAPIServer(server)

	httpServer := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      apiServer.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	if err := lifecycle.RunServer(ctx, &lifecycle.ServerOptions{
		ServiceName: "railyard-core",
		Service:     server,
		HTTPServer:  httpServer,
	}); err != nil {
		log.Fatalf("Core failed: %v", err)
	}
}
