package main

import (
	"context"
	"flag"
	"log"

	"github.com/railyardhq/railyard/pkg/config"
	"github.com/railyardhq/railyard/pkg/edge"
	"github.com/railyardhq/railyard/pkg/lifecycle"
	"github.com/railyardhq/railyard/pkg/mqtt"
)

func main() {
	configPath := flag.String("config", "/etc/railyard/controller.json", "Path to controller config file")
	flag.Parse()

	var cfg config.EdgeConfig
	if err := config.LoadAndValidate(*configPath, &cfg); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if len(cfg.Trains) == 0 {
		assignments, err := edge.FetchAssignments(context.Background(), cfg.CoreURL, cfg.ControllerID)
		if err != nil {
			log.Fatalf("Failed to fetch train assignments: %v", err)
		}

		if len(assignments) == 0 {
			log.Fatalf("No trains assigned to controller %s", cfg.ControllerID)
		}

		cfg.Trains = assignments
	}

	// The executor's fail-safe hooks into the transport's connection
	// callbacks; the callbacks fire only after Connect, which happens
	// inside executor.Start, so the late binding is safe.
	var executor *edge.Executor

	transport := mqtt.NewClient(cfg.BrokerURL, "railyard-controller-"+cfg.ControllerID,
		mqtt.WithConnectionLostHandler(func(err error) { executor.OnConnectionLost(err) }),
		mqtt.WithConnectionUpHandler(func() { executor.OnConnectionUp() }),
	)

	executor = edge.NewExecutor(&cfg, transport, edge.DefaultRegistry())

	if err := lifecycle.RunServer(context.Background(), &lifecycle.ServerOptions{
		ServiceName: "railyard-controller",
		Service:     executor,
	}); err != nil {
		log.Fatalf("Controller failed: %v", err)
	}
}
