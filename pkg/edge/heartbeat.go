package edge

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log"
	"runtime"
	"time"

	"github.com/railyardhq/railyard/pkg/config"
	"github.com/railyardhq/railyard/pkg/models"
	"github.com/railyardhq/railyard/pkg/mqtt"
)

// Version is the controller build version reported in heartbeats.
const Version = "1.0.12"

const bytesPerMB = 1024 * 1024

// Heartbeater periodically announces controller liveness and capability
// metadata on the controller's heartbeat topic.
type Heartbeater struct {
	controllerID string
	transport    mqtt.Client
	interval     time.Duration
	configHash   string
}

// NewHeartbeater creates a heartbeat publisher for a controller. The
// config hash lets the core detect configuration drift across the fleet.
func NewHeartbeater(cfg *config.EdgeConfig, transport mqtt.Client) *Heartbeater {
	return &Heartbeater{
		controllerID: cfg.ControllerID,
		transport:    transport,
		interval:     time.Duration(cfg.HeartbeatInterval),
		configHash:   hashConfig(cfg),
	}
}

// Run publishes heartbeats on a fixed tick until the context is
// canceled. The first beat goes out immediately.
func (h *Heartbeater) Run(ctx context.Context) {
	h.beat()

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.beat()
		}
	}
}

func (h *Heartbeater) beat() {
	var memStats runtime.MemStats

	runtime.ReadMemStats(&memStats)

	hb := models.Heartbeat{
		ControllerID: h.controllerID,
		Platform:     runtime.GOOS,
		Version:      Version,
		MemoryMB:     int(memStats.Sys / bytesPerMB),
		CPUCount:     runtime.NumCPU(),
		ConfigHash:   h.configHash,
		Timestamp:    time.Now().UTC(),
	}

	payload, err := json.Marshal(&hb)
	if err != nil {
		log.Printf("Failed to marshal heartbeat: %v", err)
		return
	}

	if err := h.transport.Publish(mqtt.HeartbeatTopic(h.controllerID), mqtt.QoSTelemetry, payload); err != nil {
		log.Printf("Failed to publish heartbeat: %v", err)
	}
}

func hashConfig(cfg *config.EdgeConfig) string {
	encoded, err := json.Marshal(cfg)
	if err != nil {
		return ""
	}

	sum := sha256.Sum256(encoded)

	return hex.EncodeToString(sum[:])
}
