package core

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/railyardhq/railyard/pkg/core/alerts"
	"github.com/railyardhq/railyard/pkg/db"
)

// Monitor periodically classifies every controller's liveness and fires
// webhook alerts on offline/recovery transitions. It never mutates the
// stores; liveness is always derived from last_seen at read time.
type Monitor struct {
	store    db.Service
	alerters []alerts.AlertService
	interval time.Duration

	// reportedDown tracks controllers already alerted as offline so a
	// recovery alert fires exactly once per outage.
	reportedDown map[string]bool
}

// NewMonitor creates an offline-controller monitor.
func NewMonitor(store db.Service, alerters []alerts.AlertService, interval time.Duration) *Monitor {
	return &Monitor{
		store:        store,
		alerters:     alerters,
		interval:     interval,
		reportedDown: make(map[string]bool),
	}
}

// Run checks controllers on a fixed tick until the context is canceled.
func (m *Monitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.checkControllers(ctx)
		}
	}
}

func (m *Monitor) checkControllers(ctx context.Context) {
	controllers, err := m.store.ListControllers()
	if err != nil {
		log.Printf("Failed to list controllers for liveness check: %v", err)
		return
	}

	now := time.Now()

	for idx := range controllers {
		controller := &controllers[idx]
		if !controller.Enabled {
			continue
		}

		state := Classify(controller.LastSeen, now)

		switch {
		case state == Offline && !m.reportedDown[controller.ID]:
			m.reportedDown[controller.ID] = true
			m.sendAlert(ctx, &alerts.WebhookAlert{
				Level:        alerts.Error,
				Title:        fmt.Sprintf("Controller '%s' is offline", controller.Name),
				Message:      fmt.Sprintf("Controller '%s' has not sent a heartbeat since %v", controller.Name, controller.LastSeen),
				ControllerID: controller.ID,
				Details: map[string]any{
					"last_seen": controller.LastSeen,
					"address":   controller.Address,
				},
			})
		case state == Online && m.reportedDown[controller.ID]:
			delete(m.reportedDown, controller.ID)
			m.sendAlert(ctx, &alerts.WebhookAlert{
				Level:        alerts.Info,
				Title:        fmt.Sprintf("Controller '%s' recovered", controller.Name),
				Message:      fmt.Sprintf("Controller '%s' is sending heartbeats again", controller.Name),
				ControllerID: controller.ID,
			})
		}
	}
}

func (m *Monitor) sendAlert(ctx context.Context, alert *alerts.WebhookAlert) {
	for _, alerter := range m.alerters {
		if err := alerter.Alert(ctx, alert); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("Failed to send alert '%s': %v", alert.Title, err)
		}
	}
}
