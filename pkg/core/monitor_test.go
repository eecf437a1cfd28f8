package core

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/railyardhq/railyard/pkg/core/alerts"
	"github.com/railyardhq/railyard/pkg/db"
	"github.com/railyardhq/railyard/pkg/models"
)

type capturingAlerter struct {
	mu   sync.Mutex
	sent []alerts.WebhookAlert
}

func (c *capturingAlerter) Alert(_ context.Context, alert *alerts.WebhookAlert) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sent = append(c.sent, *alert)

	return nil
}

func (c *capturingAlerter) IsEnabled() bool { return true }

func (c *capturingAlerter) alerts() []alerts.WebhookAlert {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]alerts.WebhookAlert(nil), c.sent...)
}

func TestMonitorAlertsOnceThenRecovers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB := db.NewMockService(ctrl)
	alerter := &capturingAlerter{}

	offline := []models.Controller{{
		ID:       "ctrl-1",
		Name:     "yard-east",
		Enabled:  true,
		LastSeen: time.Now().Add(-time.Hour),
	}}
	online := []models.Controller{{
		ID:       "ctrl-1",
		Name:     "yard-east",
		Enabled:  true,
		LastSeen: time.Now(),
	}}

	mockDB.EXPECT().ListControllers().Return(offline, nil).Times(2)
	mockDB.EXPECT().ListControllers().Return(online, nil)

	m := NewMonitor(mockDB, []alerts.AlertService{alerter}, time.Minute)
	ctx := context.Background()

	m.checkControllers(ctx)
	m.checkControllers(ctx) // still offline: no duplicate alert
	m.checkControllers(ctx) // back online: recovery alert

	sent := alerter.alerts()
	assert.Len(t, sent, 2)
	assert.Equal(t, alerts.Error, sent[0].Level)
	assert.Contains(t, sent[0].Title, "offline")
	assert.Equal(t, alerts.Info, sent[1].Level)
	assert.Contains(t, sent[1].Title, "recovered")
}

func TestMonitorSkipsDisabledControllers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB := db.NewMockService(ctrl)
	alerter := &capturingAlerter{}

	mockDB.EXPECT().ListControllers().Return([]models.Controller{{
		ID:       "ctrl-1",
		Name:     "mothballed",
		Enabled:  false,
		LastSeen: time.Now().Add(-time.Hour),
	}}, nil)

	m := NewMonitor(mockDB, []alerts.AlertService{alerter}, time.Minute)
	m.checkControllers(context.Background())

	assert.Empty(t, alerter.alerts())
}
