package edge

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/railyardhq/railyard/pkg/models"
)

func TestInvertDirections(t *testing.T) {
	driver := &fakeDriver{}
	inverted := InvertDirections(driver)

	require.NoError(t, inverted.SetDirection(models.DirectionForward))
	require.NoError(t, inverted.SetDirection(models.DirectionReverse))

	assert.Equal(t, []models.Direction{
		models.DirectionReverse,
		models.DirectionForward,
	}, driver.directions, "logical directions must flip at the driver boundary")
}

func TestDriverRegistry(t *testing.T) {
	registry := DefaultRegistry()
	ctx := context.Background()

	driver, err := registry.Get(ctx, "simulated_dc", "train-1", nil)
	require.NoError(t, err)
	require.NotNil(t, driver)

	_, err = registry.Get(ctx, "dcc_ex", "train-1", nil)
	assert.ErrorIs(t, err, ErrUnknownPlugin)
}

func TestSimulatedDriverTelemetry(t *testing.T) {
	driver, err := NewSimulatedDriver("train-1", json.RawMessage(`{"supply_voltage":16,"stall_current":2}`))
	require.NoError(t, err)

	require.NoError(t, driver.SetSpeed(50))

	telemetry := driver.Telemetry()
	assert.InDelta(t, 8.0, telemetry.Voltage, 0.001, "voltage scales with throttle")
	assert.InDelta(t, 1.0, telemetry.Current, 0.001)

	require.NoError(t, driver.Stop())
	telemetry = driver.Telemetry()
	assert.Zero(t, telemetry.Voltage)
}

func TestSimulatedDriverRejectsBadConfig(t *testing.T) {
	_, err := NewSimulatedDriver("train-1", json.RawMessage(`{"supply_voltage":"twelve"}`))
	assert.Error(t, err)
}
