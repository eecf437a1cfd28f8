package edge

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/railyardhq/railyard/pkg/config"
	"github.com/railyardhq/railyard/pkg/models"
)

func testRunner(t *testing.T) (*trainRunner, *fakeDriver) {
	t.Helper()

	driver := &fakeDriver{}

	return &trainRunner{
		trainID:      "train-1",
		motor:        NewMotor(driver, 3*time.Second),
		driver:       driver,
		defaultSpeed: 50,
	}, driver
}

func TestRunnerAppliesCommands(t *testing.T) {
	tests := []struct {
		name       string
		cmd        models.Command
		wantTarget int
	}{
		{name: "start_uses_default_speed", cmd: models.Command{Action: models.ActionStart}, wantTarget: 50},
		{name: "setSpeed", cmd: models.SetSpeed(70), wantTarget: 70},
		{name: "stop", cmd: models.Command{Action: models.ActionStop}, wantTarget: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner, _ := testRunner(t)

			require.NoError(t, runner.apply(&tt.cmd))
			assert.Equal(t, tt.wantTarget, runner.motor.Snapshot().Target)
		})
	}
}

func TestRunnerDirectionCommands(t *testing.T) {
	runner, driver := testRunner(t)

	require.NoError(t, runner.apply(&models.Command{Action: models.ActionReverse}))
	assert.Equal(t, []models.Direction{models.DirectionReverse}, driver.directions)

	// At speed, direction commands are refused.
	require.NoError(t, runner.apply(&models.Command{Action: models.ActionStart}))
	tickThrough(runner.motor, time.Now(), 3*time.Second, 60)

	err := runner.apply(&models.Command{Action: models.ActionForward})
	assert.ErrorIs(t, err, ErrDirectionAtSpeed)
}

func TestRunnerEmergencyStopFromAnyState(t *testing.T) {
	runner, driver := testRunner(t)

	require.NoError(t, runner.apply(&models.Command{Action: models.ActionStart}))
	tickThrough(runner.motor, time.Now(), time.Second, 20)

	require.NoError(t, runner.apply(&models.Command{Action: models.ActionEmergencyStop}))
	assert.Equal(t, StateStopped, runner.motor.Snapshot().State)
	assert.Equal(t, 1, driver.stops)
}

func TestFailSafeStopsTrainsAfterGracePeriod(t *testing.T) {
	cfg := &config.EdgeConfig{
		ControllerID: "ctrl-1",
		BrokerURL:    "tcp://localhost:1883",
		Trains:       []config.TrainAssignment{{TrainID: "train-1", PluginName: "simulated_dc"}},
		GracePeriod:  config.Duration(20 * time.Millisecond),
		RampDuration: config.Duration(3 * time.Second),
	}

	e := NewExecutor(cfg, nil, DefaultRegistry())

	runner, driver := testRunner(t)
	e.runners["train-1"] = runner

	require.NoError(t, runner.apply(&models.Command{Action: models.ActionStart}))
	tickThrough(runner.motor, time.Now(), time.Second, 20)
	require.Greater(t, runner.motor.Snapshot().Speed, 0)

	e.OnConnectionLost(errors.New("broker gone"))

	assert.Eventually(t, func() bool {
		return runner.motor.Snapshot().State == StateStopped
	}, time.Second, 5*time.Millisecond, "trains must stop once the grace period lapses")
	assert.Equal(t, 1, driver.stopCount())
}

func TestFailSafeDisarmedOnReconnect(t *testing.T) {
	cfg := &config.EdgeConfig{
		ControllerID: "ctrl-1",
		BrokerURL:    "tcp://localhost:1883",
		Trains:       []config.TrainAssignment{{TrainID: "train-1", PluginName: "simulated_dc"}},
		GracePeriod:  config.Duration(50 * time.Millisecond),
		RampDuration: config.Duration(3 * time.Second),
	}

	e := NewExecutor(cfg, nil, DefaultRegistry())

	runner, _ := testRunner(t)
	e.runners["train-1"] = runner

	require.NoError(t, runner.apply(&models.Command{Action: models.ActionStart}))
	tickThrough(runner.motor, time.Now(), time.Second, 20)
	speed := runner.motor.Snapshot().Speed
	require.Greater(t, speed, 0)

	e.OnConnectionLost(errors.New("blip"))
	e.OnConnectionUp()

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, speed, runner.motor.Snapshot().Speed, "a blip within the grace period must not stop trains")
}
